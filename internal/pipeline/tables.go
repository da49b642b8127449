package pipeline

// CategoryNames maps YouTube category IDs to the category names the extractor
// collects. Note the mismatch with CategoryBaseRates below: this map carries
// Education but no Sports, the rate table carries Sports but no Education. Both
// tables are kept verbatim; Education falls through to DefaultBaseRate.
var CategoryNames = map[string]string{
	"10": "Music",
	"20": "Gaming",
	"22": "People & Blogs",
	"24": "Entertainment",
	"25": "News & Politics",
	"27": "Education",
	"28": "Science & Technology",
}

// ChannelTierBin is one half-open view-count bucket [MinViews, next.MinViews).
// Bins are lower-inclusive, so a count sitting exactly on an edge belongs to
// the higher tier.
type ChannelTierBin struct {
	Label    string
	MinViews int64
}

// Tables is the static configuration consumed by the metrics calculator.
// It is injected at construction and read-only for the lifetime of a run.
type Tables struct {
	CategoryBaseRates map[string]float64
	DefaultBaseRate   float64

	// TierBins must start at 0 and be strictly ascending so the bins cover
	// [0, inf); the last bin is unbounded above.
	TierBins              []ChannelTierBin
	TierMultipliers       map[string]float64
	DefaultTierMultiplier float64
}

// DefaultTables returns the production lookup tables: industry-estimate base
// ad rates per category and the channel-size tier adjustment (larger channels
// get better terms).
func DefaultTables() Tables {
	return Tables{
		CategoryBaseRates: map[string]float64{
			"Music":                0.15,
			"Gaming":               0.25,
			"People & Blogs":       0.22,
			"Entertainment":        0.30,
			"News & Politics":      0.35,
			"Sports":               0.32,
			"Science & Technology": 0.22,
		},
		DefaultBaseRate: 0.25,
		TierBins: []ChannelTierBin{
			{Label: TierMicro, MinViews: 0},
			{Label: TierSmall, MinViews: 10_000},
			{Label: TierMedium, MinViews: 100_000},
			{Label: TierLarge, MinViews: 1_000_000},
			{Label: TierEnterprise, MinViews: 10_000_000},
		},
		TierMultipliers: map[string]float64{
			TierMicro:      1.2,
			TierSmall:      1.1,
			TierMedium:     1.0,
			TierLarge:      0.9,
			TierEnterprise: 0.8,
		},
		DefaultTierMultiplier: 1.0,
	}
}

// Channel tier labels.
const (
	TierMicro      = "Micro"
	TierSmall      = "Small"
	TierMedium     = "Medium"
	TierLarge      = "Large"
	TierEnterprise = "Enterprise"
)

// Duration category labels and their lower edges in minutes, same half-open
// convention as the tier bins.
const (
	DurationShort    = "Short"
	DurationMedium   = "Medium"
	DurationLong     = "Long"
	DurationVeryLong = "Very Long"
)

// Validate checks the structural invariants the pipeline relies on. A table
// that fails here is a deployment mistake, so callers should treat the error
// as fatal at startup rather than per record.
func (t Tables) Validate() error {
	if len(t.TierBins) == 0 {
		return &InvalidConfigurationError{Table: "TierBins", Reason: "no bins defined"}
	}
	if t.TierBins[0].MinViews != 0 {
		return &InvalidConfigurationError{Table: "TierBins", Reason: "first bin must start at 0 so bins cover [0, inf)"}
	}
	for i := 1; i < len(t.TierBins); i++ {
		if t.TierBins[i].MinViews <= t.TierBins[i-1].MinViews {
			return &InvalidConfigurationError{Table: "TierBins", Reason: "bin edges must be strictly ascending"}
		}
	}
	for _, bin := range t.TierBins {
		if _, ok := t.TierMultipliers[bin.Label]; !ok {
			return &InvalidConfigurationError{Table: "TierMultipliers", Reason: "missing multiplier for tier " + bin.Label}
		}
	}
	for name, rate := range t.CategoryBaseRates {
		if rate <= 0 {
			return &InvalidConfigurationError{Table: "CategoryBaseRates", Reason: "non-positive rate for category " + name}
		}
	}
	if t.DefaultBaseRate <= 0 {
		return &InvalidConfigurationError{Table: "CategoryBaseRates", Reason: "default base rate must be positive"}
	}
	if t.DefaultTierMultiplier <= 0 {
		return &InvalidConfigurationError{Table: "TierMultipliers", Reason: "default multiplier must be positive"}
	}
	return nil
}
