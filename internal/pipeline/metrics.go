package pipeline

import (
	"math"

	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/model"
)

// Seconds of ad time attributed per estimated ad break.
const secondsPerAd = 20

// Calculator derives the ad-saturation metrics for cleaned records. It is a
// pure function of its input plus the injected lookup tables; no record
// affects another.
type Calculator struct {
	tables Tables
}

// NewCalculator validates the tables and returns a calculator. A table failing
// validation is fatal here so that per-record processing can never hit a
// configuration hole.
func NewCalculator(tables Tables) (*Calculator, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{tables: tables}, nil
}

// CalculateMetrics computes the derived fields for every record:
//
//	ad_density       = base_ad_rate(category) * tier_multiplier(view_count)
//	estimated_ads    = round(max(1, ad_density * duration_minutes))
//	ad_time_seconds  = estimated_ads * 20
//	ad_ratio         = ad_time_seconds / duration_seconds * 100
//	engagement_rate  = (likes + comments) / max(views, 1) * 100
//	revenue_pressure = ad_density*0.5 + ad_ratio*0.01*0.3 + views/1e6*0.2
func (c *Calculator) CalculateMetrics(records []model.VideoRecord) []model.ProcessedRecord {
	processed := make([]model.ProcessedRecord, 0, len(records))
	for _, r := range records {
		processed = append(processed, c.process(r))
	}
	return processed
}

func (c *Calculator) process(r model.VideoRecord) model.ProcessedRecord {
	durationMinutes := float64(r.DurationSeconds) / 60

	baseRate, ok := c.tables.CategoryBaseRates[r.CategoryName]
	if !ok {
		baseRate = c.tables.DefaultBaseRate
	}

	tier := c.ChannelTierFor(r.ViewCount)
	multiplier, ok := c.tables.TierMultipliers[tier]
	if !ok {
		multiplier = c.tables.DefaultTierMultiplier
	}

	adDensity := baseRate * multiplier

	// Every monetized video carries at least one ad, however short.
	estimatedAds := int64(math.Round(math.Max(1, adDensity*durationMinutes)))
	adTimeSeconds := estimatedAds * secondsPerAd
	adRatio := round2(float64(adTimeSeconds) / float64(r.DurationSeconds) * 100)

	views := r.ViewCount
	if views == 0 {
		views = 1
	}
	engagementRate := round3(float64(r.LikeCount+r.CommentCount) / float64(views) * 100)

	revenuePressure := round3(adDensity*0.5 + adRatio*0.01*0.3 + float64(r.ViewCount)/1e6*0.2)

	return model.ProcessedRecord{
		VideoRecord:     r,
		DurationMinutes: durationMinutes,
		BaseAdRate:      baseRate,
		ChannelTier:     tier,
		TierMultiplier:  multiplier,
		AdDensity:       adDensity,
		EstimatedAds:    estimatedAds,
		AdTimeSeconds:   adTimeSeconds,
		AdRatio:         adRatio,
		EngagementRate:  engagementRate,
		RevenuePressure: revenuePressure,
	}
}

// ChannelTierFor buckets a view count into a channel-size tier. Bins are
// lower-inclusive, so every non-negative count maps to exactly one tier and a
// count on an edge lands in the higher tier.
func (c *Calculator) ChannelTierFor(viewCount int64) string {
	tier := c.tables.TierBins[0].Label
	for _, bin := range c.tables.TierBins {
		if viewCount < bin.MinViews {
			break
		}
		tier = bin.Label
	}
	return tier
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
