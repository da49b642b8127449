package pipeline

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/model"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func mustCalculator(t *testing.T) *Calculator {
	t.Helper()
	calc, err := NewCalculator(DefaultTables())
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}
	return calc
}

func cleanRecord(videoID, category string, durationSeconds, viewCount int64) model.VideoRecord {
	return model.VideoRecord{
		VideoID:         videoID,
		CategoryName:    category,
		PublishedAt:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DurationSeconds: durationSeconds,
		ViewCount:       viewCount,
	}
}

func TestCalculateMetrics_MusicExample(t *testing.T) {
	// 3-minute Music video from a Micro channel, the worked reference case.
	r := cleanRecord("vid1", "Music", 180, 1000)
	r.LikeCount = 100
	r.CommentCount = 10

	got := mustCalculator(t).CalculateMetrics([]model.VideoRecord{r})[0]

	if got.BaseAdRate != 0.15 {
		t.Errorf("base ad rate = %.2f, want 0.15", got.BaseAdRate)
	}
	if got.ChannelTier != TierMicro {
		t.Errorf("channel tier = %s, want Micro", got.ChannelTier)
	}
	if got.TierMultiplier != 1.2 {
		t.Errorf("tier multiplier = %.1f, want 1.2", got.TierMultiplier)
	}
	if !almostEqual(got.AdDensity, 0.18, 1e-9) {
		t.Errorf("ad density = %.4f, want 0.18", got.AdDensity)
	}
	if got.DurationMinutes != 3.0 {
		t.Errorf("duration minutes = %.2f, want 3.0", got.DurationMinutes)
	}
	if got.EstimatedAds != 1 {
		t.Errorf("estimated ads = %d, want 1 (floor applies before rounding)", got.EstimatedAds)
	}
	if got.AdTimeSeconds != 20 {
		t.Errorf("ad time = %d, want 20", got.AdTimeSeconds)
	}
	if got.AdRatio != 11.11 {
		t.Errorf("ad ratio = %.2f, want 11.11", got.AdRatio)
	}
	if got.EngagementRate != 11.0 {
		t.Errorf("engagement rate = %.3f, want 11.000", got.EngagementRate)
	}
	// 0.18*0.5 + 11.11*0.01*0.3 + 1000/1e6*0.2 = 0.12353 -> 0.124
	if got.RevenuePressure != 0.124 {
		t.Errorf("revenue pressure = %.3f, want 0.124", got.RevenuePressure)
	}
}

func TestChannelTier_Boundaries(t *testing.T) {
	calc := mustCalculator(t)

	tests := []struct {
		views int64
		want  string
	}{
		{0, TierMicro},
		{9_999, TierMicro},
		{10_000, TierSmall}, // edge belongs to the higher tier
		{99_999, TierSmall},
		{100_000, TierMedium},
		{999_999, TierMedium},
		{1_000_000, TierLarge},
		{9_999_999, TierLarge},
		{10_000_000, TierEnterprise},
		{5_000_000_000, TierEnterprise},
	}
	for _, tt := range tests {
		if got := calc.ChannelTierFor(tt.views); got != tt.want {
			t.Errorf("tier(%d) = %s, want %s", tt.views, got, tt.want)
		}
	}
}

func TestBaseAdRate_CategoryLookup(t *testing.T) {
	calc := mustCalculator(t)

	tests := []struct {
		name     string
		category string
		want     float64
	}{
		{"mapped category", "Gaming", 0.25},
		// Sports has a rate but is absent from the id->name map; a record
		// named Sports still resolves through the rate table.
		{"sports rate-table only", "Sports", 0.32},
		// Education is in the id->name map but missing from the rate table,
		// so it falls through to the default.
		{"education falls to default", "Education", 0.25},
		{"unknown category", "Cooking", 0.25},
		{"empty category", "", 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.CalculateMetrics([]model.VideoRecord{cleanRecord("v", tt.category, 600, 0)})[0]
			if got.BaseAdRate != tt.want {
				t.Errorf("base ad rate = %.2f, want %.2f", got.BaseAdRate, tt.want)
			}
		})
	}
}

func TestCalculateMetrics_EstimatedAdsFlooredAtOne(t *testing.T) {
	calc := mustCalculator(t)

	// 10-second Music video: 0.18 * 0.1667 minutes is well below 1.
	got := calc.CalculateMetrics([]model.VideoRecord{cleanRecord("v", "Music", 10, 0)})[0]
	if got.EstimatedAds < 1 {
		t.Errorf("estimated ads = %d, want >= 1", got.EstimatedAds)
	}
}

func TestCalculateMetrics_AdRatioUnclamped(t *testing.T) {
	calc := mustCalculator(t)

	// One 20s ad on a 10s video: ratio is 200%, by design not clamped to 100.
	got := calc.CalculateMetrics([]model.VideoRecord{cleanRecord("v", "Music", 10, 0)})[0]
	if got.AdRatio != 200.0 {
		t.Errorf("ad ratio = %.2f, want 200.00 (unclamped)", got.AdRatio)
	}
	if got.AdRatio < 0 {
		t.Errorf("ad ratio = %.2f, want >= 0", got.AdRatio)
	}
}

func TestCalculateMetrics_ZeroViewsGuarded(t *testing.T) {
	calc := mustCalculator(t)

	r := cleanRecord("v", "Gaming", 300, 0)
	r.LikeCount = 50
	r.CommentCount = 5

	got := calc.CalculateMetrics([]model.VideoRecord{r})[0]

	if math.IsNaN(got.EngagementRate) || math.IsInf(got.EngagementRate, 0) {
		t.Fatalf("engagement rate = %v, want finite", got.EngagementRate)
	}
	// Denominator is 1 for zero views: (50+5)/1*100 = 5500
	if got.EngagementRate != 5500.0 {
		t.Errorf("engagement rate = %.3f, want 5500.000", got.EngagementRate)
	}
}

func TestCalculateMetrics_Idempotent(t *testing.T) {
	calc := mustCalculator(t)
	records := []model.VideoRecord{
		cleanRecord("v1", "Music", 180, 1000),
		cleanRecord("v2", "Gaming", 600, 50_000),
		cleanRecord("v3", "", 3600, 20_000_000),
	}

	first := calc.CalculateMetrics(records)
	second := calc.CalculateMetrics(records)

	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("record %d differs between runs", i)
		}
	}
}

func TestNewCalculator_RejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tables)
	}{
		{"no bins", func(tb *Tables) { tb.TierBins = nil }},
		{"bins not covering zero", func(tb *Tables) { tb.TierBins[0].MinViews = 100 }},
		{"non-ascending bins", func(tb *Tables) { tb.TierBins[2].MinViews = tb.TierBins[1].MinViews }},
		{"missing multiplier", func(tb *Tables) { delete(tb.TierMultipliers, TierLarge) }},
		{"non-positive rate", func(tb *Tables) { tb.CategoryBaseRates["Music"] = 0 }},
		{"non-positive default rate", func(tb *Tables) { tb.DefaultBaseRate = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := DefaultTables()
			tt.mutate(&tables)

			_, err := NewCalculator(tables)
			if err == nil {
				t.Fatal("expected configuration error, got none")
			}
			var cfgErr *InvalidConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Errorf("error type = %T, want *InvalidConfigurationError", err)
			}
		})
	}
}

func TestDefaultTables_Valid(t *testing.T) {
	if err := DefaultTables().Validate(); err != nil {
		t.Fatalf("default tables invalid: %v", err)
	}
}
