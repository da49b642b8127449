package pipeline

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/model"
)

// Pipeline threads a raw table through Cleaner -> Calculator -> AddFeatures
// and reports an aggregate summary of the run.
type Pipeline struct {
	cleaner *Cleaner
	calc    *Calculator
	log     zerolog.Logger
}

// New builds a pipeline over the given lookup tables. Table validation errors
// surface here, at startup, never during a run.
func New(tables Tables, log zerolog.Logger) (*Pipeline, error) {
	calc, err := NewCalculator(tables)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cleaner: NewCleaner(log),
		calc:    calc,
		log:     log,
	}, nil
}

// Run executes the full transformation over a raw table. An empty raw table
// aborts with ErrMissingInput. The now snapshot is used for all age-based
// fields in the batch.
func (p *Pipeline) Run(raw []model.RawVideoRecord, now time.Time) ([]model.ProcessedRecord, model.PipelineSummary, error) {
	if len(raw) == 0 {
		return nil, model.PipelineSummary{}, ErrMissingInput
	}

	cleaned := p.cleaner.Clean(raw)
	processed := p.calc.CalculateMetrics(cleaned)
	processed = AddFeaturesAt(processed, now)

	summary := Summarize(processed, now)

	p.log.Info().
		Str("run_id", summary.RunID).
		Int("raw", len(raw)).
		Int("processed", len(processed)).
		Int("dropped", len(raw)-len(processed)).
		Float64("mean_ad_density", summary.MeanAdDensity).
		Float64("mean_ad_ratio", summary.MeanAdRatio).
		Msg("pipeline run complete")

	return processed, summary, nil
}

// Summarize computes the aggregate report for a processed table: total count,
// mean ad density and ratio, and a per-category breakdown sorted by name.
func Summarize(processed []model.ProcessedRecord, generatedAt time.Time) model.PipelineSummary {
	summary := model.PipelineSummary{
		RunID:       uuid.NewString(),
		VideoCount:  len(processed),
		Categories:  []model.CategorySummary{},
		GeneratedAt: generatedAt,
	}

	if len(processed) == 0 {
		return summary
	}

	type agg struct {
		count   int
		density float64
		ratio   float64
	}
	byCategory := make(map[string]*agg)

	var totalDensity, totalRatio float64
	for _, r := range processed {
		totalDensity += r.AdDensity
		totalRatio += r.AdRatio

		a := byCategory[r.CategoryName]
		if a == nil {
			a = &agg{}
			byCategory[r.CategoryName] = a
		}
		a.count++
		a.density += r.AdDensity
		a.ratio += r.AdRatio
	}

	summary.MeanAdDensity = round3(totalDensity / float64(len(processed)))
	summary.MeanAdRatio = round2(totalRatio / float64(len(processed)))
	summary.CategoryCount = len(byCategory)

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		a := byCategory[name]
		summary.Categories = append(summary.Categories, model.CategorySummary{
			CategoryName:  name,
			VideoCount:    a.count,
			MeanAdDensity: round3(a.density / float64(a.count)),
			MeanAdRatio:   round2(a.ratio / float64(a.count)),
		})
	}

	return summary
}
