package pipeline

import (
	"math"
	"time"

	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/model"
)

// durationEdges are the lower edges, in minutes, of the duration buckets.
var durationEdges = []struct {
	label      string
	minMinutes float64
}{
	{DurationShort, 0},
	{DurationMedium, 5},
	{DurationLong, 15},
	{DurationVeryLong, 30},
}

// AddFeatures adds the time-based derived fields using the current time as the
// batch snapshot.
func AddFeatures(records []model.ProcessedRecord) []model.ProcessedRecord {
	return AddFeaturesAt(records, time.Now().UTC())
}

// AddFeaturesAt adds age_days, duration_category, and views_per_day to every
// record. The now snapshot is fixed for the whole batch so relative ordering
// of age-based fields stays consistent across a single run.
func AddFeaturesAt(records []model.ProcessedRecord, now time.Time) []model.ProcessedRecord {
	now = now.UTC()
	out := make([]model.ProcessedRecord, 0, len(records))
	for _, r := range records {
		r.AgeDays = ageDays(r.PublishedAt, now)
		r.DurationCategory = DurationCategoryFor(r.DurationMinutes)
		ageDenom := r.AgeDays
		if ageDenom == 0 {
			ageDenom = 1
		}
		r.ViewsPerDay = math.Round(float64(r.ViewCount) / float64(ageDenom))
		out = append(out, r)
	}
	return out
}

// DurationCategoryFor buckets a duration in minutes, lower-inclusive edges.
func DurationCategoryFor(minutes float64) string {
	label := durationEdges[0].label
	for _, edge := range durationEdges {
		if minutes < edge.minMinutes {
			break
		}
		label = edge.label
	}
	return label
}

// ageDays returns whole days between now and published, floored.
func ageDays(published, now time.Time) int64 {
	return int64(math.Floor(now.Sub(published).Hours() / 24))
}
