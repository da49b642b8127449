package pipeline

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/model"
)

// publishedAtLayouts are tried in order when parsing published_at. The API
// emits RFC3339; CSV round-trips may have dropped the zone or the time.
var publishedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Cleaner deduplicates and validates raw records. It never mutates its input;
// each call produces a new table.
type Cleaner struct {
	log zerolog.Logger
}

func NewCleaner(log zerolog.Logger) *Cleaner {
	return &Cleaner{log: log}
}

// Clean returns the cleaned table:
//   - duplicates by video_id are dropped, first occurrence wins
//   - missing view/like/comment counts become 0
//   - records with non-positive duration are dropped (degenerate or live)
//   - published_at is parsed to a timezone-naive timestamp; unparsable
//     timestamps drop the record with a warning rather than aborting the batch
func (c *Cleaner) Clean(raw []model.RawVideoRecord) []model.VideoRecord {
	seen := make(map[string]struct{}, len(raw))
	cleaned := make([]model.VideoRecord, 0, len(raw))

	for _, r := range raw {
		if _, dup := seen[r.VideoID]; dup {
			continue
		}
		seen[r.VideoID] = struct{}{}

		if r.DurationSeconds <= 0 {
			c.log.Debug().
				Str("video_id", r.VideoID).
				Int64("duration_seconds", r.DurationSeconds).
				Msg("dropping record with non-positive duration")
			continue
		}

		published, err := ParsePublishedAt(r.VideoID, r.PublishedAt)
		if err != nil {
			c.log.Warn().
				Str("video_id", r.VideoID).
				Str("field", "published_at").
				Str("value", r.PublishedAt).
				Msg("dropping record with malformed timestamp")
			continue
		}

		cleaned = append(cleaned, model.VideoRecord{
			VideoID:         r.VideoID,
			Title:           r.Title,
			ChannelID:       r.ChannelID,
			ChannelTitle:    r.ChannelTitle,
			CategoryID:      r.CategoryID,
			CategoryName:    r.CategoryName,
			PublishedAt:     published,
			DurationSeconds: r.DurationSeconds,
			ViewCount:       orZero(r.ViewCount),
			LikeCount:       orZero(r.LikeCount),
			CommentCount:    orZero(r.CommentCount),
			SubscriberCount: r.SubscriberCount,
			TotalViews:      r.TotalViews,
			VideoCount:      r.VideoCount,
			CollectedAt:     r.CollectedAt,
		})
	}

	return cleaned
}

// ParsePublishedAt parses a published_at value into a timezone-naive (UTC)
// timestamp. Callers that want to abort instead of drop can call this directly
// and inspect the *MalformedTimestampError.
func ParsePublishedAt(videoID, value string) (time.Time, error) {
	var lastErr error
	for _, layout := range publishedAtLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, &MalformedTimestampError{
		VideoID: videoID,
		Field:   "published_at",
		Value:   value,
		Err:     lastErr,
	}
}

func orZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
