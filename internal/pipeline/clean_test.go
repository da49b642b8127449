package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/model"
)

func i64(v int64) *int64 { return &v }

func rawRecord(videoID string) model.RawVideoRecord {
	return model.RawVideoRecord{
		VideoID:         videoID,
		Title:           "Video " + videoID,
		ChannelID:       "ch-" + videoID,
		ChannelTitle:    "Channel " + videoID,
		CategoryID:      "10",
		CategoryName:    "Music",
		PublishedAt:     "2024-01-01T00:00:00Z",
		DurationSeconds: 180,
		ViewCount:       i64(1000),
		LikeCount:       i64(100),
		CommentCount:    i64(10),
	}
}

func TestClean_DeduplicatesByVideoID(t *testing.T) {
	first := rawRecord("vid1")
	second := rawRecord("vid1")
	second.Title = "duplicate"

	cleaned := NewCleaner(zerolog.Nop()).Clean([]model.RawVideoRecord{first, second})

	if len(cleaned) != 1 {
		t.Fatalf("got %d records, want 1", len(cleaned))
	}
	if cleaned[0].Title != "Video vid1" {
		t.Errorf("kept %q, want first occurrence", cleaned[0].Title)
	}
}

func TestClean_ZeroFillsMissingCounters(t *testing.T) {
	r := rawRecord("vid1")
	r.ViewCount = nil
	r.LikeCount = nil
	r.CommentCount = nil

	cleaned := NewCleaner(zerolog.Nop()).Clean([]model.RawVideoRecord{r})

	if len(cleaned) != 1 {
		t.Fatalf("got %d records, want 1", len(cleaned))
	}
	if cleaned[0].ViewCount != 0 || cleaned[0].LikeCount != 0 || cleaned[0].CommentCount != 0 {
		t.Errorf("counters = %d/%d/%d, want 0/0/0",
			cleaned[0].ViewCount, cleaned[0].LikeCount, cleaned[0].CommentCount)
	}
}

func TestClean_DropsNonPositiveDurations(t *testing.T) {
	zero := rawRecord("vid1")
	zero.DurationSeconds = 0
	negative := rawRecord("vid2")
	negative.DurationSeconds = -5
	ok := rawRecord("vid3")
	ok.DurationSeconds = 1

	cleaned := NewCleaner(zerolog.Nop()).Clean([]model.RawVideoRecord{zero, negative, ok})

	if len(cleaned) != 1 {
		t.Fatalf("got %d records, want 1", len(cleaned))
	}
	for _, r := range cleaned {
		if r.DurationSeconds <= 0 {
			t.Errorf("cleaner emitted non-positive duration %d for %s", r.DurationSeconds, r.VideoID)
		}
	}
}

func TestClean_DropsMalformedTimestamps(t *testing.T) {
	bad := rawRecord("vid1")
	bad.PublishedAt = "not-a-date"
	good := rawRecord("vid2")

	cleaned := NewCleaner(zerolog.Nop()).Clean([]model.RawVideoRecord{bad, good})

	if len(cleaned) != 1 {
		t.Fatalf("got %d records, want 1", len(cleaned))
	}
	if cleaned[0].VideoID != "vid2" {
		t.Errorf("kept %s, want vid2", cleaned[0].VideoID)
	}
}

func TestParsePublishedAt_Layouts(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"rfc3339 utc", "2024-01-01T00:00:00Z", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"rfc3339 offset", "2024-01-01T05:00:00+05:00", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"no zone", "2024-01-01T12:30:00", time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC)},
		{"space separator", "2024-01-01 12:30:00", time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC)},
		{"date only", "2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePublishedAt("vid1", tt.value)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParsePublishedAt_MalformedError(t *testing.T) {
	_, err := ParsePublishedAt("vid9", "garbage")
	if err == nil {
		t.Fatal("expected error, got none")
	}

	var tsErr *MalformedTimestampError
	if !errors.As(err, &tsErr) {
		t.Fatalf("error type = %T, want *MalformedTimestampError", err)
	}
	if tsErr.VideoID != "vid9" || tsErr.Field != "published_at" || tsErr.Value != "garbage" {
		t.Errorf("error context = %s/%s/%q, want vid9/published_at/garbage",
			tsErr.VideoID, tsErr.Field, tsErr.Value)
	}
}

func TestClean_DoesNotMutateInput(t *testing.T) {
	raw := []model.RawVideoRecord{rawRecord("vid1")}
	before := raw[0]

	NewCleaner(zerolog.Nop()).Clean(raw)

	if raw[0] != before {
		t.Error("clean mutated its input table")
	}
}
