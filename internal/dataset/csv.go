// Package dataset reads and writes the flat tabular files at the pipeline
// boundary: raw collections produced by the extractor and processed tables
// consumed by the dashboard.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/model"
)

// rawColumns is the exact header of a raw table. The three channel-aggregate
// columns are optional; readers resolve columns by name, not position.
var rawColumns = []string{
	"video_id", "title", "channel_id", "channel_title",
	"category_id", "category_name", "published_at",
	"duration_seconds", "view_count", "like_count", "comment_count",
	"subscriber_count", "total_views", "video_count",
	"collected_at",
}

// derivedColumns extends rawColumns in the processed table.
var derivedColumns = []string{
	"duration_minutes", "base_ad_rate", "channel_tier", "tier_multiplier",
	"ad_density", "estimated_ads", "ad_time_seconds", "ad_ratio",
	"engagement_rate", "revenue_pressure",
	"age_days", "duration_category", "views_per_day",
}

const publishedAtLayout = "2006-01-02T15:04:05"

// ReadRaw loads a raw table from a CSV file. Empty or unparsable numeric cells
// become missing values (nil counters) so the cleaner can apply its zero-fill
// policy; structural problems (missing file, missing required column) are
// errors.
func ReadRaw(path string) ([]model.RawVideoRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raw table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read raw table %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"video_id", "published_at", "duration_seconds"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("raw table %s: missing required column %q", path, required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]model.RawVideoRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, model.RawVideoRecord{
			VideoID:         cell(row, "video_id"),
			Title:           cell(row, "title"),
			ChannelID:       cell(row, "channel_id"),
			ChannelTitle:    cell(row, "channel_title"),
			CategoryID:      cell(row, "category_id"),
			CategoryName:    cell(row, "category_name"),
			PublishedAt:     cell(row, "published_at"),
			DurationSeconds: parseInt(cell(row, "duration_seconds")),
			ViewCount:       parseOptionalInt(cell(row, "view_count")),
			LikeCount:       parseOptionalInt(cell(row, "like_count")),
			CommentCount:    parseOptionalInt(cell(row, "comment_count")),
			SubscriberCount: parseInt(cell(row, "subscriber_count")),
			TotalViews:      parseInt(cell(row, "total_views")),
			VideoCount:      parseInt(cell(row, "video_count")),
			CollectedAt:     cell(row, "collected_at"),
		})
	}
	return records, nil
}

// LatestRawFile returns the newest youtube_data_*.csv in dir, by filename.
// Filenames embed a sortable timestamp, so lexicographic order is enough.
func LatestRawFile(dir string) (string, error) {
	return latestMatching(dir, "youtube_data_", ".csv")
}

// LatestProcessedFile returns the newest processed_*.csv in dir.
func LatestProcessedFile(dir string) (string, error) {
	return latestMatching(dir, "processed_", ".csv")
}

func latestMatching(dir, prefix, suffix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read data directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) && strings.HasSuffix(e.Name(), suffix) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no %s*%s files in %s", prefix, suffix, dir)
	}

	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1]), nil
}

// WriteRaw saves a raw table under dir with a timestamped filename and
// returns the full path.
func WriteRaw(dir string, records []model.RawVideoRecord, now time.Time) (string, error) {
	path := filepath.Join(dir, "youtube_data_"+now.Format("20060102_150405")+".csv")

	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, rawColumns)
	for _, r := range records {
		rows = append(rows, []string{
			r.VideoID, r.Title, r.ChannelID, r.ChannelTitle,
			r.CategoryID, r.CategoryName, r.PublishedAt,
			strconv.FormatInt(r.DurationSeconds, 10),
			formatOptionalInt(r.ViewCount),
			formatOptionalInt(r.LikeCount),
			formatOptionalInt(r.CommentCount),
			strconv.FormatInt(r.SubscriberCount, 10),
			strconv.FormatInt(r.TotalViews, 10),
			strconv.FormatInt(r.VideoCount, 10),
			r.CollectedAt,
		})
	}

	if err := writeCSV(path, rows); err != nil {
		return "", err
	}
	return path, nil
}

// WriteProcessed saves a processed table under dir with a timestamped
// filename and returns the full path.
func WriteProcessed(dir string, records []model.ProcessedRecord, now time.Time) (string, error) {
	path := filepath.Join(dir, "processed_"+now.Format("20060102_150405")+".csv")

	header := append(append([]string{}, rawColumns...), derivedColumns...)
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, header)
	for _, r := range records {
		rows = append(rows, []string{
			r.VideoID, r.Title, r.ChannelID, r.ChannelTitle,
			r.CategoryID, r.CategoryName, r.PublishedAt.Format(publishedAtLayout),
			strconv.FormatInt(r.DurationSeconds, 10),
			strconv.FormatInt(r.ViewCount, 10),
			strconv.FormatInt(r.LikeCount, 10),
			strconv.FormatInt(r.CommentCount, 10),
			strconv.FormatInt(r.SubscriberCount, 10),
			strconv.FormatInt(r.TotalViews, 10),
			strconv.FormatInt(r.VideoCount, 10),
			r.CollectedAt,
			formatFloat(r.DurationMinutes),
			formatFloat(r.BaseAdRate),
			r.ChannelTier,
			formatFloat(r.TierMultiplier),
			formatFloat(r.AdDensity),
			strconv.FormatInt(r.EstimatedAds, 10),
			strconv.FormatInt(r.AdTimeSeconds, 10),
			formatFloat(r.AdRatio),
			formatFloat(r.EngagementRate),
			formatFloat(r.RevenuePressure),
			strconv.FormatInt(r.AgeDays, 10),
			r.DurationCategory,
			formatFloat(r.ViewsPerDay),
		})
	}

	if err := writeCSV(path, rows); err != nil {
		return "", err
	}
	return path, nil
}

func writeCSV(path string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func parseInt(s string) int64 {
	if s == "" {
		return 0
	}
	// Raw tables written by other tools may carry counts as floats.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}

func parseOptionalInt(s string) *int64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	v := int64(f)
	return &v
}

func formatOptionalInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
