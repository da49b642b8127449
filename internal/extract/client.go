// Package extract collects video metadata from the YouTube Data API v3.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/model"
	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/pipeline"
	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/pkg/isodur"
)

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"

	// The API caps both list page sizes and id batches at 50.
	maxPageSize = 50

	// Channel aggregates are sampled for at most this many distinct
	// channels per category to stay inside quota.
	maxChannelsPerCategory = 10

	requestThrottle  = 100 * time.Millisecond
	categoryThrottle = time.Second
)

// ErrMissingAPIKey is returned by NewClient when no API key is configured.
var ErrMissingAPIKey = errors.New("extract: YouTube API key not found")

// ChannelStats holds the channel aggregates merged onto its videos.
type ChannelStats struct {
	SubscriberCount int64
	TotalViews      int64
	VideoCount      int64
}

// Client is a thin YouTube Data API v3 client covering the three list calls
// the collector needs.
type Client struct {
	apiKey  string
	region  string
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

func NewClient(apiKey, region string, log zerolog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if region == "" {
		region = "US"
	}
	return &Client{
		apiKey:  apiKey,
		region:  region,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}, nil
}

// MostPopular returns the IDs of the region's most popular videos in a
// category, up to maxResults (capped at 50 by the API).
func (c *Client) MostPopular(ctx context.Context, categoryID string, maxResults int) ([]string, error) {
	if maxResults > maxPageSize {
		maxResults = maxPageSize
	}

	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("chart", "mostPopular")
	q.Set("videoCategoryId", categoryID)
	q.Set("maxResults", fmt.Sprint(maxResults))
	q.Set("regionCode", c.region)

	var resp videoListResponse
	if err := c.get(ctx, "/videos", q, &resp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		ids = append(ids, item.ID)
	}
	return ids, nil
}

// VideoDetails fetches snippet, content details, and statistics for the given
// video IDs in batches of 50 and maps them to raw records.
func (c *Client) VideoDetails(ctx context.Context, videoIDs []string) ([]model.RawVideoRecord, error) {
	records := make([]model.RawVideoRecord, 0, len(videoIDs))

	for start := 0; start < len(videoIDs); start += maxPageSize {
		end := start + maxPageSize
		if end > len(videoIDs) {
			end = len(videoIDs)
		}

		q := url.Values{}
		q.Set("part", "snippet,contentDetails,statistics")
		q.Set("id", strings.Join(videoIDs[start:end], ","))

		var resp videoListResponse
		if err := c.get(ctx, "/videos", q, &resp); err != nil {
			return nil, err
		}

		collectedAt := time.Now().UTC().Format(time.RFC3339)
		for _, item := range resp.Items {
			records = append(records, c.parseVideo(item, collectedAt))
		}

		if err := sleepCtx(ctx, requestThrottle); err != nil {
			return records, err
		}
	}
	return records, nil
}

// ChannelStats returns subscriber, view, and video counts for a channel.
func (c *Client) ChannelStats(ctx context.Context, channelID string) (ChannelStats, error) {
	q := url.Values{}
	q.Set("part", "statistics")
	q.Set("id", channelID)

	var resp channelListResponse
	if err := c.get(ctx, "/channels", q, &resp); err != nil {
		return ChannelStats{}, err
	}
	if len(resp.Items) == 0 {
		return ChannelStats{}, nil
	}

	stats := resp.Items[0].Statistics
	return ChannelStats{
		SubscriberCount: stats.SubscriberCount.Int64(),
		TotalViews:      stats.ViewCount.Int64(),
		VideoCount:      stats.VideoCount.Int64(),
	}, nil
}

// CollectByCategories runs the full collection: most-popular IDs per category,
// their details, and channel aggregates for up to 10 distinct channels per
// category merged onto that channel's videos. A category that fails is logged
// and skipped so one bad call never aborts the whole collection.
func (c *Client) CollectByCategories(ctx context.Context, categoryIDs []string, perCategory int) ([]model.RawVideoRecord, error) {
	if len(categoryIDs) == 0 {
		categoryIDs = defaultCategoryIDs()
	}

	var all []model.RawVideoRecord
	for _, catID := range categoryIDs {
		name := pipeline.CategoryNames[catID]
		if name == "" {
			name = "Unknown"
		}
		c.log.Info().Str("category_id", catID).Str("category", name).Msg("collecting category")

		ids, err := c.MostPopular(ctx, catID, perCategory)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			c.log.Warn().Err(err).Str("category_id", catID).Msg("category search failed, skipping")
			continue
		}
		if len(ids) == 0 {
			continue
		}

		videos, err := c.VideoDetails(ctx, ids)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			c.log.Warn().Err(err).Str("category_id", catID).Msg("video details failed, skipping")
			continue
		}

		c.mergeChannelStats(ctx, videos)
		all = append(all, videos...)

		if err := sleepCtx(ctx, categoryThrottle); err != nil {
			return all, err
		}
	}
	return all, nil
}

func (c *Client) mergeChannelStats(ctx context.Context, videos []model.RawVideoRecord) {
	sampled := make(map[string]ChannelStats, maxChannelsPerCategory)
	for _, v := range videos {
		if len(sampled) >= maxChannelsPerCategory {
			break
		}
		if v.ChannelID == "" {
			continue
		}
		if _, done := sampled[v.ChannelID]; done {
			continue
		}

		stats, err := c.ChannelStats(ctx, v.ChannelID)
		if err != nil {
			c.log.Warn().Err(err).Str("channel_id", v.ChannelID).Msg("channel stats failed")
			continue
		}
		sampled[v.ChannelID] = stats

		if sleepCtx(ctx, requestThrottle) != nil {
			break
		}
	}

	for i := range videos {
		if stats, ok := sampled[videos[i].ChannelID]; ok {
			videos[i].SubscriberCount = stats.SubscriberCount
			videos[i].TotalViews = stats.TotalViews
			videos[i].VideoCount = stats.VideoCount
		}
	}
}

func (c *Client) parseVideo(item videoItem, collectedAt string) model.RawVideoRecord {
	durationSeconds, err := isodur.ParseSeconds(item.ContentDetails.Duration)
	if err != nil {
		c.log.Debug().Str("video_id", item.ID).Str("duration", item.ContentDetails.Duration).
			Msg("unparsable duration, recording as zero")
		durationSeconds = 0
	}

	categoryName := pipeline.CategoryNames[item.Snippet.CategoryID]
	if categoryName == "" {
		categoryName = "Unknown"
	}

	return model.RawVideoRecord{
		VideoID:         item.ID,
		Title:           item.Snippet.Title,
		ChannelID:       item.Snippet.ChannelID,
		ChannelTitle:    item.Snippet.ChannelTitle,
		CategoryID:      item.Snippet.CategoryID,
		CategoryName:    categoryName,
		PublishedAt:     item.Snippet.PublishedAt,
		DurationSeconds: durationSeconds,
		ViewCount:       item.Statistics.ViewCount.IntPtr(),
		LikeCount:       item.Statistics.LikeCount.IntPtr(),
		CommentCount:    item.Statistics.CommentCount.IntPtr(),
		CollectedAt:     collectedAt,
	}
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("extract: build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("extract: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("extract: %s returned %s", path, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("extract: decode %s response: %w", path, err)
	}
	return nil
}

func defaultCategoryIDs() []string {
	ids := make([]string, 0, len(pipeline.CategoryNames))
	for id := range pipeline.CategoryNames {
		ids = append(ids, id)
	}
	return ids
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
