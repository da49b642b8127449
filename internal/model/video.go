package model

import "time"

// RawVideoRecord is the wire shape of one collected video row, as produced by
// the extractor or read back from a raw CSV file. Counters are pointers so a
// missing cell is distinguishable from a genuine zero; PublishedAt is kept as
// the ISO-8601 string the API returned until the cleaner parses it.
type RawVideoRecord struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	ChannelID    string `json:"channelId"`
	ChannelTitle string `json:"channelTitle"`
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	PublishedAt  string `json:"publishedAt"`

	DurationSeconds int64  `json:"durationSeconds"`
	ViewCount       *int64 `json:"viewCount,omitempty"`
	LikeCount       *int64 `json:"likeCount,omitempty"`
	CommentCount    *int64 `json:"commentCount,omitempty"`

	// Channel aggregates, zero when the channel was not sampled.
	SubscriberCount int64 `json:"subscriberCount"`
	TotalViews      int64 `json:"totalViews"`
	VideoCount      int64 `json:"videoCount"`

	CollectedAt string `json:"collectedAt,omitempty"`
}

// VideoRecord is a cleaned, validated video row: video_id unique within the
// table, duration positive, counters non-nil, timestamp parsed.
type VideoRecord struct {
	VideoID      string    `json:"videoId"`
	Title        string    `json:"title"`
	ChannelID    string    `json:"channelId"`
	ChannelTitle string    `json:"channelTitle"`
	CategoryID   string    `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	PublishedAt  time.Time `json:"publishedAt"`

	DurationSeconds int64 `json:"durationSeconds"`
	ViewCount       int64 `json:"viewCount"`
	LikeCount       int64 `json:"likeCount"`
	CommentCount    int64 `json:"commentCount"`

	SubscriberCount int64 `json:"subscriberCount"`
	TotalViews      int64 `json:"totalViews"`
	VideoCount      int64 `json:"videoCount"`

	CollectedAt string `json:"collectedAt,omitempty"`
}

// ProcessedRecord extends a VideoRecord with the derived ad-saturation and
// engagement fields. All derived values are pure functions of the record's own
// fields plus the static lookup tables.
type ProcessedRecord struct {
	VideoRecord

	DurationMinutes float64 `json:"durationMinutes"`
	BaseAdRate      float64 `json:"baseAdRate"`
	ChannelTier     string  `json:"channelTier"`
	TierMultiplier  float64 `json:"tierMultiplier"`
	AdDensity       float64 `json:"adDensity"`
	EstimatedAds    int64   `json:"estimatedAds"`
	AdTimeSeconds   int64   `json:"adTimeSeconds"`
	// AdRatio is the estimated percentage of runtime occupied by ads. It is
	// deliberately not clamped to 100: a short video with a long estimated
	// ad load can exceed it.
	AdRatio         float64 `json:"adRatio"`
	EngagementRate  float64 `json:"engagementRate"`
	RevenuePressure float64 `json:"revenuePressure"`

	AgeDays          int64   `json:"ageDays"`
	DurationCategory string  `json:"durationCategory"`
	ViewsPerDay      float64 `json:"viewsPerDay"`
}
