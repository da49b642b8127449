package extract

import "strconv"

// apiCount is a numeric counter as the API serializes it: a decimal string,
// absent entirely when the uploader hides it (e.g. like counts).
type apiCount string

// Int64 returns the count, or 0 when absent or unparsable.
func (c apiCount) Int64() int64 {
	if c == "" {
		return 0
	}
	v, err := strconv.ParseInt(string(c), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// IntPtr returns the count, or nil when the field was absent so the cleaner
// can apply its missing-value policy.
func (c apiCount) IntPtr() *int64 {
	if c == "" {
		return nil
	}
	v := c.Int64()
	return &v
}

type videoListResponse struct {
	Items []videoItem `json:"items"`
}

type videoItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title        string `json:"title"`
		ChannelID    string `json:"channelId"`
		ChannelTitle string `json:"channelTitle"`
		CategoryID   string `json:"categoryId"`
		PublishedAt  string `json:"publishedAt"`
	} `json:"snippet"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
	Statistics struct {
		ViewCount    apiCount `json:"viewCount"`
		LikeCount    apiCount `json:"likeCount"`
		CommentCount apiCount `json:"commentCount"`
	} `json:"statistics"`
}

type channelListResponse struct {
	Items []struct {
		Statistics struct {
			SubscriberCount apiCount `json:"subscriberCount"`
			ViewCount       apiCount `json:"viewCount"`
			VideoCount      apiCount `json:"videoCount"`
		} `json:"statistics"`
	} `json:"items"`
}
