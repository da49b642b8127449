package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient("test-key", "US", zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	c.baseURL = srv.URL
	return c
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	if _, err := NewClient("", "US", zerolog.Nop()); err != ErrMissingAPIKey {
		t.Fatalf("error = %v, want ErrMissingAPIKey", err)
	}
}

func TestMostPopular(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("chart"); got != "mostPopular" {
			t.Errorf("chart = %q, want mostPopular", got)
		}
		if got := r.URL.Query().Get("videoCategoryId"); got != "10" {
			t.Errorf("videoCategoryId = %q, want 10", got)
		}
		if got := r.URL.Query().Get("maxResults"); got != "50" {
			t.Errorf("maxResults = %q, want 50 (API cap)", got)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key = %q, want test-key", got)
		}
		w.Write([]byte(`{"items":[{"id":"vidA"},{"id":"vidB"}]}`))
	})

	ids, err := c.MostPopular(context.Background(), "10", 75)
	if err != nil {
		t.Fatalf("MostPopular: %v", err)
	}
	if len(ids) != 2 || ids[0] != "vidA" || ids[1] != "vidB" {
		t.Errorf("ids = %v", ids)
	}
}

func TestVideoDetails_ParsesRecords(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{
			"id":"vidA",
			"snippet":{"title":"A","channelId":"ch1","channelTitle":"Chan","categoryId":"10","publishedAt":"2024-01-01T00:00:00Z"},
			"contentDetails":{"duration":"PT3M"},
			"statistics":{"viewCount":"1000","commentCount":"10"}
		}]}`))
	})

	records, err := c.VideoDetails(context.Background(), []string{"vidA"})
	if err != nil {
		t.Fatalf("VideoDetails: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	r := records[0]
	if r.VideoID != "vidA" || r.CategoryName != "Music" {
		t.Errorf("record = %+v", r)
	}
	if r.DurationSeconds != 180 {
		t.Errorf("duration = %d, want 180", r.DurationSeconds)
	}
	if r.ViewCount == nil || *r.ViewCount != 1000 {
		t.Errorf("view count = %v, want 1000", r.ViewCount)
	}
	// Hidden like counts arrive absent and stay nil for the cleaner.
	if r.LikeCount != nil {
		t.Errorf("like count = %v, want nil", r.LikeCount)
	}
	if r.CollectedAt == "" {
		t.Error("collected_at not set")
	}
}

func TestVideoDetails_UnknownCategoryAndBadDuration(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{
			"id":"vidB",
			"snippet":{"categoryId":"99","publishedAt":"2024-01-01T00:00:00Z"},
			"contentDetails":{"duration":"bogus"},
			"statistics":{}
		}]}`))
	})

	records, err := c.VideoDetails(context.Background(), []string{"vidB"})
	if err != nil {
		t.Fatalf("VideoDetails: %v", err)
	}
	if records[0].CategoryName != "Unknown" {
		t.Errorf("category = %q, want Unknown", records[0].CategoryName)
	}
	if records[0].DurationSeconds != 0 {
		t.Errorf("duration = %d, want 0 so the cleaner drops it", records[0].DurationSeconds)
	}
}

func TestChannelStats(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("part"); got != "statistics" {
			t.Errorf("part = %q, want statistics", got)
		}
		w.Write([]byte(`{"items":[{"statistics":{"subscriberCount":"5000","viewCount":"123456","videoCount":"42"}}]}`))
	})

	stats, err := c.ChannelStats(context.Background(), "ch1")
	if err != nil {
		t.Fatalf("ChannelStats: %v", err)
	}
	if stats.SubscriberCount != 5000 || stats.TotalViews != 123456 || stats.VideoCount != 42 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestGet_NonOKStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	})

	if _, err := c.MostPopular(context.Background(), "10", 10); err == nil {
		t.Fatal("expected error for 403 response")
	}
}
