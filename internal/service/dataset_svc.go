package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/dataset"
	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/extract"
	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/model"
	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/pipeline"
)

// DatasetService owns the latest processed table. It runs the transformation
// pipeline (over a fresh API collection when an extractor is configured,
// otherwise over the newest raw CSV), persists the processed table as a flat
// file, and serves lookups and the aggregate summary.
type DatasetService struct {
	pipe      *pipeline.Pipeline
	extractor *extract.Client // nil when no API key is configured
	cache     *CacheService
	log       zerolog.Logger

	rawDir       string
	processedDir string
	perCategory  int

	mu        sync.RWMutex
	processed []model.ProcessedRecord
	summary   model.PipelineSummary
}

func NewDatasetService(pipe *pipeline.Pipeline, extractor *extract.Client, cache *CacheService,
	rawDir, processedDir string, perCategory int, log zerolog.Logger) *DatasetService {
	return &DatasetService{
		pipe:         pipe,
		extractor:    extractor,
		cache:        cache,
		log:          log,
		rawDir:       rawDir,
		processedDir: processedDir,
		perCategory:  perCategory,
	}
}

// Run executes one full pipeline run. With an extractor it collects fresh
// data from the API and saves the raw table first; without one it processes
// the newest raw CSV already on disk.
func (s *DatasetService) Run(ctx context.Context) (model.RunResponse, error) {
	start := time.Now()

	var (
		raw    []model.RawVideoRecord
		source string
		err    error
	)
	if s.extractor != nil {
		source = "api"
		raw, err = s.collectFromAPI(ctx)
	} else {
		source = "file"
		raw, err = s.loadLatestRaw()
	}
	if err != nil {
		return model.RunResponse{}, err
	}

	now := time.Now().UTC()
	processed, summary, err := s.pipe.Run(raw, now)
	if err != nil {
		return model.RunResponse{}, err
	}

	path, err := dataset.WriteProcessed(s.processedDir, processed, now)
	if err != nil {
		return model.RunResponse{}, err
	}
	s.log.Info().Str("path", path).Int("records", len(processed)).Msg("processed table written")

	s.mu.Lock()
	s.processed = processed
	s.summary = summary
	s.mu.Unlock()

	if err := s.cache.InvalidateSummary(ctx); err != nil {
		s.log.Warn().Err(err).Msg("cache: summary invalidate failed")
	}

	return model.RunResponse{
		RunID:      summary.RunID,
		Source:     source,
		Dropped:    len(raw) - len(processed),
		DurationMs: time.Since(start).Milliseconds(),
		Summary:    summary,
	}, nil
}

func (s *DatasetService) collectFromAPI(ctx context.Context) ([]model.RawVideoRecord, error) {
	raw, err := s.extractor.CollectByCategories(ctx, nil, s.perCategory)
	if err != nil {
		return nil, fmt.Errorf("collect from API: %w", err)
	}
	if len(raw) == 0 {
		return nil, pipeline.ErrMissingInput
	}

	path, err := dataset.WriteRaw(s.rawDir, raw, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("path", path).Int("records", len(raw)).Msg("raw table written")
	return raw, nil
}

func (s *DatasetService) loadLatestRaw() ([]model.RawVideoRecord, error) {
	path, err := dataset.LatestRawFile(s.rawDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrMissingInput, err)
	}
	s.log.Info().Str("path", path).Msg("loading raw table")
	return dataset.ReadRaw(path)
}

// HasData reports whether a processed table is loaded.
func (s *DatasetService) HasData() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.processed) > 0
}

// Videos returns the processed records, optionally filtered by category name
// (case-insensitive) and minimum view count. The returned slice is a copy.
func (s *DatasetService) Videos(category string, minViews int64) []model.ProcessedRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ProcessedRecord, 0, len(s.processed))
	for _, r := range s.processed {
		if category != "" && !strings.EqualFold(r.CategoryName, category) {
			continue
		}
		if r.ViewCount < minViews {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Video returns a single processed record by video ID.
func (s *DatasetService) Video(videoID string) (model.ProcessedRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.processed {
		if r.VideoID == videoID {
			return r, true
		}
	}
	return model.ProcessedRecord{}, false
}

// Summary returns the latest run summary. Cache-aside: Redis first, then the
// in-memory table, populating the cache on a miss.
func (s *DatasetService) Summary(ctx context.Context) (model.PipelineSummary, bool) {
	if cached, err := s.cache.GetSummary(ctx); err != nil {
		s.log.Warn().Err(err).Msg("cache: summary get failed")
	} else if cached != nil {
		var summary model.PipelineSummary
		if err := json.Unmarshal(cached, &summary); err == nil {
			return summary, true
		}
	}

	s.mu.RLock()
	summary := s.summary
	loaded := len(s.processed) > 0
	s.mu.RUnlock()

	if !loaded {
		return model.PipelineSummary{}, false
	}

	if err := s.cache.SetSummary(ctx, summary); err != nil {
		s.log.Warn().Err(err).Msg("cache: summary set failed")
	}
	return summary, true
}

// LatestProcessedFile returns the newest processed CSV on disk.
func (s *DatasetService) LatestProcessedFile() (string, error) {
	return dataset.LatestProcessedFile(s.processedDir)
}
