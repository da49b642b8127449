package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/config"
	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/extract"
	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/middleware"
	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/pipeline"
	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/service"
)

// One-shot pipeline runner: collects raw data (API when a key is configured,
// otherwise the newest raw CSV on disk), runs the transformation pipeline and
// writes the processed table. Meant for cron jobs and local runs.
func main() {
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "adpipe-runner")
	log := middleware.Logger

	pipe, err := pipeline.New(pipeline.DefaultTables(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid pipeline configuration")
	}

	var extractor *extract.Client
	if cfg.YouTubeAPIKey != "" {
		extractor, err = extract.NewClient(cfg.YouTubeAPIKey, cfg.RegionCode, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to build extractor")
		}
	}

	cache := service.NewCacheService("", log) // no cache for one-shot runs
	svc := service.NewDatasetService(pipe, extractor, cache,
		cfg.RawDataDir, cfg.ProcessedDataDir, cfg.VideosPerCategory, log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	resp, err := svc.Run(ctx)
	if err != nil {
		if errors.Is(err, pipeline.ErrMissingInput) {
			log.Error().Err(err).Msg("no raw data to process, set YOUTUBE_API_KEY or place a raw CSV in the data directory")
		} else {
			log.Error().Err(err).Msg("pipeline run failed")
		}
		os.Exit(1)
	}

	log.Info().
		Str("run_id", resp.RunID).
		Str("source", resp.Source).
		Int("processed", resp.Summary.VideoCount).
		Int("dropped", resp.Dropped).
		Int("categories", resp.Summary.CategoryCount).
		Float64("mean_ad_density", resp.Summary.MeanAdDensity).
		Float64("mean_ad_ratio", resp.Summary.MeanAdRatio).
		Int64("duration_ms", resp.DurationMs).
		Msg("pipeline run complete")
}
