package main

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/config"
	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/extract"
	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/handler"
	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/middleware"
	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/pipeline"
	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/router"
	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/service"
)

func main() {
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "adpipe-api")
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
		log.Info().Str("region", cfg.RegionCode).Msg("extractor enabled")
	} else {
		log.Info().Msg("no API key configured, runs will process the latest raw CSV")
	}

	cache := service.NewCacheService(cfg.RedisURL, log)
	defer cache.Close()

	svc := service.NewDatasetService(pipe, extractor, cache,
		cfg.RawDataDir, cfg.ProcessedDataDir, cfg.VideosPerCategory, log)

	handler.InitMetrics()

	// Load whatever raw data is already on disk so the API starts warm; a
	// missing raw table is fine, the first triggered run will populate it.
	startCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	start := time.Now()
	resp, err := svc.Run(startCtx)
	cancel()
	handler.ObserveRun(resp.Source, err, time.Since(start), resp.Summary.VideoCount, resp.Dropped)
	if err != nil {
		if errors.Is(err, pipeline.ErrMissingInput) {
			log.Warn().Msg("no raw data yet, starting with an empty dataset")
		} else {
			log.Error().Err(err).Msg("initial pipeline run failed")
		}
	}

	if cfg.RefreshInterval > 0 {
		worker := service.NewRefreshWorker(svc, cfg.RefreshInterval, log)
		go worker.Start(context.Background())
	}

	app := fiber.New(fiber.Config{
		AppName:      "AdPipe API",
		ServerHeader: "AdPipe",
	})

	h := &router.Handlers{
		Video:   handler.NewVideoHandler(svc),
		Summary: handler.NewSummaryHandler(svc),
		Run:     handler.NewRunHandler(svc),
		Export:  handler.NewExportHandler(svc),
		Health:  handler.NewHealthHandler(svc, cache.Client()),
	}
	router.Setup(app, h, cfg.CORSOrigins)

	log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("starting API server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
