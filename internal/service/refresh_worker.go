package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// RefreshWorker periodically re-runs the pipeline so the served dataset
// tracks the source. It runs one tick immediately, then every interval.
type RefreshWorker struct {
	svc      *DatasetService
	interval time.Duration
	log      zerolog.Logger
	stopCh   chan struct{}
}

func NewRefreshWorker(svc *DatasetService, interval time.Duration, log zerolog.Logger) *RefreshWorker {
	return &RefreshWorker{
		svc:      svc,
		interval: interval,
		log:      log,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic refresh loop. It blocks until the context is
// cancelled or Stop is called.
func (w *RefreshWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("refresh-worker: starting")

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			w.log.Info().Msg("refresh-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			w.log.Info().Msg("refresh-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *RefreshWorker) Stop() {
	close(w.stopCh)
}

func (w *RefreshWorker) tick(ctx context.Context) {
	start := time.Now()

	resp, err := w.svc.Run(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("refresh-worker: run failed")
		return
	}

	w.log.Info().
		Str("run_id", resp.RunID).
		Str("source", resp.Source).
		Int("processed", resp.Summary.VideoCount).
		Int("dropped", resp.Dropped).
		Dur("elapsed", time.Since(start).Round(time.Millisecond)).
		Msg("refresh-worker: tick complete")
}
