package handler

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/middleware"
	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/pipeline"
	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/service"
)

type RunHandler struct {
	svc     *service.DatasetService
	running atomic.Bool
}

func NewRunHandler(svc *service.DatasetService) *RunHandler {
	return &RunHandler{svc: svc}
}

// Trigger handles POST /api/pipeline/run. Only one run may be in flight; a
// concurrent trigger gets 409 rather than queuing a duplicate collection.
func (h *RunHandler) Trigger(c fiber.Ctx) error {
	if !h.running.CompareAndSwap(false, true) {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "RUN_IN_PROGRESS",
			"A pipeline run is already in progress")
	}
	defer h.running.Store(false)

	start := time.Now()
	resp, err := h.svc.Run(c.Context())
	ObserveRun(resp.Source, err, time.Since(start), resp.Summary.VideoCount, resp.Dropped)

	if err != nil {
		if errors.Is(err, pipeline.ErrMissingInput) {
			return middleware.ErrorResponse(c, fiber.StatusUnprocessableEntity, "MISSING_INPUT",
				"Raw table is absent or empty; nothing to process")
		}
		middleware.Logger.Error().Err(err).Msg("pipeline run failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR",
			"Pipeline run failed")
	}

	return c.JSON(resp)
}
