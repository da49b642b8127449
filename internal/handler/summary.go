package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/middleware"
	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/service"
)

type SummaryHandler struct {
	svc *service.DatasetService
}

func NewSummaryHandler(svc *service.DatasetService) *SummaryHandler {
	return &SummaryHandler{svc: svc}
}

// Get handles GET /api/summary
func (h *SummaryHandler) Get(c fiber.Ctx) error {
	summary, ok := h.svc.Summary(c.Context())
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NO_DATA",
			"No processed dataset loaded yet; trigger a pipeline run first")
	}

	return c.JSON(summary)
}
