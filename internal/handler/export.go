package handler

import (
	"path/filepath"

	"github.com/gofiber/fiber/v3"

	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/middleware"
	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/service"
)

type ExportHandler struct {
	svc *service.DatasetService
}

func NewExportHandler(svc *service.DatasetService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// Export handles GET /api/dataset/export
// Serves the latest processed CSV for download by the dashboard.
func (h *ExportHandler) Export(c fiber.Ctx) error {
	path, err := h.svc.LatestProcessedFile()
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND",
			"No processed dataset available yet")
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", "attachment; filename="+filepath.Base(path))
	return c.SendFile(path)
}
