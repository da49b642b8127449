package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/middleware"
	"github.com/aymansiddiki0-stack/youtube-ad-data-etl-pipeline-project/internal/service"
)

type VideoHandler struct {
	svc *service.DatasetService
}

func NewVideoHandler(svc *service.DatasetService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// List handles GET /api/videos?category=X&minViews=N
func (h *VideoHandler) List(c fiber.Ctx) error {
	if !h.svc.HasData() {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NO_DATA",
			"No processed dataset loaded yet; trigger a pipeline run first")
	}

	category, errMsg := middleware.ValidateCategory(fiber.Query[string](c, "category"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PARAM", errMsg)
	}

	minViews := fiber.Query[int64](c, "minViews")
	if minViews < 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PARAM",
			"minViews must be non-negative")
	}

	videos := h.svc.Videos(category, minViews)
	return c.JSON(fiber.Map{
		"count":  len(videos),
		"videos": videos,
	})
}

// Get handles GET /api/videos/:videoId
func (h *VideoHandler) Get(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateVideoID(c.Params("videoId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_PARAM", errMsg)
	}

	video, ok := h.svc.Video(videoID)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND",
			"Video not found in processed dataset")
	}

	return c.JSON(video)
}
