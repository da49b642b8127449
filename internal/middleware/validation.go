package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field limits for query and path parameters.
const (
	MaxVideoIDLen  = 16 // YouTube video IDs are 11 chars; allow slack
	MaxCategoryLen = 40 // longest known category is "Science & Technology"
)

// videoIDRe matches YouTube video IDs: alphanumeric, dash, underscore.
var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateVideoID checks that a video ID is well-formed. Returns the
// normalized ID and an empty string, or "" and an error message.
func ValidateVideoID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "videoId is required"
	}
	if len(id) > MaxVideoIDLen {
		return "", "videoId must be at most 16 characters"
	}
	if !videoIDRe.MatchString(id) {
		return "", "videoId contains invalid characters"
	}
	return id, ""
}

// ValidateCategory trims and bounds a category-name filter. An empty result
// means no filter.
func ValidateCategory(name string) (string, string) {
	name = strings.TrimSpace(name)
	if len(name) > MaxCategoryLen {
		return "", "category must be at most 40 characters"
	}
	return name, ""
}
