package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"page-builder-backend/internal/models"
	"page-builder-backend/internal/sections"
	"page-builder-backend/pkg/logger"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrPageNotFound),
		errors.Is(err, models.ErrSectionNotFound),
		errors.Is(err, models.ErrCategoryNotFound),
		errors.Is(err, models.ErrMediaNotFound),
		errors.Is(err, sections.ErrComponentNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrSlugTaken),
		errors.Is(err, models.ErrOrderIndexConflict):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidSlug),
		errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrUnsupportedMedia):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrMediaTooLarge):
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

// respondError writes {"error": message, "code": CODE}. Server errors are
// logged and answered with action instead of the internal message.
func respondError(c *gin.Context, err error, action string) {
	status := statusFor(err)
	body := gin.H{"error": err.Error()}
	if code := models.ErrorCode(err); code != "" {
		body["code"] = code
	}
	if status == http.StatusInternalServerError {
		logger.Error(err, action, map[string]interface{}{
			"path":   c.FullPath(),
			"method": c.Request.Method,
		})
		body["error"] = action
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": models.CodeInvalidInput})
}

func parseID(c *gin.Context, param, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + label + " id", "code": models.CodeInvalidInput})
		return 0, false
	}
	return uint(id), true
}
