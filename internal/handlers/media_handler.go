package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"page-builder-backend/internal/models"
	"page-builder-backend/internal/service"
)

type MediaHandler struct {
	mediaService service.MediaUseCase
}

func NewMediaHandler(mediaService service.MediaUseCase) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// List returns one page of the media library.
// GET /api/media?folder=&type=image|video&search=&limit=&offset=
func (h *MediaHandler) List(c *gin.Context) {
	var filter models.MediaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, err)
		return
	}

	items, total, err := h.mediaService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list media")
		return
	}
	c.JSON(http.StatusOK, gin.H{"media": items, "total": total})
}

// Upload stores the multipart "file" field. Only images and videos are kept.
// POST /api/media
func (h *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded", "code": models.CodeInvalidInput})
		return
	}

	item, err := h.mediaService.Upload(
		c.Request.Context(),
		file,
		strings.TrimSpace(c.PostForm("folder")),
		strings.TrimSpace(c.PostForm("alt")),
	)
	if err != nil {
		respondError(c, err, "Failed to upload media")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"media": item})
}

// GET /api/media/:id
func (h *MediaHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "media")
	if !ok {
		return
	}

	item, err := h.mediaService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to load media")
		return
	}
	c.JSON(http.StatusOK, gin.H{"media": item})
}
