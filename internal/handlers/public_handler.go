package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"page-builder-backend/internal/models"
	"page-builder-backend/internal/render"
	"page-builder-backend/internal/service"
	"page-builder-backend/pkg/logger"
)

const notFoundDocument = `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>Page not found</title></head><body><main class="pb-not-found"><h1>Page not found</h1></main></body></html>`

// PublicHandler renders published pages as HTML documents.
type PublicHandler struct {
	pageService service.PageUseCase
	renderer    *render.Renderer
}

func NewPublicHandler(pageService service.PageUseCase, renderer *render.Renderer) *PublicHandler {
	if renderer == nil {
		renderer = render.New(nil, nil)
	}
	return &PublicHandler{pageService: pageService, renderer: renderer}
}

// GET /p/:slug
func (h *PublicHandler) RenderPage(c *gin.Context) {
	slug := c.Param("slug")

	page, err := h.pageService.GetPublicPage(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, models.ErrPageNotFound) {
			c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(notFoundDocument))
			return
		}
		logger.Error(err, "Failed to load public page", map[string]interface{}{"slug": slug})
		c.String(http.StatusInternalServerError, "Failed to load page")
		return
	}

	document, err := h.renderer.RenderDocument(page, render.ModePublic)
	if err != nil {
		logger.Error(err, "Failed to render public page", map[string]interface{}{"slug": slug})
		c.String(http.StatusInternalServerError, "Failed to render page")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(document))
}
