package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"page-builder-backend/internal/models"
	"page-builder-backend/internal/service"
)

type PageHandler struct {
	pageService service.PageUseCase
}

func NewPageHandler(pageService service.PageUseCase) *PageHandler {
	return &PageHandler{pageService: pageService}
}

type reorderRequest struct {
	Sections []models.SectionRef `json:"sections" binding:"required,dive"`
}

// GetAll lists pages without their sections.
// GET /api/pages
func (h *PageHandler) GetAll(c *gin.Context) {
	pages, err := h.pageService.ListPages(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list pages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": pages})
}

// GetByID returns a page with its sections in order.
// GET /api/pages/:id
func (h *PageHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "page")
	if !ok {
		return
	}

	page, err := h.pageService.GetPage(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to load page")
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

// GET /api/pages/:id/sections
func (h *PageHandler) GetSections(c *gin.Context) {
	id, ok := parseID(c, "id", "page")
	if !ok {
		return
	}

	sections, err := h.pageService.GetPageSections(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to load sections")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// Create stores a page together with its sections.
// POST /api/pages
func (h *PageHandler) Create(c *gin.Context) {
	var req models.PageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	page, err := h.pageService.CreatePage(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create page")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"page": page})
}

// Update writes the page fields. Sections in the body are ignored.
// PUT /api/pages/:id
func (h *PageHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "page")
	if !ok {
		return
	}

	var req models.PageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	req.Sections = nil

	page, err := h.pageService.UpdatePage(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Failed to update page")
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}

// DELETE /api/pages/:id
func (h *PageHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "page")
	if !ok {
		return
	}

	if err := h.pageService.DeletePage(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete page")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Page deleted"})
}

// SlugAvailable reports whether slug is free, ignoring the page excludeId.
// GET /api/pages/slug-available?slug=&excludeId=
func (h *PageHandler) SlugAvailable(c *gin.Context) {
	slug := strings.TrimSpace(c.Query("slug"))

	var excludeID *uint
	if raw := strings.TrimSpace(c.Query("excludeId")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid excludeId", "code": models.CodeInvalidInput})
			return
		}
		id := uint(parsed)
		excludeID = &id
	}

	available, err := h.pageService.CheckSlugAvailable(c.Request.Context(), slug, excludeID)
	if err != nil {
		respondError(c, err, "Failed to check slug")
		return
	}
	c.JSON(http.StatusOK, gin.H{"slug": slug, "available": available})
}

// POST /api/pages/:id/sections
func (h *PageHandler) CreateSection(c *gin.Context) {
	id, ok := parseID(c, "id", "page")
	if !ok {
		return
	}

	var req models.SectionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	section, err := h.pageService.CreateSection(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err, "Failed to create section")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"section": section})
}

// ReorderSections assigns new order indices to the listed sections.
// POST /api/pages/:id/sections/reorder
func (h *PageHandler) ReorderSections(c *gin.Context) {
	id, ok := parseID(c, "id", "page")
	if !ok {
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.pageService.ReorderSections(c.Request.Context(), id, req.Sections); err != nil {
		respondError(c, err, "Failed to reorder sections")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sections reordered"})
}

// GetPublic returns a published page with its visible sections.
// GET /api/public/pages/:slug
func (h *PageHandler) GetPublic(c *gin.Context) {
	page, err := h.pageService.GetPublicPage(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err, "Failed to load page")
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page})
}
