package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"page-builder-backend/internal/models"
	"page-builder-backend/internal/service"
)

type SectionHandler struct {
	pageService service.PageUseCase
}

func NewSectionHandler(pageService service.PageUseCase) *SectionHandler {
	return &SectionHandler{pageService: pageService}
}

// Update replaces the stored fields of a section, last write wins.
// PUT /api/sections/:id
func (h *SectionHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "section")
	if !ok {
		return
	}

	var req models.SectionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.pageService.UpdateSection(c.Request.Context(), id, req); err != nil {
		respondError(c, err, "Failed to update section")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Section updated"})
}

// DELETE /api/sections/:id
func (h *SectionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "section")
	if !ok {
		return
	}

	if err := h.pageService.DeleteSection(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete section")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Section deleted"})
}
