package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"page-builder-backend/internal/service"
)

type CategoryHandler struct {
	categoryService service.CategoryUseCase
}

func NewCategoryHandler(categoryService service.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// GET /api/categories
func (h *CategoryHandler) GetAll(c *gin.Context) {
	categories, err := h.categoryService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required,max=255"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": category})
}
