package seed

import (
	"context"

	"page-builder-backend/internal/models"
	"page-builder-backend/internal/service"
	"page-builder-backend/pkg/logger"
)

// EnsureDefaultCategory makes sure pages always have a category to be
// filed under and returns it.
func EnsureDefaultCategory(ctx context.Context, categoryService service.CategoryUseCase) *models.Category {
	if categoryService == nil {
		return nil
	}

	category, created, err := categoryService.EnsureDefaultCategory(ctx)
	if err != nil {
		logger.Error(err, "Failed to ensure default category", nil)
		return nil
	}

	fields := map[string]interface{}{
		"id":   category.ID,
		"name": category.Name,
		"slug": category.Slug,
	}

	if created {
		logger.Info("Created default category", fields)
	} else {
		logger.Info("Default category already present", fields)
	}
	return category
}
