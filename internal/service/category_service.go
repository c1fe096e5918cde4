package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"page-builder-backend/internal/models"
	"page-builder-backend/internal/repository"
	"page-builder-backend/pkg/utils"
)

const (
	defaultCategoryName = "General"
	defaultCategorySlug = "general"
)

type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// EnsureDefaultCategory returns the fallback category new pages are filed
// under, creating it on first start.
func (s *CategoryService) EnsureDefaultCategory(ctx context.Context) (*models.Category, bool, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, defaultCategorySlug)
	if err == nil {
		return category, false, nil
	}
	if !errors.Is(err, models.ErrCategoryNotFound) {
		return nil, false, fmt.Errorf("failed to verify default category: %w", err)
	}

	created, createErr := s.Create(ctx, defaultCategoryName)
	if createErr != nil {
		category, fetchErr := s.categoryRepo.GetBySlug(ctx, defaultCategorySlug)
		if fetchErr == nil {
			return category, false, nil
		}
		return nil, false, fmt.Errorf("failed to create default category: %w", createErr)
	}

	return created, true, nil
}

func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("category name is required")
	}

	slug := utils.DeriveSlug(name)
	if slug == "" {
		return nil, models.ErrInvalidSlug
	}

	exists, err := s.categoryRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check category existence: %w", err)
	}
	if exists {
		return nil, invalid("category with this name already exists")
	}

	category := &models.Category{Name: name, Slug: slug}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) GetAll(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.GetAll(ctx)
}

func (s *CategoryService) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}
