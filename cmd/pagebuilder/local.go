package main

import (
	"context"

	"github.com/joho/godotenv"

	"page-builder-backend/internal/app"
	"page-builder-backend/internal/config"
	"page-builder-backend/internal/models"
	"page-builder-backend/internal/service"
	"page-builder-backend/pkg/logger"
)

// localStore runs the session against the database-backed services.
type localStore struct {
	*service.PageService
	categories service.CategoryUseCase
}

func (s localStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.GetAll(ctx)
}

func (s localStore) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	category, err := s.categories.Create(ctx, name)
	if err != nil {
		return models.Category{}, err
	}
	return *category, nil
}

func openLocal() (store, func(), error) {
	_ = godotenv.Load()

	application, err := app.New(config.New(), app.Options{})
	if err != nil {
		return nil, nil, err
	}

	closeStore := func() {
		if err := application.Shutdown(context.Background()); err != nil {
			logger.Warn("Local store shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return localStore{PageService: application.PageService(), categories: application.CategoryService()}, closeStore, nil
}
