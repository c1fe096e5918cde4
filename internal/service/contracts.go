package service

import (
	"context"
	"io"
	"mime/multipart"

	"page-builder-backend/internal/builder"
	"page-builder-backend/internal/models"
)

type PageUseCase interface {
	builder.Backend
	ListPages(ctx context.Context) ([]models.Page, error)
	DeletePage(ctx context.Context, id uint) error
	GetPublicPage(ctx context.Context, slug string) (models.Page, error)
}

type CategoryUseCase interface {
	EnsureDefaultCategory(ctx context.Context) (*models.Category, bool, error)
	Create(ctx context.Context, name string) (*models.Category, error)
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
}

type MediaUseCase interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder, alt string) (*models.MediaItem, error)
	Store(ctx context.Context, originalName string, src io.ReadSeeker, size int64, folder, alt string) (*models.MediaItem, error)
	List(ctx context.Context, filter models.MediaFilter) ([]models.MediaItem, int64, error)
	GetByID(ctx context.Context, id uint) (*models.MediaItem, error)
}

var (
	_ PageUseCase     = (*PageService)(nil)
	_ CategoryUseCase = (*CategoryService)(nil)
	_ MediaUseCase    = (*MediaService)(nil)
)
