package repository

import (
	"context"
	"strings"

	"page-builder-backend/internal/models"

	"gorm.io/gorm"
)

const (
	defaultMediaLimit = 50
	maxMediaLimit     = 200
)

type MediaRepository interface {
	Create(ctx context.Context, item *models.MediaItem) error
	GetByID(ctx context.Context, id uint) (*models.MediaItem, error)
	List(ctx context.Context, filter models.MediaFilter) ([]models.MediaItem, int64, error)
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(ctx context.Context, item *models.MediaItem) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *mediaRepository) GetByID(ctx context.Context, id uint) (*models.MediaItem, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	var item models.MediaItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translate(err, models.ErrMediaNotFound, nil)
	}
	return &item, nil
}

// List returns one page of media, newest first, with the total count of
// matches.
func (r *mediaRepository) List(ctx context.Context, filter models.MediaFilter) ([]models.MediaItem, int64, error) {
	if r == nil || r.db == nil {
		return nil, 0, errNotInitialised
	}

	query := r.db.WithContext(ctx).Model(&models.MediaItem{})
	if folder := strings.TrimSpace(filter.Folder); folder != "" {
		query = query.Where("folder = ?", folder)
	}
	switch strings.ToLower(strings.TrimSpace(filter.Type)) {
	case "image":
		query = query.Where("mime_type LIKE ?", "image/%")
	case "video":
		query = query.Where("mime_type LIKE ?", "video/%")
	}
	if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(original_name) LIKE ? OR LOWER(alt) LIKE ?", pattern, pattern)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultMediaLimit
	}
	if limit > maxMediaLimit {
		limit = maxMediaLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	items := []models.MediaItem{}
	if err := query.Order("created_at DESC").Order("id DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
