package repository

import (
	"context"

	"page-builder-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PageRepository interface {
	Create(ctx context.Context, page *models.Page) error
	Update(ctx context.Context, page *models.Page) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Page, error)
	GetWithSections(ctx context.Context, id uint) (*models.Page, error)
	GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Page, error)
	GetAll(ctx context.Context) ([]models.Page, error)
	ExistsBySlugExceptID(ctx context.Context, slug string, excludeID *uint) (bool, error)
}

type pageRepository struct {
	db *gorm.DB
}

func NewPageRepository(db *gorm.DB) PageRepository {
	return &pageRepository{db: db}
}

var pageColumns = []string{
	"Name", "CategoryID", "Slug", "MetaTitle", "MetaDescription",
	"IsHomepage", "IsPublished", "PublishedAt", "UpdatedAt",
}

func orderedSections(db *gorm.DB) *gorm.DB {
	return db.Order("order_index ASC")
}

// Create inserts the page and its sections in one transaction. A slug
// collision returns models.ErrSlugTaken and a duplicated order index
// models.ErrOrderIndexConflict; neither leaves a partial page behind.
func (r *pageRepository) Create(ctx context.Context, page *models.Page) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}

	sections := page.Sections
	defer func() { page.Sections = sections }()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(page).Error; err != nil {
			return translate(err, nil, models.ErrSlugTaken)
		}
		if page.IsHomepage {
			if err := clearHomepage(tx, page.ID); err != nil {
				return err
			}
		}
		if len(sections) == 0 {
			return nil
		}
		for i := range sections {
			sections[i].ID = 0
			sections[i].PageID = page.ID
		}
		if err := tx.Create(&sections).Error; err != nil {
			return translate(err, nil, models.ErrOrderIndexConflict)
		}
		return nil
	})
}

func (r *pageRepository) Update(ctx context.Context, page *models.Page) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(page).Select(pageColumns).Updates(page)
		if result.Error != nil {
			return translate(result.Error, nil, models.ErrSlugTaken)
		}
		if result.RowsAffected == 0 {
			return models.ErrPageNotFound
		}
		if page.IsHomepage {
			return clearHomepage(tx, page.ID)
		}
		return nil
	})
}

// clearHomepage keeps a single homepage.
func clearHomepage(tx *gorm.DB, keepID uint) error {
	return tx.Model(&models.Page{}).
		Where("is_homepage = ? AND id <> ?", true, keepID).
		Update("is_homepage", false).Error
}

func (r *pageRepository) Delete(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", id).Delete(&models.Section{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Page{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.ErrPageNotFound
		}
		return nil
	})
}

func (r *pageRepository) GetByID(ctx context.Context, id uint) (*models.Page, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	var page models.Page
	if err := r.db.WithContext(ctx).First(&page, id).Error; err != nil {
		return nil, translate(err, models.ErrPageNotFound, nil)
	}
	return &page, nil
}

func (r *pageRepository) GetWithSections(ctx context.Context, id uint) (*models.Page, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	var page models.Page
	if err := r.db.WithContext(ctx).Preload("Sections", orderedSections).First(&page, id).Error; err != nil {
		return nil, translate(err, models.ErrPageNotFound, nil)
	}
	return &page, nil
}

func (r *pageRepository) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Page, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	query := r.db.WithContext(ctx).Preload("Sections", orderedSections).Where("slug = ?", slug)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var page models.Page
	if err := query.First(&page).Error; err != nil {
		return nil, translate(err, models.ErrPageNotFound, nil)
	}
	return &page, nil
}

func (r *pageRepository) GetAll(ctx context.Context) ([]models.Page, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	var pages []models.Page
	if err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// ExistsBySlugExceptID reports whether another page already owns slug.
func (r *pageRepository) ExistsBySlugExceptID(ctx context.Context, slug string, excludeID *uint) (bool, error) {
	if r == nil || r.db == nil {
		return false, errNotInitialised
	}
	query := r.db.WithContext(ctx).Model(&models.Page{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
