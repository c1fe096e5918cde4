package repository

import (
	"context"
	"fmt"

	"page-builder-backend/internal/models"

	"gorm.io/gorm"
)

type SectionRepository interface {
	Create(ctx context.Context, section *models.Section) error
	Update(ctx context.Context, section *models.Section) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Section, error)
	ListByPage(ctx context.Context, pageID uint) ([]models.Section, error)
	Reorder(ctx context.Context, pageID uint, refs []models.SectionRef) error
}

type sectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{db: db}
}

var sectionColumns = []string{
	"ComponentType", "ComponentName", "Content", "OrderIndex", "IsVisible", "Theme", "UpdatedAt",
}

func (r *sectionRepository) Create(ctx context.Context, section *models.Section) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	section.ID = 0
	if err := r.db.WithContext(ctx).Create(section).Error; err != nil {
		return translate(err, nil, models.ErrOrderIndexConflict)
	}
	return nil
}

func (r *sectionRepository) Update(ctx context.Context, section *models.Section) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	result := r.db.WithContext(ctx).Model(section).Select(sectionColumns).Updates(section)
	if result.Error != nil {
		return translate(result.Error, nil, models.ErrOrderIndexConflict)
	}
	if result.RowsAffected == 0 {
		return models.ErrSectionNotFound
	}
	return nil
}

func (r *sectionRepository) Delete(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	result := r.db.WithContext(ctx).Delete(&models.Section{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrSectionNotFound
	}
	return nil
}

func (r *sectionRepository) GetByID(ctx context.Context, id uint) (*models.Section, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	var section models.Section
	if err := r.db.WithContext(ctx).First(&section, id).Error; err != nil {
		return nil, translate(err, models.ErrSectionNotFound, nil)
	}
	return &section, nil
}

func (r *sectionRepository) ListByPage(ctx context.Context, pageID uint) ([]models.Section, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	sections := []models.Section{}
	if err := r.db.WithContext(ctx).Where("page_id = ?", pageID).Order("order_index ASC").Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

// Reorder assigns every listed section its new order index. Rows are first
// parked on negative indices so a permutation never trips the
// (page_id, order_index) unique index halfway through.
func (r *sectionRepository) Reorder(ctx context.Context, pageID uint, refs []models.SectionRef) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if len(refs) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(refs))
	seenIDs := make(map[uint]struct{}, len(refs))
	seenIndices := make(map[int]struct{}, len(refs))
	for _, ref := range refs {
		if _, dup := seenIDs[ref.ID]; dup {
			return fmt.Errorf("section %d listed twice: %w", ref.ID, models.ErrOrderIndexConflict)
		}
		if _, dup := seenIndices[ref.OrderIndex]; dup {
			return fmt.Errorf("order index %d listed twice: %w", ref.OrderIndex, models.ErrOrderIndexConflict)
		}
		seenIDs[ref.ID] = struct{}{}
		seenIndices[ref.OrderIndex] = struct{}{}
		ids = append(ids, ref.ID)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Section{}).Where("page_id = ? AND id IN ?", pageID, ids).Count(&count).Error; err != nil {
			return err
		}
		if int(count) != len(ids) {
			return models.ErrSectionNotFound
		}

		for _, ref := range refs {
			if err := tx.Model(&models.Section{}).Where("id = ?", ref.ID).Update("order_index", -int(ref.ID)).Error; err != nil {
				return translate(err, nil, models.ErrOrderIndexConflict)
			}
		}
		for _, ref := range refs {
			if err := tx.Model(&models.Section{}).Where("id = ?", ref.ID).Update("order_index", ref.OrderIndex).Error; err != nil {
				return translate(err, nil, models.ErrOrderIndexConflict)
			}
		}
		return nil
	})
}
