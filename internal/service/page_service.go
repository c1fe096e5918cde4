package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"page-builder-backend/internal/builder"
	"page-builder-backend/internal/content"
	"page-builder-backend/internal/models"
	"page-builder-backend/internal/repository"
	"page-builder-backend/pkg/cache"
	"page-builder-backend/pkg/logger"
	"page-builder-backend/pkg/utils"
)

// PageService stores pages and sections. It satisfies builder.Backend so a
// builder session can run in-process against the database.
type PageService struct {
	pageRepo     repository.PageRepository
	sectionRepo  repository.SectionRepository
	categoryRepo repository.CategoryRepository
	cache        *cache.Cache
	cacheTTL     time.Duration

	publicLoads singleflight.Group
}

func NewPageService(
	pageRepo repository.PageRepository,
	sectionRepo repository.SectionRepository,
	categoryRepo repository.CategoryRepository,
	cacheService *cache.Cache,
	cacheTTL time.Duration,
) *PageService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &PageService{
		pageRepo:     pageRepo,
		sectionRepo:  sectionRepo,
		categoryRepo: categoryRepo,
		cache:        cacheService,
		cacheTTL:     cacheTTL,
	}
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", models.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func (s *PageService) GetPage(ctx context.Context, id uint) (models.Page, error) {
	page, err := s.pageRepo.GetWithSections(ctx, id)
	if err != nil {
		return models.Page{}, err
	}
	return *page, nil
}

func (s *PageService) GetPageSections(ctx context.Context, pageID uint) ([]models.Section, error) {
	if _, err := s.pageRepo.GetByID(ctx, pageID); err != nil {
		return nil, err
	}
	return s.sectionRepo.ListByPage(ctx, pageID)
}

func (s *PageService) ListPages(ctx context.Context) ([]models.Page, error) {
	return s.pageRepo.GetAll(ctx)
}

// CreatePage stores the page together with its sections in one transaction.
func (s *PageService) CreatePage(ctx context.Context, in models.PageInput) (models.Page, error) {
	page := &models.Page{}
	if err := s.applyPageInput(ctx, page, in, nil); err != nil {
		return models.Page{}, err
	}

	seen := make(map[int]struct{}, len(in.Sections))
	for _, sectionIn := range in.Sections {
		section, err := buildSection(sectionIn)
		if err != nil {
			return models.Page{}, err
		}
		if _, dup := seen[section.OrderIndex]; dup {
			return models.Page{}, fmt.Errorf("order index %d used twice: %w", section.OrderIndex, models.ErrOrderIndexConflict)
		}
		seen[section.OrderIndex] = struct{}{}
		page.Sections = append(page.Sections, section)
	}

	if err := s.pageRepo.Create(ctx, page); err != nil {
		return models.Page{}, err
	}
	page.SortSections()

	logger.Info("Page created", map[string]interface{}{
		"page_id":  page.ID,
		"slug":     page.Slug,
		"sections": len(page.Sections),
	})

	s.invalidateSlug(ctx, page.Slug)
	return *page, nil
}

// UpdatePage writes the page fields only; sections are managed through the
// section calls.
func (s *PageService) UpdatePage(ctx context.Context, id uint, in models.PageInput) (models.Page, error) {
	page, err := s.pageRepo.GetByID(ctx, id)
	if err != nil {
		return models.Page{}, err
	}
	previousSlug := page.Slug

	if err := s.applyPageInput(ctx, page, in, &id); err != nil {
		return models.Page{}, err
	}
	if err := s.pageRepo.Update(ctx, page); err != nil {
		return models.Page{}, err
	}

	s.invalidateSlug(ctx, previousSlug)
	if page.Slug != previousSlug {
		s.invalidateSlug(ctx, page.Slug)
	}
	return s.GetPage(ctx, id)
}

func (s *PageService) DeletePage(ctx context.Context, id uint) error {
	page, err := s.pageRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.pageRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateSlug(ctx, page.Slug)
	return nil
}

func (s *PageService) applyPageInput(ctx context.Context, page *models.Page, in models.PageInput, excludeID *uint) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return invalid("page name is required")
	}

	slug := strings.TrimSpace(in.Slug)
	if !utils.IsValidSlug(slug) {
		return models.ErrInvalidSlug
	}
	taken, err := s.pageRepo.ExistsBySlugExceptID(ctx, slug, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check slug availability: %w", err)
	}
	if taken {
		return models.ErrSlugTaken
	}

	if in.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *in.CategoryID); err != nil {
			return err
		}
	}

	page.Name = name
	page.Slug = slug
	page.CategoryID = in.CategoryID
	page.MetaTitle = strings.TrimSpace(in.MetaTitle)
	page.MetaDescription = strings.TrimSpace(in.MetaDescription)
	page.IsHomepage = in.IsHomepage

	switch {
	case in.IsPublished && page.PublishedAt == nil:
		now := time.Now().UTC()
		page.PublishedAt = &now
	case !in.IsPublished:
		page.PublishedAt = nil
	}
	page.IsPublished = in.IsPublished

	if page.IsPublished {
		if err := builder.ValidatePublishedPage(*page); err != nil {
			return invalid("%s", err.Error())
		}
	}
	return nil
}

func buildSection(in models.SectionInput) (models.Section, error) {
	in.ComponentType = strings.TrimSpace(in.ComponentType)
	if in.ComponentType == "" {
		return models.Section{}, invalid("section component type is required")
	}
	if in.OrderIndex < 1 {
		return models.Section{}, invalid("section order index must be at least 1")
	}
	in.ComponentName = strings.TrimSpace(in.ComponentName)
	if in.ComponentName == "" {
		in.ComponentName = in.ComponentType
	}

	var section models.Section
	section.Apply(in)
	if section.Content == nil {
		section.Content = content.Map{}
	}
	return section, nil
}

func (s *PageService) CreateSection(ctx context.Context, pageID uint, in models.SectionInput) (models.Section, error) {
	page, err := s.pageRepo.GetByID(ctx, pageID)
	if err != nil {
		return models.Section{}, err
	}

	section, err := buildSection(in)
	if err != nil {
		return models.Section{}, err
	}
	section.PageID = pageID
	if err := s.sectionRepo.Create(ctx, &section); err != nil {
		return models.Section{}, err
	}

	s.invalidateSlug(ctx, page.Slug)
	return section, nil
}

func (s *PageService) UpdateSection(ctx context.Context, id uint, in models.SectionInput) error {
	existing, err := s.sectionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	section, err := buildSection(in)
	if err != nil {
		return err
	}
	section.ID = existing.ID
	section.PageID = existing.PageID
	section.CreatedAt = existing.CreatedAt
	if err := s.sectionRepo.Update(ctx, &section); err != nil {
		return err
	}

	s.invalidatePage(ctx, existing.PageID)
	return nil
}

func (s *PageService) DeleteSection(ctx context.Context, id uint) error {
	existing, err := s.sectionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.sectionRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidatePage(ctx, existing.PageID)
	return nil
}

func (s *PageService) ReorderSections(ctx context.Context, pageID uint, refs []models.SectionRef) error {
	page, err := s.pageRepo.GetByID(ctx, pageID)
	if err != nil {
		return err
	}
	for _, ref := range refs {
		if ref.OrderIndex < 1 {
			return invalid("section order index must be at least 1")
		}
	}
	if err := s.sectionRepo.Reorder(ctx, pageID, refs); err != nil {
		return err
	}

	s.invalidateSlug(ctx, page.Slug)
	return nil
}

func (s *PageService) CheckSlugAvailable(ctx context.Context, slug string, excludeID *uint) (bool, error) {
	slug = strings.TrimSpace(slug)
	if !utils.IsValidSlug(slug) {
		return false, models.ErrInvalidSlug
	}
	taken, err := s.pageRepo.ExistsBySlugExceptID(ctx, slug, excludeID)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// GetPublicPage returns a published page with its visible sections. Reads go
// through the cache, and concurrent misses for one slug share a single load.
func (s *PageService) GetPublicPage(ctx context.Context, slug string) (models.Page, error) {
	var cached models.Page
	if err := s.cache.GetCachedPublicPage(ctx, slug, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) && !errors.Is(err, cache.ErrDisabled) {
		logger.Warn("Public page cache read failed", map[string]interface{}{"slug": slug, "error": err.Error()})
	}

	value, err, _ := s.publicLoads.Do(slug, func() (interface{}, error) {
		page, err := s.pageRepo.GetBySlug(ctx, slug, true)
		if err != nil {
			return models.Page{}, err
		}

		visible := make([]models.Section, 0, len(page.Sections))
		for _, section := range page.Sections {
			if section.IsVisible {
				visible = append(visible, section)
			}
		}
		page.Sections = visible

		if err := s.cache.CachePublicPage(ctx, slug, page, s.cacheTTL); err != nil {
			logger.Warn("Public page cache write failed", map[string]interface{}{"slug": slug, "error": err.Error()})
		}
		return *page, nil
	})
	if err != nil {
		return models.Page{}, err
	}

	page := value.(models.Page)
	page.Sections = append([]models.Section(nil), page.Sections...)
	return page, nil
}

func (s *PageService) invalidatePage(ctx context.Context, pageID uint) {
	page, err := s.pageRepo.GetByID(ctx, pageID)
	if err != nil {
		return
	}
	s.invalidateSlug(ctx, page.Slug)
}

func (s *PageService) invalidateSlug(ctx context.Context, slug string) {
	if slug == "" {
		return
	}
	if err := s.cache.InvalidatePublicPage(ctx, slug); err != nil {
		logger.Warn("Public page cache invalidation failed", map[string]interface{}{"slug": slug, "error": err.Error()})
	}
}
