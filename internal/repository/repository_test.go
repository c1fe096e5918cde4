package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"page-builder-backend/internal/content"
	"page-builder-backend/internal/database"
	"page-builder-backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.OpenInMemory("repository-" + name)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return db
}

func newSection(tag string, order int) models.Section {
	return models.Section{
		ComponentType: tag,
		ComponentName: tag,
		Content:       content.Map{"title": tag},
		OrderIndex:    order,
		IsVisible:     true,
		Theme:         models.ThemeLight,
	}
}

func TestPageCreateWithSections(t *testing.T) {
	ctx := context.Background()
	pages := NewPageRepository(setupTestDB(t))

	page := &models.Page{
		Name: "Landing",
		Slug: "landing",
		Sections: []models.Section{
			newSection("FAQSection", 2),
			newSection("HeroSection", 1),
		},
	}
	require.NoError(t, pages.Create(ctx, page))
	require.NotZero(t, page.ID)
	require.Len(t, page.Sections, 2)

	loaded, err := pages.GetWithSections(ctx, page.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Sections, 2)
	assert.Equal(t, "HeroSection", loaded.Sections[0].ComponentType)
	assert.Equal(t, "FAQSection", loaded.Sections[1].ComponentType)
	assert.Equal(t, content.Map{"title": "HeroSection"}, loaded.Sections[0].Content)
	assert.Equal(t, page.ID, loaded.Sections[0].PageID)
}

func TestPageCreateRollsBackOnOrderConflict(t *testing.T) {
	ctx := context.Background()
	pages := NewPageRepository(setupTestDB(t))

	page := &models.Page{
		Name:     "Broken",
		Slug:     "broken",
		Sections: []models.Section{newSection("HeroSection", 1), newSection("FAQSection", 1)},
	}
	err := pages.Create(ctx, page)
	require.ErrorIs(t, err, models.ErrOrderIndexConflict)

	exists, err := pages.ExistsBySlugExceptID(ctx, "broken", nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPageSlugUniqueness(t *testing.T) {
	ctx := context.Background()
	pages := NewPageRepository(setupTestDB(t))

	first := &models.Page{Name: "First", Slug: "shared"}
	require.NoError(t, pages.Create(ctx, first))

	err := pages.Create(ctx, &models.Page{Name: "Second", Slug: "shared"})
	require.ErrorIs(t, err, models.ErrSlugTaken)

	exists, err := pages.ExistsBySlugExceptID(ctx, "shared", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = pages.ExistsBySlugExceptID(ctx, "shared", &first.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPageUpdate(t *testing.T) {
	ctx := context.Background()
	pages := NewPageRepository(setupTestDB(t))

	page := &models.Page{Name: "Draft", Slug: "draft", IsPublished: true}
	require.NoError(t, pages.Create(ctx, page))

	page.Name = "Renamed"
	page.IsPublished = false
	require.NoError(t, pages.Update(ctx, page))

	loaded, err := pages.GetByID(ctx, page.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", loaded.Name)
	assert.False(t, loaded.IsPublished)

	err = pages.Update(ctx, &models.Page{ID: 999, Name: "Ghost", Slug: "ghost"})
	assert.ErrorIs(t, err, models.ErrPageNotFound)
}

func TestSingleHomepage(t *testing.T) {
	ctx := context.Background()
	pages := NewPageRepository(setupTestDB(t))

	first := &models.Page{Name: "Home", Slug: "home", IsHomepage: true}
	require.NoError(t, pages.Create(ctx, first))
	second := &models.Page{Name: "New home", Slug: "new-home", IsHomepage: true}
	require.NoError(t, pages.Create(ctx, second))

	loaded, err := pages.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, loaded.IsHomepage)
}

func TestGetBySlugPublishedOnly(t *testing.T) {
	ctx := context.Background()
	pages := NewPageRepository(setupTestDB(t))

	require.NoError(t, pages.Create(ctx, &models.Page{Name: "Hidden", Slug: "hidden"}))

	_, err := pages.GetBySlug(ctx, "hidden", true)
	assert.ErrorIs(t, err, models.ErrPageNotFound)

	page, err := pages.GetBySlug(ctx, "hidden", false)
	require.NoError(t, err)
	assert.Equal(t, "Hidden", page.Name)
}

func TestPageDeleteRemovesSections(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	pages := NewPageRepository(db)
	sections := NewSectionRepository(db)

	page := &models.Page{Name: "Gone", Slug: "gone", Sections: []models.Section{newSection("HeroSection", 1)}}
	require.NoError(t, pages.Create(ctx, page))
	sectionID := page.Sections[0].ID

	require.NoError(t, pages.Delete(ctx, page.ID))

	_, err := sections.GetByID(ctx, sectionID)
	assert.ErrorIs(t, err, models.ErrSectionNotFound)
	assert.ErrorIs(t, pages.Delete(ctx, page.ID), models.ErrPageNotFound)
}

func createPage(t *testing.T, db *gorm.DB, orders ...int) (*models.Page, []models.Section) {
	t.Helper()

	page := &models.Page{Name: "Page", Slug: "page"}
	for i, order := range orders {
		page.Sections = append(page.Sections, newSection([]string{"HeroSection", "FAQSection", "CTASection", "StatsSection"}[i%4], order))
	}
	require.NoError(t, NewPageRepository(db).Create(context.Background(), page))
	return page, page.Sections
}

func TestSectionCreateConflict(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	page, _ := createPage(t, db, 1)
	sections := NewSectionRepository(db)

	duplicate := newSection("CTASection", 1)
	duplicate.PageID = page.ID
	assert.ErrorIs(t, sections.Create(ctx, &duplicate), models.ErrOrderIndexConflict)

	next := newSection("CTASection", 2)
	next.PageID = page.ID
	require.NoError(t, sections.Create(ctx, &next))
	assert.NotZero(t, next.ID)
}

func TestSectionUpdateWritesZeroValues(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	_, created := createPage(t, db, 1)
	sections := NewSectionRepository(db)

	section := created[0]
	section.IsVisible = false
	section.Theme = models.ThemeDark
	section.Content = content.Map{}
	require.NoError(t, sections.Update(ctx, &section))

	loaded, err := sections.GetByID(ctx, section.ID)
	require.NoError(t, err)
	assert.False(t, loaded.IsVisible)
	assert.Equal(t, models.ThemeDark, loaded.Theme)
	assert.Empty(t, loaded.Content)

	missing := newSection("HeroSection", 5)
	missing.ID = 999
	assert.ErrorIs(t, sections.Update(ctx, &missing), models.ErrSectionNotFound)
}

func TestSectionDelete(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	_, created := createPage(t, db, 1, 2)
	sections := NewSectionRepository(db)

	require.NoError(t, sections.Delete(ctx, created[0].ID))
	assert.ErrorIs(t, sections.Delete(ctx, created[0].ID), models.ErrSectionNotFound)

	remaining, err := sections.ListByPage(ctx, created[1].PageID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, created[1].ID, remaining[0].ID)
}

func TestReorderPermutation(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	page, created := createPage(t, db, 1, 2, 3)
	sections := NewSectionRepository(db)

	refs := []models.SectionRef{
		{ID: created[0].ID, OrderIndex: 3},
		{ID: created[1].ID, OrderIndex: 1},
		{ID: created[2].ID, OrderIndex: 2},
	}
	require.NoError(t, sections.Reorder(ctx, page.ID, refs))

	list, err := sections.ListByPage(ctx, page.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []uint{created[1].ID, created[2].ID, created[0].ID}, []uint{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, []int{1, 2, 3}, []int{list[0].OrderIndex, list[1].OrderIndex, list[2].OrderIndex})
}

func TestReorderRejectsBadRefs(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	page, created := createPage(t, db, 1, 2)
	sections := NewSectionRepository(db)

	err := sections.Reorder(ctx, page.ID, []models.SectionRef{
		{ID: created[0].ID, OrderIndex: 1},
		{ID: created[1].ID, OrderIndex: 1},
	})
	assert.ErrorIs(t, err, models.ErrOrderIndexConflict)

	err = sections.Reorder(ctx, page.ID, []models.SectionRef{{ID: 999, OrderIndex: 1}})
	assert.ErrorIs(t, err, models.ErrSectionNotFound)

	// A partial reorder that collides with an unlisted section rolls back.
	err = sections.Reorder(ctx, page.ID, []models.SectionRef{{ID: created[0].ID, OrderIndex: 2}})
	assert.ErrorIs(t, err, models.ErrOrderIndexConflict)

	list, err := sections.ListByPage(ctx, page.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, list[0].OrderIndex)
	assert.Equal(t, created[0].ID, list[0].ID)
}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	categories := NewCategoryRepository(setupTestDB(t))

	require.NoError(t, categories.Create(ctx, &models.Category{Name: "Marketing", Slug: "marketing"}))
	require.NoError(t, categories.Create(ctx, &models.Category{Name: "General", Slug: "general"}))

	all, err := categories.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "General", all[0].Name)

	exists, err := categories.ExistsBySlug(ctx, "marketing")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = categories.GetBySlug(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrCategoryNotFound)
	_, err = categories.GetByID(ctx, 42)
	assert.ErrorIs(t, err, models.ErrCategoryNotFound)
}

func TestMediaList(t *testing.T) {
	ctx := context.Background()
	media := NewMediaRepository(setupTestDB(t))

	items := []models.MediaItem{
		{FileName: "a.png", OriginalName: "Team Photo.png", FileURL: "/uploads/a.png", MimeType: "image/png", Folder: "team"},
		{FileName: "b.mp4", OriginalName: "intro.mp4", FileURL: "/uploads/b.mp4", MimeType: "video/mp4"},
		{FileName: "c.jpg", OriginalName: "hero.jpg", FileURL: "/uploads/c.jpg", MimeType: "image/jpeg", Alt: "Team at work"},
	}
	for i := range items {
		require.NoError(t, media.Create(ctx, &items[i]))
	}

	images, total, err := media.List(ctx, models.MediaFilter{Type: "image"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, images, 2)

	found, total, err := media.List(ctx, models.MediaFilter{Search: "team"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, found, 2)

	paged, total, err := media.List(ctx, models.MediaFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, paged, 1)

	inFolder, _, err := media.List(ctx, models.MediaFilter{Folder: "team"})
	require.NoError(t, err)
	require.Len(t, inFolder, 1)
	assert.Equal(t, "a.png", inFolder[0].FileName)

	_, err = media.GetByID(ctx, 999)
	assert.ErrorIs(t, err, models.ErrMediaNotFound)
}
