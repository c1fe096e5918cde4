package seed

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"page-builder-backend/internal/database"
	"page-builder-backend/internal/repository"
	"page-builder-backend/internal/schemas"
	"page-builder-backend/internal/service"
	"page-builder-backend/pkg/cache"
	"page-builder-backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitWithOutput(io.Discard, "error", "text")
	os.Exit(m.Run())
}

func TestParsePageDefinitions(t *testing.T) {
	single, err := parsePageDefinitions([]byte("name: About\nsections:\n  - type: CTASection\n"))
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, "About", single[0].Name)

	list, err := parsePageDefinitions([]byte("- name: One\n- name: Two\n"))
	require.NoError(t, err)
	assert.Len(t, list, 2)

	empty, err := parsePageDefinitions([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = parsePageDefinitions([]byte("slug: nameless\n"))
	assert.Error(t, err)
}

func TestDefinitionInputSeedsMissingContent(t *testing.T) {
	categoryID := uint(3)
	def := pageDefinition{
		Name: "About Us",
		Sections: []sectionDefinition{
			{Type: "FAQSection"},
			{Type: "CTASection", Hidden: true, Content: map[string]interface{}{"title": "Talk to us"}},
		},
	}

	in := def.input(schemas.Default(), &categoryID)
	assert.Equal(t, "about-us", in.Slug)
	assert.Equal(t, &categoryID, in.CategoryID)
	require.Len(t, in.Sections, 2)

	assert.Equal(t, 1, in.Sections[0].OrderIndex)
	assert.True(t, in.Sections[0].IsVisible)
	assert.Equal(t, "Frequently asked questions", in.Sections[0].Content["title"])

	assert.Equal(t, 2, in.Sections[1].OrderIndex)
	assert.False(t, in.Sections[1].IsVisible)
	assert.Equal(t, "Talk to us", in.Sections[1].Content["title"])
}

func TestEnsureDefaultsAreIdempotent(t *testing.T) {
	db, err := database.OpenInMemory("seed_idempotent")
	require.NoError(t, err)
	defer database.Close(db)

	disabled, err := cache.NewCache("", false)
	require.NoError(t, err)

	categories := service.NewCategoryService(repository.NewCategoryRepository(db))
	pages := service.NewPageService(
		repository.NewPageRepository(db),
		repository.NewSectionRepository(db),
		repository.NewCategoryRepository(db),
		disabled,
		0,
	)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		category := EnsureDefaultCategory(ctx, categories)
		require.NotNil(t, category)
		EnsureDefaultPages(ctx, pages, nil, &category.ID)
	}

	all, err := pages.ListPages(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "home", all[0].Slug)
	assert.True(t, all[0].IsHomepage)

	home, err := pages.GetPublicPage(ctx, "home")
	require.NoError(t, err)
	assert.Len(t, home.Sections, 5)
}
