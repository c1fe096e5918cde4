package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"page-builder-backend/internal/content"
	"page-builder-backend/internal/models"
	"page-builder-backend/internal/normalize"
	"page-builder-backend/internal/sections"
)

func section(id uint, tag string, order int, visible bool, c content.Map) models.Section {
	return models.Section{
		ID:            id,
		ComponentType: tag,
		ComponentName: tag + " block",
		OrderIndex:    order,
		IsVisible:     visible,
		Theme:         models.ThemeLight,
		Content:       c,
	}
}

func TestVisibleSections(t *testing.T) {
	list := []models.Section{
		section(1, "FAQSection", 1, true, nil),
		section(2, "FAQSection", 2, false, nil),
		section(3, "FAQSection", 3, true, nil),
	}
	visible := VisibleSections(list)
	require.Len(t, visible, 2)
	assert.Equal(t, uint(1), visible[0].ID)
	assert.Equal(t, uint(3), visible[1].ID)
}

func TestPropsInjectsDefaultActions(t *testing.T) {
	props := Props("PayrollHeroSection", content.Map{"onCtaClick": "open-signup"})
	assert.Equal(t, "open-signup", props["onCtaClick"])
	assert.Equal(t, "#", props["onSecondaryClick"])
	assert.Equal(t, "#", props["onSubmit"])
}

func TestRenderPageOrdersAndFiltersSections(t *testing.T) {
	page := models.Page{Sections: []models.Section{
		section(2, "FAQSection", 2, true, content.Map{"title": "Second"}),
		section(1, "PayrollHeroSection", 1, true, content.Map{"title": "First"}),
		section(3, "CTASection", 3, false, content.Map{"title": "Hidden"}),
	}}
	r := New(nil, nil)

	public := r.RenderPage(page, ModePublic).HTML
	assert.Less(t, strings.Index(public, "First"), strings.Index(public, "Second"))
	assert.NotContains(t, public, "Hidden")
	assert.Equal(t, uint(2), page.Sections[0].ID, "input order must be left untouched")

	preview := r.RenderPage(page, ModePreview).HTML
	assert.Contains(t, preview, "Hidden section")
	assert.Contains(t, preview, "pb-section--hidden")
}

func TestRenderSectionWrapsWithTheme(t *testing.T) {
	s := section(9, "CTASection", 1, true, nil)
	s.Theme = models.ThemeDark
	html, _ := New(nil, nil).RenderSection(s, ModePublic)

	assert.True(t, strings.HasPrefix(html, `<section class="pb-section theme-dark" data-component="CTASection" data-section-id="9">`))
	assert.True(t, strings.HasSuffix(html, `</section>`))
}

func TestUnknownComponentRendersPlaceholder(t *testing.T) {
	html, _ := New(nil, nil).RenderSection(section(1, "MysterySection", 1, true, nil), ModePublic)
	assert.Contains(t, html, "Component not found")
	assert.Contains(t, html, "MysterySection")
}

func TestNormalizableTagUsesGenericLayout(t *testing.T) {
	normalize.Register("CaseStudySection", normalize.Spec{Fields: []normalize.Field{
		{Key: "title", Default: "Case study", As: normalize.String},
	}})

	html, _ := New(nil, nil).RenderSection(section(1, "CaseStudySection", 1, true, nil), ModePublic)
	assert.NotContains(t, html, "Component not found")
	assert.Contains(t, html, "generic")
	assert.Contains(t, html, "Case study")
}

func panickingRegistry(t *testing.T) *sections.Registry {
	t.Helper()
	reg := sections.DefaultRegistry()
	require.NoError(t, reg.Register("test/explode", func(sections.RenderContext, string, content.Map) (string, []string) {
		panic("exploded")
	}))
	require.NoError(t, reg.Alias("ExplodingSection", "test/explode"))
	return reg
}

func TestPanicIsContainedPerSection(t *testing.T) {
	page := models.Page{Sections: []models.Section{
		section(1, "ExplodingSection", 1, true, content.Map{"secret": "props-value"}),
		section(2, "FAQSection", 2, true, content.Map{"title": "Still here"}),
	}}
	r := New(panickingRegistry(t), nil)

	preview := r.RenderPage(page, ModePreview).HTML
	assert.Contains(t, preview, "Failed to render ExplodingSection block")
	assert.Contains(t, preview, "exploded")
	assert.Contains(t, preview, "props-value")
	assert.Contains(t, preview, "Still here")

	public := r.RenderPage(page, ModePublic).HTML
	assert.Contains(t, public, "Failed to render")
	assert.NotContains(t, public, "props-value")
	assert.Contains(t, public, "Still here")
}

func TestScriptsAreDeduplicated(t *testing.T) {
	page := models.Page{Sections: []models.Section{
		section(1, "AlertBannerSection", 1, true, content.Map{"message": "One"}),
		section(2, "AlertBannerSection", 2, true, content.Map{"message": "Two"}),
	}}
	result := New(nil, nil).RenderPage(page, ModePublic)
	assert.Len(t, result.Scripts, 1)
}

func TestRenderDocument(t *testing.T) {
	page := models.Page{
		Name:            "Pricing",
		Slug:            "pricing",
		MetaDescription: "Plans & prices",
		Sections:        []models.Section{section(1, "AlertBannerSection", 1, true, content.Map{"message": "Sale"})},
	}
	doc, err := New(nil, nil).RenderDocument(page, ModePublic)
	require.NoError(t, err)

	assert.Contains(t, doc, "<title>Pricing</title>")
	assert.Contains(t, doc, `content="Plans &amp; prices"`)
	assert.Contains(t, doc, "Sale")
	assert.Contains(t, doc, "<script>")
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "preview", ModePreview.String())
	assert.Equal(t, "public", ModePublic.String())
}
