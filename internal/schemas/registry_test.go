package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"page-builder-backend/internal/content"
)

func TestGetDefaultContentReturnsCopy(t *testing.T) {
	first := GetDefaultContent("FAQSection")
	first["title"] = "Changed"
	first["faqs"].([]interface{})[0].(map[string]interface{})["question"] = "Changed"

	second := GetDefaultContent("FAQSection")
	assert.Equal(t, "Frequently asked questions", second["title"])
	assert.Equal(t, "How long does setup take?", second["faqs"].([]interface{})[0].(map[string]interface{})["question"])
}

func TestGetDefaultContentUnknownTagIsPlaceholder(t *testing.T) {
	placeholder := GetDefaultContent("MysterySection")

	assert.Equal(t, true, placeholder["isPlaceholder"])
	assert.Equal(t, "MysterySection", placeholder["title"])
	assert.Contains(t, placeholder, "description")
	assert.Contains(t, placeholder, "content")
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	entry, ok := Lookup("payrollherosection")
	require.True(t, ok)
	assert.Equal(t, "PayrollHeroSection", entry.Type)
}

func TestSchemaDefaultsAndSeedContent(t *testing.T) {
	defaults := SchemaDefaults("VideoSection")
	assert.Equal(t, false, defaults["autoplay"])
	assert.NotContains(t, GetDefaultContent("VideoSection"), "autoplay")

	seed := SeedContent("VideoSection")
	assert.Equal(t, "See it in action", seed["title"])
	assert.Equal(t, false, seed["autoplay"])

	banner := SeedContent("AlertBannerSection")
	assert.Equal(t, true, banner["dismissible"])
	assert.Equal(t, "info", banner["variant"])

	hero := SchemaDefaults("PayrollHeroSection")
	assert.Equal(t, map[string]interface{}{"text": "Get started", "link": "/signup"}, hero["ctaButton"])
}

func TestSeedContentUnknownTag(t *testing.T) {
	seed := SeedContent("MysterySection")
	assert.Equal(t, true, seed["isPlaceholder"])
}

func TestListIsSortedByCategoryThenName(t *testing.T) {
	entries := List()
	require.GreaterOrEqual(t, len(entries), 20)

	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if prev.Category == cur.Category {
			assert.LessOrEqual(t, prev.Name, cur.Name)
			continue
		}
		assert.Less(t, prev.Category, cur.Category)
	}
}

func TestCategoriesAreDistinct(t *testing.T) {
	categories := Default().Categories()
	seen := map[string]bool{}
	for _, category := range categories {
		assert.False(t, seen[category], "duplicate category %s", category)
		seen[category] = true
	}
	assert.Contains(t, categories, CategoryHero)
}

func TestMediaFieldsComeFromSchema(t *testing.T) {
	assert.Equal(t, []string{"backgroundImage", "image"}, MediaFields("PayrollHeroSection"))
	assert.Equal(t, []string{"avatar"}, MediaFields("TestimonialsSection"))
	assert.Equal(t, []string{"posterImage", "videoUrl"}, MediaFields("VideoSection"))
	assert.Nil(t, MediaFields("MysterySection"))
}

func TestDefaultContentSatisfiesSchemas(t *testing.T) {
	for _, entry := range List() {
		issues := Validate(entry.Type, SeedContent(entry.Type))
		assert.Empty(t, issues, "component %s", entry.Type)
	}
}

func TestValidateReportsIssues(t *testing.T) {
	issues := Validate("PricingSection", content.Map{
		"title": float64(42),
		"plans": []interface{}{map[string]interface{}{"name": "Solo"}},
	})
	require.NotEmpty(t, issues)

	locations := make([]string, 0, len(issues))
	for _, issue := range issues {
		locations = append(locations, issue.Location)
	}
	assert.Contains(t, locations, "/title")
	assert.Contains(t, locations, "/plans/0")
}

func TestValidateUnknownTag(t *testing.T) {
	assert.Nil(t, Validate("MysterySection", content.Map{"anything": true}))
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(Entry{Type: "OneSection", Name: "One"}))
	assert.Error(t, reg.Register(Entry{Type: "OneSection", Name: "Again"}))
	assert.Error(t, reg.Register(Entry{Type: "  "}))
}
