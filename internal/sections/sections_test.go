package sections

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"page-builder-backend/internal/content"
	"page-builder-backend/internal/normalize"
)

func render(t *testing.T, reg *Registry, tag string, raw content.Map) (string, []string) {
	t.Helper()
	renderer, err := reg.Create(tag)
	require.NoError(t, err)
	props := normalize.Normalize(tag, raw)
	for key, value := range raw {
		if strings.HasPrefix(key, "on") {
			props[key] = value
		}
	}
	return renderer(NewHTMLContext(), "pb", props)
}

func TestDefaultRegistryResolvesEveryNormalizedTag(t *testing.T) {
	reg := DefaultRegistry()
	for _, tag := range normalize.Tags() {
		path, ok := reg.ResolvePath(tag)
		assert.True(t, ok, tag)
		_, err := reg.Load(path)
		assert.NoError(t, err, tag)
	}
	assert.Contains(t, reg.Paths(), PathGeneric)
}

func TestCreateUnknownTag(t *testing.T) {
	reg := DefaultRegistry()
	_, err := reg.Create("MysterySection")
	assert.True(t, errors.Is(err, ErrComponentNotFound))

	_, err = reg.Load("does/not-exist")
	assert.True(t, errors.Is(err, ErrComponentNotFound))
}

func TestResolvePathIsCaseInsensitive(t *testing.T) {
	reg := DefaultRegistry()
	path, ok := reg.ResolvePath("  faqsection ")
	require.True(t, ok)
	assert.Equal(t, PathFAQ, path)
}

func TestAliasRequiresRegisteredPath(t *testing.T) {
	reg := NewRegistry()
	err := reg.Alias("HeroSection", "marketing/hero")
	assert.True(t, errors.Is(err, ErrComponentNotFound))

	require.NoError(t, reg.Register("marketing/hero", renderHero))
	require.NoError(t, reg.Alias("HeroSection", "marketing/hero"))
	_, err = reg.Create("HeroSection")
	assert.NoError(t, err)
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	reg := NewRegistry()
	assert.Error(t, reg.Register("", renderHero))
	assert.Error(t, reg.Register("x/y", nil))

	var nilReg *Registry
	assert.Error(t, nilReg.Register("x/y", renderHero))
	assert.Empty(t, nilReg.Paths())
}

func TestCloneIsIndependent(t *testing.T) {
	reg := DefaultRegistry()
	cloned := reg.Clone()
	require.NoError(t, cloned.Register("custom/quote", renderGeneric))
	require.NoError(t, cloned.Alias("QuoteSection", "custom/quote"))

	_, ok := reg.ResolvePath("QuoteSection")
	assert.False(t, ok)
	_, ok = cloned.ResolvePath("QuoteSection")
	assert.True(t, ok)
}

func TestRenderersSurviveEmptyContent(t *testing.T) {
	reg := DefaultRegistry()
	for _, tag := range normalize.Tags() {
		assert.NotPanics(t, func() {
			render(t, reg, tag, nil)
		}, tag)
	}
}

func TestHeroRendersButtonsAndEscapes(t *testing.T) {
	html, _ := render(t, DefaultRegistry(), "PayrollHeroSection", content.Map{
		"title":      "<b>Pay</b> day",
		"ctaText":    "Start",
		"ctaLink":    "/signup",
		"onCtaClick": "start-trial",
	})

	assert.Contains(t, html, "&lt;b&gt;Pay&lt;/b&gt; day")
	assert.Contains(t, html, `href="/signup"`)
	assert.Contains(t, html, `data-action="start-trial"`)
	assert.Contains(t, html, "Learn more")
}

func TestUnsafeLinksAreNeutralised(t *testing.T) {
	html, _ := render(t, DefaultRegistry(), "PayrollHeroSection", content.Map{
		"ctaText": "Start",
		"ctaLink": " JavaScript:alert(1)",
	})
	assert.Contains(t, html, `href="#"`)
	assert.NotContains(t, strings.ToLower(html), "javascript:")
}

func TestSafeURL(t *testing.T) {
	cases := map[string]string{
		"":                        "",
		"/pricing":                "/pricing",
		"#faq":                    "#faq",
		"https://example.com/a?b": "https://example.com/a?b",
		"mailto:hi@example.com":   "mailto:hi@example.com",
		"tel:+123":                "tel:+123",
		"javascript:alert(1)":     "#",
		"vbscript:msgbox":         "#",
		"data:text/html,hi":       "#",
		"java\nscript:alert(1)":   "#",
	}
	for raw, want := range cases {
		assert.Equal(t, want, safeURL(raw), raw)
	}
	assert.Equal(t, "data:image/png;base64,AA==", safeURL("data:image/png;base64,AA==", "data"))
}

func TestFAQRendersMarkdownAnswers(t *testing.T) {
	html, _ := render(t, DefaultRegistry(), "FAQSection", content.Map{
		"faqs": []interface{}{
			map[string]interface{}{"question": "Why?", "answer": "Because **bold**<script>alert(1)</script>"},
		},
	})

	assert.Contains(t, html, "<summary")
	assert.Contains(t, html, "<strong>bold</strong>")
	assert.NotContains(t, html, "<script>")
}

func TestPricingHighlightsPlan(t *testing.T) {
	html, _ := render(t, DefaultRegistry(), "PricingSection", content.Map{
		"plans": []interface{}{
			map[string]interface{}{"name": "Pro", "price": "49", "highlighted": true, "features": []interface{}{"A", "B"}},
		},
	})

	assert.Contains(t, html, "pb__pricing-plan--highlighted")
	assert.Contains(t, html, "<li>A</li><li>B</li>")
	assert.Contains(t, html, "per month")
}

func TestCardGridReadsSectionSpecificLists(t *testing.T) {
	reg := DefaultRegistry()

	html, _ := render(t, reg, "BenefitsSection", content.Map{
		"benefits": []interface{}{map[string]interface{}{"title": "Fast"}},
	})
	assert.Contains(t, html, "Fast")

	html, _ = render(t, reg, "StatsSection", content.Map{
		"stats": []interface{}{map[string]interface{}{"value": 99, "label": "Uptime"}},
	})
	assert.Contains(t, html, "99")
	assert.Contains(t, html, "Uptime")
}

func TestStepsNumbering(t *testing.T) {
	html, _ := render(t, DefaultRegistry(), "HowItWorksSection", content.Map{
		"steps": []interface{}{"Sign up", "Invite team"},
	})
	assert.Contains(t, html, `step-marker">1<`)
	assert.Contains(t, html, `step-marker">2<`)
	assert.Contains(t, html, "Invite team")
}

func TestAlertBannerEmitsDismissScript(t *testing.T) {
	html, scripts := render(t, DefaultRegistry(), "AlertBannerSection", content.Map{
		"message": "Maintenance tonight",
		"variant": "warning",
	})
	assert.Contains(t, html, "pb__banner--warning")
	require.Len(t, scripts, 1)

	_, scripts = render(t, DefaultRegistry(), "AlertBannerSection", content.Map{
		"message":     "Fixed",
		"dismissible": false,
	})
	assert.Empty(t, scripts)
}

func TestContactFormUsesSubmitAction(t *testing.T) {
	html, _ := render(t, DefaultRegistry(), "ContactSection", content.Map{
		"email":    "hello@example.com",
		"onSubmit": "/api/contact",
	})
	assert.Contains(t, html, `action="/api/contact"`)
	assert.Contains(t, html, "mailto:hello@example.com")
}

func TestVideoWithoutSource(t *testing.T) {
	html, _ := render(t, DefaultRegistry(), "VideoSection", nil)
	assert.Contains(t, html, "No video selected.")

	html, _ = render(t, DefaultRegistry(), "VideoSection", content.Map{"videoUrl": "/media/intro.mp4", "autoplay": "yes"})
	assert.Contains(t, html, `src="/media/intro.mp4"`)
	assert.Contains(t, html, "autoplay")
}

func TestImageTextPosition(t *testing.T) {
	html, _ := render(t, DefaultRegistry(), "ImageTextSection", content.Map{
		"image":         "/img/a.png",
		"imagePosition": "LEFT",
		"content":       "Hello *world*",
	})
	assert.Contains(t, html, "pb__image-text--left")
	assert.Contains(t, html, "<em>world</em>")
}

func TestGenericRendersItems(t *testing.T) {
	reg := DefaultRegistry()
	renderer, err := reg.Load(PathGeneric)
	require.NoError(t, err)

	html, _ := renderer(NewHTMLContext(), "pb", normalize.Normalize("CustomWidget", content.Map{
		"title": "Custom",
		"steps": []interface{}{map[string]interface{}{"title": "One"}},
	}))
	assert.Contains(t, html, "Custom")
	assert.Contains(t, html, "One")
}

func TestPlaceholder(t *testing.T) {
	html := Placeholder("<Bad>", "")
	assert.Contains(t, html, "Component not found")
	assert.Contains(t, html, "&lt;Bad&gt;")
	assert.False(t, strings.Contains(html, "<Bad>"))
}
