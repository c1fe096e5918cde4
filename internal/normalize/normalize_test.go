package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"page-builder-backend/internal/content"
)

func declaredKeys(t *testing.T, tag string) []string {
	t.Helper()
	spec, ok := specFor(tag)
	require.True(t, ok, "tag %s", tag)

	var keys []string
	for _, f := range spec.Fields {
		keys = append(keys, f.Key)
	}
	for _, o := range spec.Objects {
		keys = append(keys, o.Key)
	}
	for _, l := range spec.Lists {
		keys = append(keys, l.Key)
	}
	return keys
}

var hostileInputs = []content.Map{
	{},
	{"title": float64(5), "subtitle": true, "description": []interface{}{"x"}},
	{"faqs": "nope", "plans": map[string]interface{}{"x": float64(1)}, "steps": []interface{}{nil, float64(3), "x", []interface{}{}}},
	{"ctaButton": "legacy", "cta": []interface{}{}, "secondaryButton": nil, "variant": float64(2)},
	{"items": []interface{}{map[string]interface{}{"title": map[string]interface{}{"nested": true}}}},
	{"testimonials": []interface{}{map[string]interface{}{"author": []interface{}{"x"}}}, "hero": "flat"},
}

func TestNormalizeAlwaysReturnsDeclaredFields(t *testing.T) {
	for _, tag := range Tags() {
		keys := declaredKeys(t, tag)
		for _, raw := range hostileInputs {
			var out content.Map
			require.NotPanics(t, func() { out = Normalize(tag, raw) }, "tag %s", tag)
			for _, key := range keys {
				assert.Contains(t, out, key, "tag %s", tag)
			}
		}
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	raw := content.Map{
		"heading": "Hello",
		"cta":     map[string]interface{}{"label": "Go"},
		"items":   []interface{}{map[string]interface{}{"name": "Fast"}},
	}
	snapshot := content.Clone(raw)

	out := Normalize("FeaturesSection", raw)
	out["features"].([]interface{})[0].(map[string]interface{})["title"] = "Changed"
	Normalize("PayrollHeroSection", raw)
	Normalize("UnknownSection", raw)

	assert.Equal(t, snapshot, raw)
}

func TestHeroFallbackChains(t *testing.T) {
	out := Normalize("PayrollHeroSection", content.Map{
		"heading": "Payday, sorted",
		"ctaText": "Join now",
		"cta":     map[string]interface{}{"link": "/join"},
		"hero":    map[string]interface{}{"subtitle": "Nested legacy subtitle"},
	})

	assert.Equal(t, "Payday, sorted", out["title"])
	assert.Equal(t, "Nested legacy subtitle", out["subtitle"])
	assert.Equal(t, "", out["description"])
	assert.Equal(t, map[string]interface{}{"text": "Join now", "link": "/join"}, out["ctaButton"])
	assert.Equal(t, map[string]interface{}{"text": "Learn more", "link": "#"}, out["secondaryButton"])
}

func TestHeroLiteralDefaults(t *testing.T) {
	out := Defaults("PayrollHeroSection")
	assert.Equal(t, "Payroll made simple", out["title"])
	assert.Equal(t, map[string]interface{}{"text": "Get started", "link": "#"}, out["ctaButton"])
}

func TestListItemsDefaultIndependently(t *testing.T) {
	out := Normalize("BenefitsSection", content.Map{
		"items": []interface{}{
			map[string]interface{}{"name": "Speed", "text": "Very fast"},
			map[string]interface{}{"description": "No title here"},
			"Plain string benefit",
		},
	})

	benefits := out["benefits"].([]interface{})
	require.Len(t, benefits, 3)
	first := benefits[0].(map[string]interface{})
	assert.Equal(t, "Speed", first["title"])
	assert.Equal(t, "Very fast", first["description"])
	assert.Equal(t, "", first["icon"])
	assert.Equal(t, "Benefit 2", benefits[1].(map[string]interface{})["title"])
	assert.Equal(t, "Plain string benefit", benefits[2].(map[string]interface{})["title"])
}

func TestPricingPlans(t *testing.T) {
	out := Normalize("PricingSection", content.Map{
		"tiers": []interface{}{
			map[string]interface{}{"title": "Pro", "amount": float64(49), "features": "Unlimited users\n\nSSO\n", "popular": "yes"},
			map[string]interface{}{"features": []interface{}{"A", map[string]interface{}{"text": "B"}, float64(3)}},
		},
	})

	plans := out["plans"].([]interface{})
	require.Len(t, plans, 2)

	pro := plans[0].(map[string]interface{})
	assert.Equal(t, "Pro", pro["name"])
	assert.Equal(t, "49", pro["price"])
	assert.Equal(t, "per month", pro["period"])
	assert.Equal(t, []interface{}{"Unlimited users", "SSO"}, pro["features"])
	assert.Equal(t, true, pro["highlighted"])
	assert.Equal(t, "Choose plan", pro["ctaText"])

	second := plans[1].(map[string]interface{})
	assert.Equal(t, "Plan 2", second["name"])
	assert.Equal(t, []interface{}{"A", "B", "3"}, second["features"])
	assert.Equal(t, false, second["highlighted"])
}

func TestStepsAreNumbered(t *testing.T) {
	out := Normalize("HowItWorksSection", content.Map{
		"steps": []interface{}{
			map[string]interface{}{"name": "Sign up"},
			map[string]interface{}{"title": "Invite", "number": float64(7)},
			map[string]interface{}{},
		},
	})

	steps := out["steps"].([]interface{})
	require.Len(t, steps, 3)
	assert.Equal(t, float64(1), steps[0].(map[string]interface{})["number"])
	assert.Equal(t, "Sign up", steps[0].(map[string]interface{})["title"])
	assert.Equal(t, float64(7), steps[1].(map[string]interface{})["number"])
	assert.Equal(t, "Step 3", steps[2].(map[string]interface{})["title"])
}

func TestTestimonialAuthorObject(t *testing.T) {
	out := Normalize("TestimonialsSection", content.Map{
		"reviews": []interface{}{
			map[string]interface{}{"text": "Great", "author": map[string]interface{}{"name": "Ann", "role": "CEO"}},
		},
	})

	item := out["testimonials"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Great", item["quote"])
	assert.Equal(t, "Ann", item["author"])
	assert.Equal(t, "CEO", item["role"])
	assert.Equal(t, float64(5), item["rating"])
}

func TestVariantFields(t *testing.T) {
	assert.Equal(t, "warning", Normalize("CTASection", content.Map{"variant": "WARNING"})["variant"])
	assert.Equal(t, "primary", Normalize("CTASection", content.Map{"variant": "neon"})["variant"])
	assert.Equal(t, "danger", Normalize("CTASection", content.Map{"style": "danger"})["variant"])
	assert.Equal(t, "info", Defaults("AlertBannerSection")["variant"])
	assert.Equal(t, true, Defaults("AlertBannerSection")["dismissible"])
}

func TestGenericPassesThroughAndPromotesFirstList(t *testing.T) {
	features := []interface{}{map[string]interface{}{"title": "F"}}
	steps := []interface{}{map[string]interface{}{"title": "S"}}
	raw := content.Map{
		"title":       "T",
		"subtitle":    "S",
		"description": "D",
		"features":    features,
		"steps":       steps,
	}

	out := Normalize("MysterySection", raw)

	assert.Equal(t, "T", out["title"])
	assert.Equal(t, "S", out["subtitle"])
	assert.Equal(t, "D", out["description"])
	assert.Equal(t, steps, out["steps"])
	assert.Equal(t, steps, out["items"])
	assert.Equal(t, features, out["features"])
}

func TestGenericWithoutListsHasEmptyItems(t *testing.T) {
	out := Normalize("MysterySection", content.Map{"title": "Only"})
	assert.Equal(t, []interface{}{}, out["items"])
	assert.NotContains(t, out, "subtitle")
}

func TestNormalizeJSONMalformedFallsBackToDefaults(t *testing.T) {
	assert.Equal(t, Defaults("FAQSection"), NormalizeJSON("FAQSection", `{"title": `))
	assert.Equal(t, Defaults("FAQSection"), NormalizeJSON("FAQSection", `[1,2,3]`))
	assert.Equal(t, "Custom", NormalizeJSON("FAQSection", `{"heading":"Custom"}`)["title"])
}

func TestRegisteredIsCaseInsensitive(t *testing.T) {
	assert.True(t, Registered("faqsection"))
	assert.True(t, Registered("PayrollHowItWorksSection"))
	assert.False(t, Registered("MysterySection"))
	assert.Contains(t, Tags(), "PricingSection")
}

func TestRegisterExtendsTable(t *testing.T) {
	Register("QuoteSection", Spec{Fields: []Field{str("quote", "Be kind", "text")}})
	assert.Equal(t, "Be kind", Defaults("QuoteSection")["quote"])
	assert.Equal(t, "Hi", Normalize("quotesection", content.Map{"text": "Hi"})["quote"])
}

func TestCoercionAcceptsYAMLIntegers(t *testing.T) {
	for _, value := range []interface{}{uint64(42), int64(42), uint(42), int32(42), float32(42)} {
		n, ok := coerceNumber(value)
		require.True(t, ok, "%T", value)
		assert.Equal(t, float64(42), n)

		s, ok := coerceString(value)
		require.True(t, ok, "%T", value)
		assert.Equal(t, "42", s)
	}

	b, ok := coerceBool(uint64(0))
	require.True(t, ok)
	assert.False(t, b)

	_, ok = coerceNumber("n/a")
	assert.False(t, ok)
	_, ok = coerceString("  ")
	assert.False(t, ok)
}
