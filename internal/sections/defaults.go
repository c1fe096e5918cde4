package sections

import "page-builder-backend/pkg/logger"

// Module paths for the built-in renderers.
const (
	PathHero         = "marketing/hero"
	PathFAQ          = "marketing/faq"
	PathPricing      = "marketing/pricing"
	PathCardGrid     = "marketing/card-grid"
	PathSteps        = "marketing/steps"
	PathTestimonials = "marketing/testimonials"
	PathCTA          = "marketing/cta"
	PathNewsletter   = "marketing/newsletter"
	PathContact      = "marketing/contact"
	PathVideo        = "media/video"
	PathAlertBanner  = "marketing/alert-banner"
	PathImageText    = "content/image-text"
	PathGeneric      = "generic/fallback"
)

var defaultAliases = map[string]string{
	"PayrollHeroSection":       PathHero,
	"HRHeroSection":            PathHero,
	"FAQSection":               PathFAQ,
	"PricingSection":           PathPricing,
	"BenefitsSection":          PathCardGrid,
	"FeaturesSection":          PathCardGrid,
	"ServicesGridSection":      PathCardGrid,
	"StatsSection":             PathCardGrid,
	"TeamSection":              PathCardGrid,
	"LogoCloudSection":         PathCardGrid,
	"CardsSection":             PathCardGrid,
	"HowItWorksSection":        PathSteps,
	"PayrollHowItWorksSection": PathSteps,
	"TimelineSection":          PathSteps,
	"TestimonialsSection":      PathTestimonials,
	"CTASection":               PathCTA,
	"NewsletterSection":        PathNewsletter,
	"ContactSection":           PathContact,
	"VideoSection":             PathVideo,
	"AlertBannerSection":       PathAlertBanner,
	"ImageTextSection":         PathImageText,
	"RichTextSection":          PathImageText,
}

// RegisterDefaults registers every built-in renderer and tag alias on reg.
func RegisterDefaults(reg *Registry) {
	if reg == nil {
		return
	}

	RegisterHero(reg)
	RegisterFAQ(reg)
	RegisterPricing(reg)
	RegisterCardGrid(reg)
	RegisterSteps(reg)
	RegisterTestimonials(reg)
	RegisterCTA(reg)
	RegisterContact(reg)
	RegisterVideo(reg)
	RegisterAlertBanner(reg)
	RegisterImageText(reg)
	RegisterGeneric(reg)

	for tag, path := range defaultAliases {
		if err := reg.Alias(tag, path); err != nil {
			logger.Error(err, "Failed to alias section component", map[string]interface{}{"tag": tag, "path": path})
		}
	}
}

// DefaultRegistry returns a registry with the built-in renderers.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	RegisterDefaults(reg)
	return reg
}
