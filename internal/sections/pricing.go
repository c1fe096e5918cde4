package sections

import (
	"strings"

	"page-builder-backend/internal/content"
)

// RegisterPricing registers the plan comparison module.
func RegisterPricing(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(PathPricing, renderPricing)
}

func renderPricing(ctx RenderContext, prefix string, props content.Map) (string, []string) {
	var sb strings.Builder
	sb.WriteString(`<div class="` + class(prefix, "pricing") + `">`)
	writeHeading(&sb, prefix, "pricing-title", "h2", getString(props, "title"))
	writeParagraph(&sb, prefix, "pricing-subtitle", getString(props, "subtitle"))

	sb.WriteString(`<div class="` + class(prefix, "pricing-plans") + `">`)
	for _, plan := range getItems(props, "plans", "items") {
		planClass := class(prefix, "pricing-plan")
		if parseBool(plan["highlighted"], false) {
			planClass += " " + class(prefix, "pricing-plan--highlighted")
		}
		sb.WriteString(`<div class="` + planClass + `">`)
		writeHeading(&sb, prefix, "pricing-plan-name", "h3", getString(plan, "name"))
		sb.WriteString(`<p class="` + class(prefix, "pricing-plan-price") + `">` + esc(getString(plan, "price")))
		if period := getString(plan, "period"); period != "" {
			sb.WriteString(` <span class="` + class(prefix, "pricing-plan-period") + `">` + esc(period) + `</span>`)
		}
		sb.WriteString(`</p>`)
		writeParagraph(&sb, prefix, "pricing-plan-description", getString(plan, "description"))

		if features := getStrings(plan, "features"); len(features) > 0 {
			sb.WriteString(`<ul class="` + class(prefix, "pricing-plan-features") + `">`)
			for _, feature := range features {
				sb.WriteString(`<li>` + esc(feature) + `</li>`)
			}
			sb.WriteString(`</ul>`)
		}
		writeButton(&sb, prefix, "pricing-plan-button", content.Map{
			"text": getString(plan, "ctaText"),
			"link": getString(plan, "ctaLink"),
		}, getString(props, "onCtaClick"))
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)

	return sb.String(), nil
}
