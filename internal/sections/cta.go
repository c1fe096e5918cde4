package sections

import (
	"strings"

	"page-builder-backend/internal/content"
)

// RegisterCTA registers the call-to-action and newsletter modules.
func RegisterCTA(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(PathCTA, renderCTA)
	reg.RegisterSafe(PathNewsletter, renderNewsletter)
}

func variantClass(prefix, block string, props content.Map, fallback string) string {
	variant := getString(props, "variant")
	if variant == "" {
		variant = fallback
	}
	return class(prefix, block) + " " + class(prefix, block+"--"+variant)
}

func renderCTA(ctx RenderContext, prefix string, props content.Map) (string, []string) {
	var sb strings.Builder
	sb.WriteString(`<div class="` + variantClass(prefix, "cta", props, "primary") + `">`)
	writeHeading(&sb, prefix, "cta-title", "h2", getString(props, "title"))
	if description := getString(props, "description"); description != "" {
		sb.WriteString(`<div class="` + class(prefix, "cta-text") + `">` + ctx.Markdown(description) + `</div>`)
	}
	sb.WriteString(`<div class="` + class(prefix, "cta-actions") + `">`)
	writeButton(&sb, prefix, "cta-button", getMap(props, "ctaButton"), getString(props, "onCtaClick"))
	writeButton(&sb, prefix, "cta-button-secondary", getMap(props, "secondaryButton"), getString(props, "onSecondaryClick"))
	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)

	return sb.String(), nil
}

func renderNewsletter(ctx RenderContext, prefix string, props content.Map) (string, []string) {
	action := getString(props, "onSubmit")
	if action == "" {
		action = "#"
	}

	var sb strings.Builder
	sb.WriteString(`<div class="` + class(prefix, "newsletter") + `">`)
	writeHeading(&sb, prefix, "newsletter-title", "h2", getString(props, "title"))
	writeParagraph(&sb, prefix, "newsletter-text", getString(props, "description"))
	sb.WriteString(`<form class="` + class(prefix, "newsletter-form") + `" method="post" action="` + esc(action) + `">`)
	sb.WriteString(`<input type="email" name="email" required placeholder="` + esc(getString(props, "placeholder")) + `" />`)
	sb.WriteString(`<button type="submit">` + esc(getString(props, "buttonText")) + `</button>`)
	sb.WriteString(`</form>`)
	writeParagraph(&sb, prefix, "newsletter-disclaimer", getString(props, "disclaimer"))
	sb.WriteString(`</div>`)

	return sb.String(), nil
}
