package sections

import (
	"strings"

	"page-builder-backend/internal/content"
)

// RegisterHero registers the hero banner module.
func RegisterHero(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(PathHero, renderHero)
}

func renderHero(ctx RenderContext, prefix string, props content.Map) (string, []string) {
	title := getString(props, "title")
	subtitle := getString(props, "subtitle")
	description := getString(props, "description")
	image := getString(props, "image")
	background := getString(props, "backgroundImage")

	var sb strings.Builder
	sb.WriteString(`<div class="` + class(prefix, "hero") + `"`)
	if background != "" {
		sb.WriteString(` style="background-image:url('` + esc(background) + `')"`)
	}
	sb.WriteString(`>`)
	sb.WriteString(`<div class="` + class(prefix, "hero-content") + `">`)
	writeHeading(&sb, prefix, "hero-title", "h1", title)
	writeHeading(&sb, prefix, "hero-subtitle", "h2", subtitle)
	if description != "" {
		sb.WriteString(`<div class="` + class(prefix, "hero-text") + `">` + ctx.Markdown(description) + `</div>`)
	}

	sb.WriteString(`<div class="` + class(prefix, "hero-actions") + `">`)
	writeButton(&sb, prefix, "hero-button", getMap(props, "ctaButton"), getString(props, "onCtaClick"))
	writeButton(&sb, prefix, "hero-button-secondary", getMap(props, "secondaryButton"), getString(props, "onSecondaryClick"))
	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)

	if image != "" {
		sb.WriteString(`<div class="` + class(prefix, "hero-image") + `">`)
		writeImage(&sb, prefix, "hero-image-img", image, title)
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)

	return sb.String(), nil
}
