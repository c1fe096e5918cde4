package sections

import (
	"strings"

	"page-builder-backend/internal/content"
)

// RegisterImageText registers the media-and-copy module, also used for rich text.
func RegisterImageText(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(PathImageText, renderImageText)
}

func renderImageText(ctx RenderContext, prefix string, props content.Map) (string, []string) {
	image := getString(props, "image")
	position := strings.ToLower(getString(props, "imagePosition"))
	if position != "left" {
		position = "right"
	}

	blockClass := class(prefix, "image-text")
	if image != "" {
		blockClass += " " + class(prefix, "image-text--"+position)
	}

	var sb strings.Builder
	sb.WriteString(`<div class="` + blockClass + `">`)
	if image != "" {
		alt := getString(props, "imageAlt")
		if alt == "" {
			alt = getString(props, "title")
		}
		sb.WriteString(`<div class="` + class(prefix, "image-text-media") + `">`)
		writeImage(&sb, prefix, "image-text-img", image, alt)
		sb.WriteString(`</div>`)
	}

	sb.WriteString(`<div class="` + class(prefix, "image-text-body") + `">`)
	writeHeading(&sb, prefix, "image-text-title", "h2", getString(props, "title"))
	if body := getString(props, "content"); body != "" {
		sb.WriteString(`<div class="` + class(prefix, "image-text-content") + `">` + ctx.Markdown(body) + `</div>`)
	}
	writeButton(&sb, prefix, "image-text-button", getMap(props, "ctaButton"), getString(props, "onCtaClick"))
	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)

	return sb.String(), nil
}
