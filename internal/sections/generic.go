package sections

import (
	"strings"

	"page-builder-backend/internal/content"
)

// RegisterGeneric registers the fallback module for tags without a dedicated layout.
func RegisterGeneric(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(PathGeneric, renderGeneric)
}

func renderGeneric(ctx RenderContext, prefix string, props content.Map) (string, []string) {
	var sb strings.Builder
	sb.WriteString(`<div class="` + class(prefix, "generic") + `">`)
	writeHeading(&sb, prefix, "generic-title", "h2", getString(props, "title"))
	if description := getString(props, "description"); description != "" {
		sb.WriteString(`<div class="` + class(prefix, "generic-text") + `">` + ctx.Markdown(description) + `</div>`)
	}
	if body := getString(props, "content"); body != "" {
		sb.WriteString(`<div class="` + class(prefix, "generic-content") + `">` + ctx.Markdown(body) + `</div>`)
	}

	if items := getItems(props, "items"); len(items) > 0 {
		sb.WriteString(`<ul class="` + class(prefix, "generic-items") + `">`)
		for _, item := range items {
			sb.WriteString(`<li>`)
			writeHeading(&sb, prefix, "generic-item-title", "h3", firstString(item, "title", "name", "label", "question"))
			writeParagraph(&sb, prefix, "generic-item-text", firstString(item, "description", "text", "answer"))
			sb.WriteString(`</li>`)
		}
		sb.WriteString(`</ul>`)
	}
	sb.WriteString(`</div>`)

	return sb.String(), nil
}
