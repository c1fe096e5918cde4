package sections

import (
	"strconv"
	"strings"

	"page-builder-backend/internal/content"
)

// RegisterSteps registers the ordered steps module, also used for timelines.
func RegisterSteps(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(PathSteps, renderSteps)
}

func renderSteps(ctx RenderContext, prefix string, props content.Map) (string, []string) {
	var sb strings.Builder
	sb.WriteString(`<div class="` + class(prefix, "steps") + `">`)
	writeHeading(&sb, prefix, "steps-title", "h2", getString(props, "title"))
	writeParagraph(&sb, prefix, "steps-subtitle", getString(props, "subtitle"))

	sb.WriteString(`<ol class="` + class(prefix, "steps-list") + `">`)
	for i, step := range getItems(props, "steps", "events", "items") {
		marker := getString(step, "date")
		if marker == "" {
			marker = getString(step, "number")
		}
		if marker == "" {
			marker = strconv.Itoa(i + 1)
		}

		sb.WriteString(`<li class="` + class(prefix, "step") + `">`)
		sb.WriteString(`<span class="` + class(prefix, "step-marker") + `">` + esc(marker) + `</span>`)
		if icon := getString(step, "icon"); icon != "" {
			sb.WriteString(`<span class="` + class(prefix, "step-icon") + `" data-icon="` + esc(icon) + `"></span>`)
		}
		writeHeading(&sb, prefix, "step-title", "h3", getString(step, "title"))
		writeParagraph(&sb, prefix, "step-text", getString(step, "description"))
		sb.WriteString(`</li>`)
	}
	sb.WriteString(`</ol>`)
	sb.WriteString(`</div>`)

	return sb.String(), nil
}
