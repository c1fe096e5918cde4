package sections

import (
	"strings"

	"page-builder-backend/internal/content"
)

// RegisterFAQ registers the accordion module.
func RegisterFAQ(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(PathFAQ, renderFAQ)
}

func renderFAQ(ctx RenderContext, prefix string, props content.Map) (string, []string) {
	var sb strings.Builder
	sb.WriteString(`<div class="` + class(prefix, "faq") + `">`)
	writeHeading(&sb, prefix, "faq-title", "h2", getString(props, "title"))
	writeParagraph(&sb, prefix, "faq-subtitle", getString(props, "subtitle"))

	items := getItems(props, "faqs", "items")
	if len(items) == 0 {
		sb.WriteString(`<p class="` + class(prefix, "faq-empty") + `">No questions yet.</p>`)
	}
	for _, item := range items {
		sb.WriteString(`<details class="` + class(prefix, "faq-item") + `">`)
		sb.WriteString(`<summary class="` + class(prefix, "faq-question") + `">` + esc(getString(item, "question")) + `</summary>`)
		sb.WriteString(`<div class="` + class(prefix, "faq-answer") + `">` + ctx.Markdown(getString(item, "answer")) + `</div>`)
		sb.WriteString(`</details>`)
	}
	sb.WriteString(`</div>`)

	return sb.String(), nil
}
