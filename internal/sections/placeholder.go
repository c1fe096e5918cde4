package sections

import "strings"

// Placeholder renders the inline notice shown when a tag cannot be resolved.
func Placeholder(tag, reason string) string {
	if strings.TrimSpace(reason) == "" {
		reason = "Component not found"
	}

	var sb strings.Builder
	sb.WriteString(`<div class="pb-placeholder" data-component="` + esc(tag) + `">`)
	sb.WriteString(`<strong>` + esc(reason) + `</strong>`)
	if tag != "" {
		sb.WriteString(` <code>` + esc(tag) + `</code>`)
	}
	sb.WriteString(`</div>`)
	return sb.String()
}
