package sections

import (
	"strings"

	"page-builder-backend/internal/content"
)

// RegisterContact registers the contact details and form module.
func RegisterContact(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(PathContact, renderContact)
}

func renderContact(ctx RenderContext, prefix string, props content.Map) (string, []string) {
	action := getString(props, "onSubmit")
	if action == "" {
		action = "#"
	}

	var sb strings.Builder
	sb.WriteString(`<div class="` + class(prefix, "contact") + `">`)
	writeHeading(&sb, prefix, "contact-title", "h2", getString(props, "title"))
	writeParagraph(&sb, prefix, "contact-text", getString(props, "description"))

	sb.WriteString(`<ul class="` + class(prefix, "contact-details") + `">`)
	if email := getString(props, "email"); email != "" {
		sb.WriteString(`<li><a href="mailto:` + esc(email) + `">` + esc(email) + `</a></li>`)
	}
	if phone := getString(props, "phone"); phone != "" {
		sb.WriteString(`<li><a href="tel:` + esc(phone) + `">` + esc(phone) + `</a></li>`)
	}
	if address := getString(props, "address"); address != "" {
		sb.WriteString(`<li>` + esc(address) + `</li>`)
	}
	sb.WriteString(`</ul>`)

	sb.WriteString(`<form class="` + class(prefix, "contact-form") + `" method="post" action="` + esc(action) + `">`)
	sb.WriteString(`<input type="text" name="name" required placeholder="Name" />`)
	sb.WriteString(`<input type="email" name="email" required placeholder="Email" />`)
	sb.WriteString(`<textarea name="message" rows="4" required placeholder="Message"></textarea>`)
	sb.WriteString(`<button type="submit">` + esc(getString(props, "submitText")) + `</button>`)
	sb.WriteString(`</form>`)
	sb.WriteString(`</div>`)

	return sb.String(), nil
}
