package sections

import (
	"strings"

	"page-builder-backend/internal/content"
)

// RegisterTestimonials registers the quote module.
func RegisterTestimonials(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(PathTestimonials, renderTestimonials)
}

func renderTestimonials(ctx RenderContext, prefix string, props content.Map) (string, []string) {
	var sb strings.Builder
	sb.WriteString(`<div class="` + class(prefix, "testimonials") + `">`)
	writeHeading(&sb, prefix, "testimonials-title", "h2", getString(props, "title"))

	for _, item := range getItems(props, "testimonials", "items") {
		sb.WriteString(`<figure class="` + class(prefix, "testimonial") + `">`)
		sb.WriteString(`<blockquote class="` + class(prefix, "testimonial-quote") + `">` + esc(getString(item, "quote")) + `</blockquote>`)

		sb.WriteString(`<figcaption class="` + class(prefix, "testimonial-author") + `">`)
		writeImage(&sb, prefix, "testimonial-avatar", getString(item, "avatar"), getString(item, "author"))
		sb.WriteString(`<strong>` + esc(getString(item, "author")) + `</strong>`)

		var details []string
		for _, key := range []string{"role", "company"} {
			if value := getString(item, key); value != "" {
				details = append(details, value)
			}
		}
		if len(details) > 0 {
			sb.WriteString(` <span>` + esc(strings.Join(details, ", ")) + `</span>`)
		}
		sb.WriteString(`</figcaption>`)

		if rating := getString(item, "rating"); rating != "" {
			sb.WriteString(`<span class="` + class(prefix, "testimonial-rating") + `" data-rating="` + esc(rating) + `"></span>`)
		}
		sb.WriteString(`</figure>`)
	}
	sb.WriteString(`</div>`)

	return sb.String(), nil
}
