package sections

import (
	"strings"

	"page-builder-backend/internal/content"
)

var cardListKeys = []string{"items", "benefits", "features", "services", "stats", "members", "logos", "cards"}

// RegisterCardGrid registers the grid module shared by benefit, feature,
// service, stat, team, logo and generic card sections.
func RegisterCardGrid(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(PathCardGrid, renderCardGrid)
}

func firstString(item content.Map, keys ...string) string {
	for _, key := range keys {
		if value := getString(item, key); value != "" {
			return value
		}
	}
	return ""
}

func renderCardGrid(ctx RenderContext, prefix string, props content.Map) (string, []string) {
	items := getItems(props, cardListKeys...)

	var sb strings.Builder
	sb.WriteString(`<div class="` + class(prefix, "cards") + `">`)
	writeHeading(&sb, prefix, "cards-title", "h2", getString(props, "title"))
	writeParagraph(&sb, prefix, "cards-subtitle", getString(props, "subtitle"))

	sb.WriteString(`<div class="` + class(prefix, "cards-list") + `">`)
	for _, item := range items {
		link := safeURL(firstString(item, "link", "linkedin"))
		tag := "div"
		if link != "" {
			tag = "a"
		}

		sb.WriteString(`<` + tag + ` class="` + class(prefix, "card") + `"`)
		if link != "" {
			sb.WriteString(` href="` + esc(link) + `"`)
		}
		sb.WriteString(`>`)

		writeImage(&sb, prefix, "card-image", firstString(item, "image", "avatar", "logo"), firstString(item, "title", "name"))
		if icon := getString(item, "icon"); icon != "" {
			sb.WriteString(`<span class="` + class(prefix, "card-icon") + `" data-icon="` + esc(icon) + `"></span>`)
		}
		if value := getString(item, "value"); value != "" {
			sb.WriteString(`<strong class="` + class(prefix, "card-value") + `">` + esc(value) + `</strong>`)
		}
		writeHeading(&sb, prefix, "card-title", "h3", firstString(item, "title", "name", "label"))
		writeParagraph(&sb, prefix, "card-role", getString(item, "role"))
		writeParagraph(&sb, prefix, "card-text", firstString(item, "description", "bio"))
		sb.WriteString(`</` + tag + `>`)
	}
	sb.WriteString(`</div>`)
	sb.WriteString(`</div>`)

	return sb.String(), nil
}
