package sections

import (
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"page-builder-backend/internal/content"
)

func getString(props content.Map, key string) string {
	if props == nil {
		return ""
	}
	switch v := props[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func getMap(props content.Map, key string) content.Map {
	if obj, ok := content.Object(props[key]); ok {
		return obj
	}
	return content.Map{}
}

// getItems returns the object elements of the first list present under keys.
func getItems(props content.Map, keys ...string) []content.Map {
	for _, key := range keys {
		list, ok := props[key].([]interface{})
		if !ok || len(list) == 0 {
			continue
		}
		items := make([]content.Map, 0, len(list))
		for _, elem := range list {
			if obj, ok := content.Object(elem); ok {
				items = append(items, obj)
			}
		}
		return items
	}
	return nil
}

func getStrings(props content.Map, key string) []string {
	list, _ := props[key].([]interface{})
	out := make([]string, 0, len(list))
	for _, elem := range list {
		if s, ok := elem.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseBool(value interface{}, fallback bool) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		trimmed := strings.TrimSpace(strings.ToLower(v))
		switch trimmed {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		default:
			return fallback
		}
	default:
		return fallback
	}
}

func esc(value string) string {
	return template.HTMLEscapeString(value)
}

func class(prefix, name string) string {
	return prefix + "__" + name
}

func writeHeading(sb *strings.Builder, prefix, block, tag, text string) {
	if text == "" {
		return
	}
	sb.WriteString(`<` + tag + ` class="` + class(prefix, block) + `">` + esc(text) + `</` + tag + `>`)
}

func writeParagraph(sb *strings.Builder, prefix, block, text string) {
	if text == "" {
		return
	}
	sb.WriteString(`<p class="` + class(prefix, block) + `">` + esc(text) + `</p>`)
}

func writeButton(sb *strings.Builder, prefix, block string, button content.Map, action string) {
	text := getString(button, "text")
	if text == "" {
		return
	}
	link := safeURL(getString(button, "link"))
	if link == "" {
		link = "#"
	}
	sb.WriteString(`<a class="` + class(prefix, block) + `" href="` + esc(link) + `"`)
	if action != "" {
		sb.WriteString(` data-action="` + esc(action) + `"`)
	}
	sb.WriteString(`>` + esc(text) + `</a>`)
}

func writeImage(sb *strings.Builder, prefix, block, src, alt string) {
	src = safeURL(src, "data")
	if src == "" {
		return
	}
	sb.WriteString(`<img class="` + class(prefix, block) + `" src="` + esc(src) + `" alt="` + esc(alt) + `" loading="lazy" />`)
}

var linkSchemes = map[string]bool{"http": true, "https": true, "mailto": true, "tel": true}

// safeURL returns raw when it is relative or uses http, https, mailto, tel or
// one of extra. Anything else, javascript: included, becomes "#".
func safeURL(raw string, extra ...string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "#"
	}
	if u.Scheme == "" || linkSchemes[u.Scheme] {
		return raw
	}
	for _, scheme := range extra {
		if u.Scheme == scheme {
			return raw
		}
	}
	return "#"
}
