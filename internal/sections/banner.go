package sections

import (
	"strings"

	"page-builder-backend/internal/content"
)

const bannerScript = `document.querySelectorAll('[data-dismiss="banner"]').forEach(function(btn){btn.addEventListener('click',function(){var el=btn.closest('[data-banner]');if(el){el.remove();}});});`

// RegisterAlertBanner registers the dismissible notice module.
func RegisterAlertBanner(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(PathAlertBanner, renderAlertBanner)
}

func renderAlertBanner(ctx RenderContext, prefix string, props content.Map) (string, []string) {
	message := getString(props, "message")
	if message == "" {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString(`<div class="` + variantClass(prefix, "banner", props, "info") + `" role="status" data-banner>`)
	sb.WriteString(`<span class="` + class(prefix, "banner-message") + `">` + esc(message) + `</span>`)
	if linkText := getString(props, "linkText"); linkText != "" {
		writeButton(&sb, prefix, "banner-link", content.Map{"text": linkText, "link": getString(props, "linkUrl")}, "")
	}

	var scripts []string
	if parseBool(props["dismissible"], true) {
		sb.WriteString(`<button type="button" class="` + class(prefix, "banner-close") + `" data-dismiss="banner" aria-label="Dismiss">&times;</button>`)
		scripts = append(scripts, bannerScript)
	}
	sb.WriteString(`</div>`)

	return sb.String(), scripts
}
