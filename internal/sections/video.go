package sections

import (
	"strings"

	"page-builder-backend/internal/content"
)

// RegisterVideo registers the embedded video module.
func RegisterVideo(reg *Registry) {
	if reg == nil {
		return
	}
	reg.RegisterSafe(PathVideo, renderVideo)
}

func renderVideo(ctx RenderContext, prefix string, props content.Map) (string, []string) {
	src := safeURL(getString(props, "videoUrl"))

	var sb strings.Builder
	sb.WriteString(`<div class="` + class(prefix, "video") + `">`)
	writeHeading(&sb, prefix, "video-title", "h2", getString(props, "title"))
	writeParagraph(&sb, prefix, "video-text", getString(props, "description"))

	if src == "" {
		sb.WriteString(`<p class="` + class(prefix, "video-empty") + `">No video selected.</p>`)
		sb.WriteString(`</div>`)
		return sb.String(), nil
	}

	sb.WriteString(`<video class="` + class(prefix, "video-player") + `" src="` + esc(src) + `" controls preload="metadata"`)
	if poster := safeURL(getString(props, "posterImage"), "data"); poster != "" {
		sb.WriteString(` poster="` + esc(poster) + `"`)
	}
	if parseBool(props["autoplay"], false) {
		sb.WriteString(` autoplay muted playsinline`)
	}
	sb.WriteString(`></video>`)
	sb.WriteString(`</div>`)

	return sb.String(), nil
}
