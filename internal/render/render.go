package render

import (
	"fmt"
	"html/template"
	"runtime/debug"
	"strings"
	"time"

	"page-builder-backend/internal/content"
	"page-builder-backend/internal/metrics"
	"page-builder-backend/internal/models"
	"page-builder-backend/internal/normalize"
	"page-builder-backend/internal/sections"
	"page-builder-backend/pkg/logger"
)

// Mode selects between the admin preview and the public page.
type Mode int

const (
	ModePublic Mode = iota
	ModePreview
)

func (m Mode) String() string {
	if m == ModePreview {
		return "preview"
	}
	return "public"
}

const classPrefix = "pb"

// Action props every section receives when its content leaves them unset.
var defaultActions = []string{"onCtaClick", "onSecondaryClick", "onSubmit"}

// Result is the rendered markup of a page plus the inline scripts its sections asked for.
type Result struct {
	HTML    string
	Scripts []string
}

// Renderer assembles pages from stored sections.
type Renderer struct {
	registry *sections.Registry
	ctx      sections.RenderContext
}

// New builds a renderer. Nil arguments fall back to the built-in registry and HTML context.
func New(registry *sections.Registry, ctx sections.RenderContext) *Renderer {
	if registry == nil {
		registry = sections.DefaultRegistry()
	}
	if ctx == nil {
		ctx = sections.NewHTMLContext()
	}
	return &Renderer{registry: registry, ctx: ctx}
}

// VisibleSections returns the sections flagged visible, in their original order.
func VisibleSections(list []models.Section) []models.Section {
	out := make([]models.Section, 0, len(list))
	for _, section := range list {
		if section.IsVisible {
			out = append(out, section)
		}
	}
	return out
}

// Props normalizes stored content for tag and fills in the default actions.
// Action props present in the stored content are kept as they are.
func Props(tag string, stored content.Map) content.Map {
	props := normalize.Normalize(tag, stored)
	for key, value := range stored {
		if strings.HasPrefix(key, "on") {
			props[key] = value
		}
	}
	for _, key := range defaultActions {
		if s, ok := props[key].(string); !ok || strings.TrimSpace(s) == "" {
			props[key] = "#"
		}
	}
	return props
}

// RenderPage renders the sections of page in order. Public mode skips hidden
// sections; preview mode shows them behind a marker.
func (r *Renderer) RenderPage(page models.Page, mode Mode) Result {
	started := time.Now()
	defer metrics.ObservePageRender(mode.String(), started)

	list := append([]models.Section(nil), page.Sections...)
	models.SortSections(list)
	if mode == ModePublic {
		list = VisibleSections(list)
	}

	var (
		sb      strings.Builder
		scripts []string
		seen    = make(map[string]struct{})
	)
	for _, section := range list {
		html, sectionScripts := r.RenderSection(section, mode)
		sb.WriteString(html)
		for _, script := range sectionScripts {
			if _, ok := seen[script]; ok {
				continue
			}
			seen[script] = struct{}{}
			scripts = append(scripts, script)
		}
	}

	return Result{HTML: sb.String(), Scripts: scripts}
}

// RenderSection renders one section inside its themed wrapper. It never panics.
func (r *Renderer) RenderSection(section models.Section, mode Mode) (string, []string) {
	body, scripts := r.renderBody(section, mode)

	var sb strings.Builder
	sb.WriteString(`<section class="pb-section theme-` + section.Theme.OrDefault().Name())
	if !section.IsVisible {
		sb.WriteString(` pb-section--hidden`)
	}
	sb.WriteString(`" data-component="` + escape(section.ComponentType) + `"`)
	if section.ID != 0 {
		sb.WriteString(fmt.Sprintf(` data-section-id="%d"`, section.ID))
	}
	sb.WriteString(`>`)
	if mode == ModePreview && !section.IsVisible {
		sb.WriteString(`<div class="pb-hidden-marker">Hidden section</div>`)
	}
	sb.WriteString(body)
	sb.WriteString(`</section>`)

	return sb.String(), scripts
}

func (r *Renderer) renderBody(section models.Section, mode Mode) (html string, scripts []string) {
	renderer, err := r.resolve(section.ComponentType)
	if err != nil {
		metrics.RenderFailed("not_found")
		logger.Warn("Section component could not be resolved", map[string]interface{}{
			"component":  section.ComponentType,
			"section_id": section.ID,
		})
		return sections.Placeholder(section.ComponentType, "Component not found"), nil
	}

	props := Props(section.ComponentType, section.Content)

	defer func() {
		if rec := recover(); rec != nil {
			metrics.RenderFailed("panic")
			panicErr := fmt.Errorf("render panic: %v", rec)
			logger.Error(panicErr, "Section renderer panicked", map[string]interface{}{
				"component":  section.ComponentType,
				"section_id": section.ID,
			})
			html = errorPanel(section, props, rec, debug.Stack(), mode)
			scripts = nil
		}
	}()

	return renderer(r.ctx, classPrefix, props)
}

// resolve finds the renderer for tag. Tags the normalizer knows but no module
// is aliased to are drawn by the generic layout.
func (r *Renderer) resolve(tag string) (sections.Renderer, error) {
	renderer, err := r.registry.Create(tag)
	if err != nil && normalize.Registered(tag) {
		if generic, genericErr := r.registry.Load(sections.PathGeneric); genericErr == nil {
			return generic, nil
		}
	}
	return renderer, err
}

func errorPanel(section models.Section, props content.Map, rec interface{}, stack []byte, mode Mode) string {
	var sb strings.Builder
	sb.WriteString(`<div class="pb-error" role="alert" style="border:2px solid #dc2626;background:#fef2f2;color:#991b1b;padding:1rem">`)
	sb.WriteString(`<strong>Failed to render ` + escape(section.ComponentName) + `</strong>`)
	if mode == ModePreview {
		sb.WriteString(`<p>` + escape(fmt.Sprint(rec)) + `</p>`)
		sb.WriteString(`<pre class="pb-error__stack">` + escape(string(stack)) + `</pre>`)
		if encoded, err := content.Encode(props); err == nil {
			sb.WriteString(`<pre class="pb-error__props">` + escape(encoded) + `</pre>`)
		}
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

func escape(value string) string {
	return template.HTMLEscapeString(value)
}
