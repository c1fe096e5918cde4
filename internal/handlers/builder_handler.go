package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"page-builder-backend/internal/content"
	"page-builder-backend/internal/forms"
	"page-builder-backend/internal/models"
	"page-builder-backend/internal/normalize"
	"page-builder-backend/internal/render"
	"page-builder-backend/internal/schemas"
	"page-builder-backend/internal/sections"
)

// BuilderHandler serves the component palette, editor forms and previews the
// builder UI needs.
type BuilderHandler struct {
	schemas  *schemas.Registry
	renderer *render.Renderer
	routes   []string
}

func NewBuilderHandler(registry *schemas.Registry, renderer *render.Renderer, routeSuggestions []string) *BuilderHandler {
	if registry == nil {
		registry = schemas.Default()
	}
	if renderer == nil {
		renderer = render.New(nil, nil)
	}
	return &BuilderHandler{schemas: registry, renderer: renderer, routes: routeSuggestions}
}

func (h *BuilderHandler) lookup(c *gin.Context) (schemas.Entry, bool) {
	tag := c.Param("type")
	entry, ok := h.schemas.Lookup(tag)
	if !ok {
		respondError(c, fmt.Errorf("%w: %s", sections.ErrComponentNotFound, tag), "Failed to load component")
		return schemas.Entry{}, false
	}
	return entry, true
}

// Components lists the palette grouped by category.
// GET /api/builder/components
func (h *BuilderHandler) Components(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"components": h.schemas.List(),
		"categories": h.schemas.Categories(),
	})
}

// GET /api/builder/components/:type/defaults
func (h *BuilderHandler) Defaults(c *gin.Context) {
	entry, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"type":     entry.Type,
		"name":     entry.Name,
		"defaults": h.schemas.SeedContent(entry.Type),
	})
}

// Form describes the editor fields for the seeded content of a component.
// GET /api/builder/components/:type/form
func (h *BuilderHandler) Form(c *gin.Context) {
	entry, ok := h.lookup(c)
	if !ok {
		return
	}
	fields := forms.Build(h.schemas.SeedContent(entry.Type), forms.Options{
		RouteSuggestions: h.routes,
		MediaFields:      h.schemas.MediaFields(entry.Type),
	})
	c.JSON(http.StatusOK, gin.H{"type": entry.Type, "fields": fields})
}

// Normalize maps a raw content object onto the declared props of a component
// and reports schema issues of the raw content.
// POST /api/builder/normalize/:type
func (h *BuilderHandler) Normalize(c *gin.Context) {
	tag := c.Param("type")

	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		badRequest(c, err)
		return
	}

	input := content.Map(raw)
	issues := h.schemas.Validate(tag, input)
	if issues == nil {
		issues = []schemas.Issue{}
	}
	c.JSON(http.StatusOK, gin.H{
		"type":   tag,
		"props":  normalize.Normalize(tag, input),
		"issues": issues,
	})
}

// Preview renders a draft page. Hidden sections are shown with a marker
// unless mode=public is requested; format=json returns the fragments.
// POST /api/builder/preview
func (h *BuilderHandler) Preview(c *gin.Context) {
	var page models.Page
	if err := c.ShouldBindJSON(&page); err != nil {
		badRequest(c, err)
		return
	}

	mode := render.ModePreview
	if c.Query("mode") == "public" {
		mode = render.ModePublic
	}

	if c.Query("format") == "json" {
		result := h.renderer.RenderPage(page, mode)
		c.JSON(http.StatusOK, gin.H{"html": result.HTML, "scripts": result.Scripts})
		return
	}

	document, err := h.renderer.RenderDocument(page, mode)
	if err != nil {
		respondError(c, err, "Failed to render preview")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(document))
}
