package sections

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"page-builder-backend/internal/content"
	"page-builder-backend/pkg/logger"
)

// ErrComponentNotFound is returned when a tag or module path has no renderer.
var ErrComponentNotFound = errors.New("component not found")

// RenderContext exposes the minimal capabilities required by section renderers.
type RenderContext interface {
	// SanitizeHTML cleans potentially unsafe markup before rendering.
	SanitizeHTML(input string) string
	// Markdown renders Markdown to sanitised HTML.
	Markdown(input string) string
}

// Renderer turns normalized props into HTML and optional inline scripts.
type Renderer func(ctx RenderContext, prefix string, props content.Map) (string, []string)

// Registry maps module paths to renderers and component tags to module paths.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	aliases   map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
		aliases:   make(map[string]string),
	}
}

func normalizeKey(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

// Register associates a renderer with a module path such as "marketing/hero".
func (r *Registry) Register(path string, renderer Renderer) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}

	path = normalizeKey(path)
	if path == "" {
		return fmt.Errorf("module path is empty")
	}
	if renderer == nil {
		return fmt.Errorf("renderer is nil for path %s", path)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[path] = renderer
	return nil
}

// MustRegister registers the renderer and panics if registration fails.
func (r *Registry) MustRegister(path string, renderer Renderer) {
	if err := r.Register(path, renderer); err != nil {
		panic(err)
	}
}

// RegisterSafe registers the renderer and logs instead of failing.
func (r *Registry) RegisterSafe(path string, renderer Renderer) {
	if err := r.Register(path, renderer); err != nil {
		logger.Error(err, "Failed to register section renderer", map[string]interface{}{"path": path})
	}
}

// Alias points a component tag at a registered module path.
func (r *Registry) Alias(tag, path string) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}

	tag = normalizeKey(tag)
	path = normalizeKey(path)
	if tag == "" || path == "" {
		return fmt.Errorf("alias needs both a tag and a path")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.renderers[path]; !ok {
		return fmt.Errorf("%w: path %s", ErrComponentNotFound, path)
	}
	r.aliases[tag] = path
	return nil
}

// ResolvePath returns the module path for a component tag.
func (r *Registry) ResolvePath(tag string) (string, bool) {
	if r == nil {
		return "", false
	}

	tag = normalizeKey(tag)
	if tag == "" {
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	path, ok := r.aliases[tag]
	return path, ok
}

// Load returns the renderer registered at path. It never panics.
func (r *Registry) Load(path string) (Renderer, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: registry is nil", ErrComponentNotFound)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[normalizeKey(path)]
	if !ok {
		return nil, fmt.Errorf("%w: path %q", ErrComponentNotFound, path)
	}
	return renderer, nil
}

// Create resolves tag and loads its renderer.
func (r *Registry) Create(tag string) (Renderer, error) {
	path, ok := r.ResolvePath(tag)
	if !ok {
		return nil, fmt.Errorf("%w: no module for %q", ErrComponentNotFound, tag)
	}
	return r.Load(path)
}

// Paths lists the registered module paths.
func (r *Registry) Paths() []string {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	paths := make([]string, 0, len(r.renderers))
	for path := range r.renderers {
		paths = append(paths, path)
	}
	r.mu.RUnlock()
	sort.Strings(paths)
	return paths
}

// Clone creates a copy of the registry with the same mappings.
func (r *Registry) Clone() *Registry {
	cloned := NewRegistry()
	if r == nil {
		return cloned
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for key, renderer := range r.renderers {
		cloned.renderers[key] = renderer
	}
	for tag, path := range r.aliases {
		cloned.aliases[tag] = path
	}
	return cloned
}
