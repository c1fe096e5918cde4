// Package schemas is the static catalog of section component types: their
// palette metadata, default content and JSON schema.
package schemas

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"page-builder-backend/internal/content"
)

// Entry describes one component type.
type Entry struct {
	Type        string                 `json:"type"`
	Name        string                 `json:"name"`
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
	Defaults    content.Map            `json:"defaults"`
	Schema      map[string]interface{} `json:"schema,omitempty"`
	Media       []string               `json:"media,omitempty"`
}

// Registry holds component entries keyed by type tag. Entries are read-only
// once registered.
type Registry struct {
	mu       sync.RWMutex
	entries  map[string]Entry
	lookup   map[string]string
	compiled map[string]*jsonschema.Schema
}

func NewRegistry() *Registry {
	return &Registry{
		entries:  make(map[string]Entry),
		lookup:   make(map[string]string),
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Register adds an entry. Declared media fields are collected from the schema
// when the entry does not list them.
func (r *Registry) Register(entry Entry) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}

	entry.Type = strings.TrimSpace(entry.Type)
	if entry.Type == "" {
		return fmt.Errorf("component type is empty")
	}
	if entry.Defaults == nil {
		entry.Defaults = content.Map{}
	}
	if len(entry.Media) == 0 {
		entry.Media = mediaFields(entry.Schema)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[entry.Type]; exists {
		return fmt.Errorf("component type %s already registered", entry.Type)
	}
	r.entries[entry.Type] = entry
	r.lookup[strings.ToLower(entry.Type)] = entry.Type
	return nil
}

// MustRegister registers the entry and panics if registration fails.
func (r *Registry) MustRegister(entry Entry) {
	if err := r.Register(entry); err != nil {
		panic(err)
	}
}

// Lookup finds an entry by tag. Exact matches win over case-insensitive ones.
func (r *Registry) Lookup(tag string) (Entry, bool) {
	if r == nil {
		return Entry{}, false
	}

	tag = strings.TrimSpace(tag)
	r.mu.RLock()
	defer r.mu.RUnlock()

	if entry, ok := r.entries[tag]; ok {
		return entry, true
	}
	if canonical, ok := r.lookup[strings.ToLower(tag)]; ok {
		return r.entries[canonical], true
	}
	return Entry{}, false
}

// Has reports whether tag is a known component type.
func (r *Registry) Has(tag string) bool {
	_, ok := r.Lookup(tag)
	return ok
}

// GetDefaultContent returns a copy of the default content for tag. Unknown tags
// get a generic placeholder instead of an error.
func (r *Registry) GetDefaultContent(tag string) content.Map {
	entry, ok := r.Lookup(tag)
	if !ok {
		return placeholderContent(tag)
	}
	return content.Clone(entry.Defaults)
}

// SchemaDefaults collects the default keywords of the entry schema.
func (r *Registry) SchemaDefaults(tag string) content.Map {
	entry, ok := r.Lookup(tag)
	if !ok || entry.Schema == nil {
		return content.Map{}
	}
	return collectDefaults(entry.Schema)
}

// SeedContent is the content a freshly added section starts with.
func (r *Registry) SeedContent(tag string) content.Map {
	return content.Merge(r.GetDefaultContent(tag), r.SchemaDefaults(tag))
}

// MediaFields returns the declared media field keys for tag.
func (r *Registry) MediaFields(tag string) []string {
	entry, ok := r.Lookup(tag)
	if !ok {
		return nil
	}
	return append([]string(nil), entry.Media...)
}

// List returns every entry sorted by palette category, then name.
func (r *Registry) List() []Entry {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	result := make([]Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		result = append(result, entry)
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].Category != result[j].Category {
			return result[i].Category < result[j].Category
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// Categories returns the distinct palette categories in sorted order.
func (r *Registry) Categories() []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, entry := range r.List() {
		if _, ok := seen[entry.Category]; ok {
			continue
		}
		seen[entry.Category] = struct{}{}
		categories = append(categories, entry.Category)
	}
	return categories
}

func placeholderContent(tag string) content.Map {
	label := strings.TrimSpace(tag)
	if label == "" {
		label = "Section"
	}
	return content.Map{
		"title":         label,
		"description":   "No default content is registered for this component.",
		"content":       "",
		"isPlaceholder": true,
	}
}

func collectDefaults(schema map[string]interface{}) content.Map {
	out := content.Map{}
	props, _ := schema["properties"].(map[string]interface{})
	for key, raw := range props {
		prop, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if def, ok := prop["default"]; ok {
			out[key] = content.CloneValue(def)
			continue
		}
		if _, nested := prop["properties"]; nested {
			if child := collectDefaults(prop); len(child) > 0 {
				out[key] = map[string]interface{}(child)
			}
		}
	}
	return out
}

func mediaFields(schema map[string]interface{}) []string {
	seen := make(map[string]struct{})
	var walk func(node map[string]interface{})
	walk = func(node map[string]interface{}) {
		props, _ := node["properties"].(map[string]interface{})
		for key, raw := range props {
			prop, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			if hint, _ := prop["x-field"].(string); hint == "media" {
				seen[key] = struct{}{}
			}
			walk(prop)
			if items, ok := prop["items"].(map[string]interface{}); ok {
				walk(items)
			}
		}
	}
	if schema != nil {
		walk(schema)
	}

	fields := make([]string, 0, len(seen))
	for key := range seen {
		fields = append(fields, key)
	}
	sort.Strings(fields)
	return fields
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry populated with the built-in catalog.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		for _, entry := range builtinCatalog() {
			defaultRegistry.MustRegister(entry)
		}
	})
	return defaultRegistry
}

func GetDefaultContent(tag string) content.Map { return Default().GetDefaultContent(tag) }

func SchemaDefaults(tag string) content.Map { return Default().SchemaDefaults(tag) }

func SeedContent(tag string) content.Map { return Default().SeedContent(tag) }

func MediaFields(tag string) []string { return Default().MediaFields(tag) }

func List() []Entry { return Default().List() }

func Lookup(tag string) (Entry, bool) { return Default().Lookup(tag) }

func Validate(tag string, c content.Map) []Issue { return Default().Validate(tag, c) }
