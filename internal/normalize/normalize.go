package normalize

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"page-builder-backend/internal/content"
	"page-builder-backend/internal/forms"
	"page-builder-backend/pkg/logger"
)

// CommonArrayKeys are the list keys the generic normalizer promotes to items,
// in priority order.
var CommonArrayKeys = []string{
	"items", "steps", "benefits", "features", "faqs", "plans", "cards",
	"services", "stats", "testimonials", "members", "logos", "events",
}

var (
	mu     sync.RWMutex
	lookup = buildLookup()
)

func buildLookup() map[string]string {
	out := make(map[string]string, len(specs))
	for tag := range specs {
		out[strings.ToLower(tag)] = tag
	}
	return out
}

// Register adds or replaces the spec for tag.
func Register(tag string, spec Spec) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	specs[tag] = spec
	lookup[strings.ToLower(tag)] = tag
}

func specFor(tag string) (Spec, bool) {
	tag = strings.TrimSpace(tag)
	mu.RLock()
	defer mu.RUnlock()
	if spec, ok := specs[tag]; ok {
		return spec, true
	}
	if canonical, ok := lookup[strings.ToLower(tag)]; ok {
		return specs[canonical], true
	}
	return Spec{}, false
}

// Registered reports whether tag has a dedicated mapping.
func Registered(tag string) bool {
	_, ok := specFor(tag)
	return ok
}

// Tags lists the component types with a dedicated mapping.
func Tags() []string {
	mu.RLock()
	tags := make([]string, 0, len(specs))
	for tag := range specs {
		tags = append(tags, tag)
	}
	mu.RUnlock()
	sort.Strings(tags)
	return tags
}

// Normalize maps raw into the prop shape of tag. It never mutates raw and
// never panics; a failing mapping falls back to the literal defaults.
func Normalize(tag string, raw content.Map) (out content.Map) {
	if raw == nil {
		raw = content.Map{}
	}

	spec, ok := specFor(tag)
	defer func() {
		if r := recover(); r != nil {
			logger.Error(fmt.Errorf("%v", r), "Content normalization failed, using defaults", map[string]interface{}{
				"component_type": tag,
			})
			out = safeDefaults(spec, ok)
		}
	}()

	if !ok {
		return generic(raw)
	}
	return apply(spec, raw)
}

// NormalizeJSON is Normalize for a contentJson string. Malformed input is
// logged and normalized as empty content.
func NormalizeJSON(tag, raw string) content.Map {
	return Normalize(tag, content.ParseOrEmpty(raw))
}

// Defaults returns the props produced for empty content.
func Defaults(tag string) content.Map {
	return Normalize(tag, content.Map{})
}

func safeDefaults(spec Spec, ok bool) (out content.Map) {
	defer func() {
		if r := recover(); r != nil {
			out = content.Map{}
		}
	}()
	if !ok {
		return content.Map{"items": []interface{}{}}
	}
	return apply(spec, content.Map{})
}

func apply(spec Spec, raw content.Map) content.Map {
	out := content.Map{}
	for _, field := range spec.Fields {
		out[field.Key] = resolveField(field, raw, raw)
	}
	for _, object := range spec.Objects {
		out[object.Key] = map[string]interface{}(resolveObject(object, raw))
	}
	for _, list := range spec.Lists {
		out[list.Key] = resolveList(list, raw)
	}
	return out
}

func resolveField(field Field, scope, root interface{}) interface{} {
	for _, path := range field.Aliases {
		if value, ok := forms.Get(scope, path); ok {
			if coerced, ok := coerce(field.As, value); ok {
				return coerced
			}
		}
	}
	for _, path := range field.Root {
		if value, ok := forms.Get(root, path); ok {
			if coerced, ok := coerce(field.As, value); ok {
				return coerced
			}
		}
	}
	return content.CloneValue(field.Default)
}

func resolveObject(object Object, root content.Map) content.Map {
	var scope interface{} = content.Map{}
	for _, path := range object.Aliases {
		if value, ok := forms.Get(root, path); ok {
			if obj, isObj := content.Object(value); isObj {
				scope = obj
				break
			}
		}
	}

	out := content.Map{}
	for _, field := range object.Fields {
		out[field.Key] = resolveField(field, scope, root)
	}
	return out
}

func resolveList(list List, root content.Map) []interface{} {
	source := list.Default
	for _, path := range list.Aliases {
		if value, ok := forms.Get(root, path); ok {
			if items, isList := value.([]interface{}); isList && len(items) > 0 {
				source = items
				break
			}
		}
	}

	out := make([]interface{}, 0, len(source))
	for i, elem := range source {
		if list.Strings {
			if s, ok := coerceString(elem); ok {
				out = append(out, s)
			}
			continue
		}
		out = append(out, map[string]interface{}(resolveItem(list, i, elem, root)))
	}
	return out
}

func resolveItem(list List, index int, elem interface{}, root content.Map) content.Map {
	scope, ok := content.Object(elem)
	if !ok {
		scope = content.Map{}
		if s, isString := coerceString(elem); isString && list.Title != "" {
			scope[list.Title] = s
		}
	}

	item := content.Map{}
	for _, field := range list.Item {
		item[field.Key] = resolveField(field, scope, root)
	}
	if list.Title != "" && list.Placeholder != "" {
		if title, _ := item[list.Title].(string); strings.TrimSpace(title) == "" {
			item[list.Title] = fmt.Sprintf(list.Placeholder, index+1)
		}
	}
	if list.Index != "" {
		if n, _ := item[list.Index].(float64); n <= 0 {
			item[list.Index] = float64(index + 1)
		}
	}
	return item
}

func coerce(kind Kind, value interface{}) (interface{}, bool) {
	switch kind {
	case String:
		return coerceString(value)
	case Number:
		return coerceNumber(value)
	case Bool:
		return coerceBool(value)
	case Strings:
		return coerceStrings(value)
	case Variant:
		s, ok := value.(string)
		if !ok || !forms.IsVariant(s) {
			return nil, false
		}
		return forms.ValidateVariant(s), true
	default:
		if value == nil {
			return nil, false
		}
		return content.CloneValue(value), true
	}
}

func coerceString(value interface{}) (string, bool) {
	if s, ok := value.(string); ok {
		if strings.TrimSpace(s) == "" {
			return "", false
		}
		return s, true
	}
	if n, ok := numeric(value); ok {
		return strconv.FormatFloat(n, 'f', -1, 64), true
	}
	return "", false
}

func coerceNumber(value interface{}) (float64, bool) {
	if s, ok := value.(string); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return n, err == nil
	}
	return numeric(value)
}

func coerceBool(value interface{}) (bool, bool) {
	if b, ok := value.(bool); ok {
		return b, true
	}
	if s, ok := value.(string); ok {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1", "yes", "on":
			return true, true
		case "false", "0", "no", "off":
			return false, true
		}
		return false, false
	}
	if n, ok := numeric(value); ok {
		return n != 0, true
	}
	return false, false
}

// numeric covers the number types JSON and YAML decoders produce.
func numeric(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

// coerceStrings accepts a list of strings (objects contribute their text,
// title, name or label) or a newline-separated string.
func coerceStrings(value interface{}) ([]interface{}, bool) {
	var out []interface{}
	switch v := value.(type) {
	case []interface{}:
		for _, elem := range v {
			if obj, ok := content.Object(elem); ok {
				for _, key := range []string{"text", "title", "name", "label"} {
					if s, ok := coerceString(obj[key]); ok {
						out = append(out, s)
						break
					}
				}
				continue
			}
			if s, ok := coerceString(elem); ok {
				out = append(out, s)
			}
		}
	case string:
		for _, line := range strings.Split(v, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
	}
	return out, len(out) > 0
}

// generic keeps every key of raw and promotes the first common list to items.
func generic(raw content.Map) content.Map {
	out := content.Clone(raw)
	out["items"] = []interface{}{}
	for _, key := range CommonArrayKeys {
		if list, ok := raw[key].([]interface{}); ok {
			out[key] = content.CloneValue(list)
			out["items"] = content.CloneValue(list)
			break
		}
	}
	return out
}
