// Package content holds the structured section payload and its transport codec.
//
// Section content lives as a Map everywhere inside the process and is turned
// into the contentJson string only when it crosses the storage or HTTP boundary.
package content

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"page-builder-backend/pkg/logger"
)

// ErrNotObject is returned when a payload parses as JSON but is not an object.
var ErrNotObject = errors.New("content is not a JSON object")

// Map is a parsed content payload.
type Map map[string]interface{}

// Parse decodes a contentJson string. An empty or whitespace-only string is an
// empty map.
func Parse(raw string) (Map, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return Map{}, nil
	}

	var decoded interface{}
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return Map{}, fmt.Errorf("parse content: %w", err)
	}

	obj, ok := decoded.(map[string]interface{})
	if !ok {
		return Map{}, ErrNotObject
	}
	return Map(obj), nil
}

// ParseOrEmpty is Parse for render and normalisation paths: failures are logged
// and replaced with an empty map.
func ParseOrEmpty(raw string) Map {
	parsed, err := Parse(raw)
	if err != nil {
		logger.Warn("Invalid content payload, treating as empty", map[string]interface{}{
			"error":  err.Error(),
			"length": len(raw),
		})
		onParseFailure()
		return Map{}
	}
	return parsed
}

// FromValue accepts an already-decoded value (for example the legacy content
// field of a request). Anything that is not an object becomes an empty map.
func FromValue(value interface{}) (Map, error) {
	switch v := value.(type) {
	case nil:
		return Map{}, nil
	case Map:
		return Clone(v), nil
	case map[string]interface{}:
		return Clone(Map(v)), nil
	case string:
		return Parse(v)
	default:
		return Map{}, ErrNotObject
	}
}

// Encode serialises m into its transport form.
func Encode(m Map) (string, error) {
	if m == nil {
		return "{}", nil
	}
	encoded, err := json.Marshal(map[string]interface{}(m))
	if err != nil {
		return "", fmt.Errorf("encode content: %w", err)
	}
	return string(encoded), nil
}

// MustEncode is Encode for maps built from JSON-safe values.
func MustEncode(m Map) string {
	encoded, err := Encode(m)
	if err != nil {
		panic(err)
	}
	return encoded
}

// Clone returns a deep copy of m.
func Clone(m Map) Map {
	if m == nil {
		return Map{}
	}
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = CloneValue(v)
	}
	return out
}

// CloneValue deep-copies nested maps and slices; other values are returned as is.
func CloneValue(value interface{}) interface{} {
	switch v := value.(type) {
	case Map:
		return map[string]interface{}(Clone(v))
	case map[string]interface{}:
		return map[string]interface{}(Clone(Map(v)))
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = CloneValue(item)
		}
		return out
	case []string:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out
	case []map[string]interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = map[string]interface{}(Clone(Map(item)))
		}
		return out
	default:
		return v
	}
}

// Merge deep-merges overlay on top of base. Nested objects are merged key by
// key; every other value in overlay replaces the base value. Neither input is
// modified.
func Merge(base, overlay Map) Map {
	out := Clone(base)
	for k, v := range overlay {
		existing, hasExisting := out[k].(map[string]interface{})
		incoming, isMap := asObject(v)
		if hasExisting && isMap {
			out[k] = map[string]interface{}(Merge(Map(existing), Map(incoming)))
			continue
		}
		out[k] = CloneValue(v)
	}
	return out
}

// Object returns value as a map when it is a JSON object.
func Object(value interface{}) (Map, bool) {
	obj, ok := asObject(value)
	return Map(obj), ok
}

func asObject(value interface{}) (map[string]interface{}, bool) {
	switch v := value.(type) {
	case Map:
		return map[string]interface{}(v), true
	case map[string]interface{}:
		return v, true
	default:
		return nil, false
	}
}

// Value implements driver.Valuer; content is stored as text.
func (m Map) Value() (driver.Value, error) {
	return Encode(m)
}

// Scan implements sql.Scanner. Rows holding malformed content scan as empty.
func (m *Map) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = Map{}
	case string:
		*m = ParseOrEmpty(v)
	case []byte:
		*m = ParseOrEmpty(string(v))
	default:
		return fmt.Errorf("content: unsupported scan type %T", src)
	}
	return nil
}

// GormDataType keeps the column a plain text column across dialects.
func (Map) GormDataType() string {
	return "text"
}

var parseFailureHook func()

// OnParseFailure registers a callback invoked whenever ParseOrEmpty discards a
// payload. It is used to feed metrics.
func OnParseFailure(fn func()) {
	parseFailureHook = fn
}

func onParseFailure() {
	if parseFailureHook != nil {
		parseFailureHook()
	}
}
