package forms

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"page-builder-backend/internal/content"
)

var (
	ErrNotList         = errors.New("field is not a list")
	ErrNotObject       = errors.New("field is not an object")
	ErrIndexOutOfRange = errors.New("list index out of range")
	ErrFieldExists     = errors.New("field already exists")
	ErrFieldNotFound   = errors.New("field not found")
)

// ChangeFunc receives the re-serialised content after every edit.
type ChangeFunc func(contentJSON string)

// Editor applies form edits to one section's content. It never persists
// anything; callers observe edits through the change callback.
type Editor struct {
	mu       sync.Mutex
	content  content.Map
	onChange ChangeFunc
}

// NewEditor starts an editor over a private copy of c.
func NewEditor(c content.Map, onChange ChangeFunc) *Editor {
	return &Editor{content: content.Clone(c), onChange: onChange}
}

// Content returns a copy of the current content.
func (e *Editor) Content() content.Map {
	e.mu.Lock()
	defer e.mu.Unlock()
	return content.Clone(e.content)
}

// Fields builds the field descriptors for the current content.
func (e *Editor) Fields(opts Options) []Field {
	return Build(e.Content(), opts)
}

// SetField writes value at path, creating any missing scaffolding.
func (e *Editor) SetField(path string, value interface{}) error {
	return e.edit(func(c content.Map) error {
		return Set(c, path, content.CloneValue(value))
	})
}

// AddItem appends an element to the list at path. The new element copies the
// shape of the first element with blanked values; empty lists and lists of
// primitives get an empty string.
func (e *Editor) AddItem(path string) error {
	return e.edit(func(c content.Map) error {
		current, ok := Get(c, path)
		var list []interface{}
		if ok && current != nil {
			if list, ok = current.([]interface{}); !ok {
				return fmt.Errorf("%w: %s", ErrNotList, path)
			}
		}

		var item interface{} = ""
		if len(list) > 0 {
			if first, isObj := content.Object(list[0]); isObj {
				item = blank(map[string]interface{}(first))
			}
		}
		return Set(c, path, append(append([]interface{}{}, list...), item))
	})
}

// RemoveItem splices the element at index out of the list at path.
func (e *Editor) RemoveItem(path string, index int) error {
	return e.edit(func(c content.Map) error {
		current, ok := Get(c, path)
		list, isList := current.([]interface{})
		if !ok || !isList {
			return fmt.Errorf("%w: %s", ErrNotList, path)
		}
		if index < 0 || index >= len(list) {
			return fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, path, index)
		}
		Delete(c, IndexPath(path, index))
		return nil
	})
}

// AddField adds an empty string field named key to the object at path. An
// empty path addresses the top level.
func (e *Editor) AddField(path, key string) error {
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, ".[]") {
		return fmt.Errorf("%w: %q", ErrInvalidPath, key)
	}

	return e.edit(func(c content.Map) error {
		target := c
		if path != "" {
			current, ok := Get(c, path)
			if ok && current != nil {
				obj, isObj := content.Object(current)
				if !isObj {
					return fmt.Errorf("%w: %s", ErrNotObject, path)
				}
				target = obj
			} else {
				target = nil
			}
		}
		if target != nil {
			if _, exists := target[key]; exists {
				return fmt.Errorf("%w: %s", ErrFieldExists, ChildPath(path, key))
			}
		}
		return Set(c, ChildPath(path, key), "")
	})
}

// RemoveField deletes the key or list element at path.
func (e *Editor) RemoveField(path string) error {
	return e.edit(func(c content.Map) error {
		if !Delete(c, path) {
			return fmt.Errorf("%w: %s", ErrFieldNotFound, path)
		}
		return nil
	})
}

// edit applies fn to a working copy and commits it only when fn succeeds.
func (e *Editor) edit(fn func(content.Map) error) error {
	e.mu.Lock()
	working := content.Clone(e.content)
	if err := fn(working); err != nil {
		e.mu.Unlock()
		return err
	}
	encoded, err := content.Encode(working)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.content = working
	onChange := e.onChange
	e.mu.Unlock()

	if onChange != nil {
		onChange(encoded)
	}
	return nil
}

func blank(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, child := range v {
			out[key] = blank(child)
		}
		return out
	case content.Map:
		return blank(map[string]interface{}(v))
	case []interface{}:
		return []interface{}{}
	case string:
		return ""
	case float64:
		return float64(0)
	case int:
		return 0
	case bool:
		return false
	default:
		return nil
	}
}
