package forms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"page-builder-backend/internal/content"
)

// ErrInvalidPath is returned for paths that cannot be parsed.
var ErrInvalidPath = errors.New("invalid field path")

// Segment is one step of a field path: a map key or an array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

func (s Segment) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return s.Key
}

// ParsePath splits a dotted and bracketed path such as "features[2].title".
// Consecutive indices ("grid[1][0]") are supported.
func ParsePath(path string) ([]Segment, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	var segments []Segment
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			return nil, fmt.Errorf("%w: %q has an empty segment", ErrInvalidPath, path)
		}

		key := part
		if open := strings.IndexByte(part, '['); open >= 0 {
			key = part[:open]
			part = part[open:]
		} else {
			part = ""
		}
		if key != "" {
			segments = append(segments, Segment{Key: key})
		}

		for part != "" {
			closing := strings.IndexByte(part, ']')
			if part[0] != '[' || closing < 0 {
				return nil, fmt.Errorf("%w: %q has an unbalanced index", ErrInvalidPath, path)
			}
			index, err := strconv.Atoi(part[1:closing])
			if err != nil || index < 0 {
				return nil, fmt.Errorf("%w: %q has a bad index", ErrInvalidPath, path)
			}
			segments = append(segments, Segment{Index: index, IsIndex: true})
			part = part[closing+1:]
		}
	}
	return segments, nil
}

// JoinPath renders segments back into path notation.
func JoinPath(segments []Segment) string {
	var sb strings.Builder
	for i, seg := range segments {
		if !seg.IsIndex && i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(seg.String())
	}
	return sb.String()
}

// ChildPath appends a key to a parent path; an empty parent is the root.
func ChildPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// IndexPath appends an array index to a parent path.
func IndexPath(parent string, index int) string {
	return parent + "[" + strconv.Itoa(index) + "]"
}

// Get resolves path against value.
func Get(value interface{}, path string) (interface{}, bool) {
	segments, err := ParsePath(path)
	if err != nil {
		return nil, false
	}

	current := value
	for _, seg := range segments {
		if seg.IsIndex {
			list, ok := current.([]interface{})
			if !ok || seg.Index >= len(list) {
				return nil, false
			}
			current = list[seg.Index]
			continue
		}
		obj, ok := content.Object(current)
		if !ok {
			return nil, false
		}
		next, ok := obj[seg.Key]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Set writes value at path inside m. Missing or mistyped containers along the
// path are created: a map before a key segment, an array (padded with nil)
// before an index segment.
func Set(m content.Map, path string, value interface{}) error {
	segments, err := ParsePath(path)
	if err != nil {
		return err
	}
	if segments[0].IsIndex {
		return fmt.Errorf("%w: %q must start with a key", ErrInvalidPath, path)
	}

	head := segments[0].Key
	m[head] = setIn(m[head], segments[1:], value)
	return nil
}

func setIn(node interface{}, segments []Segment, value interface{}) interface{} {
	if len(segments) == 0 {
		return value
	}

	seg := segments[0]
	if seg.IsIndex {
		list, ok := node.([]interface{})
		if !ok {
			list = []interface{}{}
		}
		for len(list) <= seg.Index {
			list = append(list, nil)
		}
		list[seg.Index] = setIn(list[seg.Index], segments[1:], value)
		return list
	}

	obj, ok := content.Object(node)
	if !ok {
		obj = content.Map{}
	}
	obj[seg.Key] = setIn(obj[seg.Key], segments[1:], value)
	return map[string]interface{}(obj)
}

// Delete removes the key or array element at path. It reports whether
// anything was removed.
func Delete(m content.Map, path string) bool {
	segments, err := ParsePath(path)
	if err != nil || segments[0].IsIndex {
		return false
	}

	if len(segments) == 1 {
		if _, ok := m[segments[0].Key]; !ok {
			return false
		}
		delete(m, segments[0].Key)
		return true
	}

	parentPath := JoinPath(segments[:len(segments)-1])
	parent, ok := Get(m, parentPath)
	if !ok {
		return false
	}

	last := segments[len(segments)-1]
	if last.IsIndex {
		list, ok := parent.([]interface{})
		if !ok || last.Index >= len(list) {
			return false
		}
		spliced := append(append([]interface{}{}, list[:last.Index]...), list[last.Index+1:]...)
		return Set(m, parentPath, spliced) == nil
	}

	obj, ok := content.Object(parent)
	if !ok {
		return false
	}
	if _, exists := obj[last.Key]; !exists {
		return false
	}
	delete(obj, last.Key)
	return true
}
