// Package forms turns arbitrary section content into editable form field
// descriptors and applies path-addressed edits back onto the content.
package forms

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"page-builder-backend/internal/content"
)

// Kind is the control a field is edited with.
type Kind string

const (
	KindText     Kind = "text"
	KindTextarea Kind = "textarea"
	KindNumber   Kind = "number"
	KindCheckbox Kind = "checkbox"
	KindEmail    Kind = "email"
	KindURL      Kind = "url"
	KindMedia    Kind = "media"
	KindSelect   Kind = "select"
	KindGroup    Kind = "group"
	KindList     Kind = "list"
)

// DefaultLongTextThreshold is the string length above which a plain text
// field is edited as a textarea.
const DefaultLongTextThreshold = 80

// Field describes one editable control. Groups carry their children in
// Fields, lists carry one entry per element in Items.
type Field struct {
	Path        string      `json:"path"`
	Key         string      `json:"key"`
	Label       string      `json:"label"`
	Kind        Kind        `json:"kind"`
	Value       interface{} `json:"value,omitempty"`
	Options     []string    `json:"options,omitempty"`
	Suggestions []string    `json:"suggestions,omitempty"`
	MediaType   string      `json:"mediaType,omitempty"`
	Fields      []Field     `json:"fields,omitempty"`
	Items       []Field     `json:"items,omitempty"`
}

// Options tunes field classification.
type Options struct {
	// RouteSuggestions are offered on URL fields.
	RouteSuggestions []string
	// MediaFields are keys declared as media by the component schema.
	MediaFields []string
	// LongTextThreshold defaults to DefaultLongTextThreshold.
	LongTextThreshold int
}

var longTextKeys = map[string]struct{}{
	"description": {},
	"content":     {},
	"answer":      {},
	"body":        {},
	"text":        {},
	"bio":         {},
	"quote":       {},
}

var mediaHints = []string{"image", "video", "background", "logo", "avatar", "poster", "thumbnail"}

// Keys such as imageAlt or imagePosition describe media without holding it.
var mediaExcludedSuffixes = []string{"alt", "position", "text", "caption", "title"}

// Build produces one field per key of c, sorted by key.
func Build(c content.Map, opts Options) []Field {
	if opts.LongTextThreshold <= 0 {
		opts.LongTextThreshold = DefaultLongTextThreshold
	}
	media := make(map[string]struct{}, len(opts.MediaFields))
	for _, key := range opts.MediaFields {
		media[strings.ToLower(key)] = struct{}{}
	}
	b := builder{opts: opts, media: media}
	return b.object("", c)
}

type builder struct {
	opts  Options
	media map[string]struct{}
}

func (b builder) object(parent string, obj content.Map) []Field {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fields := make([]Field, 0, len(keys))
	for _, key := range keys {
		fields = append(fields, b.field(ChildPath(parent, key), key, Label(key), obj[key]))
	}
	return fields
}

func (b builder) field(path, key, label string, value interface{}) Field {
	if obj, ok := content.Object(value); ok {
		return Field{Path: path, Key: key, Label: label, Kind: KindGroup, Fields: b.object(path, obj)}
	}

	if list, ok := value.([]interface{}); ok {
		items := make([]Field, 0, len(list))
		singular := singularLabel(label)
		for i, elem := range list {
			items = append(items, b.field(IndexPath(path, i), key, singular+" "+strconv.Itoa(i+1), elem))
		}
		return Field{Path: path, Key: key, Label: label, Kind: KindList, Items: items}
	}

	return b.primitive(path, key, label, value)
}

func (b builder) primitive(path, key, label string, value interface{}) Field {
	f := Field{Path: path, Key: key, Label: label, Value: value}
	lower := strings.ToLower(key)

	switch value.(type) {
	case bool:
		f.Kind = KindCheckbox
		return f
	case float64, int, int64:
		f.Kind = KindNumber
		return f
	case nil:
		f.Value = ""
	}

	str, _ := f.Value.(string)
	switch {
	case lower == "variant" || strings.HasSuffix(lower, "variant"):
		f.Kind = KindSelect
		f.Options = append([]string(nil), Variants...)
		f.Value = ValidateVariant(value)
	case b.isMedia(lower, str):
		f.Kind = KindMedia
		f.MediaType = "image"
		if strings.Contains(lower, "video") {
			f.MediaType = "video"
		}
	case strings.Contains(lower, "email"):
		f.Kind = KindEmail
	case strings.Contains(lower, "url") || strings.Contains(lower, "link") || strings.Contains(lower, "href"):
		f.Kind = KindURL
		f.Suggestions = append([]string(nil), b.opts.RouteSuggestions...)
	case isLongText(lower, str, b.opts.LongTextThreshold):
		f.Kind = KindTextarea
	default:
		f.Kind = KindText
	}
	return f
}

func (b builder) isMedia(lowerKey, value string) bool {
	if _, ok := b.media[lowerKey]; ok {
		return true
	}
	for _, suffix := range mediaExcludedSuffixes {
		if strings.HasSuffix(lowerKey, suffix) {
			return false
		}
	}
	for _, hint := range mediaHints {
		if strings.Contains(lowerKey, hint) {
			return true
		}
	}
	if strings.Contains(lowerKey, "icon") {
		return strings.HasPrefix(value, "/") || strings.HasPrefix(value, "http")
	}
	return false
}

func isLongText(lowerKey, value string, threshold int) bool {
	if _, ok := longTextKeys[lowerKey]; ok {
		return true
	}
	return len(value) > threshold
}

// Label turns a content key into a display label: "ctaButton" becomes
// "Cta Button" and "image_url" becomes "Image Url".
func Label(key string) string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	var prev rune
	for i, r := range key {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
		case unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(prev):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
		prev = r
	}
	flush()

	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func singularLabel(label string) string {
	switch {
	case strings.HasSuffix(label, "ies"):
		return strings.TrimSuffix(label, "ies") + "y"
	case strings.HasSuffix(label, "s") && !strings.HasSuffix(label, "ss"):
		return strings.TrimSuffix(label, "s")
	case label == "":
		return "Item"
	default:
		return label
	}
}
