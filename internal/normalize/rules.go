// Package normalize reshapes loosely structured section content into the
// exact prop shape each section renderer consumes.
//
// Every component type is described by a Spec: an ordered alias list and a
// literal default per field. One engine interprets all specs.
package normalize

// Kind selects how a resolved value is coerced.
type Kind int

const (
	String Kind = iota
	Number
	Bool
	Strings
	Variant
	Raw
)

// Field maps one output key. Aliases are dotted paths tried in order against
// the current scope; Root aliases are tried afterwards against the top-level
// content. The first alias that resolves to a non-empty value wins, otherwise
// Default is used.
type Field struct {
	Key     string
	Aliases []string
	Root    []string
	Default interface{}
	As      Kind
}

// List maps an array of sub-items. Each element is normalized independently
// against Item. Title names the item key that receives the numbered
// Placeholder ("Benefit %d") when it stays empty. With Strings set, elements
// are coerced to plain strings instead. Index names a numeric item key that
// falls back to the 1-based position of the element.
type List struct {
	Key         string
	Aliases     []string
	Item        []Field
	Title       string
	Placeholder string
	Index       string
	Default     []interface{}
	Strings     bool
}

// Object maps a nested object such as a call-to-action button.
type Object struct {
	Key     string
	Aliases []string
	Fields  []Field
}

// Spec is the full description of one component type.
type Spec struct {
	Fields  []Field
	Lists   []List
	Objects []Object
}

func alias(paths ...string) []string { return paths }

func str(key string, def string, paths ...string) Field {
	return Field{Key: key, Aliases: withKey(key, paths), Default: def, As: String}
}

func num(key string, def float64, paths ...string) Field {
	return Field{Key: key, Aliases: withKey(key, paths), Default: def, As: Number}
}

func boolean(key string, def bool, paths ...string) Field {
	return Field{Key: key, Aliases: withKey(key, paths), Default: def, As: Bool}
}

func stringsField(key string, paths ...string) Field {
	return Field{Key: key, Aliases: withKey(key, paths), Default: []interface{}{}, As: Strings}
}

func withKey(key string, paths []string) []string {
	out := make([]string, 0, len(paths)+1)
	out = append(out, key)
	for _, p := range paths {
		if p != key {
			out = append(out, p)
		}
	}
	return out
}

// button is the shared {text, link} call-to-action shape with its legacy flat
// fallbacks at the top level.
func button(key, defText, defLink string, objectAliases, textRoot, linkRoot []string) Object {
	return Object{
		Key:     key,
		Aliases: withKey(key, objectAliases),
		Fields: []Field{
			{Key: "text", Aliases: alias("text", "label", "title"), Root: textRoot, Default: defText, As: String},
			{Key: "link", Aliases: alias("link", "href", "url"), Root: linkRoot, Default: defLink, As: String},
		},
	}
}
