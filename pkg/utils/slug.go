package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FallbackSlug is used when a name produces no usable characters.
const FallbackSlug = "untitled-page"

var (
	slugPattern     = regexp.MustCompile(`^[a-z0-9-]+$`)
	slugDisallowed  = regexp.MustCompile(`[^a-z0-9\s-]+`)
	slugWhitespace  = regexp.MustCompile(`\s+`)
	slugHyphenRuns  = regexp.MustCompile(`-{2,}`)
	diacriticFilter = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// GenerateSlug derives a URL slug from a display name: transliterate, drop
// accents, lowercase, strip anything outside [a-z0-9], whitespace and hyphens,
// then join words with single hyphens.
func GenerateSlug(text string) string {
	text = transliterate(text)
	text, _, _ = transform.String(diacriticFilter, text)
	text = strings.ToLower(text)

	text = slugDisallowed.ReplaceAllString(text, "")
	text = slugWhitespace.ReplaceAllString(strings.TrimSpace(text), "-")
	text = slugHyphenRuns.ReplaceAllString(text, "-")

	return strings.Trim(text, "-")
}

// DeriveSlug is GenerateSlug with the page fallback applied.
func DeriveSlug(name string) string {
	if slug := GenerateSlug(name); slug != "" {
		return slug
	}
	return FallbackSlug
}

// IsValidSlug reports whether slug uses only lowercase letters, digits and hyphens.
func IsValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

func transliterate(text string) string {
	translitMap := map[rune]string{
		'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d",
		'е': "e", 'ё': "yo", 'ж': "zh", 'з': "z", 'и': "i",
		'й': "y", 'к': "k", 'л': "l", 'м': "m", 'н': "n",
		'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t",
		'у': "u", 'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch",
		'ш': "sh", 'щ': "sch", 'ъ': "", 'ы': "y", 'ь': "",
		'э': "e", 'ю': "yu", 'я': "ya",
		'ß': "ss", 'æ': "ae", 'ø': "o", 'œ': "oe", 'ł': "l",
	}

	var result strings.Builder
	for _, char := range text {
		lower := unicode.ToLower(char)
		if replacement, ok := translitMap[lower]; ok {
			result.WriteString(replacement)
		} else {
			result.WriteRune(char)
		}
	}

	return result.String()
}
