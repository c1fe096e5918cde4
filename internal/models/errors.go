package models

import "errors"

var (
	ErrPageNotFound       = errors.New("page not found")
	ErrSectionNotFound    = errors.New("section not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrMediaNotFound      = errors.New("media not found")
	ErrSlugTaken          = errors.New("slug is already in use")
	ErrInvalidSlug        = errors.New("slug may only contain lowercase letters, digits and hyphens")
	ErrOrderIndexConflict = errors.New("order index already used by another section of this page")
	ErrUnsupportedMedia   = errors.New("unsupported media type")
	ErrMediaTooLarge      = errors.New("media file is too large")
	ErrInvalidInput       = errors.New("invalid input")
)

// Error codes carried in API error replies. Clients branch on the code, never
// on the message text.
const (
	CodePageNotFound       = "PAGE_NOT_FOUND"
	CodeSectionNotFound    = "SECTION_NOT_FOUND"
	CodeCategoryNotFound   = "CATEGORY_NOT_FOUND"
	CodeMediaNotFound      = "MEDIA_NOT_FOUND"
	CodeSlugTaken          = "SLUG_TAKEN"
	CodeInvalidSlug        = "INVALID_SLUG"
	CodeOrderIndexConflict = "ORDER_INDEX_CONFLICT"
	CodeUnsupportedMedia   = "UNSUPPORTED_MEDIA"
	CodeMediaTooLarge      = "MEDIA_TOO_LARGE"
	CodeInvalidInput       = "INVALID_INPUT"
)

var codedErrors = []struct {
	err  error
	code string
}{
	{ErrPageNotFound, CodePageNotFound},
	{ErrSectionNotFound, CodeSectionNotFound},
	{ErrCategoryNotFound, CodeCategoryNotFound},
	{ErrMediaNotFound, CodeMediaNotFound},
	{ErrSlugTaken, CodeSlugTaken},
	{ErrInvalidSlug, CodeInvalidSlug},
	{ErrOrderIndexConflict, CodeOrderIndexConflict},
	{ErrUnsupportedMedia, CodeUnsupportedMedia},
	{ErrMediaTooLarge, CodeMediaTooLarge},
	{ErrInvalidInput, CodeInvalidInput},
}

// ErrorCode returns the wire code for err, or "" when err is not a known domain error.
func ErrorCode(err error) string {
	for _, entry := range codedErrors {
		if errors.Is(err, entry.err) {
			return entry.code
		}
	}
	return ""
}

// ErrorForCode maps a wire code back to its sentinel error.
func ErrorForCode(code string) error {
	for _, entry := range codedErrors {
		if entry.code == code {
			return entry.err
		}
	}
	return nil
}
