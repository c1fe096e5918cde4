package validator

import (
	"mime"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"page-builder-backend/pkg/utils"
)

var (
	validate  = newValidate()
	sanitizer = bluemonday.UGCPolicy()
	stripper  = bluemonday.StrictPolicy()

	filenameDisallowed = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
)

// Init registers the custom validations on gin's binding engine.
func Init() {
	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustomValidations(engine)
	}
}

func newValidate() *validator.Validate {
	v := validator.New()
	registerCustomValidations(v)
	return v
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("slug", validateSlug)
	v.RegisterValidation("no_html", validateNoHTML)
}

func Validate(s interface{}) error {
	return validate.Struct(s)
}

func SanitizeHTML(html string) string {
	return sanitizer.Sanitize(html)
}

func SanitizeString(s string) string {
	return stripper.Sanitize(s)
}

func validateSlug(fl validator.FieldLevel) bool {
	return utils.IsValidSlug(fl.Field().String())
}

func validateNoHTML(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return !strings.Contains(value, "<") && !strings.Contains(value, ">")
}

func SanitizeFilename(filename string) string {
	return filenameDisallowed.ReplaceAllString(filename, "_")
}

func ValidateFileSize(size int64, maxSize int64) bool {
	return size > 0 && size <= maxSize
}

// ValidateContentType validates that the provided MIME type is in the allowed list.
// Entries ending in "/*" match a whole family.
func ValidateContentType(contentType string, allowedMimeTypes []string) bool {
	if contentType == "" || len(allowedMimeTypes) == 0 {
		return false
	}

	mimeType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))

	for _, allowed := range allowedMimeTypes {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		if mimeType == allowed {
			return true
		}
		if strings.HasSuffix(allowed, "/*") {
			prefix := strings.TrimSuffix(allowed, "/*")
			if strings.HasPrefix(mimeType, prefix+"/") {
				return true
			}
		}
	}
	return false
}

// ValidateImageContentType validates image MIME types
func ValidateImageContentType(contentType string) bool {
	return ValidateContentType(contentType, []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
		"image/svg+xml",
		"image/avif",
	})
}

// ValidateVideoContentType validates video MIME types
func ValidateVideoContentType(contentType string) bool {
	return ValidateContentType(contentType, []string{
		"video/mp4",
		"video/webm",
		"video/quicktime",
		"video/x-m4v",
	})
}
