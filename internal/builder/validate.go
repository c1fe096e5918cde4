package builder

import (
	"fmt"
	"strings"

	"page-builder-backend/internal/models"
	"page-builder-backend/pkg/utils"
)

// DefaultPageName is used when a page is saved without a name.
const DefaultPageName = "Untitled Page"

// ValidationError is a local failure that blocks a step or a save. It never
// reaches the backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ValidatePublish checks the fields a published page must carry. It runs on
// the draft as authored, before defaults are filled in.
func ValidatePublish(d PageDraft) error {
	return ValidatePublishedPage(d.Page)
}

// ValidatePublishedPage is the publishing rule shared with the backend: a
// published page needs a name, a category, a meta title and a meta
// description.
func ValidatePublishedPage(page models.Page) error {
	switch {
	case strings.TrimSpace(page.Name) == "":
		return invalid("name", "Page name is required to publish")
	case page.CategoryID == nil || *page.CategoryID == 0:
		return invalid("categoryId", "Category is required to publish")
	case strings.TrimSpace(page.MetaTitle) == "":
		return invalid("metaTitle", "Meta title is required to publish")
	case strings.TrimSpace(page.MetaDescription) == "":
		return invalid("metaDescription", "Meta description is required to publish")
	}
	return nil
}

// ValidateSections checks every section has a type, a name, object content
// and an order index no sibling shares.
func ValidateSections(sections []DraftSection) error {
	seen := make(map[int]string, len(sections))
	for i, section := range sections {
		label := section.ComponentName
		if strings.TrimSpace(label) == "" {
			label = fmt.Sprintf("#%d", i+1)
		}

		if strings.TrimSpace(section.ComponentType) == "" {
			return invalid("componentType", "Section %s has no component type", label)
		}
		if strings.TrimSpace(section.ComponentName) == "" {
			return invalid("componentName", "Section %s has no name", label)
		}
		if section.Content == nil {
			return invalid("content", "Section %s has no content object", label)
		}
		if section.OrderIndex < 1 {
			return invalid("orderIndex", "Section %s has an invalid order index %d", label, section.OrderIndex)
		}
		if other, dup := seen[section.OrderIndex]; dup {
			return invalid("orderIndex", "Sections %s and %s share order index %d", other, label, section.OrderIndex)
		}
		seen[section.OrderIndex] = label
	}
	return nil
}

// ApplyDefaults fills the fields a save must never send empty.
func ApplyDefaults(d PageDraft, defaultCategoryID uint) PageDraft {
	out := d.Clone()
	out.Page.Name = strings.TrimSpace(out.Page.Name)
	if out.Page.Name == "" {
		out.Page.Name = DefaultPageName
	}
	out.Page.Slug = strings.TrimSpace(out.Page.Slug)
	if out.Page.Slug == "" {
		out.Page.Slug = utils.DeriveSlug(out.Page.Name)
	}
	if (out.Page.CategoryID == nil || *out.Page.CategoryID == 0) && defaultCategoryID != 0 {
		id := defaultCategoryID
		out.Page.CategoryID = &id
	}
	for i := range out.Sections {
		out.Sections[i].Theme = out.Sections[i].Theme.OrDefault()
	}
	return out
}
