package builder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"page-builder-backend/internal/content"
	"page-builder-backend/internal/forms"
	"page-builder-backend/internal/models"
)

// Step is a position in the page wizard.
type Step int

const (
	StepCategory Step = iota + 1
	StepDetails
	StepSections
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepCategory:
		return "category"
	case StepDetails:
		return "details"
	case StepSections:
		return "sections"
	case StepReview:
		return "review"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

var (
	ErrUnknownSection = errors.New("section not in draft")
	ErrMoveOutOfRange = errors.New("move index out of range")
	ErrUnknownField   = errors.New("unknown structural field")
)

// DraftSection is a section of the draft. Key identifies it locally before
// and after it has a backend identity.
type DraftSection struct {
	Key string
	models.Section
}

// Persisted reports whether the section has a backend identity.
func (s DraftSection) Persisted() bool {
	return s.ID != 0
}

func (s DraftSection) clone() DraftSection {
	s.Content = content.Clone(s.Content)
	return s
}

// NewDraftSection wraps section with a fresh local key.
func NewDraftSection(section models.Section) DraftSection {
	return DraftSection{Key: uuid.NewString(), Section: section}
}

// PageDraft is the in-memory page being assembled. Page.Sections is unused;
// the ordered Sections slice is authoritative.
type PageDraft struct {
	Page     models.Page
	Sections []DraftSection
}

// NewDraft wraps a loaded page and its sections.
func NewDraft(page models.Page, sections []models.Section) PageDraft {
	sorted := append([]models.Section(nil), sections...)
	models.SortSections(sorted)

	page.Sections = nil
	draft := PageDraft{Page: page, Sections: make([]DraftSection, 0, len(sorted))}
	for _, section := range sorted {
		draft.Sections = append(draft.Sections, NewDraftSection(section))
	}
	return draft
}

// Clone returns a copy of d that shares no mutable state with it.
func (d PageDraft) Clone() PageDraft {
	out := PageDraft{Page: d.Page, Sections: make([]DraftSection, len(d.Sections))}
	if d.Page.CategoryID != nil {
		id := *d.Page.CategoryID
		out.Page.CategoryID = &id
	}
	for i, section := range d.Sections {
		out.Sections[i] = section.clone()
	}
	return out
}

// Persisted reports whether the page has a backend identity.
func (d PageDraft) Persisted() bool {
	return d.Page.ID != 0
}

// Find returns the position of the section with key, or -1.
func (d PageDraft) Find(key string) int {
	for i, section := range d.Sections {
		if section.Key == key {
			return i
		}
	}
	return -1
}

// Section returns a copy of the section with key.
func (d PageDraft) Section(key string) (DraftSection, bool) {
	if i := d.Find(key); i >= 0 {
		return d.Sections[i].clone(), true
	}
	return DraftSection{}, false
}

// Input returns the page graph as a create payload.
func (d PageDraft) Input() models.PageInput {
	page := d.Page
	page.Sections = make([]models.Section, len(d.Sections))
	for i, section := range d.Sections {
		page.Sections[i] = section.Section
	}
	return page.Input()
}

// Refs lists the persisted sections with their current order index.
func (d PageDraft) Refs() []models.SectionRef {
	refs := make([]models.SectionRef, 0, len(d.Sections))
	for _, section := range d.Sections {
		if section.Persisted() {
			refs = append(refs, models.SectionRef{ID: section.ID, OrderIndex: section.OrderIndex})
		}
	}
	return refs
}

// Renumber assigns order indices 1..N following slice order.
func Renumber(sections []DraftSection) []DraftSection {
	out := make([]DraftSection, len(sections))
	for i, section := range sections {
		section = section.clone()
		section.OrderIndex = i + 1
		out[i] = section
	}
	return out
}

// NextOrderIndex returns one past the highest order index in siblings.
func NextOrderIndex(siblings []models.Section) int {
	highest := 0
	for _, section := range siblings {
		if section.OrderIndex > highest {
			highest = section.OrderIndex
		}
	}
	return highest + 1
}

func draftModels(sections []DraftSection) []models.Section {
	out := make([]models.Section, len(sections))
	for i, section := range sections {
		out[i] = section.Section
	}
	return out
}

// AddSection appends section to the draft as given.
func AddSection(d PageDraft, section DraftSection) PageDraft {
	out := d.Clone()
	out.Sections = append(out.Sections, section.clone())
	return out
}

// RemoveSection drops the section with key and renumbers the rest.
func RemoveSection(d PageDraft, key string) (PageDraft, DraftSection, error) {
	i := d.Find(key)
	if i < 0 {
		return d, DraftSection{}, ErrUnknownSection
	}

	out := d.Clone()
	removed := out.Sections[i]
	rest := append(out.Sections[:i:i], out.Sections[i+1:]...)
	out.Sections = Renumber(rest)
	return out, removed, nil
}

// DuplicateSection appends a copy of the section with key at the end and
// renumbers. The copy has no backend identity.
func DuplicateSection(d PageDraft, key string) (PageDraft, DraftSection, error) {
	original, ok := d.Section(key)
	if !ok {
		return d, DraftSection{}, ErrUnknownSection
	}

	dup := NewDraftSection(original.Section)
	dup.ID = 0
	dup.PageID = d.Page.ID
	dup.ComponentName = fmt.Sprintf("%s (Copy)", original.ComponentName)
	dup.Content = content.Clone(original.Content)
	dup.CreatedAt, dup.UpdatedAt = time.Time{}, time.Time{}

	out := d.Clone()
	out.Sections = Renumber(append(out.Sections, dup))
	dup = out.Sections[len(out.Sections)-1]
	return out, dup.clone(), nil
}

// MoveSection moves the section at from to position to and renumbers.
func MoveSection(d PageDraft, from, to int) (PageDraft, error) {
	n := len(d.Sections)
	if from < 0 || from >= n || to < 0 || to >= n {
		return d, fmt.Errorf("%w: from %d to %d with %d sections", ErrMoveOutOfRange, from, to, n)
	}

	out := d.Clone()
	moved := out.Sections[from]
	rest := append(out.Sections[:from:from], out.Sections[from+1:]...)

	reordered := make([]DraftSection, 0, n)
	reordered = append(reordered, rest[:to]...)
	reordered = append(reordered, moved)
	reordered = append(reordered, rest[to:]...)
	out.Sections = Renumber(reordered)
	return out, nil
}

var structuralFields = map[string]struct{}{
	"isVisible":     {},
	"theme":         {},
	"componentType": {},
	"componentName": {},
	"orderIndex":    {},
	"content":       {},
}

// IsStructuralField reports whether field is a column of the section rather
// than a key inside its content.
func IsStructuralField(field string) bool {
	_, ok := structuralFields[field]
	return ok
}

// SetSectionField writes a structural field onto section.
func SetSectionField(section DraftSection, field string, value interface{}) (DraftSection, error) {
	out := section.clone()
	switch field {
	case "isVisible":
		out.IsVisible = models.IsVisibleValue(value)
	case "theme":
		theme, ok := models.ParseTheme(value)
		if !ok {
			return section, fmt.Errorf("invalid theme %v", value)
		}
		out.Theme = theme
	case "componentType", "componentName":
		s, ok := value.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return section, fmt.Errorf("%s must be a non-empty string", field)
		}
		if field == "componentType" {
			out.ComponentType = strings.TrimSpace(s)
		} else {
			out.ComponentName = strings.TrimSpace(s)
		}
	case "orderIndex":
		index, ok := toInt(value)
		if !ok || index < 1 {
			return section, fmt.Errorf("orderIndex must be a positive integer")
		}
		out.OrderIndex = index
	case "content":
		var (
			parsed content.Map
			err    error
		)
		if raw, ok := value.(string); ok {
			parsed, err = content.Parse(raw)
		} else {
			parsed, err = content.FromValue(value)
		}
		if err != nil {
			return section, fmt.Errorf("content: %w", err)
		}
		out.Content = parsed
	default:
		return section, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return out, nil
}

// MergeContent sets the content field at path, which may be nested ("plans[0].name").
func MergeContent(section DraftSection, path string, value interface{}) (DraftSection, error) {
	out := section.clone()
	if out.Content == nil {
		out.Content = content.Map{}
	}
	if err := forms.Set(out.Content, path, content.CloneValue(value)); err != nil {
		return section, err
	}
	return out, nil
}

func toInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}
