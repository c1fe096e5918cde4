package models

import (
	"bytes"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"page-builder-backend/internal/content"
	"page-builder-backend/pkg/logger"
)

// Theme is the two-valued rendering hint of a section.
type Theme int

const (
	ThemeLight Theme = 1
	ThemeDark  Theme = 2
)

// Name returns the CSS-facing name of the theme. Unknown values render light.
func (t Theme) Name() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// Valid reports whether t is one of the two known themes.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// OrDefault returns t when valid and ThemeLight otherwise.
func (t Theme) OrDefault() Theme {
	if t.Valid() {
		return t
	}
	return ThemeLight
}

// ParseTheme accepts 1/2, "1"/"2" and "light"/"dark".
func ParseTheme(value interface{}) (Theme, bool) {
	switch v := value.(type) {
	case Theme:
		return v, v.Valid()
	case int:
		return Theme(v), Theme(v).Valid()
	case float64:
		return Theme(int(v)), Theme(int(v)).Valid()
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "light":
			return ThemeLight, true
		case "2", "dark":
			return ThemeDark, true
		}
	}
	return ThemeLight, false
}

func (t *Theme) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, _ := ParseTheme(raw)
	*t = parsed.OrDefault()
	return nil
}

// VisibleFlag is a visibility flag that decodes from true/false, 1/0 or their
// string forms.
type VisibleFlag bool

// IsVisibleValue reports whether value means visible. Only boolean true and the
// number 1 (and their string forms) count; everything else is hidden.
func IsVisibleValue(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case VisibleFlag:
		return bool(v)
	case int:
		return v == 1
	case int64:
		return v == 1
	case float64:
		return v == 1
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1":
			return true
		}
	}
	return false
}

func (f *VisibleFlag) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = VisibleFlag(IsVisibleValue(raw))
	return nil
}

// Section is one placed content block of a page.
type Section struct {
	ID            uint        `gorm:"primarykey"`
	PageID        uint        `gorm:"not null;uniqueIndex:idx_sections_page_order,priority:1"`
	ComponentType string      `gorm:"not null;size:120"`
	ComponentName string      `gorm:"not null;size:255"`
	Content       content.Map `gorm:"column:content_json;type:text"`
	OrderIndex    int         `gorm:"not null;uniqueIndex:idx_sections_page_order,priority:2"`
	IsVisible     bool        `gorm:"not null"`
	Theme         Theme       `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SectionInput is the payload of section create and update calls.
type SectionInput struct {
	ComponentType string
	ComponentName string
	Content       content.Map
	OrderIndex    int
	IsVisible     bool
	Theme         Theme
}

// Input returns the writable fields of s.
func (s Section) Input() SectionInput {
	return SectionInput{
		ComponentType: s.ComponentType,
		ComponentName: s.ComponentName,
		Content:       content.Clone(s.Content),
		OrderIndex:    s.OrderIndex,
		IsVisible:     s.IsVisible,
		Theme:         s.Theme,
	}
}

// Apply copies the writable fields of in onto s.
func (s *Section) Apply(in SectionInput) {
	s.ComponentType = in.ComponentType
	s.ComponentName = in.ComponentName
	s.Content = content.Clone(in.Content)
	s.OrderIndex = in.OrderIndex
	s.IsVisible = in.IsVisible
	s.Theme = in.Theme.OrDefault()
}

// sectionWire is the transport shape shared by Section and SectionInput.
type sectionWire struct {
	ID            uint            `json:"id,omitempty"`
	PageID        uint            `json:"pageId,omitempty"`
	ComponentType string          `json:"componentType"`
	ComponentName string          `json:"componentName"`
	ContentJSON   string          `json:"contentJson"`
	Content       json.RawMessage `json:"content,omitempty"`
	OrderIndex    int             `json:"orderIndex"`
	IsVisible     *VisibleFlag    `json:"isVisible,omitempty"`
	Theme         *Theme          `json:"theme,omitempty"`
}

func encodeWire(w sectionWire, c content.Map, visible bool, theme Theme) ([]byte, error) {
	encoded, err := content.Encode(c)
	if err != nil {
		return nil, err
	}
	w.ContentJSON = encoded
	flag := VisibleFlag(visible)
	w.IsVisible = &flag
	t := theme.OrDefault()
	w.Theme = &t
	return json.Marshal(w)
}

// decodeWire fills the common fields. contentJson wins over a legacy content
// object; payloads that are not objects become empty content. A missing
// isVisible flag decodes as visible and an unknown theme as light.
func decodeWire(data []byte) (sectionWire, content.Map, bool, Theme, error) {
	var w sectionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return w, nil, false, ThemeLight, err
	}

	var parsed content.Map
	switch {
	case strings.TrimSpace(w.ContentJSON) != "":
		parsed = content.ParseOrEmpty(w.ContentJSON)
	case len(bytes.TrimSpace(w.Content)) > 0:
		var raw interface{}
		if err := json.Unmarshal(w.Content, &raw); err != nil {
			parsed = content.Map{}
		} else if m, err := content.FromValue(raw); err == nil {
			parsed = m
		} else {
			logger.Warn("Section content is not an object, treating as empty", map[string]interface{}{
				"component_type": w.ComponentType,
			})
			parsed = content.Map{}
		}
	default:
		parsed = content.Map{}
	}

	visible := true
	if w.IsVisible != nil {
		visible = bool(*w.IsVisible)
	}
	theme := ThemeLight
	if w.Theme != nil {
		theme = w.Theme.OrDefault()
	}
	return w, parsed, visible, theme, nil
}

func (s Section) MarshalJSON() ([]byte, error) {
	return encodeWire(sectionWire{
		ID:            s.ID,
		PageID:        s.PageID,
		ComponentType: s.ComponentType,
		ComponentName: s.ComponentName,
		OrderIndex:    s.OrderIndex,
	}, s.Content, s.IsVisible, s.Theme)
}

func (s *Section) UnmarshalJSON(data []byte) error {
	w, parsed, visible, theme, err := decodeWire(data)
	if err != nil {
		return err
	}
	*s = Section{
		ID:            w.ID,
		PageID:        w.PageID,
		ComponentType: w.ComponentType,
		ComponentName: w.ComponentName,
		Content:       parsed,
		OrderIndex:    w.OrderIndex,
		IsVisible:     visible,
		Theme:         theme,
	}
	return nil
}

func (in SectionInput) MarshalJSON() ([]byte, error) {
	return encodeWire(sectionWire{
		ComponentType: in.ComponentType,
		ComponentName: in.ComponentName,
		OrderIndex:    in.OrderIndex,
	}, in.Content, in.IsVisible, in.Theme)
}

func (in *SectionInput) UnmarshalJSON(data []byte) error {
	w, parsed, visible, theme, err := decodeWire(data)
	if err != nil {
		return err
	}
	*in = SectionInput{
		ComponentType: w.ComponentType,
		ComponentName: w.ComponentName,
		Content:       parsed,
		OrderIndex:    w.OrderIndex,
		IsVisible:     visible,
		Theme:         theme,
	}
	return nil
}

// SectionRef identifies a section by id and its requested order index, used
// by reorder calls.
type SectionRef struct {
	ID         uint `json:"id" binding:"required"`
	OrderIndex int  `json:"orderIndex" binding:"required,min=1"`
}
