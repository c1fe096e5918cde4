package models

import (
	"sort"
	"time"
)

type Category struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name string `gorm:"not null;size:255" json:"name"`
	Slug string `gorm:"uniqueIndex;not null;size:255" json:"slug"`
}

// Page is a marketing page assembled from sections.
type Page struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name            string     `gorm:"not null;size:255" json:"name"`
	CategoryID      *uint      `gorm:"index" json:"categoryId"`
	Slug            string     `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	MetaTitle       string     `gorm:"size:255" json:"metaTitle"`
	MetaDescription string     `gorm:"type:text" json:"metaDescription"`
	IsHomepage      bool       `gorm:"not null" json:"isHomepage"`
	IsPublished     bool       `gorm:"not null;index" json:"isPublished"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty"`

	Sections []Section `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE" json:"sections"`
}

// SortSections orders the page sections by order index.
func (p *Page) SortSections() {
	SortSections(p.Sections)
}

// SortSections orders sections by order index, keeping the relative order of
// equal indices.
func SortSections(sections []Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].OrderIndex < sections[j].OrderIndex
	})
}

// PageInput carries a whole page graph for create calls, and the page fields
// for update calls (Sections is ignored on update).
type PageInput struct {
	Name            string         `json:"name" binding:"required,max=255"`
	CategoryID      *uint          `json:"categoryId"`
	Slug            string         `json:"slug" binding:"required,slug,max=255"`
	MetaTitle       string         `json:"metaTitle" binding:"max=255"`
	MetaDescription string         `json:"metaDescription"`
	IsHomepage      bool           `json:"isHomepage"`
	IsPublished     bool           `json:"isPublished"`
	Sections        []SectionInput `json:"sections"`
}

// Input returns the page fields of p together with its sections.
func (p Page) Input() PageInput {
	in := PageInput{
		Name:            p.Name,
		CategoryID:      p.CategoryID,
		Slug:            p.Slug,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		IsHomepage:      p.IsHomepage,
		IsPublished:     p.IsPublished,
		Sections:        make([]SectionInput, 0, len(p.Sections)),
	}
	for _, section := range p.Sections {
		in.Sections = append(in.Sections, section.Input())
	}
	return in
}

type MediaItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	FileName     string `gorm:"not null;size:255" json:"fileName"`
	OriginalName string `gorm:"size:255" json:"originalName"`
	FileURL      string `gorm:"not null;size:512" json:"fileUrl"`
	MimeType     string `gorm:"size:120;index" json:"mimeType"`
	Size         int64  `json:"size"`
	Folder       string `gorm:"size:120;index" json:"folder"`
	Alt          string `gorm:"size:255" json:"alt"`

	// DurationSeconds is set for videos whose container reports a duration.
	DurationSeconds float64 `json:"durationSeconds,omitempty"`
}

// MediaFilter narrows media listings. Type is "image" or "video".
type MediaFilter struct {
	Folder string `form:"folder"`
	Type   string `form:"type"`
	Search string `form:"search"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}
