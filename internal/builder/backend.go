package builder

import (
	"context"

	"page-builder-backend/internal/models"
)

//go:generate mockgen -source=backend.go -destination=mock_backend_test.go -package=builder

// Backend is the page and section store a session persists through. The HTTP
// client and the in-process service both satisfy it.
type Backend interface {
	GetPage(ctx context.Context, id uint) (models.Page, error)
	GetPageSections(ctx context.Context, pageID uint) ([]models.Section, error)
	CreatePage(ctx context.Context, in models.PageInput) (models.Page, error)
	UpdatePage(ctx context.Context, id uint, in models.PageInput) (models.Page, error)
	CreateSection(ctx context.Context, pageID uint, in models.SectionInput) (models.Section, error)
	UpdateSection(ctx context.Context, id uint, in models.SectionInput) error
	DeleteSection(ctx context.Context, id uint) error
	ReorderSections(ctx context.Context, pageID uint, refs []models.SectionRef) error
	CheckSlugAvailable(ctx context.Context, slug string, excludeID *uint) (bool, error)
}

// Level classifies a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notifier receives the user-facing messages of a session.
type Notifier interface {
	Notify(level Level, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(level Level, message string)

func (f NotifierFunc) Notify(level Level, message string) {
	f(level, message)
}

type discardNotifier struct{}

func (discardNotifier) Notify(Level, string) {}
