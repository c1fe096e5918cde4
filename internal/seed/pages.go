package seed

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/goccy/go-yaml"

	"page-builder-backend/internal/content"
	"page-builder-backend/internal/models"
	"page-builder-backend/internal/schemas"
	"page-builder-backend/internal/service"
	"page-builder-backend/pkg/logger"
	"page-builder-backend/pkg/utils"
)

//go:embed data/pages/*.yaml
var defaultPagesFS embed.FS

type pageDefinition struct {
	Name            string              `yaml:"name"`
	Slug            string              `yaml:"slug"`
	MetaTitle       string              `yaml:"metaTitle"`
	MetaDescription string              `yaml:"metaDescription"`
	Homepage        bool                `yaml:"homepage"`
	Published       bool                `yaml:"published"`
	Sections        []sectionDefinition `yaml:"sections"`
}

type sectionDefinition struct {
	Type    string      `yaml:"type"`
	Name    string      `yaml:"name"`
	Hidden  bool        `yaml:"hidden"`
	Content content.Map `yaml:"content"`
}

// EnsureDefaultPages creates the embedded sample pages that do not exist yet.
// Sections without content start from the component's seed content.
func EnsureDefaultPages(ctx context.Context, pageService service.PageUseCase, registry *schemas.Registry, categoryID *uint) {
	if pageService == nil {
		return
	}
	if registry == nil {
		registry = schemas.Default()
	}

	entries, err := fs.ReadDir(defaultPagesFS, "data/pages")
	if err != nil {
		logger.Error(err, "Failed to read embedded page definitions", nil)
		return
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		data, err := defaultPagesFS.ReadFile("data/pages/" + name)
		if err != nil {
			logger.Error(err, "Failed to read embedded page file", map[string]interface{}{"file": name})
			continue
		}

		definitions, err := parsePageDefinitions(data)
		if err != nil {
			logger.Error(err, "Failed to parse embedded page file", map[string]interface{}{"file": name})
			continue
		}

		for _, definition := range definitions {
			ensurePage(ctx, pageService, definition.input(registry, categoryID), name)
		}
	}
}

func (d pageDefinition) input(registry *schemas.Registry, categoryID *uint) models.PageInput {
	slug := d.Slug
	if slug == "" {
		slug = d.Name
	}

	in := models.PageInput{
		Name:            d.Name,
		CategoryID:      categoryID,
		Slug:            utils.GenerateSlug(slug),
		MetaTitle:       d.MetaTitle,
		MetaDescription: d.MetaDescription,
		IsHomepage:      d.Homepage,
		IsPublished:     d.Published,
	}

	for i, section := range d.Sections {
		body := section.Content
		if len(body) == 0 {
			body = registry.SeedContent(section.Type)
		}
		in.Sections = append(in.Sections, models.SectionInput{
			ComponentType: section.Type,
			ComponentName: section.Name,
			Content:       body,
			OrderIndex:    i + 1,
			IsVisible:     !section.Hidden,
		})
	}
	return in
}

func ensurePage(ctx context.Context, pageService service.PageUseCase, in models.PageInput, source string) {
	fields := map[string]interface{}{"slug": in.Slug, "source": source}

	available, err := pageService.CheckSlugAvailable(ctx, in.Slug, nil)
	if err != nil {
		logger.Error(err, "Failed to verify default page", fields)
		return
	}
	if !available {
		logger.Info("Default page already present", fields)
		return
	}

	page, err := pageService.CreatePage(ctx, in)
	if err != nil {
		if errors.Is(err, models.ErrSlugTaken) {
			logger.Info("Default page already present", fields)
			return
		}
		logger.Error(err, "Failed to create default page", fields)
		return
	}

	fields["page_id"] = page.ID
	fields["sections"] = len(page.Sections)
	logger.Info("Ensured default page", fields)
}

func parsePageDefinitions(data []byte) ([]pageDefinition, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '-' {
		var definitions []pageDefinition
		if err := yaml.Unmarshal(trimmed, &definitions); err != nil {
			return nil, err
		}
		return definitions, nil
	}

	var definition pageDefinition
	if err := yaml.Unmarshal(trimmed, &definition); err != nil {
		return nil, err
	}
	if definition.Name == "" {
		return nil, fmt.Errorf("page definition without a name")
	}
	return []pageDefinition{definition}, nil
}
