// Command pagebuilder assembles a page from a YAML plan through the page
// builder API, or directly against the configured database with -local,
// walking the same wizard steps as the editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"page-builder-backend/internal/builder"
	"page-builder-backend/internal/models"
	"page-builder-backend/pkg/logger"
	"page-builder-backend/pkg/pagesclient"
)

// store is what a plan run needs from either the remote API or the local
// database.
type store interface {
	builder.Backend
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name string) (models.Category, error)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "pagebuilder: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("pagebuilder", flag.ContinueOnError)
	fs.SetOutput(out)
	planPath := fs.String("plan", "", "Path to the YAML page plan")
	apiURL := fs.String("api", envOr("PAGEBUILDER_API", "http://localhost:8080"), "Base URL of the page builder API")
	local := fs.Bool("local", false, "Write to the configured database instead of the API")
	publish := fs.Bool("publish", false, "Publish the page after saving")
	timeout := fs.Duration("timeout", 2*time.Minute, "Overall time limit")
	logLevel := fs.String("log-level", "warn", "Log level")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *planPath == "" {
		return errors.New("-plan is required")
	}

	logger.InitWithOutput(os.Stderr, *logLevel, "text")

	plan, err := loadPlan(*planPath)
	if err != nil {
		return err
	}

	var backend store
	if *local {
		localStore, closeStore, err := openLocal()
		if err != nil {
			return err
		}
		defer closeStore()
		backend = localStore
	} else {
		client, err := pagesclient.New(*apiURL)
		if err != nil {
			return err
		}
		backend = client
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	page, err := build(ctx, backend, plan, *publish, out)
	if err != nil {
		return err
	}

	state := "draft"
	if page.IsPublished {
		state = "published"
	}
	fmt.Fprintf(out, "saved page %d /%s (%s, %d sections)\n", page.ID, page.Slug, state, len(page.Sections))
	return nil
}

func build(ctx context.Context, backend store, plan Plan, publish bool, out io.Writer) (models.Page, error) {
	notifier := builder.NotifierFunc(func(level builder.Level, message string) {
		fmt.Fprintf(out, "[%s] %s\n", level, message)
	})

	opts := builder.DefaultOptions()
	// Edits are applied in one go, so nothing should wait for a debounce.
	opts.AutosaveDelay = time.Hour
	opts.SlugCheckDelay = time.Hour

	session := builder.NewSession(backend, notifier, opts)
	defer session.Close(context.Background())

	categoryID, err := resolveCategory(ctx, backend, plan)
	if err != nil {
		return models.Page{}, err
	}
	session.SetCategory(categoryID)
	if err := session.Next(); err != nil {
		return models.Page{}, err
	}

	session.SetName(plan.Name)
	if plan.Slug != "" {
		session.SetSlug(plan.Slug)
	}
	session.SetMetaTitle(plan.MetaTitle)
	session.SetMetaDescription(plan.MetaDescription)
	session.SetHomepage(plan.Homepage)

	status, err := session.CheckSlug(ctx)
	if err != nil {
		return models.Page{}, fmt.Errorf("slug %q: %w", status.Slug, err)
	}
	if !status.Ready() {
		return models.Page{}, fmt.Errorf("slug %q: %s", status.Slug, status.Message)
	}
	if err := session.Next(); err != nil {
		return models.Page{}, err
	}

	for _, section := range plan.Sections {
		if err := addSection(ctx, session, section); err != nil {
			return models.Page{}, err
		}
	}
	if err := session.Next(); err != nil {
		return models.Page{}, err
	}

	for _, warning := range session.Review() {
		for _, issue := range warning.Issues {
			fmt.Fprintf(out, "warning: %s (%s): %s\n", warning.Name, warning.Type, issue)
		}
	}

	page, err := session.Save(ctx, publish)
	if err != nil {
		return models.Page{}, err
	}
	if err := session.Wait(ctx); err != nil {
		return models.Page{}, err
	}
	return page, nil
}

func addSection(ctx context.Context, session *builder.Session, section PlanSection) error {
	added, err := session.AddSection(ctx, section.Type)
	if err != nil {
		return fmt.Errorf("add %s: %w", section.Type, err)
	}

	set := func(field string, value interface{}) error {
		if err := session.UpdateSectionField(added.Key, field, value); err != nil {
			return fmt.Errorf("%s %s: %w", section.Type, field, err)
		}
		return nil
	}

	if section.Name != "" {
		if err := set("componentName", section.Name); err != nil {
			return err
		}
	}
	if section.Theme != "" {
		if err := set("theme", section.Theme); err != nil {
			return err
		}
	}
	if section.Visible != nil {
		if err := set("isVisible", *section.Visible); err != nil {
			return err
		}
	}
	for path, value := range section.Content {
		if err := session.UpdateSectionContent(added.Key, path, value); err != nil {
			return fmt.Errorf("%s %s: %w", section.Type, path, err)
		}
	}
	return nil
}

// resolveCategory picks the plan category by id or name, creating a named
// category that does not exist yet. Without either the first category wins.
func resolveCategory(ctx context.Context, backend store, plan Plan) (uint, error) {
	if plan.CategoryID != 0 {
		return plan.CategoryID, nil
	}

	categories, err := backend.ListCategories(ctx)
	if err != nil {
		return 0, fmt.Errorf("list categories: %w", err)
	}

	name := strings.TrimSpace(plan.Category)
	if name == "" {
		if len(categories) == 0 {
			return 0, errors.New("no category available, set category in the plan")
		}
		return categories[0].ID, nil
	}

	for _, category := range categories {
		if strings.EqualFold(category.Name, name) || category.Slug == name {
			return category.ID, nil
		}
	}

	created, err := backend.CreateCategory(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("create category %q: %w", name, err)
	}
	return created.ID, nil
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
