package main

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"page-builder-backend/internal/app"
	"page-builder-backend/internal/config"
	"page-builder-backend/internal/database"
	"page-builder-backend/pkg/logger"
	"page-builder-backend/pkg/pagesclient"
)

const samplePlan = `
name: Spring Launch
category: Campaigns
metaTitle: Spring launch
metaDescription: Payroll that runs itself, now with time tracking.
sections:
  - type: PayrollHeroSection
    content:
      title: Spring is here
  - type: FAQSection
    name: Launch questions
    theme: dark
  - type: CTASection
    visible: false
`

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.InitWithOutput(io.Discard, "error", "text")
	os.Exit(m.Run())
}

func newServer(t *testing.T, name string) string {
	t.Helper()

	db, err := database.OpenInMemory(name)
	require.NoError(t, err)

	application, err := app.New(&config.Config{UploadDir: t.TempDir(), MaxUploadSize: 1 << 20}, app.Options{DB: db})
	require.NoError(t, err)

	server := httptest.NewServer(application.Router())
	t.Cleanup(func() {
		server.Close()
		application.Shutdown(context.Background())
		database.Close(db)
	})
	return server.URL
}

func TestParsePlan(t *testing.T) {
	plan, err := parsePlan([]byte(samplePlan))
	require.NoError(t, err)
	assert.Equal(t, "Spring Launch", plan.Name)
	assert.Equal(t, "Campaigns", plan.Category)
	require.Len(t, plan.Sections, 3)
	assert.Equal(t, "Spring is here", plan.Sections[0].Content["title"])
	require.NotNil(t, plan.Sections[2].Visible)
	assert.False(t, *plan.Sections[2].Visible)
	assert.Nil(t, plan.Sections[1].Visible)

	_, err = parsePlan([]byte("sections: []\n"))
	assert.Error(t, err)

	_, err = parsePlan([]byte("name: x\nsections:\n  - name: untyped\n"))
	assert.Error(t, err)
}

func TestRunBuildsAndPublishesPage(t *testing.T) {
	api := newServer(t, "cli_publish")

	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(samplePlan), 0o644))

	var out bytes.Buffer
	err := run(context.Background(), []string{"-plan", path, "-api", api, "-publish", "-log-level", "error"}, &out)
	require.NoError(t, err, out.String())
	assert.Contains(t, out.String(), "/spring-launch (published, 3 sections)")

	client, err := pagesclient.New(api)
	require.NoError(t, err)

	page, err := client.GetPublicPage(context.Background(), "spring-launch")
	require.NoError(t, err)
	require.Len(t, page.Sections, 2)
	assert.Equal(t, "PayrollHeroSection", page.Sections[0].ComponentType)
	assert.Equal(t, "Spring is here", page.Sections[0].Content["title"])
	assert.Equal(t, "Launch questions", page.Sections[1].ComponentName)

	categories, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func TestRunRejectsTakenSlug(t *testing.T) {
	api := newServer(t, "cli_taken")

	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Home\nslug: home\n"), 0o644))

	var out bytes.Buffer
	err := run(context.Background(), []string{"-plan", path, "-api", api}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "home")
}

func TestRunRequiresPlan(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(context.Background(), nil, &out))
}

func TestRunLocalWritesToDatabase(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "pagebuilder.db"))
	t.Setenv("UPLOAD_DIR", filepath.Join(dir, "uploads"))
	t.Setenv("ENABLE_REDIS", "false")

	path := filepath.Join(dir, "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(samplePlan), 0o644))

	var out bytes.Buffer
	err := run(context.Background(), []string{"-plan", path, "-local", "-log-level", "error"}, &out)
	require.NoError(t, err, out.String())
	assert.Contains(t, out.String(), "/spring-launch (draft, 3 sections)")

	// The slug now exists in the database file, so a second run stops at the details step.
	out.Reset()
	err = run(context.Background(), []string{"-plan", path, "-local", "-log-level", "error"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spring-launch")
}

func TestRunSetsRichTextBody(t *testing.T) {
	api := newServer(t, "cli_rich_text")

	path := filepath.Join(t.TempDir(), "plan.yaml")
	plan := "name: About\nsections:\n  - type: RichTextSection\n    content:\n      content: \"## Our story\"\n      title: About us\n"
	require.NoError(t, os.WriteFile(path, []byte(plan), 0o644))

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-plan", path, "-api", api, "-log-level", "error"}, &out), out.String())

	client, err := pagesclient.New(api)
	require.NoError(t, err)
	pages, err := client.ListPages(context.Background())
	require.NoError(t, err)

	var aboutID uint
	for _, page := range pages {
		if page.Slug == "about" {
			aboutID = page.ID
		}
	}
	require.NotZero(t, aboutID)

	sections, err := client.GetPageSections(context.Background(), aboutID)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "## Our story", sections[0].Content["content"])
	assert.Equal(t, "About us", sections[0].Content["title"])
}
