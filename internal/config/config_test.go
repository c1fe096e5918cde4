package config

import (
	"os"
	"testing"
	"time"
)

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	original, existed := os.LookupEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset %s: %v", key, err)
	}
	t.Cleanup(func() {
		if !existed {
			_ = os.Unsetenv(key)
			return
		}
		_ = os.Setenv(key, original)
	})
}

func TestBuilderDefaults(t *testing.T) {
	unsetEnv(t, "AUTOSAVE_DELAY_MS")
	unsetEnv(t, "SLUG_CHECK_DELAY_MS")
	unsetEnv(t, "DEFAULT_CATEGORY_ID")

	cfg := New()
	if cfg.AutosaveDelay != 1500*time.Millisecond {
		t.Fatalf("expected 1.5s autosave delay, got %s", cfg.AutosaveDelay)
	}
	if cfg.SlugCheckDelay != 500*time.Millisecond {
		t.Fatalf("expected 500ms slug check delay, got %s", cfg.SlugCheckDelay)
	}
	if cfg.DefaultCategoryID != 1 {
		t.Fatalf("expected default category 1, got %d", cfg.DefaultCategoryID)
	}
}

func TestInvalidIntegerFallsBackToDefault(t *testing.T) {
	t.Setenv("AUTOSAVE_DELAY_MS", "soon")

	cfg := New()
	if cfg.AutosaveDelay != 1500*time.Millisecond {
		t.Fatalf("expected fallback autosave delay, got %s", cfg.AutosaveDelay)
	}
}

func TestRouteSuggestionsAreTrimmed(t *testing.T) {
	t.Setenv("ROUTE_SUGGESTIONS", " /, /pricing ,, /contact")

	cfg := New()
	want := []string{"/", "/pricing", "/contact"}
	if len(cfg.RouteSuggestions) != len(want) {
		t.Fatalf("expected %d suggestions, got %v", len(want), cfg.RouteSuggestions)
	}
	for i := range want {
		if cfg.RouteSuggestions[i] != want[i] {
			t.Fatalf("expected suggestion %d to be %q, got %q", i, want[i], cfg.RouteSuggestions[i])
		}
	}
}

func TestSQLiteDriverSelection(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")

	cfg := New()
	if !cfg.UsesSQLite() {
		t.Fatalf("expected sqlite driver to be selected, got %q", cfg.DBDriver)
	}
}
