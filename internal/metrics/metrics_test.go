package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestSectionPersistedLabelsOutcome(t *testing.T) {
	SectionPersisted("create", nil)
	SectionPersisted("create", errors.New("boom"))

	if got := counterValue(t, sectionPersistTotal.WithLabelValues("create", "success")); got < 1 {
		t.Fatalf("expected success counter to be incremented, got %v", got)
	}
	if got := counterValue(t, sectionPersistTotal.WithLabelValues("create", "failure")); got < 1 {
		t.Fatalf("expected failure counter to be incremented, got %v", got)
	}
}

func TestCountersIncrement(t *testing.T) {
	initMetrics()
	before := counterValue(t, orderConflictRetries)
	OrderConflictRetried()
	if got := counterValue(t, orderConflictRetries); got != before+1 {
		t.Fatalf("expected %v, got %v", before+1, got)
	}

	before = counterValue(t, normalizeParseFailures)
	ContentParseFailed()
	if got := counterValue(t, normalizeParseFailures); got != before+1 {
		t.Fatalf("expected %v, got %v", before+1, got)
	}

	RenderFailed("panic")
	if got := counterValue(t, renderFailuresTotal.WithLabelValues("panic")); got < 1 {
		t.Fatalf("expected render failure to be counted, got %v", got)
	}
}

func TestObserversDoNotPanic(t *testing.T) {
	ObservePersist("reorder", 10*time.Millisecond)
	ObservePageRender("public", time.Now())
}
