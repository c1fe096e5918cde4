package background

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

var errConflict = errors.New("conflict")

func startScheduler(t *testing.T) *Scheduler {
	t.Helper()
	s := NewScheduler(SchedulerConfig{WorkerCount: 2, QueueSize: 4})
	s.Start(context.Background())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})
	return s
}

func waitIdle(t *testing.T, s *Scheduler) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}
}

func TestScheduleBeforeStart(t *testing.T) {
	s := NewScheduler(SchedulerConfig{})
	err := s.Schedule(Job{Op: "update", Run: func(context.Context) error { return nil }})
	if !errors.Is(err, ErrSchedulerNotStarted) {
		t.Fatalf("expected ErrSchedulerNotStarted, got %v", err)
	}
}

func TestScheduleValidatesJob(t *testing.T) {
	s := startScheduler(t)
	if err := s.Schedule(Job{Run: func(context.Context) error { return nil }}); err == nil {
		t.Fatal("expected error for missing op")
	}
	if err := s.Schedule(Job{Op: "update"}); err == nil {
		t.Fatal("expected error for missing runner")
	}
}

func TestRetriesOnlyRetryableErrors(t *testing.T) {
	s := startScheduler(t)

	var conflicts int32
	var failed int32
	err := s.Schedule(Job{
		Op: "create",
		Run: func(context.Context) error {
			atomic.AddInt32(&conflicts, 1)
			return errConflict
		},
		RetryPolicy: RetryPolicy{
			MaxAttempts: 3,
			Retryable:   func(err error) bool { return errors.Is(err, errConflict) },
		},
		OnFailure: func(error) { atomic.AddInt32(&failed, 1) },
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	var other int32
	err = s.Schedule(Job{
		Op: "update",
		Run: func(context.Context) error {
			atomic.AddInt32(&other, 1)
			return errors.New("bad request")
		},
		RetryPolicy: RetryPolicy{
			MaxAttempts: 3,
			Retryable:   func(err error) bool { return errors.Is(err, errConflict) },
		},
		OnFailure: func(error) { atomic.AddInt32(&failed, 1) },
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	waitIdle(t, s)

	if got := atomic.LoadInt32(&conflicts); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
	if got := atomic.LoadInt32(&other); got != 1 {
		t.Fatalf("expected a single attempt for non-retryable error, got %d", got)
	}
	if got := atomic.LoadInt32(&failed); got != 2 {
		t.Fatalf("expected OnFailure twice, got %d", got)
	}
	if s.PendingJobCount() != 0 {
		t.Fatalf("expected no pending jobs, got %d", s.PendingJobCount())
	}
}

func TestPanicIsRecovered(t *testing.T) {
	s := startScheduler(t)

	var failure error
	done := make(chan struct{})
	err := s.Schedule(Job{
		Op:        "reorder",
		Run:       func(context.Context) error { panic("kaboom") },
		OnFailure: func(err error) { failure = err; close(done) },
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	waitIdle(t, s)
	<-done

	if failure == nil {
		t.Fatal("expected panic to surface as failure")
	}
}

func TestShutdownCancelsQueuedJobs(t *testing.T) {
	s := NewScheduler(SchedulerConfig{WorkerCount: 1, QueueSize: 4})
	s.Start(context.Background())

	release := make(chan struct{})
	var canceled int32
	_ = s.Schedule(Job{Op: "slow", Run: func(ctx context.Context) error {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return ctx.Err()
	}, OnFailure: func(error) { atomic.AddInt32(&canceled, 1) }})
	_ = s.Schedule(Job{Op: "queued", Run: func(context.Context) error { return nil }, OnFailure: func(error) { atomic.AddInt32(&canceled, 1) }})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	close(release)

	if s.PendingJobCount() != 0 {
		t.Fatalf("expected pending jobs to be released, got %d", s.PendingJobCount())
	}
	if err := s.Schedule(Job{Op: "late", Run: func(context.Context) error { return nil }}); err == nil {
		t.Fatal("expected schedule after shutdown to fail")
	}
}
