package background

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"page-builder-backend/internal/metrics"
	"page-builder-backend/pkg/logger"
)

// SchedulerConfig sizes the worker pool.
type SchedulerConfig struct {
	WorkerCount int
	QueueSize   int
}

// RetryPolicy controls how failed jobs are re-queued. Retryable decides which
// errors are worth another attempt; a nil Retryable retries every error.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
	Retryable   func(error) bool
}

// Job is one unit of background persistence. Op labels metrics and logs.
type Job struct {
	Op          string
	Key         string
	Run         func(ctx context.Context) error
	Timeout     time.Duration
	RetryPolicy RetryPolicy
	// OnFailure runs once after the final failed attempt.
	OnFailure func(err error)
}

var (
	ErrSchedulerNotStarted   = errors.New("scheduler not started")
	errSchedulerShuttingDown = errors.New("scheduler is shutting down")
)

// Scheduler runs persistence jobs on a bounded worker pool and tracks every
// queued or running job so callers can wait for quiescence.
type Scheduler struct {
	config SchedulerConfig

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	started bool

	queue chan scheduledJob

	workerWG  sync.WaitGroup
	pendingWG sync.WaitGroup
	pending   int
}

type scheduledJob struct {
	job     Job
	attempt int
	delay   time.Duration
}

func NewScheduler(cfg SchedulerConfig) *Scheduler {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 32
	}

	return &Scheduler{
		config: cfg,
		queue:  make(chan scheduledJob, cfg.QueueSize),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.started = true

	for i := 0; i < s.config.WorkerCount; i++ {
		s.workerWG.Add(1)
		go s.worker()
	}
}

func (s *Scheduler) worker() {
	defer s.workerWG.Done()

	for {
		select {
		case <-s.ctx.Done():
			s.drain()
			return
		case job := <-s.queue:
			s.execute(job)
		}
	}
}

// drain releases jobs still buffered after cancellation.
func (s *Scheduler) drain() {
	for {
		select {
		case job := <-s.queue:
			s.finishJob(job, context.Canceled)
		default:
			return
		}
	}
}

func (s *Scheduler) execute(job scheduledJob) {
	if job.delay > 0 {
		timer := time.NewTimer(job.delay)
		select {
		case <-timer.C:
		case <-s.ctx.Done():
			timer.Stop()
			s.finishJob(job, context.Canceled)
			return
		}
	}

	err := s.runJob(job)
	if err != nil && s.shouldRetry(job, err) {
		retry := job
		retry.attempt++
		retry.delay = job.job.RetryPolicy.Backoff
		if s.requeue(retry) {
			return
		}
	}

	s.finishJob(job, err)
}

func (s *Scheduler) runJob(job scheduledJob) (runErr error) {
	start := time.Now()

	ctx := s.ctx
	if job.job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.job.Timeout)
		defer cancel()
	}

	defer func() {
		metrics.ObservePersist(job.job.Op, time.Since(start))
		metrics.SectionPersisted(job.job.Op, runErr)
	}()

	defer func() {
		if r := recover(); r != nil {
			runErr = fmt.Errorf("panic: %v", r)
			logger.Error(runErr, "Persistence job panicked", map[string]interface{}{"op": job.job.Op, "key": job.job.Key, "attempt": job.attempt})
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	runErr = job.job.Run(ctx)
	if runErr != nil {
		logger.Warn("Persistence job attempt failed", map[string]interface{}{"op": job.job.Op, "key": job.job.Key, "attempt": job.attempt, "error": runErr.Error()})
	}
	return runErr
}

func (s *Scheduler) shouldRetry(job scheduledJob, err error) bool {
	policy := job.job.RetryPolicy
	if policy.MaxAttempts <= 1 || job.attempt >= policy.MaxAttempts {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if policy.Retryable != nil && !policy.Retryable(err) {
		return false
	}
	return true
}

// requeue hands a retry back to the pool without blocking the worker.
func (s *Scheduler) requeue(job scheduledJob) bool {
	select {
	case <-s.ctx.Done():
		return false
	case s.queue <- job:
		return true
	default:
		s.execute(job)
		return true
	}
}

func (s *Scheduler) finishJob(job scheduledJob, runErr error) {
	defer func() {
		s.mu.Lock()
		s.pending--
		s.mu.Unlock()
		s.pendingWG.Done()
	}()

	fields := map[string]interface{}{"op": job.job.Op, "key": job.job.Key, "attempt": job.attempt}
	if runErr == nil {
		logger.Debug("Persistence job completed", fields)
		return
	}

	if errors.Is(runErr, context.Canceled) {
		logger.Warn("Persistence job canceled", fields)
	} else {
		logger.Error(runErr, "Persistence job failed", fields)
	}
	if job.job.OnFailure != nil {
		job.job.OnFailure(runErr)
	}
}

// Schedule queues job for execution. It blocks while the queue is full.
func (s *Scheduler) Schedule(job Job) error {
	if job.Op == "" {
		return errors.New("job op is required")
	}
	if job.Run == nil {
		return errors.New("job runner is required")
	}

	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return ErrSchedulerNotStarted
	}
	ctx := s.ctx
	if ctx.Err() != nil {
		s.mu.Unlock()
		return errSchedulerShuttingDown
	}
	s.pending++
	s.pendingWG.Add(1)
	s.mu.Unlock()

	scheduled := scheduledJob{job: job, attempt: 1}
	select {
	case <-ctx.Done():
		s.mu.Lock()
		s.pending--
		s.mu.Unlock()
		s.pendingWG.Done()
		return errSchedulerShuttingDown
	case s.queue <- scheduled:
		return nil
	}
}

// Wait blocks until every queued job has finished or ctx is done.
func (s *Scheduler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pendingWG.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown cancels outstanding jobs and waits for the workers to exit.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		s.workerWG.Wait()
		s.drain()
		s.pendingWG.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PendingJobCount reports queued plus running jobs.
func (s *Scheduler) PendingJobCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}
