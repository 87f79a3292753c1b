package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"ekoink.backend/pkg/logger"
)

const defaultQueueSize = 64

// TaskFunc is a unit of background work. It receives a fresh context with
// the submitted task's deadline; failures are logged, never retried.
type TaskFunc func(ctx context.Context) error

type task struct {
	name    string
	fn      TaskFunc
	timeout time.Duration
}

// TaskRunner executes named background tasks on a single worker goroutine.
// It replaces fire-and-forget goroutines so that side effects of request
// handling (deep analysis, auto-send) are observable and drain on shutdown.
type TaskRunner struct {
	queue    chan task
	stopOnce sync.Once
	done     chan struct{}

	mu      sync.RWMutex
	stopped bool
}

func NewTaskRunner() *TaskRunner {
	return &TaskRunner{
		queue: make(chan task, defaultQueueSize),
		done:  make(chan struct{}),
	}
}

// Start launches the worker. Call exactly once.
func (r *TaskRunner) Start() {
	go r.loop()
}

func (r *TaskRunner) loop() {
	defer close(r.done)
	for t := range r.queue {
		r.run(t)
	}
}

func (r *TaskRunner) run(t task) {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error(ctx, "background task panic",
				zap.String("task", t.name),
				zap.Any("panic", rec),
			)
		}
	}()

	start := time.Now()
	if err := t.fn(ctx); err != nil {
		logger.Error(ctx, "background task failed",
			zap.String("task", t.name),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return
	}
	logger.Debug(ctx, "background task done",
		zap.String("task", t.name),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// Submit enqueues a task. Returns false when the queue is full or the runner
// has stopped; the caller decides whether that matters (learning side effects
// treat it as best-effort).
func (r *TaskRunner) Submit(name string, timeout time.Duration, fn TaskFunc) bool {
	// The read lock keeps Stop from closing the queue mid-send.
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.stopped {
		logger.Warn(context.Background(), "task runner stopped, dropping task",
			zap.String("task", name),
		)
		return false
	}

	select {
	case r.queue <- task{name: name, fn: fn, timeout: timeout}:
		return true
	default:
		logger.Warn(context.Background(), "background task queue full, dropping task",
			zap.String("task", name),
		)
		return false
	}
}

// Stop closes the queue and waits for in-flight tasks to finish.
func (r *TaskRunner) Stop() {
	r.stopOnce.Do(func() {
		r.mu.Lock()
		r.stopped = true
		r.mu.Unlock()
		close(r.queue)
	})
	<-r.done
}
