package fanout

import (
	"context"
	"sync"
	"time"

	"github.com/plaza-dev/plaza/shared/logger"
)

// Job is a unit of side-effect work. It must tolerate ctx being cancelled by
// the job timeout.
type Job func(ctx context.Context)

// Dispatcher hands off side-effect work that must not delay the response.
type Dispatcher interface {
	Submit(ctx context.Context, name string, job Job)
}

type queued struct {
	ctx  context.Context
	name string
	job  Job
}

// Runner is a bounded worker pool. Jobs inherit request values but not its
// cancellation, and each one is bounded by timeout.
type Runner struct {
	queue   chan queued
	timeout time.Duration
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
}

func NewRunner(workers, queueSize int, timeout time.Duration) *Runner {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	r := &Runner{
		queue:   make(chan queued, queueSize),
		timeout: timeout,
	}
	r.wg.Add(workers)
	for range workers {
		go r.work()
	}
	return r
}

// Submit queues job. When the queue is full the job runs in the caller's
// goroutine instead, so overload slows requests down rather than losing
// counters. Jobs submitted after Close are dropped.
func (r *Runner) Submit(ctx context.Context, name string, job Job) {
	q := queued{ctx: context.WithoutCancel(ctx), name: name, job: job}

	r.mu.RLock()
	if r.closed {
		r.mu.RUnlock()
		logger.Log.Warn("fanout runner closed, dropping job", "job", name)
		jobsTotal.WithLabelValues(name, "dropped").Inc()
		return
	}
	select {
	case r.queue <- q:
		r.mu.RUnlock()
		return
	default:
	}
	r.mu.RUnlock()

	logger.Log.Warn("fanout queue full, running job inline", "job", name)
	jobsTotal.WithLabelValues(name, "inline").Inc()
	r.run(q)
}

func (r *Runner) work() {
	defer r.wg.Done()
	for q := range r.queue {
		r.run(q)
	}
}

func (r *Runner) run(q queued) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Log.Error("fanout job panicked", "job", q.name, "panic", rec)
			jobsTotal.WithLabelValues(q.name, "panic").Inc()
		}
	}()

	ctx := q.ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	q.job(ctx)
	jobsTotal.WithLabelValues(q.name, "done").Inc()
}

// Close stops accepting jobs and waits until the queue is drained.
func (r *Runner) Close() {
	r.once.Do(func() {
		r.mu.Lock()
		r.closed = true
		close(r.queue)
		r.mu.Unlock()
		r.wg.Wait()
	})
}

// SyncRunner runs jobs inline. Used in tests and tools.
type SyncRunner struct{}

func (SyncRunner) Submit(ctx context.Context, name string, job Job) {
	job(context.WithoutCancel(ctx))
}
