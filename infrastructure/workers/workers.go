// Package workers runs a polling worker pool over a Processor. Workers
// poll fast while work keeps arriving and back off to an idle interval
// when the queue drains.
package workers

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/jharlan/tasklane/sdk/environment"
	"github.com/jharlan/tasklane/sdk/logger"
)

var (
	// ErrWorkerShutdown tells one worker to exit without touching the rest.
	ErrWorkerShutdown = errors.New("worker should shutdown")
	// ErrNoWorkAvailable switches the worker to idle polling.
	ErrNoWorkAvailable = errors.New("no work available")
)

// Options is the exportable worker configuration.
type Options struct {
	Name         string        `env:"WORKER_NAME" default:"worker"`
	WorkerCount  int           `env:"WORKER_COUNT" default:"1"`
	PollInterval time.Duration `env:"WORKER_POLL_INTERVAL" default:"5s"`
	IdleInterval time.Duration `env:"WORKER_IDLE_INTERVAL" default:"30s"`
	MaxRetries   int           `env:"WORKER_MAX_RETRIES" default:"3"`
}

type options struct {
	name         string
	workerCount  int
	pollInterval time.Duration
	idleInterval time.Duration
	maxRetries   int
	middlewares  []Middleware
	log          *logger.Logger
}

// Option overrides a configured setting.
type Option func(*options)

// WithName sets the pool name used in logs.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithWorkerCount sets the number of workers.
func WithWorkerCount(count int) Option {
	return func(o *options) {
		o.workerCount = count
	}
}

// WithPollInterval sets how often to poll while work is flowing.
func WithPollInterval(interval time.Duration) Option {
	return func(o *options) {
		o.pollInterval = interval
	}
}

// WithIdleInterval sets how long to wait when no work is available.
func WithIdleInterval(interval time.Duration) Option {
	return func(o *options) {
		o.idleInterval = interval
	}
}

// WithMaxRetries sets the maximum number of Process attempts per job.
func WithMaxRetries(maxRetries int) Option {
	return func(o *options) {
		o.maxRetries = maxRetries
	}
}

// WithLogger sets a custom logger.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithMiddleware appends work middlewares, outermost first.
func WithMiddleware(middlewares ...Middleware) Option {
	return func(o *options) {
		o.middlewares = append(o.middlewares, middlewares...)
	}
}

// Pool runs workers over one processor.
type Pool[T Job] struct {
	processor    Processor[T]
	name         string
	workerCount  int
	pollInterval time.Duration
	idleInterval time.Duration
	maxRetries   int
	log          *logger.Logger

	workFunc WorkFunc

	ctx        context.Context
	cancel     context.CancelFunc
	workers    sync.WaitGroup
	startMutex sync.Mutex
	stopMutex  sync.Mutex
	running    bool
}

// NewFromEnv creates a pool configured from environment variables.
func NewFromEnv[T Job](prefix string, processor Processor[T], opts ...Option) (*Pool[T], error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing worker config: %w", err)
	}
	return newPool(processor, cfg, opts...)
}

// NewPool creates a pool with explicit name and worker count.
func NewPool[T Job](name string, workerCount int, processor Processor[T], opts ...Option) (*Pool[T], error) {
	cfg := Options{
		Name:         name,
		WorkerCount:  workerCount,
		PollInterval: time.Second,
		IdleInterval: 30 * time.Second,
		MaxRetries:   3,
	}
	return newPool(processor, cfg, opts...)
}

func newPool[T Job](processor Processor[T], cfg Options, opts ...Option) (*Pool[T], error) {
	internalOpts := &options{
		name:         cfg.Name,
		workerCount:  cfg.WorkerCount,
		pollInterval: cfg.PollInterval,
		idleInterval: cfg.IdleInterval,
		maxRetries:   cfg.MaxRetries,
	}
	for _, opt := range opts {
		opt(internalOpts)
	}
	if internalOpts.log == nil {
		internalOpts.log = logger.NewDefault()
	}
	if internalOpts.workerCount <= 0 {
		internalOpts.workerCount = 1
	}
	if internalOpts.pollInterval <= 0 {
		internalOpts.pollInterval = 5 * time.Second
	}
	if internalOpts.idleInterval <= 0 {
		internalOpts.idleInterval = 30 * time.Second
	}

	pool := &Pool[T]{
		processor:    processor,
		name:         internalOpts.name,
		workerCount:  internalOpts.workerCount,
		pollInterval: internalOpts.pollInterval,
		idleInterval: internalOpts.idleInterval,
		maxRetries:   internalOpts.maxRetries,
		log:          internalOpts.log,
	}

	pool.workFunc = pool.work
	for i := len(internalOpts.middlewares) - 1; i >= 0; i-- {
		pool.workFunc = internalOpts.middlewares[i](pool.workFunc)
	}

	return pool, nil
}

// Start runs the workers and blocks until the pool stops.
func (p *Pool[T]) Start(ctx context.Context) error {
	p.startMutex.Lock()
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.running = true

	p.log.InfoContext(ctx, "starting worker pool",
		"name", p.name,
		"worker_count", p.workerCount,
		"poll_interval", p.pollInterval)

	for i := 0; i < p.workerCount; i++ {
		workerID := fmt.Sprintf("%s-worker-%d", p.name, i+1)
		p.workers.Add(1)
		go p.worker(workerID)
	}
	p.startMutex.Unlock()

	p.workers.Wait()

	p.log.InfoContext(ctx, "worker pool stopped", "name", p.name)
	return nil
}

// Stop cancels the workers; Start returns once they drain.
func (p *Pool[T]) Stop() {
	p.stopMutex.Lock()
	defer p.stopMutex.Unlock()

	if !p.running {
		return
	}
	p.running = false

	p.log.InfoContext(p.ctx, "stopping worker pool", "name", p.name)
	if p.cancel != nil {
		p.cancel()
	}
}

func (p *Pool[T]) worker(workerID string) {
	defer p.workers.Done()

	p.log.InfoContext(p.ctx, "worker started", "worker_id", workerID, "pool", p.name)
	defer p.log.Info("worker stopped", "worker_id", workerID, "pool", p.name)

	currentInterval := time.Millisecond
	ticker := time.NewTicker(currentInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return

		case <-ticker.C:
			err := p.workWithRecovery(p.ctx, workerID)

			newInterval := p.pollInterval
			switch {
			case errors.Is(err, ErrWorkerShutdown):
				p.log.InfoContext(p.ctx, "worker shutting down as requested", "worker_id", workerID)
				return
			case errors.Is(err, ErrNoWorkAvailable):
				newInterval = p.idleInterval
			case err != nil:
				p.log.ErrorContext(p.ctx, "work cycle error", "worker_id", workerID, "error", err)
			}

			if newInterval != currentInterval {
				currentInterval = newInterval
				ticker.Reset(newInterval)
			}
		}
	}
}

// workWithRecovery keeps one panicking job from taking its worker down.
func (p *Pool[T]) workWithRecovery(ctx context.Context, workerID string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.log.ErrorContext(ctx, "panic recovered in worker",
				"worker_id", workerID,
				"panic", r,
				"stack_trace", string(debug.Stack()))
			err = fmt.Errorf("panic recovered: %v", r)
		}
	}()

	return p.workFunc(ctx, workerID)
}

// work runs one checkout-process-complete cycle.
func (p *Pool[T]) work(ctx context.Context, workerID string) error {
	job, err := p.processor.Checkout(ctx, workerID)
	if err != nil {
		if errors.Is(err, ErrNoWorkAvailable) {
			return err
		}
		return fmt.Errorf("checkout failed: %w", err)
	}

	start := time.Now()

	processed, err := p.runJob(ctx, job)
	duration := time.Since(start)

	if err != nil {
		if failErr := p.processor.Fail(ctx, job, err); failErr != nil {
			p.log.ErrorContext(ctx, "failed to mark job as failed",
				"job_id", job.GetID(),
				"error", failErr)
		}
		return fmt.Errorf("job processing error: %w", err)
	}

	if completeErr := p.processor.Complete(ctx, processed, int(duration.Milliseconds())); completeErr != nil {
		p.log.ErrorContext(ctx, "failed to mark job as complete",
			"job_id", job.GetID(),
			"error", completeErr)
	}

	p.log.InfoContext(ctx, "job completed",
		"worker_id", workerID,
		"job_id", job.GetID(),
		"duration_ms", int(duration.Milliseconds()))

	return nil
}

// runJob recovers a panicking Process so the job is still marked failed.
func (p *Pool[T]) runJob(ctx context.Context, job T) (processed T, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.log.ErrorContext(ctx, "panic recovered in job",
				"job_id", job.GetID(),
				"panic", r,
				"stack_trace", string(debug.Stack()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	return p.processWithRetry(ctx, job)
}

func (p *Pool[T]) processWithRetry(ctx context.Context, job T) (T, error) {
	maxAttempts := p.maxRetries
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	initialDelay := time.Second

	var processed T
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			p.log.InfoContext(ctx, "retrying job",
				"job_id", job.GetID(),
				"attempt", attempt,
				"max_attempts", maxAttempts)

			delay := initialDelay * time.Duration(1<<(attempt-2))
			select {
			case <-ctx.Done():
				return processed, ctx.Err()
			case <-time.After(delay):
			}
		}

		processed, lastErr = p.processor.Process(ctx, job)
		if lastErr == nil {
			return processed, nil
		}
		if ctx.Err() != nil {
			return processed, ctx.Err()
		}

		p.log.ErrorContext(ctx, "job processing attempt failed",
			"job_id", job.GetID(),
			"attempt", attempt,
			"error", lastErr)
	}

	return processed, fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
}
