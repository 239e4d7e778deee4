package workers

import "context"

// Job is anything the pool can process; the id is for logging only.
type Job interface {
	GetID() string
}

// Processor supplies work and handles outcomes. Checkout must be safe to
// call from several workers at once.
type Processor[T Job] interface {
	// Checkout returns the next job, or ErrNoWorkAvailable.
	Checkout(ctx context.Context, workerID string) (T, error)

	// Process executes the job and returns its final state.
	Process(ctx context.Context, job T) (T, error)

	// Complete is called after a successful Process.
	Complete(ctx context.Context, job T, processingTimeMS int) error

	// Fail is called after Process gives up.
	Fail(ctx context.Context, job T, err error) error
}

// WorkFunc is one checkout-process-complete cycle.
type WorkFunc func(ctx context.Context, workerID string) error

// Middleware wraps a WorkFunc with additional behavior.
type Middleware func(WorkFunc) WorkFunc
