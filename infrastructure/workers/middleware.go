package workers

import (
	"context"
	"time"

	"github.com/jharlan/tasklane/sdk/logger"
)

// Timing logs the duration of every work cycle that found work.
func Timing(log *logger.Logger) Middleware {
	return func(next WorkFunc) WorkFunc {
		return func(ctx context.Context, workerID string) error {
			start := time.Now()
			err := next(ctx, workerID)
			if err == nil {
				log.DebugContext(ctx, "work cycle finished",
					"worker_id", workerID,
					"duration_ms", int(time.Since(start).Milliseconds()))
			}
			return err
		}
	}
}

// Timeout bounds a single work cycle.
func Timeout(limit time.Duration) Middleware {
	return func(next WorkFunc) WorkFunc {
		return func(ctx context.Context, workerID string) error {
			ctx, cancel := context.WithTimeout(ctx, limit)
			defer cancel()
			return next(ctx, workerID)
		}
	}
}
