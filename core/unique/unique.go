// Package unique resolves naming collisions within an owner's scope by
// probing suffixed candidates until one is free.
package unique

import (
	"context"
	"errors"
	"fmt"
)

// ErrExhausted is returned when probing gives up. Hitting it means the
// exists check is broken or adversarial, so it surfaces as an
// infrastructure fault rather than a business rejection.
var ErrExhausted = errors.New("unique: name probing exhausted")

// maxProbes bounds the loop; collisions are expected to be rare and deep
// suffix chains indicate a buggy exists check.
const maxProbes = 1000

// ExistsFunc reports whether a name is already taken within the caller's
// scope. Implementations must scope the check to a single owner.
type ExistsFunc func(ctx context.Context, name string) (bool, error)

// Resolve returns base unchanged when it is free, otherwise the first free
// "base (n)" for n = 1, 2, 3, ...
//
// Callers updating an existing record to its current name must skip
// Resolve entirely: the name only collides with itself.
func Resolve(ctx context.Context, base string, exists ExistsFunc) (string, error) {
	candidate := base
	for probe := 0; probe < maxProbes; probe++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("checking name %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}

		candidate = fmt.Sprintf("%s (%d)", base, probe+1)
	}

	return "", fmt.Errorf("resolving %q: %w", base, ErrExhausted)
}
