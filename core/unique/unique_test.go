package unique_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jharlan/tasklane/core/unique"
)

func existsIn(names ...string) unique.ExistsFunc {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(ctx context.Context, name string) (bool, error) {
		return set[name], nil
	}
}

func TestResolveFreeNameUnchanged(t *testing.T) {
	got, err := unique.Resolve(context.Background(), "Work", existsIn())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "Work" {
		t.Errorf("Resolve = %q, want Work", got)
	}
}

func TestResolveSkipsTakenSuffixes(t *testing.T) {
	got, err := unique.Resolve(context.Background(), "A", existsIn("A", "A (1)", "A (2)"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "A (3)" {
		t.Errorf("Resolve = %q, want A (3)", got)
	}
}

func TestResolveFirstSuffix(t *testing.T) {
	got, err := unique.Resolve(context.Background(), "Home", existsIn("Home"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "Home (1)" {
		t.Errorf("Resolve = %q, want Home (1)", got)
	}
}

func TestResolveFailsClosedWhenEverythingTaken(t *testing.T) {
	always := func(ctx context.Context, name string) (bool, error) { return true, nil }

	_, err := unique.Resolve(context.Background(), "X", always)
	if !errors.Is(err, unique.ErrExhausted) {
		t.Fatalf("err = %v, want ErrExhausted", err)
	}
}

func TestResolvePropagatesCheckError(t *testing.T) {
	boom := errors.New("connection reset")
	failing := func(ctx context.Context, name string) (bool, error) { return false, boom }

	_, err := unique.Resolve(context.Background(), "X", failing)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped check error", err)
	}
}

func TestResolveHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := unique.Resolve(ctx, "X", existsIn())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
