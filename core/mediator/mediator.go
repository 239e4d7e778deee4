// Package mediator implements the command/query pipeline: every request
// type is bound to exactly one handler, and zero or more validation rules
// run before the handler does. Business rejections travel as a typed
// Result; infrastructure faults travel as plain errors and are never
// converted.
package mediator

import (
	"context"
	"fmt"
	"sync"
)

// Code classifies a business failure.
type Code int

const (
	// CodeNotFound covers both "does not exist" and "caller has no
	// visibility", deliberately conflated so unauthorized callers cannot
	// probe for existence.
	CodeNotFound Code = iota
	// CodeValidation covers malformed input and broken business
	// preconditions, including entity rule violations.
	CodeValidation
	// CodeInvalidOperation covers well-formed requests whose transition is
	// not allowed in the current state, e.g. granting a duplicate share.
	CodeInvalidOperation
)

func (c Code) String() string {
	switch c {
	case CodeNotFound:
		return "NotFound"
	case CodeValidation:
		return "ValidationError"
	case CodeInvalidOperation:
		return "InvalidOperation"
	}
	return "Unknown"
}

// Failure is the rejected half of a Result.
type Failure struct {
	Code    Code
	Message string
}

// Result is the tagged outcome of a handler: a value or a Failure, never
// both.
type Result[T any] struct {
	Value   T
	Failure *Failure
}

// OK constructs a successful Result.
func OK[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail constructs a failed Result.
func Fail[T any](code Code, format string, args ...any) Result[T] {
	return Result[T]{Failure: &Failure{Code: code, Message: fmt.Sprintf(format, args...)}}
}

// FailFrom wraps an existing Failure, letting policy code produce one
// Failure that handlers of different response types can all carry.
func FailFrom[T any](f *Failure) Result[T] {
	return Result[T]{Failure: f}
}

// Succeeded reports whether the Result carries a value.
func (r Result[T]) Succeeded() bool {
	return r.Failure == nil
}

// FieldError is a single validation finding.
type FieldError struct {
	Field   string
	Message string
}

// Rule validates one request. Rules must be read-only: the pipeline runs
// them concurrently.
type Rule[Req any] func(req Req) []FieldError

// Handler executes one request type.
type Handler[Req any, T any] interface {
	Handle(ctx context.Context, req Req) (Result[T], error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc[Req any, T any] func(ctx context.Context, req Req) (Result[T], error)

func (f HandlerFunc[Req, T]) Handle(ctx context.Context, req Req) (Result[T], error) {
	return f(ctx, req)
}

// Pipeline binds one handler and its rules to a request type.
type Pipeline[Req any, T any] struct {
	rules   []Rule[Req]
	handler Handler[Req, T]
}

// NewPipeline builds a pipeline. Rule order is registration order; it
// decides which failure wins when several rules reject.
func NewPipeline[Req any, T any](handler Handler[Req, T], rules ...Rule[Req]) *Pipeline[Req, T] {
	return &Pipeline[Req, T]{
		rules:   rules,
		handler: handler,
	}
}

// Send validates the request and dispatches it to the handler. Rules run
// concurrently but their findings are read back in registration order and
// the first failure wins; the handler is never invoked when any rule
// rejects. Context cancellation surfaces as an error, not a Result.
func (p *Pipeline[Req, T]) Send(ctx context.Context, req Req) (Result[T], error) {
	if err := ctx.Err(); err != nil {
		return Result[T]{}, err
	}

	if len(p.rules) > 0 {
		findings := make([][]FieldError, len(p.rules))

		var wg sync.WaitGroup
		for i, rule := range p.rules {
			wg.Add(1)
			go func(i int, rule Rule[Req]) {
				defer wg.Done()
				findings[i] = rule(req)
			}(i, rule)
		}
		wg.Wait()

		if err := ctx.Err(); err != nil {
			return Result[T]{}, err
		}

		for _, errs := range findings {
			if len(errs) > 0 {
				return Fail[T](CodeValidation, "%s", errs[0].Message), nil
			}
		}
	}

	return p.handler.Handle(ctx, req)
}
