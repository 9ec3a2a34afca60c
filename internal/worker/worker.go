// Package worker runs blocking jobs on a dedicated goroutine and reports the
// outcome on a channel, so the caller's goroutine stays free until it wants
// the result.
package worker

import (
	"context"
	"fmt"
)

// Result is the outcome of one job.
type Result[T any] struct {
	Value T
	Err   error
}

// Go starts job on a new goroutine. The returned channel receives exactly
// one Result and is then closed.
//
// The context is checked only before the job starts: a job that is already
// running is not interrupted, and nothing it did is rolled back on failure.
// A panic inside job is reported as an error.
func Go[T any](ctx context.Context, job func() (T, error)) <-chan Result[T] {
	out := make(chan Result[T], 1)

	go func() {
		defer close(out)

		if err := ctx.Err(); err != nil {
			out <- Result[T]{Err: err}
			return
		}

		out <- run(job)
	}()

	return out
}

func run[T any](job func() (T, error)) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = Result[T]{Err: fmt.Errorf("worker job panicked: %v", r)}
		}
	}()

	v, err := job()
	return Result[T]{Value: v, Err: err}
}

// Wait blocks until the job finishes or ctx is done. When ctx ends first
// the job keeps running and its result is dropped.
func Wait[T any](ctx context.Context, ch <-chan Result[T]) (T, error) {
	select {
	case res, ok := <-ch:
		if !ok {
			var zero T
			return zero, fmt.Errorf("worker result channel closed")
		}
		return res.Value, res.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
