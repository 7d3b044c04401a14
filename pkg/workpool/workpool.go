// Package workpool runs a function over a fixed set of inputs on a bounded
// number of goroutines and streams the results back in completion order.
package workpool

import (
	"context"
	"fmt"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one task. Panic is set when the task panicked,
// in which case Value is the zero value.
type Result[In any, Out any] struct {
	Input In
	Value Out
	Panic error
}

// Run starts fn for every input with at most width tasks in flight.
// The returned channel yields one Result per started task and is closed once
// all of them have finished; it must be drained. Inputs not yet started when
// ctx is cancelled are skipped.
func Run[In any, Out any](ctx context.Context, width int, inputs []In, fn func(ctx context.Context, in In) Out) <-chan Result[In, Out] {
	if width < 1 {
		width = 1
	}

	out := make(chan Result[In, Out], width)

	var g errgroup.Group
	g.SetLimit(width)

	go func() {
		defer close(out)

		for _, in := range inputs {
			if ctx.Err() != nil {
				break
			}

			g.Go(func() error {
				out <- call(ctx, in, fn)
				return nil
			})
		}

		_ = g.Wait()
	}()

	return out
}

// Collect drains Run into a slice, mostly useful for tests and small fan-outs
func Collect[In any, Out any](ch <-chan Result[In, Out]) []Result[In, Out] {
	var results []Result[In, Out]
	for r := range ch {
		results = append(results, r)
	}
	return results
}

func call[In any, Out any](ctx context.Context, in In, fn func(ctx context.Context, in In) Out) (res Result[In, Out]) {
	res.Input = in

	defer func() {
		if r := recover(); r != nil {
			res.Panic = fmt.Errorf("task panicked: %v\n%s", r, debug.Stack())
		}
	}()

	res.Value = fn(ctx, in)
	return res
}
