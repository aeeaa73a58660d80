// Package loop runs a task over and over, threading a value from each
// pass to the next.
package loop

import (
	"context"
	"fmt"
	"time"
)

// Next tells Start what to do after a pass.
//
// Its zero value continues immediately.
type Next struct {
	// breaks the loop with this error when not nil.
	err error

	// breaks the loop without error when err is nil.
	quit bool

	// sleep before the next pass, otherwise.
	interval time.Duration
}

func (n Next) String() string {
	if n.err != nil {
		return fmt.Sprintf("[break] with error: %v", n.err)
	}
	if n.quit {
		return "[break] without error"
	}

	return fmt.Sprintf("[continue] interval: %s", n.interval)
}

// Continue runs the next pass after interval.
func Continue(interval time.Duration) Next {
	return Next{interval: interval}
}

// Break stops the loop. err may be nil.
func Break(err error) Next {
	return Next{quit: true, err: err}
}

// Task is one pass of a loop.
//
// It receives the value the previous pass returned and decides with
// Next how to go on.
type Task[T any] func(context.Context, T) (T, Next)

// Start calls task repeatedly until the task breaks or ctx is done.
//
// The first pass receives init; every later pass receives the value
// the previous one returned, so state (counters, cursors, statistics)
// threads through the loop without shared variables.
//
// # Returns
//
// - T: the value of the last pass. Returned also on error.
//
// - error: the error given to Break, or the context error when ctx
// ends the loop. Break(nil) returns a nil error.
func Start[T any](ctx context.Context, init T, task Task[T], options ...LoopOption) (T, error) {
	value := init
	if err := ctx.Err(); err != nil {
		return value, err
	}

	for {
		v, next := pass(ctx, value, task, options)
		if next.quit || next.err != nil {
			return v, next.err
		}
		value = v

		timer := time.NewTimer(next.interval)
		select {
		case <-ctx.Done():
			// shutdown wins over the tick. drain the timer when it
			// fired meanwhile; see time.Timer.Stop.
			if !timer.Stop() {
				<-timer.C
			}
			return value, ctx.Err()

		case <-timer.C:
		}
	}
}

// pass runs task once, under the per-pass context the options build.
func pass[T any](ctx context.Context, value T, task Task[T], options []LoopOption) (T, Next) {
	lc := &loopConfig{ctx: ctx}
	for _, opt := range options {
		lc = opt(lc)
	}
	if lc.deferred != nil {
		defer lc.deferred()
	}
	return task(lc.ctx, value)
}

type loopConfig struct {
	ctx      context.Context
	deferred func()
}

type LoopOption func(*loopConfig) *loopConfig

// WithTimeout bounds each pass: the context the task receives is
// canceled this long after the pass starts.
func WithTimeout(d time.Duration) LoopOption {
	return func(lc *loopConfig) *loopConfig {
		ctx, cancel := context.WithTimeout(lc.ctx, d)
		return &loopConfig{
			ctx: ctx,
			deferred: func() {
				if lc.deferred != nil {
					defer lc.deferred()
				}
				cancel()
			},
		}
	}
}
