// Package wait provides the poll-with-timeout primitive used by every
// asynchronous UI wait in the companion resolver. Centralizing the loop keeps
// timeout behaviour uniform and lets tests substitute a fake sleeper.
package wait

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout indicates the predicate never held within the allotted window.
var ErrTimeout = errors.New("wait timeout")

// Predicate reports whether the awaited condition holds. A returned error
// aborts the wait immediately.
type Predicate func(ctx context.Context) (bool, error)

// Sleeper pauses between polls. The default honours context cancellation.
type Sleeper func(ctx context.Context, d time.Duration) error

// Options configures a wait loop.
type Options struct {
	Timeout  time.Duration
	Interval time.Duration
	Sleep    Sleeper
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Interval <= 0 {
		o.Interval = time.Second
	}
	if o.Sleep == nil {
		o.Sleep = SleepContext
	}
	return o
}

// Until polls the predicate until it holds, the timeout budget is spent, or
// the context is cancelled. The predicate is always evaluated at least once,
// so a condition that already holds succeeds even with a zero budget. The
// budget is tracked as accumulated poll intervals rather than wall-clock time
// so a fake sleeper drives the loop deterministically.
func Until(ctx context.Context, pred Predicate, opts Options) error {
	opts = opts.withDefaults()
	var elapsed time.Duration
	for {
		ok, err := pred(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if elapsed >= opts.Timeout {
			return ErrTimeout
		}
		if err := opts.Sleep(ctx, opts.Interval); err != nil {
			return err
		}
		elapsed += opts.Interval
	}
}

// SleepContext pauses for the duration unless the context is cancelled first.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
