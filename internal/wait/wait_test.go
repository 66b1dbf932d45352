package wait_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"albumlink/internal/wait"
)

func fakeSleeper(calls *int) wait.Sleeper {
	return func(ctx context.Context, d time.Duration) error {
		*calls++
		return nil
	}
}

func TestUntilImmediateSuccess(t *testing.T) {
	sleeps := 0
	err := wait.Until(context.Background(), func(ctx context.Context) (bool, error) {
		return true, nil
	}, wait.Options{Timeout: time.Second, Interval: time.Second, Sleep: fakeSleeper(&sleeps)})
	if err != nil {
		t.Fatalf("Until returned error: %v", err)
	}
	if sleeps != 0 {
		t.Fatalf("expected no sleeps for an immediate success, got %d", sleeps)
	}
}

func TestUntilEventualSuccess(t *testing.T) {
	sleeps := 0
	polls := 0
	err := wait.Until(context.Background(), func(ctx context.Context) (bool, error) {
		polls++
		return polls >= 3, nil
	}, wait.Options{Timeout: 10 * time.Second, Interval: time.Second, Sleep: fakeSleeper(&sleeps)})
	if err != nil {
		t.Fatalf("Until returned error: %v", err)
	}
	if polls != 3 || sleeps != 2 {
		t.Fatalf("expected 3 polls / 2 sleeps, got %d / %d", polls, sleeps)
	}
}

func TestUntilTimeout(t *testing.T) {
	sleeps := 0
	err := wait.Until(context.Background(), func(ctx context.Context) (bool, error) {
		return false, nil
	}, wait.Options{Timeout: 3 * time.Second, Interval: time.Second, Sleep: fakeSleeper(&sleeps)})
	if !errors.Is(err, wait.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if sleeps != 3 {
		t.Fatalf("expected 3 sleeps before timeout, got %d", sleeps)
	}
}

func TestUntilPredicateError(t *testing.T) {
	boom := errors.New("boom")
	err := wait.Until(context.Background(), func(ctx context.Context) (bool, error) {
		return false, boom
	}, wait.Options{Timeout: time.Second, Interval: time.Second, Sleep: fakeSleeper(new(int))})
	if !errors.Is(err, boom) {
		t.Fatalf("expected predicate error, got %v", err)
	}
}

func TestUntilCancelledDuringSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	err := wait.Until(ctx, func(ctx context.Context) (bool, error) {
		return false, nil
	}, wait.Options{Timeout: 10 * time.Second, Interval: time.Second, Sleep: func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}
