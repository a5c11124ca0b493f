package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"
)

// flaky fails its first failures invocations, then succeeds.
type flaky struct {
	failures int
	calls    int
}

func (f *flaky) run(ctx context.Context) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("transient failure")
	}
	return nil
}

func TestWithRetrySucceedsFirstTry(t *testing.T) {
	f := &flaky{}
	if err := WithRetry(context.Background(), 3, time.Millisecond, f.run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.calls != 1 {
		t.Errorf("expected 1 call, got %d", f.calls)
	}
}

func TestWithRetryRecoversWithinAttempts(t *testing.T) {
	f := &flaky{failures: 2}
	if err := WithRetry(context.Background(), 3, time.Millisecond, f.run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.calls != 3 {
		t.Errorf("expected 3 calls, got %d", f.calls)
	}
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	f := &flaky{failures: 2}
	err := WithRetry(context.Background(), 2, time.Millisecond, f.run)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if f.calls != 2 {
		t.Errorf("expected 2 calls, got %d", f.calls)
	}
}

func TestWithRetryBacksOffExponentially(t *testing.T) {
	f := &flaky{failures: 2}
	base := 10 * time.Millisecond

	start := time.Now()
	if err := WithRetry(context.Background(), 3, base, f.run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elapsed := time.Since(start)

	// Two backoffs: base and 2*base.
	if elapsed < 3*base {
		t.Errorf("expected at least %v of backoff, got %v", 3*base, elapsed)
	}
}

func TestWithRetryRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &flaky{failures: 10}
	err := WithRetry(ctx, 3, time.Hour, f.run)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if f.calls != 1 {
		t.Errorf("expected 1 call before cancellation, got %d", f.calls)
	}
}
