package services

import (
	"context"
	"errors"
	"generate-video-lambda/domain"
	"testing"
	"time"
)

func newTestExecutor(sleeper *recordingSleeper) *RetryExecutor {
	ex := NewRetryExecutor(DefaultRetryPolicy(), noopLogger{})
	ex.sleep = sleeper.sleep
	return ex
}

func TestExecute_TransientFailuresThenSuccess(t *testing.T) {
	sleeper := &recordingSleeper{}
	ex := newTestExecutor(sleeper)

	calls := 0
	result, err := Execute(context.Background(), ex, func(ctx context.Context) (string, error) {
		calls++
		if calls <= 2 {
			return "", domain.NewServiceError(domain.KindRateLimited, "429 too many requests", nil)
		}
		return "videos/final.mp4", nil
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if result != "videos/final.mp4" {
		t.Errorf("result = %q, want videos/final.mp4", result)
	}
	if calls != 3 {
		t.Errorf("operation invoked %d times, want 3", calls)
	}
	if len(sleeper.slept) != 2 {
		t.Fatalf("slept %d times, want 2", len(sleeper.slept))
	}
	if sleeper.slept[1] < 2*sleeper.slept[0] {
		t.Errorf("backoff did not grow: first %v, second %v", sleeper.slept[0], sleeper.slept[1])
	}
}

func TestExecute_FatalFailureRaisesImmediately(t *testing.T) {
	sleeper := &recordingSleeper{}
	ex := newTestExecutor(sleeper)

	fatal := domain.NewServiceError(domain.KindUnauthorized, "Requested entity was not found", nil)
	calls := 0
	_, err := Execute(context.Background(), ex, func(ctx context.Context) (string, error) {
		calls++
		return "", fatal
	})
	if !errors.Is(err, fatal) {
		t.Fatalf("err = %v, want the fatal error unchanged", err)
	}
	if calls != 1 {
		t.Errorf("operation invoked %d times, want 1", calls)
	}
	if len(sleeper.slept) != 0 {
		t.Errorf("slept %d times, want 0", len(sleeper.slept))
	}
}

func TestExecute_ExhaustedRetriesReturnLastError(t *testing.T) {
	sleeper := &recordingSleeper{}
	ex := newTestExecutor(sleeper)

	transient := domain.NewServiceError(domain.KindOverloaded, "503 service unavailable", nil)
	calls := 0
	_, err := Execute(context.Background(), ex, func(ctx context.Context) (string, error) {
		calls++
		return "", transient
	})
	if !errors.Is(err, transient) {
		t.Fatalf("err = %v, want the last transient error", err)
	}
	if calls != DefaultMaxRetries+1 {
		t.Errorf("operation invoked %d times, want %d", calls, DefaultMaxRetries+1)
	}
	if len(sleeper.slept) != DefaultMaxRetries {
		t.Errorf("slept %d times, want %d", len(sleeper.slept), DefaultMaxRetries)
	}
}

func TestExecute_CancelledDuringBackoff(t *testing.T) {
	ex := NewRetryExecutor(DefaultRetryPolicy(), noopLogger{})
	ctx, cancel := context.WithCancel(context.Background())
	ex.sleep = func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}

	_, err := Execute(ctx, ex, func(ctx context.Context) (string, error) {
		return "", domain.NewServiceError(domain.KindRateLimited, "RESOURCE_EXHAUSTED", nil)
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRetryPolicy_DelayDoubles(t *testing.T) {
	policy := DefaultRetryPolicy()
	if got := policy.DelayFor(0); got != 2*time.Second {
		t.Errorf("DelayFor(0) = %v, want 2s", got)
	}
	if got := policy.DelayFor(1); got != 4*time.Second {
		t.Errorf("DelayFor(1) = %v, want 4s", got)
	}
	if got := policy.DelayFor(2); got != 8*time.Second {
		t.Errorf("DelayFor(2) = %v, want 8s", got)
	}
}
