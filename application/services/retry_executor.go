package services

import (
	"context"
	"generate-video-lambda/application/ports/outbound"
	"time"
)

// sleepFunc suspends for d or until ctx is cancelled. Injectable so the
// tests can count sleeps instead of taking them.
type sleepFunc func(ctx context.Context, d time.Duration) error

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryExecutor runs a single operation under a RetryPolicy. Attempts are
// strictly sequential: the caller suspends only during the operation itself
// and during the backoff sleeps.
type RetryExecutor struct {
	policy RetryPolicy
	logger outbound.LoggerPort
	sleep  sleepFunc
}

func NewRetryExecutor(policy RetryPolicy, logger outbound.LoggerPort) *RetryExecutor {
	return &RetryExecutor{
		policy: policy,
		logger: logger,
		sleep:  sleepWithContext,
	}
}

// Execute invokes op, retrying transient failures with exponential backoff.
// Fatal failures and exhausted retries surface the last error unchanged.
func Execute[T any](ctx context.Context, ex *RetryExecutor, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	for attempt := 0; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		if !ex.policy.ShouldRetry(err) {
			return zero, err
		}
		if attempt >= ex.policy.MaxRetries {
			ex.logger.ErrorWithFields(err, "retries exhausted", map[string]interface{}{
				"attempts": attempt + 1,
			})
			return zero, err
		}
		delay := ex.policy.DelayFor(attempt)
		ex.logger.WarnWithFields("transient failure, retrying", map[string]interface{}{
			"attempt": attempt + 1,
			"delay":   delay.String(),
			"cause":   err.Error(),
		})
		if sleepErr := ex.sleep(ctx, delay); sleepErr != nil {
			return zero, sleepErr
		}
	}
}
