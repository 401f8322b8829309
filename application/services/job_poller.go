package services

import (
	"context"
	"generate-video-lambda/application/ports/outbound"
	"generate-video-lambda/domain"
	"time"
)

const DefaultPollInterval = 10 * time.Second

// JobPoller owns one remote operation from submission to completion: submit
// once, then check status at a fixed interval until the service reports
// done. Both network calls run under the RetryExecutor, so transient
// failures never surface here.
type JobPoller struct {
	executor *RetryExecutor
	logger   outbound.LoggerPort
	interval time.Duration
	// maxWait bounds the whole poll; zero means poll until the remote side
	// resolves, however long that takes.
	maxWait time.Duration
	sleep   sleepFunc
}

func NewJobPoller(executor *RetryExecutor, logger outbound.LoggerPort, interval time.Duration, maxWait time.Duration) *JobPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &JobPoller{
		executor: executor,
		logger:   logger,
		interval: interval,
		maxWait:  maxWait,
		sleep:    sleepWithContext,
	}
}

// PollUntilDone submits the operation and polls it to completion, returning
// the final result. A done status carrying an error, or a fatal error while
// checking status, fails the phase with that error unchanged.
func (p *JobPoller) PollUntilDone(ctx context.Context,
	submit func(ctx context.Context) (domain.OperationHandle, error),
	check func(ctx context.Context, handle domain.OperationHandle) (domain.OperationStatus, error)) (*domain.GenerationResult, error) {

	handle, err := Execute(ctx, p.executor, submit)
	if err != nil {
		return nil, err
	}

	p.logger.DebugWithFields("operation submitted", map[string]interface{}{
		"handle": string(handle),
	})

	var deadline time.Time
	if p.maxWait > 0 {
		deadline = time.Now().Add(p.maxWait)
	}

	// First check right away; the interval sleep separates re-checks.
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			if err := p.sleep(ctx, p.interval); err != nil {
				return nil, err
			}
		}

		if !deadline.IsZero() && time.Now().After(deadline) {
			return nil, domain.NewServiceError(domain.KindTimeout, "operation did not complete within the maximum wait", nil)
		}

		status, err := Execute(ctx, p.executor, func(ctx context.Context) (domain.OperationStatus, error) {
			return check(ctx, handle)
		})
		if err != nil {
			return nil, err
		}

		if !status.Done {
			p.logger.DebugWithFields("operation still running", map[string]interface{}{
				"handle": string(handle),
			})
			continue
		}

		if status.Err != nil {
			return nil, status.Err
		}
		if status.Result == nil {
			return nil, domain.NewServiceError(domain.KindRemoteFailed, "operation completed without a result", nil)
		}
		return status.Result, nil
	}
}
