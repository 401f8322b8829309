package services

import (
	"generate-video-lambda/domain"
	"time"
)

const (
	DefaultMaxRetries   = 3
	DefaultInitialDelay = 2 * time.Second
)

// RetryPolicy decides whether a failed call is worth repeating and how long
// to wait before the next attempt.
type RetryPolicy struct {
	MaxRetries   int
	InitialDelay time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:   DefaultMaxRetries,
		InitialDelay: DefaultInitialDelay,
	}
}

// ShouldRetry reports whether err is transient. Authorization failures,
// validation failures and anything unclassified are fatal.
func (p RetryPolicy) ShouldRetry(err error) bool {
	return domain.IsTransient(err)
}

// DelayFor returns the backoff before attempt n+1: InitialDelay * 2^n.
// No jitter; attempts within one run are sequential so there is no herd to
// spread out.
func (p RetryPolicy) DelayFor(attempt int) time.Duration {
	return p.InitialDelay << attempt
}
