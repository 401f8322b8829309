package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type PipelineConfig struct {
	PollInterval time.Duration
	// MaxPollWait of zero polls until the remote side resolves.
	MaxPollWait       time.Duration
	MaxRetries        int
	InitialRetryDelay time.Duration
}

func GetPipelineConfig() (*PipelineConfig, error) {
	pollSeconds, err := intFromEnv("POLL_INTERVAL_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	maxWaitSeconds, err := intFromEnv("MAX_POLL_WAIT_SECONDS", 0)
	if err != nil {
		return nil, err
	}
	maxRetries, err := intFromEnv("MAX_RETRIES", 3)
	if err != nil {
		return nil, err
	}
	initialDelayMillis, err := intFromEnv("INITIAL_RETRY_DELAY_MS", 2000)
	if err != nil {
		return nil, err
	}

	return &PipelineConfig{
		PollInterval:      time.Duration(pollSeconds) * time.Second,
		MaxPollWait:       time.Duration(maxWaitSeconds) * time.Second,
		MaxRetries:        maxRetries,
		InitialRetryDelay: time.Duration(initialDelayMillis) * time.Millisecond,
	}, nil
}

func intFromEnv(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", name, err)
	}
	return parsed, nil
}
