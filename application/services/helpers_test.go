package services

import (
	"context"
	"generate-video-lambda/application/ports/outbound"
	"time"
)

type noopLogger struct{}

func (noopLogger) Debug(string)                                          {}
func (noopLogger) DebugWithFields(string, map[string]interface{})        {}
func (noopLogger) Info(string)                                           {}
func (noopLogger) InfoWithFields(string, map[string]interface{})         {}
func (noopLogger) Warn(string)                                           {}
func (noopLogger) WarnWithFields(string, map[string]interface{})         {}
func (noopLogger) Error(error, string)                                   {}
func (noopLogger) ErrorWithFields(error, string, map[string]interface{}) {}

var _ outbound.LoggerPort = noopLogger{}

// recordingSleeper captures requested sleep durations without sleeping.
type recordingSleeper struct {
	slept []time.Duration
}

func (r *recordingSleeper) sleep(_ context.Context, d time.Duration) error {
	r.slept = append(r.slept, d)
	return nil
}

type progressRecorder struct {
	messages []string
}

func (p *progressRecorder) Publish(_ string, message string) {
	p.messages = append(p.messages, message)
}
