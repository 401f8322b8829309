package mock_generator

import (
	"context"
	"fmt"
	"generate-video-lambda/application/ports/outbound"
	"generate-video-lambda/domain"
	"github.com/google/uuid"
	"sync"
)

// FakeMediaGenerator stands in for the hosted service during local runs: no
// credentials, no network, operations complete after a fixed number of
// status checks. Continuations add the usual increment to the duration of
// the seed they extend.
type FakeMediaGenerator struct {
	logger          outbound.LoggerPort
	checksUntilDone int

	mu         sync.Mutex
	operations map[domain.OperationHandle]*fakeOperation
	durations  map[string]float64
}

type fakeOperation struct {
	request domain.GenerationRequest
	checks  int
}

func NewFakeMediaGenerator(logger outbound.LoggerPort, checksUntilDone int) *FakeMediaGenerator {
	if checksUntilDone < 1 {
		checksUntilDone = 2
	}
	return &FakeMediaGenerator{
		logger:          logger,
		checksUntilDone: checksUntilDone,
		operations:      make(map[domain.OperationHandle]*fakeOperation),
		durations:       make(map[string]float64),
	}
}

func (f *FakeMediaGenerator) SubmitGeneration(_ context.Context, req domain.GenerationRequest) (domain.OperationHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	handle := domain.OperationHandle("operations/fake-" + uuid.NewString())
	f.operations[handle] = &fakeOperation{request: req}

	f.logger.InfoWithFields("fake generation submitted", map[string]interface{}{
		"handle":       string(handle),
		"continuation": req.Seed.VideoURI != "",
	})
	return handle, nil
}

func (f *FakeMediaGenerator) CheckStatus(_ context.Context, handle domain.OperationHandle) (domain.OperationStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	op, ok := f.operations[handle]
	if !ok {
		return domain.OperationStatus{}, domain.NewServiceError(domain.KindUnauthorized, "Requested entity was not found", nil)
	}

	op.checks++
	if op.checks < f.checksUntilDone {
		return domain.OperationStatus{Done: false}, nil
	}

	duration := float64(5)
	if seed := op.request.Seed.VideoURI; seed != "" {
		duration = f.durations[seed] + 7
	}

	uri := fmt.Sprintf("fake://videos/%s.mp4", uuid.NewString())
	f.durations[uri] = duration
	delete(f.operations, handle)

	return domain.OperationStatus{
		Done: true,
		Result: &domain.GenerationResult{
			VideoURI:        uri,
			DurationSeconds: duration,
			Resolution:      op.request.Resolution,
		},
	}, nil
}

var _ outbound.MediaGeneratorPort = (*FakeMediaGenerator)(nil)
