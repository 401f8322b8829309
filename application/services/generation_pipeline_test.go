package services

import (
	"context"
	"errors"
	"fmt"
	"generate-video-lambda/application/ports/inbound"
	"generate-video-lambda/domain"
	"testing"
	"time"
)

// scriptedGenerator completes every submitted operation on the first status
// check and records the requests it saw. Phases can be forced to fail
// through failOnPhase (1-based, counting the initial phase as 1).
type scriptedGenerator struct {
	requests    []domain.GenerationRequest
	failOnPhase int
	failWith    error
}

func (s *scriptedGenerator) SubmitGeneration(_ context.Context, req domain.GenerationRequest) (domain.OperationHandle, error) {
	s.requests = append(s.requests, req)
	return domain.OperationHandle(fmt.Sprintf("operations/phase-%d", len(s.requests))), nil
}

func (s *scriptedGenerator) CheckStatus(_ context.Context, handle domain.OperationHandle) (domain.OperationStatus, error) {
	phase := len(s.requests)
	if s.failOnPhase != 0 && phase == s.failOnPhase {
		return domain.OperationStatus{Done: true, Err: s.failWith}, nil
	}
	return domain.OperationStatus{
		Done: true,
		Result: &domain.GenerationResult{
			VideoURI:        fmt.Sprintf("videos/phase-%d.mp4", phase),
			DurationSeconds: float64(BaseDurationSeconds + (phase-1)*ExtensionIncrementSeconds),
			Resolution:      s.requests[phase-1].Resolution,
		},
	}, nil
}

func newTestPipeline(generator *scriptedGenerator, progress *progressRecorder) inbound.GenerationPipelinePort {
	ex := newTestExecutor(&recordingSleeper{})
	poller := NewJobPoller(ex, noopLogger{}, time.Second, 0)
	poller.sleep = (&recordingSleeper{}).sleep
	return NewGenerationPipeline(generator, poller, progress, noopLogger{})
}

func baseParams(target int) inbound.StartGenerationParams {
	return inbound.StartGenerationParams{
		RunID:                 "run-1",
		UserID:                "user-1",
		Instruction:           "a sneaker rotating on a marble pedestal",
		SeedImageURI:          "images/sneaker.png",
		TargetDurationSeconds: target,
		Resolution:            domain.Resolution720p,
		AspectRatio:           "16:9",
	}
}

func TestGenerationPipeline_ValidatesBeforeSubmitting(t *testing.T) {
	generator := &scriptedGenerator{}
	pipeline := newTestPipeline(generator, &progressRecorder{})

	params := baseParams(5)
	params.Instruction = ""
	_, err := pipeline.Run(context.Background(), params)
	if domain.KindOf(err) != domain.KindInvalidInput {
		t.Fatalf("err = %v, want invalid input", err)
	}

	params = baseParams(5)
	params.SeedImageURI = ""
	_, err = pipeline.Run(context.Background(), params)
	if domain.KindOf(err) != domain.KindInvalidInput {
		t.Fatalf("err = %v, want invalid input", err)
	}

	if len(generator.requests) != 0 {
		t.Errorf("submitted %d requests before validation, want 0", len(generator.requests))
	}
}

func TestGenerationPipeline_SingleBatchRun(t *testing.T) {
	generator := &scriptedGenerator{}
	progress := &progressRecorder{}
	pipeline := newTestPipeline(generator, progress)

	result, err := pipeline.Run(context.Background(), baseParams(5))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(generator.requests) != 1 {
		t.Fatalf("submitted %d requests, want 1", len(generator.requests))
	}
	if result.VideoURI != "videos/phase-1.mp4" {
		t.Errorf("result URI = %q", result.VideoURI)
	}
	if generator.requests[0].Seed.ImageURI != "images/sneaker.png" {
		t.Errorf("initial seed = %+v, want the caller's image", generator.requests[0].Seed)
	}
}

func TestGenerationPipeline_ContinuationSeededByPreviousResult(t *testing.T) {
	generator := &scriptedGenerator{}
	pipeline := newTestPipeline(generator, &progressRecorder{})

	// target 19s with base 5s and 7s increments: two continuation rounds.
	result, err := pipeline.Run(context.Background(), baseParams(19))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(generator.requests) != 3 {
		t.Fatalf("submitted %d requests, want 3", len(generator.requests))
	}
	if got := generator.requests[1].Seed; got.VideoURI != "videos/phase-1.mp4" || got.ImageURI != "" {
		t.Errorf("round 1 seed = %+v, want the initial phase's video", got)
	}
	if got := generator.requests[2].Seed; got.VideoURI != "videos/phase-2.mp4" || got.ImageURI != "" {
		t.Errorf("round 2 seed = %+v, want round 1's video", got)
	}
	if result.VideoURI != "videos/phase-3.mp4" {
		t.Errorf("final result = %q, want the last round's video", result.VideoURI)
	}
	if result.DurationSeconds != 19 {
		t.Errorf("final duration = %v, want 19", result.DurationSeconds)
	}
}

func TestGenerationPipeline_EmitsProgressPerPhase(t *testing.T) {
	progress := &progressRecorder{}
	pipeline := newTestPipeline(&scriptedGenerator{}, progress)

	if _, err := pipeline.Run(context.Background(), baseParams(19)); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	// initializing, two extension rounds, completion.
	if len(progress.messages) < 4 {
		t.Fatalf("got %d progress events, want at least 4: %v", len(progress.messages), progress.messages)
	}
	if progress.messages[0] != "initializing video generation" {
		t.Errorf("first event = %q", progress.messages[0])
	}
	if progress.messages[1] != "extending video, round 1/2" {
		t.Errorf("second event = %q", progress.messages[1])
	}
	if progress.messages[2] != "extending video, round 2/2" {
		t.Errorf("third event = %q", progress.messages[2])
	}
}

func TestGenerationPipeline_PartialSuccessKeepsBestResult(t *testing.T) {
	generator := &scriptedGenerator{
		failOnPhase: 2,
		failWith:    domain.NewServiceError(domain.KindRemoteFailed, "generation failed on the service side", nil),
	}
	pipeline := newTestPipeline(generator, &progressRecorder{})

	result, err := pipeline.Run(context.Background(), baseParams(19))
	if err != nil {
		t.Fatalf("Run returned error: %v, want partial success", err)
	}
	if result.VideoURI != "videos/phase-1.mp4" {
		t.Errorf("result = %q, want the initial phase's artifact", result.VideoURI)
	}
	if len(generator.requests) != 2 {
		t.Errorf("submitted %d requests, want 2 (no rounds after the failure)", len(generator.requests))
	}
}

func TestGenerationPipeline_InitialPhaseFailureAbortsRun(t *testing.T) {
	fatal := domain.NewServiceError(domain.KindUnauthorized, "Requested entity was not found", nil)
	generator := &scriptedGenerator{failOnPhase: 1, failWith: fatal}
	pipeline := newTestPipeline(generator, &progressRecorder{})

	_, err := pipeline.Run(context.Background(), baseParams(19))
	if !errors.Is(err, fatal) {
		t.Fatalf("err = %v, want the fatal error unchanged", err)
	}
}

func TestGenerationPipeline_DowngradesWholeRunForExtensions(t *testing.T) {
	generator := &scriptedGenerator{}
	pipeline := newTestPipeline(generator, &progressRecorder{})

	params := baseParams(19)
	params.Resolution = domain.Resolution1080p
	if _, err := pipeline.Run(context.Background(), params); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	for i, req := range generator.requests {
		if req.Resolution != domain.Resolution720p {
			t.Errorf("request %d resolution = %q, want 720p for every phase", i, req.Resolution)
		}
	}
}

func TestGenerationPipeline_KeepsRequestedTierWhenNoRounds(t *testing.T) {
	generator := &scriptedGenerator{}
	pipeline := newTestPipeline(generator, &progressRecorder{})

	params := baseParams(5)
	params.Resolution = domain.Resolution1080p
	if _, err := pipeline.Run(context.Background(), params); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got := generator.requests[0].Resolution; got != domain.Resolution1080p {
		t.Errorf("resolution = %q, want 1080p when no extension is needed", got)
	}
}
