package services

import (
	"context"
	"fmt"
	"generate-video-lambda/application/ports/inbound"
	"generate-video-lambda/application/ports/outbound"
	"generate-video-lambda/domain"
)

const (
	// BaseDurationSeconds is what a single generation call produces.
	BaseDurationSeconds = 5
	// ExtensionIncrementSeconds is what each continuation round adds.
	ExtensionIncrementSeconds = 7
)

const continuationInstruction = "Continue this video seamlessly. Keep the subject, lighting and style " +
	"exactly consistent with the footage so far. %s"

type generationPipeline struct {
	generator outbound.MediaGeneratorPort
	poller    *JobPoller
	planner   ExtensionPlanner
	progress  outbound.ProgressPublisherPort
	logger    outbound.LoggerPort
}

func NewGenerationPipeline(generator outbound.MediaGeneratorPort, poller *JobPoller,
	progress outbound.ProgressPublisherPort, logger outbound.LoggerPort) inbound.GenerationPipelinePort {
	return &generationPipeline{
		generator: generator,
		poller:    poller,
		progress:  progress,
		logger:    logger,
	}
}

// Run drives one full generation: submit the initial request, poll it to
// completion, then chain continuation rounds, each seeded by the previous
// round's output, until the planned duration is reached.
func (g *generationPipeline) Run(ctx context.Context, params inbound.StartGenerationParams) (*domain.GenerationResult, error) {
	if params.Instruction == "" {
		return nil, domain.NewValidationError("instruction must not be empty")
	}
	if params.SeedImageURI == "" {
		return nil, domain.NewValidationError("seed image is required")
	}

	g.progress.Publish(params.RunID, "initializing video generation")

	plan := g.planner.Plan(params.TargetDurationSeconds, BaseDurationSeconds, ExtensionIncrementSeconds, params.Resolution)

	resolution := params.Resolution
	if plan.ResolutionOverride != "" {
		g.logger.InfoWithFields("downgrading run resolution for extension support", map[string]interface{}{
			"run_id":    params.RunID,
			"requested": string(params.Resolution),
			"effective": string(plan.ResolutionOverride),
		})
		resolution = plan.ResolutionOverride
	}

	initialReq := domain.GenerationRequest{
		Instruction: params.Instruction,
		Seed:        domain.SeedArtifact{ImageURI: params.SeedImageURI},
		Resolution:  resolution,
		AspectRatio: params.AspectRatio,
	}

	current, err := g.runPhase(ctx, initialReq)
	if err != nil {
		g.logger.Error(err, "initial generation failed")
		return nil, err
	}

	for round := 1; round <= plan.TotalRounds; round++ {
		g.progress.Publish(params.RunID, fmt.Sprintf("extending video, round %d/%d", round, plan.TotalRounds))

		continuationReq := domain.GenerationRequest{
			Instruction: fmt.Sprintf(continuationInstruction, params.Instruction),
			Seed:        domain.SeedArtifact{VideoURI: current.VideoURI},
			Resolution:  resolution,
			AspectRatio: params.AspectRatio,
		}

		extended, err := g.runPhase(ctx, continuationReq)
		if err != nil {
			// A shorter video beats no video: keep what we have instead of
			// failing the whole run.
			g.logger.ErrorWithFields(err, "extension round failed, keeping best result so far", map[string]interface{}{
				"run_id":           params.RunID,
				"round":            round,
				"duration_seconds": current.DurationSeconds,
			})
			g.progress.Publish(params.RunID, fmt.Sprintf("extension round %d failed, keeping the %.0fs video", round, current.DurationSeconds))
			return current, nil
		}
		current = extended
	}

	g.progress.Publish(params.RunID, "video generation complete")
	return current, nil
}

func (g *generationPipeline) runPhase(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResult, error) {
	return g.poller.PollUntilDone(ctx,
		func(ctx context.Context) (domain.OperationHandle, error) {
			return g.generator.SubmitGeneration(ctx, req)
		},
		func(ctx context.Context, handle domain.OperationHandle) (domain.OperationStatus, error) {
			return g.generator.CheckStatus(ctx, handle)
		})
}
