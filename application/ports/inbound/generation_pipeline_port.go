package inbound

import (
	"context"
	"generate-video-lambda/domain"
)

type StartGenerationParams struct {
	RunID                 string
	UserID                string
	Instruction           string
	SeedImageURI          string
	TargetDurationSeconds int
	Resolution            domain.Resolution
	AspectRatio           string
}

// GenerationPipelinePort drives one full run: the initial generation plus
// however many continuation rounds the requested duration needs.
type GenerationPipelinePort interface {
	Run(ctx context.Context, params StartGenerationParams) (*domain.GenerationResult, error)
}
