package outbound

import (
	"context"
	"generate-video-lambda/domain"
)

// MediaGeneratorPort is the contract of the hosted generative-media service:
// submit an asynchronous job, then check on it until it reports done.
type MediaGeneratorPort interface {
	SubmitGeneration(ctx context.Context, req domain.GenerationRequest) (domain.OperationHandle, error)
	CheckStatus(ctx context.Context, handle domain.OperationHandle) (domain.OperationStatus, error)
}
