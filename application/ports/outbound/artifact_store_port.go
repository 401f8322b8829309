package outbound

import "context"

type StoreArtifactParams struct {
	UserID    string
	RunID     string
	SourceURI string
}

type StoreArtifactResponse struct {
	VideoKey    string
	StoreRegion string
}

// ArtifactStorePort downloads the bytes a generation result points at and
// persists them on the caller's side.
type ArtifactStorePort interface {
	Store(ctx context.Context, params StoreArtifactParams) (*StoreArtifactResponse, error)
}
