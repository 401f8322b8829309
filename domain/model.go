package domain

// Resolution is one of the two tiers the media service supports.
type Resolution string

const (
	Resolution720p  Resolution = "720p"
	Resolution1080p Resolution = "1080p"
)

// ContinuationResolution is the only tier the service accepts for
// video-seeded (extension) requests.
const ContinuationResolution = Resolution720p

// SeedArtifact is the starting material for one generation phase: a product
// image for the initial phase, or the previous phase's video for a
// continuation.
type SeedArtifact struct {
	ImageURI string
	VideoURI string
}

func (s SeedArtifact) IsZero() bool {
	return s.ImageURI == "" && s.VideoURI == ""
}

type GenerationRequest struct {
	Instruction string
	Seed        SeedArtifact
	Resolution  Resolution
	AspectRatio string
}

// GenerationResult is the artifact produced by one completed phase. VideoURI
// points at bytes held by the media service; downloading them is the
// caller's job.
type GenerationResult struct {
	VideoURI        string
	DurationSeconds float64
	Resolution      Resolution
}

// OperationHandle identifies an in-flight remote generation job.
type OperationHandle string

type OperationStatus struct {
	Done   bool
	Result *GenerationResult
	Err    error
}

// ExtensionPlan says how many continuation rounds a run needs and, when the
// requested tier does not support continuation, the tier the whole run is
// downgraded to. The override is decided once per run, never per round.
type ExtensionPlan struct {
	TotalRounds        int
	ResolutionOverride Resolution
}

type ProgressEvent struct {
	RunID   string `json:"run_id"`
	Message string `json:"message"`
}
