package outbound

// ProgressPublisherPort delivers human-readable progress messages to whoever
// is watching a run. Fire-and-forget: implementations must never block the
// pipeline, dropping events under pressure instead.
type ProgressPublisherPort interface {
	Publish(runID string, message string)
}
