package adapters

import (
	"encoding/json"
	"generate-video-lambda/application/ports/outbound"
	"generate-video-lambda/domain"
	"github.com/donovanhide/eventsource"
	"github.com/google/uuid"
	"net/http"
)

type progressEvent struct {
	id   string
	data string
}

func (e progressEvent) Id() string    { return e.id }
func (e progressEvent) Event() string { return "progress" }
func (e progressEvent) Data() string  { return e.data }

// ProgressBroadcaster fans progress messages out to SSE subscribers, one
// channel per run. Publishing is fire-and-forget: events are handed to the
// worker pool and dropped when it is saturated, so a slow or absent
// subscriber never stalls the pipeline.
type ProgressBroadcaster struct {
	server     *eventsource.Server
	dispatcher outbound.TaskDispatcher
	logger     outbound.LoggerPort
}

func NewProgressBroadcaster(dispatcher outbound.TaskDispatcher, logger outbound.LoggerPort) *ProgressBroadcaster {
	return &ProgressBroadcaster{
		server:     eventsource.NewServer(),
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (b *ProgressBroadcaster) Publish(runID string, message string) {
	payload, err := json.Marshal(domain.ProgressEvent{RunID: runID, Message: message})
	if err != nil {
		b.logger.Error(err, "failed to encode progress event")
		return
	}

	ev := progressEvent{id: uuid.NewString(), data: string(payload)}

	if err := b.dispatcher.Submit(func() {
		b.server.Publish([]string{runID}, ev)
	}); err != nil {
		b.logger.WarnWithFields("dropping progress event", map[string]interface{}{
			"run_id":  runID,
			"message": message,
		})
	}
}

// Handler serves the SSE stream for one run.
func (b *ProgressBroadcaster) Handler(runID string) http.HandlerFunc {
	return http.HandlerFunc(b.server.Handler(runID))
}

func (b *ProgressBroadcaster) Close() {
	b.server.Close()
}

var _ outbound.ProgressPublisherPort = (*ProgressBroadcaster)(nil)
