package adapters

import (
	"errors"
	"testing"
)

type inlineDispatcher struct {
	submitted int
	fail      bool
}

func (d *inlineDispatcher) Submit(task func()) error {
	if d.fail {
		return errors.New("pool saturated")
	}
	d.submitted++
	task()
	return nil
}

func TestProgressBroadcaster_PublishDispatchesOffCaller(t *testing.T) {
	dispatcher := &inlineDispatcher{}
	broadcaster := NewProgressBroadcaster(dispatcher, silentLogger{})
	defer broadcaster.Close()

	broadcaster.Publish("run-1", "initializing video generation")
	broadcaster.Publish("run-1", "extending video, round 1/2")

	if dispatcher.submitted != 2 {
		t.Errorf("submitted %d tasks, want 2", dispatcher.submitted)
	}
}

func TestProgressBroadcaster_DropsEventsWhenPoolSaturated(t *testing.T) {
	broadcaster := NewProgressBroadcaster(&inlineDispatcher{fail: true}, silentLogger{})
	defer broadcaster.Close()

	// Must neither block nor panic.
	broadcaster.Publish("run-1", "initializing video generation")
}

func TestProgressBroadcaster_HandlerPerRun(t *testing.T) {
	broadcaster := NewProgressBroadcaster(&inlineDispatcher{}, silentLogger{})
	defer broadcaster.Close()

	if broadcaster.Handler("run-1") == nil {
		t.Fatal("Handler returned nil")
	}
}
