package solar

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

type recordingSink struct {
	events []SelectionEvent
}

func (r *recordingSink) EmitSelection(e SelectionEvent) {
	r.events = append(r.events, e)
}

func TestOnSelectEmitsAccepted(t *testing.T) {
	s := newTestScene(t, nil)
	sink := &recordingSink{}
	s.SetEventSink(sink)

	s.OnSelect("venus")
	if s.Selection() != "venus" {
		t.Errorf("Selection = %q, want venus", s.Selection())
	}
	if len(sink.events) != 1 {
		t.Fatalf("events = %d, want 1", len(sink.events))
	}
	e := sink.events[0]
	if !e.Accepted || e.ID != "venus" || e.Previous != "sun" || e.Err != nil {
		t.Errorf("event = %+v", e)
	}
}

func TestOnSelectUnknownIsLoggedAndIgnored(t *testing.T) {
	s := newTestScene(t, nil)
	var buf bytes.Buffer
	s.SetLogger(zerolog.New(&buf))
	sink := &recordingSink{}
	s.SetEventSink(sink)
	before := s.CameraPosition()

	s.OnSelect("pluto")

	if s.Selection() != "sun" {
		t.Errorf("Selection = %q, want sun", s.Selection())
	}
	if s.CameraPosition() != before {
		t.Error("camera moved on unknown id")
	}
	if !strings.Contains(buf.String(), `"level":"warn"`) || !strings.Contains(buf.String(), "selection ignored") {
		t.Errorf("log = %s", buf.String())
	}
	if len(sink.events) != 1 || sink.events[0].Accepted || !errors.Is(sink.events[0].Err, ErrNotFound) {
		t.Errorf("events = %+v", sink.events)
	}
}

func TestOnSelectNilSink(t *testing.T) {
	s := newTestScene(t, nil)
	s.SetEventSink(nil)
	s.OnSelect("earth") // must not panic
}

func TestQueueSelectLastWins(t *testing.T) {
	s := newTestScene(t, nil)
	s.QueueSelect("mercury")
	s.QueueSelect("pluto")
	s.QueueSelect("neptune")
	if n := s.PendingSelections(); n != 3 {
		t.Fatalf("pending = %d, want 3", n)
	}

	s.Update(1.0/60, 1)
	if s.PendingSelections() != 0 {
		t.Error("queue not drained")
	}
	if s.Selection() != "neptune" || s.Targeter().Target() != "neptune" {
		t.Errorf("selection = %q, target = %q; want neptune", s.Selection(), s.Targeter().Target())
	}
}

func TestQueueSelectConcurrent(t *testing.T) {
	s := newTestScene(t, nil)
	sink := &recordingSink{}
	s.SetEventSink(sink)

	ids := s.Registry().IDs()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			s.QueueSelect(id)
		}(ids[i%len(ids)])
	}
	wg.Wait()

	s.Update(1.0/60, 1)
	if len(sink.events) != 50 {
		t.Errorf("events = %d, want 50", len(sink.events))
	}
	for _, e := range sink.events {
		if !e.Accepted {
			t.Errorf("event %+v not accepted", e)
		}
	}
}
