package ecs

import (
	"github.com/DakotaStorm/solar"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SelectionEventType is the Donburi event type for camera selections.
// Both accepted and ignored selections are published; check Accepted.
var SelectionEventType = events.NewEventType[solar.SelectionEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Selections are published to SelectionEventType and can be consumed with
// Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) solar.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitSelection(event solar.SelectionEvent) {
	SelectionEventType.Publish(s.world, event)
}
