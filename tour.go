package solar

import (
	"encoding/json"
	"fmt"
)

// tourStep is one action in a tour script.
type tourStep struct {
	Action string `json:"action"`
	Target string `json:"target,omitempty"`
	Label  string `json:"label,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

type tourScript struct {
	Steps []tourStep `json:"steps"`
}

// Tour plays a scripted sequence of selections, waits and screenshots, one
// step per frame. Attach it with Scene.SetTour.
//
//	{"steps": [
//		{"action": "select", "target": "earth"},
//		{"action": "wait", "frames": 360},
//		{"action": "screenshot", "label": "earth"}
//	]}
type Tour struct {
	steps     []tourStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTour parses a JSON tour script.
func LoadTour(data []byte) (*Tour, error) {
	var script tourScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse tour: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse tour: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "select":
			if st.Target == "" {
				return nil, fmt.Errorf("parse tour: step %d: select needs a target", i)
			}
		case "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse tour: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Tour{steps: script.Steps}, nil
}

// SetTour attaches a tour. Its steps run at the start of each Update, before
// the targeter advances.
func (s *Scene) SetTour(t *Tour) {
	s.tour = t
}

// Done reports whether every step has run.
func (t *Tour) Done() bool {
	return t.done
}

// step advances the tour by one frame.
func (t *Tour) step(s *Scene) {
	if t.done {
		return
	}
	if t.waitCount > 0 {
		t.waitCount--
		return
	}
	if t.cursor >= len(t.steps) {
		t.done = true
		return
	}

	st := t.steps[t.cursor]
	t.cursor++

	switch st.Action {
	case "select":
		s.OnSelect(st.Target)
	case "screenshot":
		if shot, ok := s.engine.(Screenshotter); ok {
			shot.Screenshot(st.Label)
		} else {
			s.log.Debug().Str("label", st.Label).Msg("tour screenshot skipped: engine cannot capture")
		}
	case "wait":
		if st.Frames > 0 {
			t.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if t.cursor >= len(t.steps) && t.waitCount == 0 {
		t.done = true
	}
}
