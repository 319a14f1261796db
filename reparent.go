package solar

import "fmt"

// ReparentTargeter frames a body by attaching the camera rig under the body's
// node. The jump is instantaneous and the camera rides the body's rotation
// until the next selection.
type ReparentTargeter struct {
	h      *Hierarchy
	rig    CameraRig
	tables *Tables
	bodies map[string]NodeID

	state  TargetState
	target string
}

// NewReparentTargeter creates a Reparent targeter. bodies maps body ids to
// their mesh nodes.
func NewReparentTargeter(h *Hierarchy, rig CameraRig, tables *Tables, bodies map[string]NodeID) *ReparentTargeter {
	return &ReparentTargeter{h: h, rig: rig, tables: tables, bodies: bodies}
}

// Select attaches the rig under id's node and sets the camera to the body's
// lookout offset. Selecting the current target again re-applies the same
// values.
func (t *ReparentTargeter) Select(id string) error {
	prev := t.state
	t.state = StateSelecting
	if err := t.engage(id); err != nil {
		t.state = prev
		return err
	}
	t.state = StateActive
	return nil
}

// Snap implements Targeter.
func (t *ReparentTargeter) Snap(id string) error {
	return t.engage(id)
}

// engage resolves everything before mutating anything.
func (t *ReparentTargeter) engage(id string) error {
	node, ok := t.bodies[id]
	if !ok {
		return &NotFoundError{ID: id, Table: "registry"}
	}
	offset, err := t.tables.Lookout(id)
	if err != nil {
		return err
	}
	// The rig subtree holds only the camera, so a cycle here means the scene
	// was wired wrong.
	if err := t.h.Attach(t.rig.Pivot, node); err != nil {
		panic(fmt.Sprintf("solar: camera rig: %v", err))
	}
	t.h.SetPosition(t.rig.Camera, offset)
	t.target = id
	return nil
}

// Update implements Targeter. Re-parenting has nothing in flight.
func (t *ReparentTargeter) Update(float64) {}

func (t *ReparentTargeter) State() TargetState { return t.state }
func (t *ReparentTargeter) Target() string     { return t.target }
func (t *ReparentTargeter) Strategy() Strategy { return StrategyReparent }
