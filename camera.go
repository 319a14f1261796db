package solar

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// CameraRig is a pivot node with the camera as its only child. Moving or
// re-parenting the pivot is how the camera is relocated; the camera's local
// offset changes only when a targeter frames a new body.
type CameraRig struct {
	Pivot  NodeID
	Camera NodeID
}

// NewCameraRig adds a rig under parent.
func NewCameraRig(h *Hierarchy, parent NodeID) CameraRig {
	pivot := h.Add("camera-pivot", NodeKindCameraPivot, parent)
	cam := h.Add("camera", NodeKindCamera, pivot)
	return CameraRig{Pivot: pivot, Camera: cam}
}

// WorldPosition returns the camera's world-space position.
func (r CameraRig) WorldPosition(h *Hierarchy) mgl64.Vec3 {
	return h.WorldPosition(r.Camera)
}

// Targeter moves the camera when a body is selected. Exactly one targeter
// owns a scene's camera.
//
// Select runs to completion before returning: the state passes through
// StateSelecting and ends in StateActive, or is restored if the id does not
// resolve. Unknown ids return an error matching ErrNotFound and leave the
// camera untouched.
type Targeter interface {
	Select(id string) error
	// Snap frames id immediately without a transition and without changing
	// the state machine. Used for the startup view.
	Snap(id string) error
	// Update advances any in-flight transition by dt seconds.
	Update(dt float64)
	State() TargetState
	// Target returns the id of the body last framed, or "".
	Target() string
	Strategy() Strategy
}

// TargeterOptions configures NewTargeter.
type TargeterOptions struct {
	Strategy Strategy
	// BodyNodes maps body ids to their mesh nodes (Reparent).
	BodyNodes map[string]NodeID
	// TweenDuration is in seconds; TweenEasing is an easing id (Tween).
	TweenDuration float64
	TweenEasing   string
}

// NewTargeter builds the targeter for opts.Strategy.
func NewTargeter(h *Hierarchy, rig CameraRig, tables *Tables, opts TargeterOptions) (Targeter, error) {
	switch opts.Strategy {
	case StrategyReparent:
		return NewReparentTargeter(h, rig, tables, opts.BodyNodes), nil
	case StrategyTween:
		return NewTweenTargeter(h, rig, tables, opts.TweenDuration, opts.TweenEasing)
	default:
		return nil, fmt.Errorf("unknown camera strategy %d", opts.Strategy)
	}
}
