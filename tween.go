package solar

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultTweenDuration is the approach time, in seconds, used for every body.
const DefaultTweenDuration = 3.0

// Transition is an in-flight camera approach. A single gween tween drives the
// eased progress from 0 to 1; the position is lerped per axis in float64 so
// the camera lands exactly on the target.
type Transition struct {
	Target   string
	From, To mgl64.Vec3
	Duration float64
	Easing   string

	elapsed  float64
	progress *gween.Tween
}

func newTransition(target string, from, to mgl64.Vec3, duration float64, easing string, fn ease.TweenFunc) *Transition {
	return &Transition{
		Target:   target,
		From:     from,
		To:       to,
		Duration: duration,
		Easing:   easing,
		progress: gween.New(0, 1, float32(duration), fn),
	}
}

// Elapsed returns the seconds advanced so far.
func (tr *Transition) Elapsed() float64 { return tr.elapsed }

// advance moves the transition forward by dt seconds and returns the new
// camera position. Once done, the position is exactly To.
func (tr *Transition) advance(dt float64) (mgl64.Vec3, bool) {
	tr.elapsed += dt
	p, done := tr.progress.Update(float32(dt))
	if done || tr.elapsed >= tr.Duration-durationEpsilon {
		return tr.To, true
	}
	return lerp(tr.From, tr.To, float64(p)), false
}

// durationEpsilon absorbs float drift from summing per-frame deltas.
const durationEpsilon = 1e-9

func lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return mgl64.Vec3{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

// TweenTargeter frames a body by easing the camera to a tabulated world
// position. The rig stays under the root; once the camera arrives it no
// longer follows the body's rotation.
type TweenTargeter struct {
	h        *Hierarchy
	rig      CameraRig
	tables   *Tables
	duration float64
	easing   string
	easeFn   ease.TweenFunc

	state  TargetState
	target string
	active *Transition
}

// NewTweenTargeter creates a Tween targeter. The rig's pivot is moved to the
// root and reset so the camera's local position is its world position.
func NewTweenTargeter(h *Hierarchy, rig CameraRig, tables *Tables, duration float64, easing string) (*TweenTargeter, error) {
	if duration <= 0 {
		return nil, errors.New("tween duration must be positive")
	}
	if easing == "" {
		easing = DefaultEasing
	}
	fn, err := Easing(easing)
	if err != nil {
		return nil, err
	}
	if err := h.Attach(rig.Pivot, h.Root()); err != nil {
		return nil, fmt.Errorf("camera rig: %w", err)
	}
	h.SetPosition(rig.Pivot, mgl64.Vec3{})
	h.SetRotation(rig.Pivot, mgl64.Vec3{})
	return &TweenTargeter{
		h:        h,
		rig:      rig,
		tables:   tables,
		duration: duration,
		easing:   easing,
		easeFn:   fn,
	}, nil
}

// Select starts a transition from the camera's current position to id's
// target, discarding any transition in flight.
func (t *TweenTargeter) Select(id string) error {
	prev := t.state
	t.state = StateSelecting
	target, err := t.tables.TweenTarget(id)
	if err != nil {
		t.state = prev
		return err
	}
	from := t.h.Local(t.rig.Camera).Position
	t.active = newTransition(id, from, target.Vec3(), t.duration, t.easing, t.easeFn)
	t.target = id
	t.state = StateActive
	return nil
}

// Snap places the camera on id's target at once and drops any transition.
func (t *TweenTargeter) Snap(id string) error {
	target, err := t.tables.TweenTarget(id)
	if err != nil {
		return err
	}
	t.active = nil
	t.h.SetPosition(t.rig.Camera, target.Vec3())
	t.target = id
	return nil
}

// Update advances the active transition by dt seconds. When it completes the
// camera sits exactly on the target, the transition is dropped and the state
// returns to idle.
func (t *TweenTargeter) Update(dt float64) {
	if t.active == nil {
		return
	}
	pos, done := t.active.advance(dt)
	t.h.SetPosition(t.rig.Camera, pos)
	if done {
		t.active = nil
		t.state = StateIdle
	}
}

// Active returns the transition in flight, if any.
func (t *TweenTargeter) Active() (*Transition, bool) {
	return t.active, t.active != nil
}

func (t *TweenTargeter) State() TargetState { return t.state }
func (t *TweenTargeter) Target() string     { return t.target }
func (t *TweenTargeter) Strategy() Strategy { return StrategyTween }
