package solar

import "github.com/go-gl/mathgl/mgl64"

// spin is one animated node and its per-tick Euler increments.
type spin struct {
	node  NodeID
	rates mgl64.Vec3
}

// OrbitAnimator advances node rotations every frame. Entries are independent:
// a satellite pivot's angle never depends on its primary's spin.
//
// The resulting angles are written for the renderer and never read back by
// the core.
type OrbitAnimator struct {
	h     *Hierarchy
	spins []spin
}

// NewOrbitAnimator creates an animator over h.
func NewOrbitAnimator(h *Hierarchy) *OrbitAnimator {
	return &OrbitAnimator{h: h}
}

// Add registers node to rotate by rates (radians per tick, X/Y/Z) each Tick.
// Zero rates are ignored.
func (a *OrbitAnimator) Add(node NodeID, rates mgl64.Vec3) {
	if rates == (mgl64.Vec3{}) {
		return
	}
	a.spins = append(a.spins, spin{node: node, rates: rates})
}

// Len returns the number of animated nodes.
func (a *OrbitAnimator) Len() int { return len(a.spins) }

// Rates returns the per-tick rates registered for node.
func (a *OrbitAnimator) Rates(node NodeID) (mgl64.Vec3, bool) {
	for _, s := range a.spins {
		if s.node == node {
			return s.rates, true
		}
	}
	return mgl64.Vec3{}, false
}

// Tick advances every registered node by rates*dt. dt is in ticks: the render
// loop passes 1 per frame unless delta scaling is enabled.
func (a *OrbitAnimator) Tick(dt float64) {
	if dt == 0 {
		return
	}
	for _, s := range a.spins {
		a.h.Rotate(s.node, s.rates.Mul(dt))
	}
}
