package solar

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Appearance is the render-side description of a body. It does not affect
// the core's behavior.
type Appearance struct {
	Texture   string
	NormalMap string
	Color     string
	Emissive  bool
}

// Satellite is a body orbiting a primary. It hangs off its own pivot under
// the primary's mesh node; the pivot's rotation is independent of the
// primary's spin.
type Satellite struct {
	ID       string
	Radius   float64
	Distance float64 // from the primary
	// OrbitRate and Precession are the pivot's radians per tick about Y and X.
	OrbitRate  float64
	Precession float64
	// SpinRate is the satellite mesh's own radians per tick about Y.
	SpinRate   float64
	Appearance Appearance
}

// Ring is a flat annulus around a body, placed at the body's position with a
// fixed tilt about X. Rings do not spin.
type Ring struct {
	Inner, Outer float64
	Tilt         float64
	Appearance   Appearance
}

// Body is a star or planet. Physical parameters are fixed once the registry
// is built; only its node's rotation changes, frame by frame.
type Body struct {
	ID       string
	Radius   float64
	Distance float64 // from the origin, along +X
	// RotationRate is radians per tick about Y.
	RotationRate float64
	// Tumble is radians per tick about X. Only the star uses it.
	Tumble float64
	// Tilt is a fixed rotation about X, in radians.
	Tilt       float64
	Satellites []Satellite
	Rings      []Ring
	Appearance Appearance
}

// Position is the body's fixed placement in the scene.
func (b Body) Position() mgl64.Vec3 {
	return mgl64.Vec3{b.Distance, 0, 0}
}

// Spin is the body's per-tick rotation increment.
func (b Body) Spin() mgl64.Vec3 {
	return mgl64.Vec3{b.Tumble, b.RotationRate, 0}
}

func (b Body) clone() Body {
	b.Satellites = slices.Clone(b.Satellites)
	b.Rings = slices.Clone(b.Rings)
	return b
}

// Registry holds the bodies of the scene in registration order.
// It is built once and never mutated.
type Registry struct {
	bodies []Body
	index  map[string]int
}

// NewRegistry validates bodies and builds a registry from them.
func NewRegistry(bodies []Body) (*Registry, error) {
	if len(bodies) == 0 {
		return nil, errors.New("registry: no bodies")
	}
	r := &Registry{
		bodies: make([]Body, 0, len(bodies)),
		index:  make(map[string]int, len(bodies)),
	}
	seen := make(map[string]bool, len(bodies))
	for _, b := range bodies {
		if err := validateBody(b, seen); err != nil {
			return nil, fmt.Errorf("registry: %w", err)
		}
		r.index[b.ID] = len(r.bodies)
		r.bodies = append(r.bodies, b.clone())
	}
	return r, nil
}

func validateBody(b Body, seen map[string]bool) error {
	if err := claimID(b.ID, seen); err != nil {
		return err
	}
	if b.Radius <= 0 {
		return fmt.Errorf("body %q: radius must be positive, got %v", b.ID, b.Radius)
	}
	if b.Distance < 0 {
		return fmt.Errorf("body %q: distance must be non-negative, got %v", b.ID, b.Distance)
	}
	for _, s := range b.Satellites {
		if err := claimID(s.ID, seen); err != nil {
			return fmt.Errorf("body %q: %w", b.ID, err)
		}
		if s.Radius <= 0 || s.Distance < 0 {
			return fmt.Errorf("body %q: satellite %q needs positive radius and non-negative distance", b.ID, s.ID)
		}
	}
	for i, ring := range b.Rings {
		if ring.Inner < 0 || ring.Outer <= ring.Inner {
			return fmt.Errorf("body %q: ring %d needs 0 <= inner < outer", b.ID, i)
		}
	}
	return nil
}

func claimID(id string, seen map[string]bool) error {
	if id == "" {
		return errors.New("empty id")
	}
	if seen[id] {
		return fmt.Errorf("duplicate id %q", id)
	}
	seen[id] = true
	return nil
}

// Get returns the body registered under id.
func (r *Registry) Get(id string) (Body, error) {
	i, ok := r.index[id]
	if !ok {
		return Body{}, &NotFoundError{ID: id, Table: "registry"}
	}
	return r.bodies[i].clone(), nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.index[id]
	return ok
}

// All returns the bodies in registration order. The returned slice MUST NOT
// be mutated by the caller.
func (r *Registry) All() []Body {
	return r.bodies
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.bodies))
	for i, b := range r.bodies {
		ids[i] = b.ID
	}
	return ids
}

// Len returns the number of registered bodies.
func (r *Registry) Len() int { return len(r.bodies) }
