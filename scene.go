package solar

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
)

// EventSink receives selection outcomes, e.g. to forward them into an ECS.
type EventSink interface {
	EmitSelection(event SelectionEvent)
}

// SelectionEvent describes one handled selection.
type SelectionEvent struct {
	ID       string
	Previous string
	Strategy Strategy
	Accepted bool
	// Err is set when the selection was ignored.
	Err error
}

// meshSpec is a mesh to create once an engine is bound.
type meshSpec struct {
	node     NodeID
	geometry GeometryDescriptor
	material MaterialDescriptor
}

// Scene owns the hierarchy, the registry, the orbit animator and the camera
// targeter, and mirrors the hierarchy into a bound Engine.
//
// All methods except QueueSelect must be called from the frame goroutine.
type Scene struct {
	cfg      Config
	tables   *Tables
	registry *Registry
	h        *Hierarchy
	rig      CameraRig
	animator *OrbitAnimator
	targeter Targeter

	bodyNodes map[string]NodeID
	meshSpecs []meshSpec
	engine    Engine

	log   zerolog.Logger
	sink  EventSink
	tour  *Tour
	debug bool
	stats debugStats

	selection string

	queueMu sync.Mutex
	queue   []string

	frame  Frame
	frames uint64
}

// NewScene builds the scene graph from tables: body nodes under the root,
// satellite pivots under their primary, rings beside their body, and the
// camera rig framing cfg.DefaultTarget.
func NewScene(tables *Tables, cfg Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new scene: %w", err)
	}
	registry, err := NewRegistry(tables.Bodies)
	if err != nil {
		return nil, fmt.Errorf("new scene: %w", err)
	}
	if !registry.Has(cfg.DefaultTarget) {
		return nil, fmt.Errorf("new scene: default target: %w", &NotFoundError{ID: cfg.DefaultTarget, Table: "registry"})
	}

	h := NewHierarchy()
	s := &Scene{
		cfg:       cfg,
		tables:    tables,
		registry:  registry,
		h:         h,
		animator:  NewOrbitAnimator(h),
		bodyNodes: make(map[string]NodeID, registry.Len()),
		log:       zerolog.Nop(),
		frame:     Frame{Meshes: make([]MeshInstance, 0, 32)},
	}
	for _, b := range registry.All() {
		s.addBody(b)
	}

	s.rig = NewCameraRig(h, s.bodyNodes[cfg.DefaultTarget])
	s.targeter, err = NewTargeter(h, s.rig, tables, TargeterOptions{
		Strategy:      cfg.Strategy,
		BodyNodes:     s.bodyNodes,
		TweenDuration: cfg.Tween.Duration,
		TweenEasing:   cfg.Tween.Easing,
	})
	if err != nil {
		return nil, fmt.Errorf("new scene: %w", err)
	}
	if cfg.Strategy == StrategyReparent {
		s.animator.Add(s.rig.Pivot, mgl64.Vec3{0, cfg.CameraPivotSpin, 0})
	}
	if err := s.targeter.Snap(cfg.DefaultTarget); err != nil {
		return nil, fmt.Errorf("new scene: default target: %w", err)
	}
	s.selection = cfg.DefaultTarget
	return s, nil
}

// addBody adds b's mesh node, its satellites and its rings.
func (s *Scene) addBody(b Body) {
	h := s.h
	n := h.Add(b.ID, NodeKindBody, h.Root())
	h.SetPosition(n, b.Position())
	h.SetRotation(n, mgl64.Vec3{b.Tilt, 0, 0})
	s.animator.Add(n, b.Spin())
	s.bodyNodes[b.ID] = n
	s.addMesh(n, GeometryDescriptor{Kind: GeometrySphere, Radius: b.Radius, Segments: sphereSegments(b.Radius)}, b.Appearance)

	for _, sat := range b.Satellites {
		pivot := h.Add(sat.ID+"-pivot", NodeKindPivot, n)
		s.animator.Add(pivot, mgl64.Vec3{sat.Precession, sat.OrbitRate, 0})
		m := h.Add(sat.ID, NodeKindSatellite, pivot)
		h.SetPosition(m, mgl64.Vec3{sat.Distance, 0, 0})
		s.animator.Add(m, mgl64.Vec3{0, sat.SpinRate, 0})
		s.addMesh(m, GeometryDescriptor{Kind: GeometrySphere, Radius: sat.Radius, Segments: 32}, sat.Appearance)
	}

	for i, ring := range b.Rings {
		r := h.Add(fmt.Sprintf("%s-ring-%d", b.ID, i), NodeKindRing, h.Root())
		h.SetPosition(r, b.Position())
		h.SetRotation(r, mgl64.Vec3{ring.Tilt, 0, 0})
		s.meshSpecs = append(s.meshSpecs, meshSpec{
			node:     r,
			geometry: GeometryDescriptor{Kind: GeometryRing, Radius: ring.Outer, InnerRadius: ring.Inner, Segments: 200},
			material: material(ring.Appearance, true),
		})
	}
}

func (s *Scene) addMesh(n NodeID, g GeometryDescriptor, a Appearance) {
	s.meshSpecs = append(s.meshSpecs, meshSpec{node: n, geometry: g, material: material(a, false)})
}

func material(a Appearance, doubleSided bool) MaterialDescriptor {
	return MaterialDescriptor{
		Texture:     a.Texture,
		NormalMap:   a.NormalMap,
		Color:       a.Color,
		Emissive:    a.Emissive,
		DoubleSided: doubleSided,
	}
}

// sphereSegments gives large spheres a finer tessellation.
func sphereSegments(radius float64) int {
	switch {
	case radius >= 500:
		return 100
	case radius >= 9:
		return 62
	default:
		return 32
	}
}

// Bind creates the scene's meshes in e and schedules a full transform push on
// the next Render.
func (s *Scene) Bind(e Engine) {
	s.engine = e
	for _, ms := range s.meshSpecs {
		s.h.SetMesh(ms.node, e.CreateMesh(ms.geometry, ms.material))
	}
	s.h.MarkAllDirty()
}

// --- Accessors ---

func (s *Scene) Config() Config { return s.cfg }
func (s *Scene) Tables() *Tables { return s.tables }
func (s *Scene) Registry() *Registry { return s.registry }
func (s *Scene) Hierarchy() *Hierarchy { return s.h }
func (s *Scene) Rig() CameraRig { return s.rig }
func (s *Scene) Animator() *OrbitAnimator { return s.animator }
func (s *Scene) Targeter() Targeter { return s.targeter }
func (s *Scene) Engine() Engine { return s.engine }
func (s *Scene) FrameCount() uint64 { return s.frames }

// SetEventSink sets where selection outcomes are published. Nil disables it.
func (s *Scene) SetEventSink(sink EventSink) { s.sink = sink }

// SetLogger sets the scene's logger. The default discards everything.
func (s *Scene) SetLogger(l zerolog.Logger) {
	s.log = l
	if s.debug {
		debugLogger = l
	}
}

// BodyNode returns the mesh node of body id.
func (s *Scene) BodyNode(id string) (NodeID, bool) {
	n, ok := s.bodyNodes[id]
	return n, ok
}

// Selection returns the last accepted selection.
func (s *Scene) Selection() string { return s.selection }

// CameraPosition returns the camera's world position.
func (s *Scene) CameraPosition() mgl64.Vec3 {
	return s.rig.WorldPosition(s.h)
}

// --- Frame ---

// Update advances one frame: queued selections, tour step, the targeter by
// seconds and the orbit animator by ticks.
func (s *Scene) Update(seconds, ticks float64) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.drainQueue()
	if s.tour != nil {
		s.tour.step(s)
	}
	s.targeter.Update(seconds)
	s.animator.Tick(ticks)
	s.frames++

	if s.debug {
		s.debugUpdate(time.Since(t0))
	}
}

// Render pushes pending hierarchy changes into the bound engine and hands it
// a snapshot of the frame. No-op when no engine is bound.
func (s *Scene) Render() {
	if s.engine == nil {
		return
	}
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.h.syncEngine(s.engine)
	s.buildFrame()
	s.engine.RenderFrame(&s.frame)

	if s.debug {
		s.debugRender(time.Since(t0))
	}
}

// buildFrame fills s.frame from the hierarchy in one pre-order pass.
func (s *Scene) buildFrame() {
	f := &s.frame
	f.Number = s.frames
	f.Target = s.targeter.Target()
	f.State = s.targeter.State()
	f.Strategy = s.targeter.Strategy()
	f.Meshes = f.Meshes[:0]

	s.h.eachWorld(func(id NodeID, world mgl64.Mat4) {
		n := &s.h.nodes[id]
		if id == s.rig.Camera {
			f.Camera = world
			f.CameraPosition = translation(world)
		}
		if n.mesh != 0 {
			f.Meshes = append(f.Meshes, MeshInstance{
				Node:  id,
				Mesh:  n.mesh,
				Kind:  n.kind,
				Name:  n.name,
				World: world,
			})
		}
	})
}
