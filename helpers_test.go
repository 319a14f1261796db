package solar

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func assertVec(t *testing.T, name string, got, want mgl64.Vec3, eps float64) {
	t.Helper()
	for i := range got {
		if !approxEqual(got[i], want[i], eps) {
			t.Errorf("%s = %v, want %v", name, got, want)
			return
		}
	}
}

// newTestScene builds a scene from the embedded tables with cfg applied by
// mutate.
func newTestScene(t *testing.T, mutate func(*Config)) *Scene {
	t.Helper()
	tables, err := DefaultTables()
	if err != nil {
		t.Fatalf("DefaultTables: %v", err)
	}
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := NewScene(tables, cfg)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return s
}

func bodyNode(t *testing.T, s *Scene, id string) NodeID {
	t.Helper()
	n, ok := s.BodyNode(id)
	if !ok {
		t.Fatalf("no node for body %q", id)
	}
	return n
}

// stepFrames advances s by n frame-coupled frames at 60 fps.
func stepFrames(s *Scene, n int) {
	for range n {
		s.Update(1.0/60, 1)
	}
}

// recordingEngine is an Engine that records every call.
type recordingEngine struct {
	geometries []GeometryDescriptor
	materials  []MaterialDescriptor
	parents    map[NodeID]NodeID
	locals     map[NodeID]Transform

	setParentCalls int
	setLocalCalls  int
	frames         []Frame
	next           func()
	requests       int
}

func newRecordingEngine() *recordingEngine {
	return &recordingEngine{
		parents: make(map[NodeID]NodeID),
		locals:  make(map[NodeID]Transform),
	}
}

func (e *recordingEngine) CreateMesh(g GeometryDescriptor, m MaterialDescriptor) MeshHandle {
	e.geometries = append(e.geometries, g)
	e.materials = append(e.materials, m)
	return MeshHandle(len(e.geometries))
}

func (e *recordingEngine) SetParent(node, parent NodeID) {
	e.setParentCalls++
	e.parents[node] = parent
}

func (e *recordingEngine) SetLocalTransform(node NodeID, position, rotation mgl64.Vec3) {
	e.setLocalCalls++
	e.locals[node] = Transform{Position: position, Rotation: rotation}
}

func (e *recordingEngine) RenderFrame(f *Frame) {
	cp := *f
	cp.Meshes = append([]MeshInstance(nil), f.Meshes...)
	e.frames = append(e.frames, cp)
}

func (e *recordingEngine) RequestNextFrame(fn func()) {
	e.requests++
	e.next = fn
}

// pump runs n scheduled frame callbacks.
func (e *recordingEngine) pump(t *testing.T, n int) {
	t.Helper()
	for i := range n {
		fn := e.next
		if fn == nil {
			t.Fatalf("no frame scheduled at frame %d", i)
		}
		e.next = nil
		fn()
	}
}

func (e *recordingEngine) lastFrame(t *testing.T) Frame {
	t.Helper()
	if len(e.frames) == 0 {
		t.Fatal("no frame rendered")
	}
	return e.frames[len(e.frames)-1]
}
