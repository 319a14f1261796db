package solar

import "github.com/go-gl/mathgl/mgl64"

// GeometryKind selects the mesh primitive.
type GeometryKind uint8

const (
	GeometrySphere GeometryKind = iota
	GeometryRing
)

// GeometryDescriptor describes a mesh shape for the engine.
type GeometryDescriptor struct {
	Kind GeometryKind
	// Radius is the sphere radius. For rings it is the outer radius.
	Radius float64
	// InnerRadius is used by rings only.
	InnerRadius float64
	Segments    int
}

// MaterialDescriptor describes a mesh surface for the engine. Textures are
// asset names; loading them is the engine's business.
type MaterialDescriptor struct {
	Texture   string
	NormalMap string
	// Color is a hex colour ("#rrggbb") used by hosts that do not load textures.
	Color    string
	Emissive bool
	// DoubleSided is set for rings.
	DoubleSided bool
}

// MeshInstance is one mesh in a rendered frame.
type MeshInstance struct {
	Node  NodeID
	Mesh  MeshHandle
	Kind  NodeKind
	Name  string
	World mgl64.Mat4
}

// Frame is the per-frame snapshot handed to Engine.RenderFrame. The scene
// reuses the Meshes buffer between frames; engines that keep a frame past
// RenderFrame must copy it.
type Frame struct {
	Number uint64
	// Camera is the camera's world matrix.
	Camera mgl64.Mat4
	// CameraPosition is the camera's world-space origin.
	CameraPosition mgl64.Vec3
	Target         string
	State          TargetState
	Strategy       Strategy
	Meshes         []MeshInstance
}

// Engine is the rendering host the core calls into. Node ids passed to
// SetParent and SetLocalTransform are the scene hierarchy's ids, so an
// engine that mirrors the graph can key its own nodes by them.
type Engine interface {
	CreateMesh(geometry GeometryDescriptor, material MaterialDescriptor) MeshHandle
	SetParent(node, parent NodeID)
	SetLocalTransform(node NodeID, position, rotation mgl64.Vec3)
	RenderFrame(frame *Frame)
	// RequestNextFrame schedules fn to run once on the next display refresh.
	RequestNextFrame(fn func())
}

// FrameHost is implemented by engines that own the process's frame loop.
// Run blocks until the host tears down.
type FrameHost interface {
	Run() error
}

// Screenshotter is implemented by engines that can capture the rendered frame.
type Screenshotter interface {
	Screenshot(label string)
}
