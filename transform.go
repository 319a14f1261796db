package solar

import "github.com/go-gl/mathgl/mgl64"

// Transform is a node's local placement: a position offset and Euler angles
// in radians.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
}

// Matrix returns the local matrix for t.
//
// Composition order (XYZ Euler, applied right to left):
//
//	Translate(Position) * RotateX * RotateY * RotateZ
func (t Transform) Matrix() mgl64.Mat4 {
	m := mgl64.Translate3D(t.Position[0], t.Position[1], t.Position[2])
	if t.Rotation[0] != 0 {
		m = m.Mul4(mgl64.HomogRotate3DX(t.Rotation[0]))
	}
	if t.Rotation[1] != 0 {
		m = m.Mul4(mgl64.HomogRotate3DY(t.Rotation[1]))
	}
	if t.Rotation[2] != 0 {
		m = m.Mul4(mgl64.HomogRotate3DZ(t.Rotation[2]))
	}
	return m
}

// translation extracts the translation column of an affine matrix.
func translation(m mgl64.Mat4) mgl64.Vec3 {
	return m.Col(3).Vec3()
}

// WorldTransform composes the local matrices from id up to the root.
// Read-only; O(depth). Returns the identity for an invalid id.
func (h *Hierarchy) WorldTransform(id NodeID) mgl64.Mat4 {
	if !h.valid(id) {
		return mgl64.Ident4()
	}
	m := h.nodes[id].local.Matrix()
	for p := h.nodes[id].parent; p != NoNode; p = h.nodes[p].parent {
		m = h.nodes[p].local.Matrix().Mul4(m)
	}
	return m
}

// WorldPosition returns the world-space origin of id.
func (h *Hierarchy) WorldPosition(id NodeID) mgl64.Vec3 {
	return translation(h.WorldTransform(id))
}

// eachWorld visits every node in pre-order with its world matrix, composing
// each parent's matrix once.
func (h *Hierarchy) eachWorld(fn func(NodeID, mgl64.Mat4)) {
	var visit func(id NodeID, parent mgl64.Mat4)
	visit = func(id NodeID, parent mgl64.Mat4) {
		world := parent.Mul4(h.nodes[id].local.Matrix())
		fn(id, world)
		for _, c := range h.nodes[id].children {
			visit(c, world)
		}
	}
	visit(h.Root(), mgl64.Ident4())
}

// --- Local transform setters ---

// SetPosition sets the node's local position and marks it dirty.
func (h *Hierarchy) SetPosition(id NodeID, p mgl64.Vec3) {
	n := h.node(id)
	n.local.Position = p
	n.dirty = true
}

// SetRotation sets the node's local Euler rotation and marks it dirty.
func (h *Hierarchy) SetRotation(id NodeID, r mgl64.Vec3) {
	n := h.node(id)
	n.local.Rotation = r
	n.dirty = true
}

// Rotate adds delta to the node's local Euler rotation and marks it dirty.
func (h *Hierarchy) Rotate(id NodeID, delta mgl64.Vec3) {
	n := h.node(id)
	n.local.Rotation = n.local.Rotation.Add(delta)
	n.dirty = true
}

// Local returns the node's local transform.
func (h *Hierarchy) Local(id NodeID) Transform {
	return h.node(id).local
}
