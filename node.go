package solar

import "fmt"

// NodeID addresses a node in a Hierarchy. IDs are stable for the life of the
// hierarchy; nodes are never removed.
type NodeID int32

// NoNode is the parent of the root.
const NoNode NodeID = -1

// MeshHandle is an engine-issued mesh reference. Zero means "no mesh".
type MeshHandle uint32

// node is one arena slot.
type node struct {
	name     string
	kind     NodeKind
	parent   NodeID
	children []NodeID
	local    Transform
	mesh     MeshHandle

	// engine sync
	dirty      bool
	reparented bool
}

// Hierarchy is the ownership tree of transform nodes. Nodes are held in an
// arena and addressed by NodeID, so re-parenting is an index rewrite guarded
// by an explicit cycle check.
//
// A Hierarchy is not safe for concurrent use.
type Hierarchy struct {
	nodes []node
}

// NewHierarchy creates a hierarchy holding only the root pivot.
func NewHierarchy() *Hierarchy {
	h := &Hierarchy{nodes: make([]node, 0, 32)}
	h.nodes = append(h.nodes, node{name: "root", kind: NodeKindPivot, parent: NoNode, dirty: true})
	return h
}

// Root returns the root node id.
func (h *Hierarchy) Root() NodeID { return 0 }

// Len returns the number of nodes, root included.
func (h *Hierarchy) Len() int { return len(h.nodes) }

// Add creates a node under parent and returns its id.
// Panics if parent is not a valid node.
func (h *Hierarchy) Add(name string, kind NodeKind, parent NodeID) NodeID {
	if !h.valid(parent) {
		panic(fmt.Sprintf("solar: add %q under invalid parent %d", name, parent))
	}
	id := NodeID(len(h.nodes))
	h.nodes = append(h.nodes, node{
		name:       name,
		kind:       kind,
		parent:     parent,
		dirty:      true,
		reparented: true,
	})
	h.nodes[parent].children = append(h.nodes[parent].children, id)
	return id
}

// Attach moves child to be the last direct child of parent, detaching it from
// its previous parent in the same step. It fails with ErrCycle, before any
// mutation, when parent is child or one of child's descendants; the root can
// therefore never be attached anywhere. Attaching a node to its current
// parent is a no-op.
func (h *Hierarchy) Attach(child, parent NodeID) error {
	if !h.valid(child) || !h.valid(parent) {
		return fmt.Errorf("attach %d under %d: %w", child, parent, ErrInvalidNode)
	}
	if h.isAncestor(child, parent) {
		return &CycleError{Child: child, Parent: parent}
	}
	c := &h.nodes[child]
	if c.parent == parent {
		return nil
	}
	if c.parent != NoNode {
		h.removeChild(c.parent, child)
	}
	c.parent = parent
	c.reparented = true
	h.nodes[parent].children = append(h.nodes[parent].children, child)
	if globalDebug {
		debugCheckTreeDepth(h, child)
	}
	return nil
}

// Parent returns id's parent, or NoNode for the root.
func (h *Hierarchy) Parent(id NodeID) NodeID {
	return h.node(id).parent
}

// Children returns id's children in insertion order.
// The returned slice MUST NOT be mutated by the caller.
func (h *Hierarchy) Children(id NodeID) []NodeID {
	return h.node(id).children
}

// Name returns the node's name.
func (h *Hierarchy) Name(id NodeID) string { return h.node(id).name }

// Kind returns the node's kind.
func (h *Hierarchy) Kind(id NodeID) NodeKind { return h.node(id).kind }

// SetMesh attaches an engine mesh to the node.
func (h *Hierarchy) SetMesh(id NodeID, mesh MeshHandle) {
	h.node(id).mesh = mesh
}

// Mesh returns the node's mesh, or zero.
func (h *Hierarchy) Mesh(id NodeID) MeshHandle { return h.node(id).mesh }

// Depth returns the number of edges between id and the root.
func (h *Hierarchy) Depth(id NodeID) int {
	d := 0
	for p := h.node(id).parent; p != NoNode; p = h.nodes[p].parent {
		d++
	}
	return d
}

// IsAncestor reports whether candidate is node or one of its ancestors.
func (h *Hierarchy) IsAncestor(candidate, node NodeID) bool {
	if !h.valid(candidate) || !h.valid(node) {
		return false
	}
	return h.isAncestor(candidate, node)
}

// Walk visits id and its descendants in pre-order. Returning false from fn
// skips the node's subtree.
func (h *Hierarchy) Walk(id NodeID, fn func(NodeID) bool) {
	if !fn(id) {
		return
	}
	for _, c := range h.node(id).children {
		h.Walk(c, fn)
	}
}

// MarkAllDirty flags every node for a full push to the engine.
func (h *Hierarchy) MarkAllDirty() {
	for i := range h.nodes {
		h.nodes[i].dirty = true
		h.nodes[i].reparented = h.nodes[i].parent != NoNode
	}
}

// --- Helpers ---

func (h *Hierarchy) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(h.nodes)
}

// node returns the arena slot. Panics on an invalid id.
func (h *Hierarchy) node(id NodeID) *node {
	if !h.valid(id) {
		panic(fmt.Sprintf("solar: invalid node %d", id))
	}
	return &h.nodes[id]
}

// isAncestor walks up from n looking for candidate.
func (h *Hierarchy) isAncestor(candidate, n NodeID) bool {
	for p := n; p != NoNode; p = h.nodes[p].parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChild drops child from parent's child list, preserving order.
func (h *Hierarchy) removeChild(parent, child NodeID) {
	p := &h.nodes[parent]
	for i, c := range p.children {
		if c == child {
			copy(p.children[i:], p.children[i+1:])
			p.children = p.children[:len(p.children)-1]
			return
		}
	}
}

// syncEngine pushes re-parenting and dirty local transforms into e and
// clears the flags.
func (h *Hierarchy) syncEngine(e Engine) {
	for i := range h.nodes {
		n := &h.nodes[i]
		if n.reparented {
			e.SetParent(NodeID(i), n.parent)
			n.reparented = false
		}
		if n.dirty {
			e.SetLocalTransform(NodeID(i), n.local.Position, n.local.Rotation)
			n.dirty = false
		}
	}
}
