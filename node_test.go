package solar

import (
	"errors"
	"slices"
	"testing"
)

func TestNewHierarchyRoot(t *testing.T) {
	h := NewHierarchy()
	if h.Len() != 1 {
		t.Fatalf("Len = %d, want 1", h.Len())
	}
	if h.Parent(h.Root()) != NoNode {
		t.Errorf("root parent = %d, want NoNode", h.Parent(h.Root()))
	}
	if h.Kind(h.Root()) != NodeKindPivot {
		t.Errorf("root kind = %v, want pivot", h.Kind(h.Root()))
	}
}

func TestAddAppendsChild(t *testing.T) {
	h := NewHierarchy()
	a := h.Add("a", NodeKindBody, h.Root())
	b := h.Add("b", NodeKindBody, h.Root())
	c := h.Add("c", NodeKindPivot, a)

	if got := h.Children(h.Root()); !slices.Equal(got, []NodeID{a, b}) {
		t.Errorf("root children = %v, want [%d %d]", got, a, b)
	}
	if h.Parent(c) != a {
		t.Errorf("Parent(c) = %d, want %d", h.Parent(c), a)
	}
	if h.Name(c) != "c" || h.Kind(c) != NodeKindPivot {
		t.Errorf("c = %q/%v", h.Name(c), h.Kind(c))
	}
}

func TestAddInvalidParentPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for invalid parent")
		}
	}()
	NewHierarchy().Add("x", NodeKindPivot, 42)
}

func TestAttachMovesChild(t *testing.T) {
	h := NewHierarchy()
	a := h.Add("a", NodeKindBody, h.Root())
	b := h.Add("b", NodeKindBody, h.Root())
	c := h.Add("c", NodeKindCameraPivot, a)

	if err := h.Attach(c, b); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if h.Parent(c) != b {
		t.Errorf("Parent(c) = %d, want %d", h.Parent(c), b)
	}
	if len(h.Children(a)) != 0 {
		t.Errorf("old parent still lists child: %v", h.Children(a))
	}
	if got := h.Children(b); !slices.Equal(got, []NodeID{c}) {
		t.Errorf("Children(b) = %v, want [%d]", got, c)
	}
}

func TestAttachAppendsLast(t *testing.T) {
	h := NewHierarchy()
	a := h.Add("a", NodeKindBody, h.Root())
	x := h.Add("x", NodeKindPivot, a)
	y := h.Add("y", NodeKindPivot, h.Root())

	if err := h.Attach(y, a); err != nil {
		t.Fatal(err)
	}
	if got := h.Children(a); !slices.Equal(got, []NodeID{x, y}) {
		t.Errorf("Children(a) = %v, want [%d %d]", got, x, y)
	}
}

func TestAttachSameParentNoop(t *testing.T) {
	h := NewHierarchy()
	a := h.Add("a", NodeKindBody, h.Root())
	b := h.Add("b", NodeKindBody, h.Root())

	if err := h.Attach(a, h.Root()); err != nil {
		t.Fatal(err)
	}
	if got := h.Children(h.Root()); !slices.Equal(got, []NodeID{a, b}) {
		t.Errorf("root children reordered: %v", got)
	}
}

func TestAttachCycleLeavesTreeUnchanged(t *testing.T) {
	h := NewHierarchy()
	a := h.Add("a", NodeKindBody, h.Root())
	b := h.Add("b", NodeKindPivot, a)
	c := h.Add("c", NodeKindPivot, b)

	err := h.Attach(a, c)
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("Attach(a, c) = %v, want ErrCycle", err)
	}
	var ce *CycleError
	if !errors.As(err, &ce) || ce.Child != a || ce.Parent != c {
		t.Errorf("CycleError = %+v", ce)
	}
	if h.Parent(a) != h.Root() || h.Parent(b) != a || h.Parent(c) != b {
		t.Error("tree changed after rejected attach")
	}
	if got := h.Children(h.Root()); !slices.Equal(got, []NodeID{a}) {
		t.Errorf("root children = %v", got)
	}
}

func TestAttachSelfIsCycle(t *testing.T) {
	h := NewHierarchy()
	a := h.Add("a", NodeKindBody, h.Root())
	if err := h.Attach(a, a); !errors.Is(err, ErrCycle) {
		t.Errorf("Attach(a, a) = %v, want ErrCycle", err)
	}
}

func TestAttachRootRejected(t *testing.T) {
	h := NewHierarchy()
	a := h.Add("a", NodeKindBody, h.Root())
	if err := h.Attach(h.Root(), a); !errors.Is(err, ErrCycle) {
		t.Errorf("Attach(root, a) = %v, want ErrCycle", err)
	}
}

func TestAttachInvalidNode(t *testing.T) {
	h := NewHierarchy()
	if err := h.Attach(7, h.Root()); !errors.Is(err, ErrInvalidNode) {
		t.Errorf("Attach(7, root) = %v, want ErrInvalidNode", err)
	}
	if err := h.Attach(h.Root(), NoNode); !errors.Is(err, ErrInvalidNode) {
		t.Errorf("Attach(root, NoNode) = %v, want ErrInvalidNode", err)
	}
}

func TestDepthAndIsAncestor(t *testing.T) {
	h := NewHierarchy()
	a := h.Add("a", NodeKindBody, h.Root())
	b := h.Add("b", NodeKindPivot, a)
	c := h.Add("c", NodeKindSatellite, b)

	if d := h.Depth(c); d != 3 {
		t.Errorf("Depth(c) = %d, want 3", d)
	}
	if !h.IsAncestor(a, c) || !h.IsAncestor(c, c) {
		t.Error("IsAncestor should hold for a ancestor and for self")
	}
	if h.IsAncestor(c, a) {
		t.Error("IsAncestor(c, a) should be false")
	}
	if h.IsAncestor(99, a) {
		t.Error("IsAncestor with invalid id should be false")
	}
}

func TestWalkSkipsSubtree(t *testing.T) {
	h := NewHierarchy()
	a := h.Add("a", NodeKindBody, h.Root())
	h.Add("a1", NodeKindPivot, a)
	b := h.Add("b", NodeKindBody, h.Root())

	var seen []NodeID
	h.Walk(h.Root(), func(id NodeID) bool {
		seen = append(seen, id)
		return id != a
	})
	if !slices.Equal(seen, []NodeID{h.Root(), a, b}) {
		t.Errorf("walk = %v", seen)
	}
}

func TestSyncEngineFlags(t *testing.T) {
	h := NewHierarchy()
	a := h.Add("a", NodeKindBody, h.Root())
	b := h.Add("b", NodeKindBody, h.Root())
	e := newRecordingEngine()

	h.syncEngine(e)
	if e.setParentCalls != 2 {
		t.Errorf("first sync SetParent calls = %d, want 2", e.setParentCalls)
	}
	if e.setLocalCalls != 3 {
		t.Errorf("first sync SetLocalTransform calls = %d, want 3", e.setLocalCalls)
	}

	h.syncEngine(e)
	if e.setParentCalls != 2 || e.setLocalCalls != 3 {
		t.Error("clean hierarchy should push nothing")
	}

	if err := h.Attach(b, a); err != nil {
		t.Fatal(err)
	}
	h.syncEngine(e)
	if e.setParentCalls != 3 || e.parents[b] != a {
		t.Errorf("re-parent not pushed: calls=%d parent=%d", e.setParentCalls, e.parents[b])
	}
	if e.setLocalCalls != 3 {
		t.Error("re-parent alone should not push a transform")
	}
}
