package solar

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports a body id that is not in the registry or tables.
	ErrNotFound = errors.New("solar: body not found")
	// ErrCycle reports an attach that would make a node its own ancestor.
	ErrCycle = errors.New("solar: attach would create a cycle")
	// ErrInvalidNode reports a NodeID that does not address a live node.
	ErrInvalidNode = errors.New("solar: invalid node")
)

// NotFoundError carries the id that failed to resolve.
// It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	ID    string
	Table string // "registry", "lookouts", "tween targets"
}

func (e *NotFoundError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("solar: body %q not found", e.ID)
	}
	return fmt.Sprintf("solar: body %q not found in %s", e.ID, e.Table)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// CycleError carries the offending attach. It matches ErrCycle with errors.Is.
type CycleError struct {
	Child, Parent NodeID
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("solar: attaching node %d under %d would create a cycle", e.Child, e.Parent)
}

func (e *CycleError) Is(target error) bool { return target == ErrCycle }
