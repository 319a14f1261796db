package solar

import "sync"

// Gate is a one-shot readiness flag. The render loop does not start until its
// gate is open; whoever loads assets opens it.
type Gate struct {
	once sync.Once
	ch   chan struct{}
}

// NewGate returns a closed (not ready) gate.
func NewGate() *Gate {
	return &Gate{ch: make(chan struct{})}
}

// Open marks the gate ready. Safe to call more than once and from any
// goroutine.
func (g *Gate) Open() {
	g.once.Do(func() { close(g.ch) })
}

// Ready reports whether Open has been called.
func (g *Gate) Ready() bool {
	select {
	case <-g.ch:
		return true
	default:
		return false
	}
}

// Done returns a channel closed when the gate opens.
func (g *Gate) Done() <-chan struct{} { return g.ch }

// Wait blocks until the gate opens.
func (g *Gate) Wait() { <-g.ch }
