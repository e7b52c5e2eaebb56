package input

import "sync/atomic"

// Gate is the input-enable flag shared between the main loop and the watcher.
// The zero value is closed.
type Gate struct {
	open atomic.Bool
}

// NewGate returns a gate that starts open.
func NewGate() *Gate {
	g := &Gate{}
	g.open.Store(true)
	return g
}

func (g *Gate) Enable()  { g.open.Store(true) }
func (g *Gate) Disable() { g.open.Store(false) }

// Enabled reports whether input should be translated.
func (g *Gate) Enabled() bool { return g.open.Load() }
