package frame

import "go/token"

// State is the abstract GC frame state carried along a control flow
// path. It is a two-point lattice: either no frame is open, or a frame
// opened at a recorded push site is open.
//
// Nested pushes collapse into a single logical frame: re-pushing while
// a frame is open replaces the recorded origin, so "GC frame changed
// here" always points at the most recent frame change on the path.
//
// State is a small comparable value so block entry states can be kept
// in sets during fixed-point iteration.
type State struct {
	open   bool
	origin token.Pos
}

// NoFrame is the state with no open GC frame.
func NoFrame() State {
	return State{}
}

// OpenFrame is the state with a frame opened at the given push site.
func OpenFrame(origin token.Pos) State {
	return State{open: true, origin: origin}
}

// Open reports whether a GC frame is open on this path.
func (s State) Open() bool { return s.open }

// Origin returns the most recent push site, valid only when Open.
func (s State) Origin() token.Pos { return s.origin }
