// Package frame implements the GC frame safety checker core.
//
// The checker is a path-sensitive dataflow analysis over a function's
// control flow graph. It is deliberately frontend-agnostic: it consumes
// the narrow Graph interface below and knows nothing about Go syntax,
// SSA form, or any particular compiler. Frontend adapters (see
// internal/ssagraph) translate their native representation into blocks
// of Nodes.
//
// Two independent defect classes are reported:
//
//   - Frame balance: every opened GC frame must be closed on every path
//     reaching a function exit, and no pop may occur without an open
//     frame.
//   - Safepoint discipline: functions marked not-safepoint must not
//     reach a call that may trigger garbage collection.
package frame

import "go/token"

// Op classifies a node in the abstract control flow graph.
type Op int

const (
	// OpPush opens a GC frame rooting one or more local references.
	OpPush Op = iota
	// OpPop closes the innermost GC frame.
	OpPop
	// OpCall is any call that is neither a push nor a pop.
	OpCall
	// OpExit is a normal function exit (return or fallthrough).
	OpExit
)

// String returns the op name as used in debug traces.
func (op Op) String() string {
	switch op {
	case OpPush:
		return "push"
	case OpPop:
		return "pop"
	case OpCall:
		return "call"
	case OpExit:
		return "exit"
	}
	return "unknown"
}

// CallInfo describes a call site for the safepoint check.
type CallInfo struct {
	// Kind is the frontend's name for the call shape (e.g. FunctionCall,
	// DeferredCall). It is interpolated verbatim into the diagnostic.
	Kind string

	// Name is the callee name, used only for debug traces.
	Name string

	// Decl is the position of the callee's declaration, or token.NoPos
	// if the frontend cannot resolve it.
	Decl token.Pos

	// SafepointFree is true when the callee is proven not to reach a
	// safepoint. Everything else is conservatively a potential safepoint.
	SafepointFree bool
}

// Node is a single checker-relevant event inside a basic block.
// Nodes within a block are in execution order.
type Node struct {
	Op  Op
	Pos token.Pos

	// Arity is the number of rooted slots for OpPush, 0 if unknown.
	// The balance check does not depend on it; it exists for traces.
	Arity int

	// Call carries callee details for OpCall nodes.
	Call *CallInfo
}

// Graph is the minimal control flow surface the checker needs.
// Blocks are identified by dense indices in [0, NumBlocks).
// Any frontend that can enumerate blocks, successor edges and the
// checker-relevant nodes inside each block can drive the analysis.
type Graph interface {
	NumBlocks() int
	Entry() int
	Succs(block int) []int
	Nodes(block int) []Node
}

// FuncGraph is a concrete Graph assembled incrementally by frontend
// adapters and tests.
type FuncGraph struct {
	entry int
	nodes [][]Node
	succs [][]int
}

// NewFuncGraph returns an empty graph with entry block 0.
func NewFuncGraph() *FuncGraph {
	return &FuncGraph{}
}

// AddBlock appends an empty block and returns its index.
func (g *FuncGraph) AddBlock() int {
	g.nodes = append(g.nodes, nil)
	g.succs = append(g.succs, nil)
	return len(g.nodes) - 1
}

// Append adds a node to the end of the given block.
func (g *FuncGraph) Append(block int, n Node) {
	g.nodes[block] = append(g.nodes[block], n)
}

// AddEdge adds a control flow edge from one block to another.
func (g *FuncGraph) AddEdge(from, to int) {
	g.succs[from] = append(g.succs[from], to)
}

// SetEntry sets the entry block index.
func (g *FuncGraph) SetEntry(block int) {
	g.entry = block
}

// NumBlocks implements Graph.
func (g *FuncGraph) NumBlocks() int { return len(g.nodes) }

// Entry implements Graph.
func (g *FuncGraph) Entry() int { return g.entry }

// Succs implements Graph.
func (g *FuncGraph) Succs(block int) []int { return g.succs[block] }

// Nodes implements Graph.
func (g *FuncGraph) Nodes(block int) []Node { return g.nodes[block] }
