package frame

import (
	"go/token"
	"sort"
)

// TraceFunc observes every node evaluation during the fixed-point
// iteration, with the state in effect before the node. Used by the
// -debug flag; nil disables tracing.
type TraceFunc func(block int, before State, n Node)

// Checker runs the GC frame analysis over one function's graph.
//
// The analysis is a worklist fixed point over (block, entry state)
// pairs. Instead of merging states at join points, each block keeps the
// set of distinct states that reach it, so a path arriving with an open
// frame and a path arriving closed are both followed to their own
// conclusions. The state space per block is finite (NoFrame plus one
// open state per push site), which guarantees termination on loops.
type Checker struct {
	// NotSafepoint enables the safepoint discipline check: every call
	// node not proven safepoint-free is reported.
	NotSafepoint bool

	// Trace, when non-nil, observes every node evaluation.
	Trace TraceFunc
}

// diagKey deduplicates findings. The frame origin participates so that
// two pushes left open across different paths to the same exit each
// produce their own diagnostic, while fixed-point revisits of the same
// path collapse into one.
type diagKey struct {
	pos     token.Pos
	origin  token.Pos
	message string
}

type workItem struct {
	block int
	state State
}

// Check analyzes the graph and returns its findings sorted by position
// then message. A nil, empty or malformed graph yields no findings:
// the checker is a best-effort linter and never fails hard.
func (c *Checker) Check(g Graph) []Diagnostic {
	if g == nil || g.NumBlocks() == 0 {
		return nil
	}
	entry := g.Entry()
	if entry < 0 || entry >= g.NumBlocks() {
		return nil
	}

	seen := make([]map[State]bool, g.NumBlocks())
	for i := range seen {
		seen[i] = make(map[State]bool)
	}

	found := make(map[diagKey]Diagnostic)

	queue := []workItem{{block: entry, state: NoFrame()}}
	seen[entry][NoFrame()] = true

	for len(queue) > 0 {
		w := queue[0]
		queue = queue[1:]

		st := w.state
		for _, n := range g.Nodes(w.block) {
			if c.Trace != nil {
				c.Trace(w.block, st, n)
			}
			st = c.step(st, n, found)
		}

		for _, succ := range g.Succs(w.block) {
			// Dangling successors are a frontend bug; skip their
			// contribution rather than aborting the analysis.
			if succ < 0 || succ >= g.NumBlocks() {
				continue
			}
			if !seen[succ][st] {
				seen[succ][st] = true
				queue = append(queue, workItem{block: succ, state: st})
			}
		}
	}

	return sortDiagnostics(found)
}

// step applies one node to the path state, recording findings.
func (c *Checker) step(st State, n Node, found map[diagKey]Diagnostic) State {
	switch n.Op {
	case OpPush:
		// Re-push while open is tolerated: the frames collapse into a
		// single logical frame and the origin moves to the new site.
		return OpenFrame(n.Pos)

	case OpPop:
		if !st.Open() {
			record(found, diagKey{pos: n.Pos, message: MsgPopWithoutPush}, popWithoutPush(n.Pos))
			return st
		}
		return NoFrame()

	case OpCall:
		if c.NotSafepoint && n.Call != nil && !n.Call.SafepointFree {
			d := unsafeCall(n.Pos, n.Call)
			record(found, diagKey{pos: n.Pos, message: d.Message}, d)
		}
		return st

	case OpExit:
		if st.Open() {
			record(found, diagKey{pos: n.Pos, origin: st.Origin(), message: MsgNonPoppedFrame},
				nonPoppedFrame(n.Pos, st.Origin()))
		}
		return st
	}
	// Unrecognized node shape: skip its contribution.
	return st
}

func record(found map[diagKey]Diagnostic, key diagKey, d Diagnostic) {
	if _, ok := found[key]; !ok {
		found[key] = d
	}
}

// sortDiagnostics orders findings by position, message, then origin
// note position so repeated runs produce identical sequences.
func sortDiagnostics(found map[diagKey]Diagnostic) []Diagnostic {
	keys := make([]diagKey, 0, len(found))
	for k := range found {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].pos != keys[j].pos {
			return keys[i].pos < keys[j].pos
		}
		if keys[i].message != keys[j].message {
			return keys[i].message < keys[j].message
		}
		return keys[i].origin < keys[j].origin
	})

	diags := make([]Diagnostic, 0, len(keys))
	for _, k := range keys {
		diags = append(diags, found[k])
	}
	return diags
}
