// Package ssagraph adapts SSA functions to the checker's abstract
// control flow graph.
//
// The adapter walks every instruction of every basic block and keeps
// only what the checker cares about: frame pushes and pops, other call
// sites, and function exits. Block order and successor edges carry over
// unchanged from SSA.
package ssagraph

import (
	"go/constant"
	"go/token"

	"golang.org/x/tools/go/ssa"

	"github.com/jlgo/gcframe/internal/classify"
	"github.com/jlgo/gcframe/internal/frame"
)

// Call kind names reported by this frontend. The checker interpolates
// them verbatim into safepoint diagnostics.
const (
	KindFunctionCall = "FunctionCall"
	KindDynamicCall  = "DynamicCall"
	KindDeferredCall = "DeferredCall"
	KindGoCall       = "GoCall"
)

// deferredOp is a frame operation scheduled by a defer statement. It is
// replayed at each RunDefers point, in reverse scheduling order.
type deferredOp struct {
	action classify.Action
	arity  int
	pos    token.Pos
}

// Build translates an SSA function into the checker's graph. A function
// without a body yields an empty graph, which the checker treats as
// nothing to analyze.
func Build(fn *ssa.Function, cl *classify.Classifier) *frame.FuncGraph {
	g := frame.NewFuncGraph()
	if fn == nil || len(fn.Blocks) == 0 {
		return g
	}

	index := make(map[*ssa.BasicBlock]int, len(fn.Blocks))
	for _, b := range fn.Blocks {
		index[b] = g.AddBlock()
	}
	g.SetEntry(index[fn.Blocks[0]])

	// Frame operations behind defer statements execute at function
	// exit. They are collected in scheduling order and replayed in
	// reverse wherever SSA runs the deferred calls. Conditionally
	// scheduled defers are approximated as always running, which keeps
	// the analysis best-effort rather than sound.
	var deferred []deferredOp

	for _, b := range fn.Blocks {
		bi := index[b]
		for _, instr := range b.Instrs {
			switch in := instr.(type) {
			case *ssa.Call:
				emitCall(g, bi, in.Common(), in.Pos(), cl, "")

			case *ssa.Defer:
				common := in.Common()
				if callee := common.StaticCallee(); callee != nil {
					if act, arity := cl.FrameAction(callee); act != classify.ActionNone {
						if act == classify.ActionPushArgs {
							arity = constArity(common)
						}
						deferred = append(deferred, deferredOp{action: act, arity: arity, pos: in.Pos()})
						continue
					}
				}
				emitCall(g, bi, common, in.Pos(), cl, KindDeferredCall)

			case *ssa.Go:
				emitCall(g, bi, in.Common(), in.Pos(), cl, KindGoCall)

			case *ssa.RunDefers:
				for i := len(deferred) - 1; i >= 0; i-- {
					d := deferred[i]
					switch d.action {
					case classify.ActionPush, classify.ActionPushArgs:
						g.Append(bi, frame.Node{Op: frame.OpPush, Pos: d.pos, Arity: d.arity})
					case classify.ActionPop:
						g.Append(bi, frame.Node{Op: frame.OpPop, Pos: d.pos})
					}
				}

			case *ssa.Return:
				pos := in.Pos()
				if !pos.IsValid() {
					pos = funcEnd(fn)
				}
				g.Append(bi, frame.Node{Op: frame.OpExit, Pos: pos})
			}
		}

		for _, succ := range b.Succs {
			g.AddEdge(bi, index[succ])
		}
	}

	return g
}

// emitCall appends the node for one call site: a push, a pop, or an
// ordinary call classified for the safepoint check. kindOverride forces
// the reported call kind for defer and go statements.
func emitCall(g *frame.FuncGraph, block int, common *ssa.CallCommon, pos token.Pos, cl *classify.Classifier, kindOverride string) {
	if common.IsInvoke() {
		kind := kindOverride
		if kind == "" {
			kind = KindDynamicCall
		}
		g.Append(block, frame.Node{Op: frame.OpCall, Pos: pos, Call: &frame.CallInfo{
			Kind: kind,
			Name: common.Method.Name(),
			Decl: common.Method.Pos(),
		}})
		return
	}

	// Builtins (len, append, copy, ...) are recognized intrinsics and
	// never reach a safepoint of the embedded collector.
	if _, ok := common.Value.(*ssa.Builtin); ok {
		return
	}

	callee := common.StaticCallee()
	if callee == nil {
		// Indirect call through a function value.
		kind := kindOverride
		if kind == "" {
			kind = KindDynamicCall
		}
		g.Append(block, frame.Node{Op: frame.OpCall, Pos: pos, Call: &frame.CallInfo{
			Kind: kind,
			Name: common.Value.Name(),
			Decl: common.Value.Pos(),
		}})
		return
	}

	// Only a synchronous call mutates this path's frame state: a frame
	// op launched with go runs on another goroutine's stack, and a
	// deferred one is replayed at RunDefers by the caller.
	if kindOverride == "" {
		switch act, arity := cl.FrameAction(callee); act {
		case classify.ActionPush:
			g.Append(block, frame.Node{Op: frame.OpPush, Pos: pos, Arity: arity})
			return
		case classify.ActionPushArgs:
			g.Append(block, frame.Node{Op: frame.OpPush, Pos: pos, Arity: constArity(common)})
			return
		case classify.ActionPop:
			g.Append(block, frame.Node{Op: frame.OpPop, Pos: pos})
			return
		}
	}

	kind := kindOverride
	if kind == "" {
		kind = KindFunctionCall
	}
	g.Append(block, frame.Node{Op: frame.OpCall, Pos: pos, Call: &frame.CallInfo{
		Kind:          kind,
		Name:          callee.Name(),
		Decl:          callee.Pos(),
		SafepointFree: cl.SafepointFree(callee),
	}})
}

// constArity extracts the slot count of a variadic push when it is a
// compile-time constant. Zero means unknown; the balance check does not
// depend on it, a variadic push balances like any other push.
func constArity(common *ssa.CallCommon) int {
	for _, arg := range common.Args {
		if k, ok := arg.(*ssa.Const); ok && k.Value != nil && k.Value.Kind() == constant.Int {
			if n, exact := constant.Int64Val(k.Value); exact {
				return int(n)
			}
		}
	}
	return 0
}

// funcEnd approximates the position of a function's closing brace for
// implicit returns, which SSA emits without a position.
func funcEnd(fn *ssa.Function) token.Pos {
	if syn := fn.Syntax(); syn != nil {
		return syn.End() - 1
	}
	return fn.Pos()
}
