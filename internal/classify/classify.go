// Package classify resolves callees to their GC role: frame push, frame
// pop, safepoint-free, or potential safepoint.
//
// Classification is conservative by design: a call is a potential
// safepoint unless it is provably safepoint-free through an annotation
// or an explicit allow-list entry. False positives on safe calls are
// acceptable; false negatives are not.
package classify

import (
	"go/types"
	"strconv"
	"strings"

	"golang.org/x/tools/go/ssa"

	"github.com/jlgo/gcframe/internal/directive"
	"github.com/jlgo/gcframe/internal/funcspec"
)

// Action is the GC frame effect of calling a function.
type Action int

const (
	// ActionNone means the call has no frame effect.
	ActionNone Action = iota
	// ActionPush opens a GC frame with a fixed number of slots.
	ActionPush
	// ActionPushArgs opens a GC frame with a caller-chosen slot count.
	ActionPushArgs
	// ActionPop closes the innermost GC frame.
	ActionPop
)

// Builtin frame function names mirroring the C macro family. They match
// by bare name in any package, the way the macros are global in C.
const (
	pushPrefix   = "JL_GC_PUSH"
	pushArgsName = "JL_GC_PUSHARGS"
	popName      = "JL_GC_POP"
)

// DefaultPushArity reports the slot count encoded in a builtin push
// name (JL_GC_PUSH1 through JL_GC_PUSH7) and whether the name is one.
func DefaultPushArity(name string) (int, bool) {
	if name == pushArgsName || !strings.HasPrefix(name, pushPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(name[len(pushPrefix):])
	if err != nil || n < 1 || n > 7 {
		return 0, false
	}
	return n, true
}

// Options configures a Classifier from flag values and directive scans.
type Options struct {
	// Push, PushArgs and Pop extend the builtin frame function names
	// with project-specific helpers (jl_gc_push_arraylist style).
	Push     funcspec.List
	PushArgs funcspec.List
	Pop      funcspec.List

	// Safe lists functions assumed safepoint-free.
	Safe funcspec.List

	// SafeFuncs holds //gcframe:safe annotated functions.
	SafeFuncs *directive.FuncSet

	// NotSafepointFuncs holds //gcframe:notsafepoint annotated
	// functions. A function that must not reach a safepoint is itself
	// safe to call from one.
	NotSafepointFuncs *directive.FuncSet
}

// Classifier answers frame-effect and safepoint queries about callees.
type Classifier struct {
	opts Options
}

// New creates a Classifier.
func New(opts Options) *Classifier {
	return &Classifier{opts: opts}
}

// FrameAction returns the frame effect of calling fn and, for
// ActionPush, the slot count. Unresolvable callees have no effect.
func (c *Classifier) FrameAction(fn *ssa.Function) (Action, int) {
	if fn == nil {
		return ActionNone, 0
	}

	name := fn.Name()
	if arity, ok := DefaultPushArity(name); ok {
		return ActionPush, arity
	}
	switch name {
	case pushArgsName:
		return ActionPushArgs, 0
	case popName:
		return ActionPop, 0
	}

	if obj := typeFunc(fn); obj != nil {
		switch {
		case c.opts.Push.Matches(obj):
			return ActionPush, 0
		case c.opts.PushArgs.Matches(obj):
			return ActionPushArgs, 0
		case c.opts.Pop.Matches(obj):
			return ActionPop, 0
		}
	}

	return ActionNone, 0
}

// SafepointFree reports whether calling fn is proven not to reach a
// safepoint.
func (c *Classifier) SafepointFree(fn *ssa.Function) bool {
	if fn == nil {
		return false
	}

	// Frame bookkeeping itself never yields to the collector.
	if act, _ := c.FrameAction(fn); act != ActionNone {
		return true
	}

	// Covers rather than Contains: a function literal inherits the
	// guarantee of the function it is written in.
	if c.opts.SafeFuncs.Covers(fn) || c.opts.NotSafepointFuncs.Covers(fn) {
		return true
	}

	if obj := typeFunc(fn); obj != nil && c.opts.Safe.Matches(obj) {
		return true
	}

	return false
}

func typeFunc(fn *ssa.Function) *types.Func {
	if obj, ok := fn.Object().(*types.Func); ok {
		return obj
	}
	return nil
}
