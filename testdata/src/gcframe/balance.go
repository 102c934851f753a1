// Package gcframe exercises the frame balance checker.
package gcframe

import "julia"

// =============================================================================
// SHOULD REPORT - Unbalanced frames
// =============================================================================

// missingPop opens a frame and never closes it.
func missingPop() {
	var x *julia.Value
	julia.JL_GC_PUSH1(&x)
} // want `Non-popped GC frame present at end of function`

// missingPopArgs opens a variadic frame and never closes it.
func missingPopArgs() {
	args := julia.JL_GC_PUSHARGS(2)
	_ = args
} // want `Non-popped GC frame present at end of function`

// missingPopMulti roots several references and never closes the frame.
func missingPopMulti(a, b *julia.Value) {
	julia.JL_GC_PUSH2(&a, &b)
} // want `Non-popped GC frame present at end of function`

// superfluousPop pops with no frame open.
func superfluousPop() {
	julia.JL_GC_POP() // want `JL_GC_POP without corresponding push`
}

// popOnOneArm closes the frame only on the early-return path.
func popOnOneArm(cond bool) {
	var x *julia.Value
	julia.JL_GC_PUSH1(&x)
	if cond {
		julia.JL_GC_POP()
		return
	}
} // want `Non-popped GC frame present at end of function`

// openAtEarlyReturn leaves the frame open at one of two exits.
func openAtEarlyReturn(cond bool) {
	var x *julia.Value
	julia.JL_GC_PUSH1(&x)
	if cond {
		return // want `Non-popped GC frame present at end of function`
	}
	julia.JL_GC_POP()
}

// conditionalDoublePop pops twice on one path.
func conditionalDoublePop(cond bool) {
	var x *julia.Value
	julia.JL_GC_PUSH1(&x)
	if cond {
		julia.JL_GC_POP()
	}
	julia.JL_GC_POP() // want `JL_GC_POP without corresponding push`
}

// pushOnBothArms leaves a different frame open on each path, so the
// shared exit reports once per origin.
func pushOnBothArms(cond bool) {
	var x, y *julia.Value
	if cond {
		julia.JL_GC_PUSH1(&x)
	} else {
		julia.JL_GC_PUSH1(&y)
	}
} // want `Non-popped GC frame present at end of function` `Non-popped GC frame present at end of function`

// pushInLoop leaves a frame open after any iteration.
func pushInLoop(values []*julia.Value) {
	for _, v := range values {
		root := v
		julia.JL_GC_PUSH1(&root)
	}
} // want `Non-popped GC frame present at end of function`

// closureLeaks: function literals are checked as functions of their own.
func closureLeaks() {
	leak := func() {
		var x *julia.Value
		julia.JL_GC_PUSH1(&x)
	} // want `Non-popped GC frame present at end of function`
	leak()
}

// =============================================================================
// SHOULD NOT REPORT - Balanced frames
// =============================================================================

// balanced closes its frame before returning.
func balanced(v *julia.Value) *julia.Value {
	result := julia.TypeOf(v)
	julia.JL_GC_PUSH1(&result)
	result = julia.EvalString("f()")
	julia.JL_GC_POP()
	return result
}

// balancedArgs closes a variadic frame.
func balancedArgs() {
	args := julia.JL_GC_PUSHARGS(3)
	args[0] = julia.EvalString("g()")
	julia.JL_GC_POP()
}

// sequentialFrames opens and closes two frames in a row.
func sequentialFrames(a, b *julia.Value) {
	julia.JL_GC_PUSH1(&a)
	julia.JL_GC_POP()
	julia.JL_GC_PUSH1(&b)
	julia.JL_GC_POP()
}

// nestedPush collapses into a single logical frame closed by one pop.
func nestedPush(a, b *julia.Value) {
	julia.JL_GC_PUSH1(&a)
	julia.JL_GC_PUSH1(&b)
	julia.JL_GC_POP()
}

// deferredPop closes the frame through a deferred call at every exit.
func deferredPop(v *julia.Value) *julia.Value {
	julia.JL_GC_PUSH1(&v)
	defer julia.JL_GC_POP()
	return julia.EvalString("g()")
}

// balancedLoop opens and closes a frame on every iteration.
func balancedLoop(values []*julia.Value) {
	for _, v := range values {
		root := v
		julia.JL_GC_PUSH1(&root)
		julia.JL_GC_POP()
	}
}

// poppedOnBothArms closes the frame on every path.
func poppedOnBothArms(cond bool) {
	var x *julia.Value
	julia.JL_GC_PUSH1(&x)
	if cond {
		julia.JL_GC_POP()
		return
	}
	julia.JL_GC_POP()
}

// goroutinePop: a pop launched on another goroutine runs on that
// goroutine's stack and does not close this path's frame.
func goroutinePop() {
	var x *julia.Value
	julia.JL_GC_PUSH1(&x)
	go julia.JL_GC_POP()
	julia.JL_GC_POP()
}

// goroutinePush: likewise, a push in a go statement opens no frame on
// this path.
func goroutinePush(v *julia.Value) {
	go julia.JL_GC_PUSH1(&v)
}

// noFrames performs no rooting at all.
func noFrames(v *julia.Value) *julia.Value {
	return julia.TypeOf(v)
}
