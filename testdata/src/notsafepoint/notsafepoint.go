package notsafepoint

import "julia"

type evaluator interface {
	Eval(src string)
}

// =============================================================================
// SHOULD REPORT
// =============================================================================

// directCall reaches a potential safepoint through a plain call.
//
//gcframe:notsafepoint
func directCall() {
	julia.EvalString("1 + 1") // want `Calling potential safepoint as FunctionCall from function annotated JL_NOTSAFEPOINT`
}

// deferredCall schedules a potential safepoint for function exit.
//
//gcframe:notsafepoint
func deferredCall() {
	defer julia.EvalString("cleanup()") // want `Calling potential safepoint as DeferredCall from function annotated JL_NOTSAFEPOINT`
}

// spawnedCall launches a potential safepoint on another goroutine.
//
//gcframe:notsafepoint
func spawnedCall() {
	go julia.EvalString("work()") // want `Calling potential safepoint as GoCall from function annotated JL_NOTSAFEPOINT`
}

// indirectCall goes through a function value; the callee is unknown and
// must be assumed to reach a safepoint.
//
//gcframe:notsafepoint
func indirectCall(f func()) {
	f() // want `Calling potential safepoint as DynamicCall from function annotated JL_NOTSAFEPOINT`
}

// interfaceCall dispatches through an interface method.
//
//gcframe:notsafepoint
func interfaceCall(e evaluator) {
	e.Eval("1 + 1") // want `Calling potential safepoint as DynamicCall from function annotated JL_NOTSAFEPOINT`
}

// unannotatedHelper has no annotation of its own, so callers cannot rely
// on it staying away from safepoints.
func unannotatedHelper() {}

//gcframe:notsafepoint
func callsUnannotated() {
	unannotatedHelper() // want `Calling potential safepoint as FunctionCall from function annotated JL_NOTSAFEPOINT`
}

// closureInherits shows that function literals inherit the enclosing
// annotation.
//
//gcframe:notsafepoint
func closureInherits() {
	run := func() {
		julia.EvalString("1 + 1") // want `Calling potential safepoint as FunctionCall from function annotated JL_NOTSAFEPOINT`
	}
	run()
}

// =============================================================================
// SHOULD NOT REPORT
// =============================================================================

// provenSafe is vouched for and may be called from annotated code.
//
//gcframe:safe
func provenSafe() {}

// alsoNotSafepoint carries the annotation itself, which makes it a legal
// callee for other annotated functions.
//
//gcframe:notsafepoint
func alsoNotSafepoint() {}

//gcframe:notsafepoint
func callsSafeCallees() {
	provenSafe()
	alsoNotSafepoint()
}

// frameOpsAllowed may manipulate GC frames; the frame intrinsics never
// trigger a collection themselves.
//
//gcframe:notsafepoint
func frameOpsAllowed() {
	var x *julia.Value
	julia.JL_GC_PUSH1(&x)
	julia.JL_GC_POP()
}

// unannotatedCaller is free to call anything.
func unannotatedCaller() {
	julia.EvalString("1 + 1")
	unannotatedHelper()
}
