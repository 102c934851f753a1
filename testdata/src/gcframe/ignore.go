package gcframe

import "julia"

// =============================================================================
// Ignore directives
// =============================================================================

// suppressedSameLine is silenced by a same-line directive.
func suppressedSameLine() {
	julia.JL_GC_POP() //gcframe:ignore
}

// suppressedPrevLine is silenced by a directive on the previous line.
func suppressedPrevLine() {
	//gcframe:ignore
	julia.JL_GC_POP()
}

// suppressedFunction is silenced entirely by a function-level directive.
//
//gcframe:ignore
func suppressedFunction() {
	julia.JL_GC_POP()
	var x *julia.Value
	julia.JL_GC_PUSH1(&x)
}

// unusedDirective has nothing to suppress.
func unusedDirective(v *julia.Value) *julia.Value {
	//gcframe:ignore // want `unused gcframe:ignore directive`
	return julia.TypeOf(v)
}

// staleDirectives carries several directives with nothing to suppress;
// each is reported on its own.
func staleDirectives(v *julia.Value) {
	//gcframe:ignore // want `unused gcframe:ignore directive`
	_ = julia.TypeOf(v)
	//gcframe:ignore // want `unused gcframe:ignore directive`
}
