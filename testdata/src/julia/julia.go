// Package julia is a minimal stand-in for a Julia embedding binding,
// providing the GC rooting API that the analyzer recognizes by name.
package julia

// Value is an opaque reference to a Julia heap value.
type Value struct {
	ptr uintptr
}

// JL_GC_PUSH1 roots one local reference until the matching JL_GC_POP.
func JL_GC_PUSH1(a **Value) {}

// JL_GC_PUSH2 roots two local references until the matching JL_GC_POP.
func JL_GC_PUSH2(a, b **Value) {}

// JL_GC_PUSH3 roots three local references until the matching JL_GC_POP.
func JL_GC_PUSH3(a, b, c **Value) {}

// JL_GC_PUSHARGS roots n freshly allocated slots until the matching
// JL_GC_POP.
func JL_GC_PUSHARGS(n int) []*Value { return make([]*Value, n) }

// JL_GC_POP closes the innermost GC frame.
func JL_GC_POP() {}

// EvalString parses and evaluates Julia source. May trigger GC.
func EvalString(src string) *Value { return &Value{} }

// TypeOf returns the type of v. May trigger GC.
func TypeOf(v *Value) *Value { return v }
