package filefilter

import "julia"

func handWritten() {
	var x *julia.Value
	julia.JL_GC_PUSH1(&x)
} // want `Non-popped GC frame present at end of function`
