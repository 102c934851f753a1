package customframe

// Project-specific frame helpers wrapping the C push/pop macros. The
// analysis learns about them through the -push and -pop flags.

type value struct{ data uintptr }

func pushArrayList(vals []*value) {}

func framePop() {}

func leaks(vals []*value) {
	pushArrayList(vals)
} // want `Non-popped GC frame present at end of function`

func doublePop(vals []*value) {
	pushArrayList(vals)
	framePop()
	framePop() // want `JL_GC_POP without corresponding push`
}

func balanced(vals []*value) {
	pushArrayList(vals)
	framePop()
}
