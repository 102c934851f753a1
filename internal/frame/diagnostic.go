package frame

import (
	"fmt"
	"go/token"
)

// Diagnostic message texts. Downstream tooling matches on these
// strings, so they must not be reworded.
const (
	MsgNonPoppedFrame = "Non-popped GC frame present at end of function"
	MsgPopWithoutPush = "JL_GC_POP without corresponding push"
	MsgFrameChanged   = "GC frame changed here"
	MsgCalleeDefined  = "Tried to call method defined here"

	msgUnsafeCallFormat = "Calling potential safepoint as %s from function annotated JL_NOTSAFEPOINT"
)

// Note is a secondary location attached to a Diagnostic.
type Note struct {
	Pos     token.Pos
	Message string
}

// Diagnostic is a single checker finding. Severity is always warning;
// there are no fatal findings.
type Diagnostic struct {
	Pos     token.Pos
	Message string
	Related []Note
}

func popWithoutPush(pos token.Pos) Diagnostic {
	return Diagnostic{
		Pos:     pos,
		Message: MsgPopWithoutPush,
		Related: []Note{
			{Pos: pos, Message: MsgPopWithoutPush},
		},
	}
}

func nonPoppedFrame(exit, origin token.Pos) Diagnostic {
	return Diagnostic{
		Pos:     exit,
		Message: MsgNonPoppedFrame,
		Related: []Note{
			{Pos: origin, Message: MsgFrameChanged},
			{Pos: exit, Message: MsgNonPoppedFrame},
		},
	}
}

func unsafeCall(pos token.Pos, call *CallInfo) Diagnostic {
	d := Diagnostic{
		Pos:     pos,
		Message: fmt.Sprintf(msgUnsafeCallFormat, call.Kind),
	}
	if call.Decl.IsValid() {
		d.Related = append(d.Related, Note{Pos: call.Decl, Message: MsgCalleeDefined})
	}
	return d
}
