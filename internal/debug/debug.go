// Package debug provides opt-in trace logging for the checker.
//
// Tracing is enabled per function through the -debug flag, a regular
// expression matched against fully qualified function names. Traces go
// to stderr and never affect the diagnostics the analyzer reports.
package debug

import (
	"fmt"
	"go/token"
	"os"
	"regexp"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/jlgo/gcframe/internal/frame"
)

var logger = newLogger()

func newLogger() *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "gcframe",
	})
	l.SetLevel(log.DebugLevel)
	l.SetColorProfile(termenv.ANSI256)
	if os.Getenv("NO_COLOR") != "" {
		l.SetColorProfile(termenv.Ascii)
	}
	return l
}

// Tracer logs checker steps for one function.
type Tracer struct {
	fset *token.FileSet
	fn   string
}

// NewTracer returns a tracer for the function, or nil when the filter
// is unset or does not match. A nil Tracer is a valid no-op.
func NewTracer(filter *regexp.Regexp, fset *token.FileSet, fnName string) *Tracer {
	if filter == nil || !filter.MatchString(fnName) {
		return nil
	}
	return &Tracer{fset: fset, fn: fnName}
}

// Step returns the callback wired into the checker, or nil for a nil
// Tracer.
func (t *Tracer) Step() frame.TraceFunc {
	if t == nil {
		return nil
	}
	return func(block int, before frame.State, n frame.Node) {
		logger.Debug("step",
			"fn", t.fn,
			"block", block,
			"op", n.Op.String(),
			"pos", t.position(n.Pos),
			"frame", t.stateString(before),
		)
	}
}

// Report logs a finding for a traced function.
func (t *Tracer) Report(d frame.Diagnostic) {
	if t == nil {
		return
	}
	logger.Debug("report",
		"fn", t.fn,
		"pos", t.position(d.Pos),
		"msg", d.Message,
		"notes", len(d.Related),
	)
}

func (t *Tracer) position(pos token.Pos) string {
	if !pos.IsValid() {
		return "-"
	}
	return t.fset.Position(pos).String()
}

func (t *Tracer) stateString(st frame.State) string {
	if !st.Open() {
		return "none"
	}
	return fmt.Sprintf("open@%s", t.position(st.Origin()))
}
