// Package internal bridges the public analyzer and the checker core.
//
// Responsibilities:
//
//   - Iterate all source functions (including function literals) of a
//     package in SSA form
//   - Skip excluded files and //gcframe:ignore annotated functions
//   - Translate each function into the checker's abstract graph and run
//     the frame analysis
//   - Report findings through the analysis.Pass, honoring line-level
//     ignore directives and deduplicating repeats
//   - Report unused ignore directives
package internal

import (
	"go/token"
	"regexp"
	"sort"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/buildssa"

	"github.com/jlgo/gcframe/internal/classify"
	"github.com/jlgo/gcframe/internal/debug"
	"github.com/jlgo/gcframe/internal/directive"
	"github.com/jlgo/gcframe/internal/frame"
	"github.com/jlgo/gcframe/internal/ssagraph"
)

// Config carries the per-run configuration derived from flags and
// directive scans.
type Config struct {
	Classifier   *classify.Classifier
	NotSafepoint *directive.FuncSet
	IgnoreMaps   map[string]directive.IgnoreMap
	FuncIgnores  map[string]map[token.Pos]directive.FunctionIgnoreEntry
	SkipFiles    map[string]bool
	DebugFilter  *regexp.Regexp
}

// Run analyzes every source function of the package and reports
// findings.
func Run(pass *analysis.Pass, ssaInfo *buildssa.SSA, cfg *Config) {
	for _, fn := range ssaInfo.SrcFuncs {
		pos := fn.Pos()
		if !pos.IsValid() {
			continue
		}

		filename := pass.Fset.Position(pos).Filename
		if cfg.SkipFiles[filename] {
			continue
		}

		ignoreMap := cfg.IgnoreMaps[filename]

		// Function-level ignore: skip the whole function and mark the
		// directive as used.
		if funcIgnoreSet, ok := cfg.FuncIgnores[filename]; ok {
			if entry, ignored := funcIgnoreSet[fn.Pos()]; ignored {
				if ignoreMap != nil {
					ignoreMap.MarkUsed(entry.DirectiveLine)
				}
				continue
			}
		}

		tracer := debug.NewTracer(cfg.DebugFilter, pass.Fset, fn.String())

		chk := &frame.Checker{
			NotSafepoint: cfg.NotSafepoint.Covers(fn),
			Trace:        tracer.Step(),
		}

		rep := newReporter(pass, ignoreMap)
		for _, d := range chk.Check(ssagraph.Build(fn, cfg.Classifier)) {
			tracer.Report(d)
			rep.report(d)
		}
	}

	// Sorted so emission order is stable across runs despite the map
	// iteration above.
	var unused []token.Pos
	for _, ignoreMap := range cfg.IgnoreMaps {
		unused = append(unused, ignoreMap.UnusedIgnores()...)
	}
	sort.Slice(unused, func(i, j int) bool { return unused[i] < unused[j] })
	for _, pos := range unused {
		pass.Reportf(pos, "unused gcframe:ignore directive")
	}
}

// reporter forwards checker findings to the pass, suppressing ignored
// lines and repeated findings.
type reporter struct {
	pass      *analysis.Pass
	ignoreMap directive.IgnoreMap
	reported  map[reportKey]bool
}

// reportKey distinguishes findings sharing a position: two open frames
// from different pushes may be reported at the same exit.
type reportKey struct {
	pos     token.Pos
	message string
	notePos token.Pos
}

func newReporter(pass *analysis.Pass, ignoreMap directive.IgnoreMap) *reporter {
	return &reporter{
		pass:      pass,
		ignoreMap: ignoreMap,
		reported:  make(map[reportKey]bool),
	}
}

func (r *reporter) report(d frame.Diagnostic) {
	key := reportKey{pos: d.Pos, message: d.Message}
	if len(d.Related) > 0 {
		key.notePos = d.Related[0].Pos
	}
	if r.reported[key] {
		return
	}
	r.reported[key] = true

	line := r.pass.Fset.Position(d.Pos).Line
	if r.ignoreMap != nil && r.ignoreMap.ShouldIgnore(line) {
		return
	}

	related := make([]analysis.RelatedInformation, 0, len(d.Related))
	for _, n := range d.Related {
		related = append(related, analysis.RelatedInformation{
			Pos:     n.Pos,
			Message: n.Message,
		})
	}

	r.pass.Report(analysis.Diagnostic{
		Pos:     d.Pos,
		Message: d.Message,
		Related: related,
	})
}
