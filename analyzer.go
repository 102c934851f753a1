// Package gcframe provides a static analysis tool for verifying GC
// frame discipline in Go code that embeds a manually-rooted garbage
// collector (the Julia C API binding style).
//
// Two defect classes are reported:
//
//   - A GC frame opened with JL_GC_PUSH1..JL_GC_PUSH7 or JL_GC_PUSHARGS
//     that is still open at a function exit, and a JL_GC_POP with no
//     frame open.
//   - A call that may reach a GC safepoint made from a function
//     annotated //gcframe:notsafepoint.
//
// Project-specific frame helpers can be added with the -push, -pushargs
// and -pop flags; functions known to be safepoint-free can be
// allow-listed with -safe or annotated //gcframe:safe.
package gcframe

import (
	"flag"
	"go/ast"
	"go/token"
	"regexp"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/buildssa"

	"github.com/jlgo/gcframe/internal"
	"github.com/jlgo/gcframe/internal/classify"
	"github.com/jlgo/gcframe/internal/directive"
	"github.com/jlgo/gcframe/internal/funcspec"
)

// Flags for the analyzer.
var (
	pushFuncs     string
	pushArgsFuncs string
	popFuncs      string
	safeFuncs     string
	debugFilter   string
)

func init() {
	Analyzer.Flags.StringVar(&pushFuncs, "push", "",
		"comma-separated funcspecs of additional fixed-arity frame push functions (e.g., pkg.Func or pkg.Type.Method)")
	Analyzer.Flags.StringVar(&pushArgsFuncs, "pushargs", "",
		"comma-separated funcspecs of additional variadic frame push functions")
	Analyzer.Flags.StringVar(&popFuncs, "pop", "",
		"comma-separated funcspecs of additional frame pop functions")
	Analyzer.Flags.StringVar(&safeFuncs, "safe", "",
		"comma-separated funcspecs of functions assumed to be safepoint-free")
	Analyzer.Flags.StringVar(&debugFilter, "debug", "",
		"trace the analysis of functions whose name matches this regex")
}

// Analyzer is the main analyzer for gcframe.
var Analyzer = &analysis.Analyzer{
	Name:     "gcframe",
	Doc:      "checks GC frame push/pop balance and JL_NOTSAFEPOINT discipline",
	Requires: []*analysis.Analyzer{buildssa.Analyzer},
	Run:      run,
	Flags:    flag.FlagSet{},
}

func run(pass *analysis.Pass) (any, error) {
	ssaInfo := pass.ResultOf[buildssa.Analyzer].(*buildssa.SSA)

	// Build set of files to skip
	skipFiles := buildSkipFiles(pass)

	// Build directive maps for each file (excluding skipped files)
	ignoreMaps := make(map[string]directive.IgnoreMap)
	funcIgnores := make(map[string]map[token.Pos]directive.FunctionIgnoreEntry)
	notSafepoint := directive.NewFuncSet()
	safe := directive.NewFuncSet()

	pkgPath := pass.Pkg.Path()
	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename
		if skipFiles[filename] {
			continue
		}
		ignoreMaps[filename] = directive.BuildIgnoreMap(pass.Fset, file)
		funcIgnores[filename] = directive.BuildFunctionIgnores(pass.Fset, file)

		for _, key := range directive.CollectFuncs(file, pkgPath, directive.IsNotSafepointDirective) {
			notSafepoint.Add(key)
		}
		for _, key := range directive.CollectFuncs(file, pkgPath, directive.IsSafeDirective) {
			safe.Add(key)
		}
	}

	var debugRegex *regexp.Regexp
	if debugFilter != "" {
		re, err := regexp.Compile(debugFilter)
		if err != nil {
			// Report the regex error but continue without tracing
			pass.Reportf(token.NoPos, "invalid debug filter regex: %v", err)
		} else {
			debugRegex = re
		}
	}

	classifier := classify.New(classify.Options{
		Push:              funcspec.ParseList(pushFuncs),
		PushArgs:          funcspec.ParseList(pushArgsFuncs),
		Pop:               funcspec.ParseList(popFuncs),
		Safe:              funcspec.ParseList(safeFuncs),
		SafeFuncs:         safe,
		NotSafepointFuncs: notSafepoint,
	})

	internal.Run(pass, ssaInfo, &internal.Config{
		Classifier:   classifier,
		NotSafepoint: notSafepoint,
		IgnoreMaps:   ignoreMaps,
		FuncIgnores:  funcIgnores,
		SkipFiles:    skipFiles,
		DebugFilter:  debugRegex,
	})

	return nil, nil
}

// buildSkipFiles creates a set of filenames to skip.
// Generated files are always skipped.
// Test files can be skipped via the driver's built-in -test flag.
func buildSkipFiles(pass *analysis.Pass) map[string]bool {
	skipFiles := make(map[string]bool)

	for _, file := range pass.Files {
		filename := pass.Fset.Position(file.Pos()).Filename

		// Always skip generated files
		if ast.IsGenerated(file) {
			skipFiles[filename] = true
		}
	}

	return skipFiles
}
