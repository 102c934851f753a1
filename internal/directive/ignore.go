package directive

import (
	"go/ast"
	"go/token"
)

// ignoreEntry tracks an ignore directive and whether it suppressed
// anything.
type ignoreEntry struct {
	pos  token.Pos
	used bool
}

// IgnoreMap tracks ignore directives by line number. Line -1 is the
// file-level marker set by an ignore in the package doc comment.
type IgnoreMap map[int]*ignoreEntry

// BuildIgnoreMap scans a file's comments for ignore directives.
func BuildIgnoreMap(fset *token.FileSet, file *ast.File) IgnoreMap {
	m := make(IgnoreMap)

	for _, cg := range file.Comments {
		for _, c := range cg.List {
			if IsIgnoreDirective(c.Text) {
				line := fset.Position(c.Pos()).Line
				m[line] = &ignoreEntry{pos: c.Pos()}
			}
		}
	}

	// File-level ignore lives in the package doc comment and is always
	// considered used: suppressing a whole clean file is intentional.
	// The general scan above also recorded it as a line entry; drop
	// that entry so it is not reported as unused.
	if file.Doc != nil {
		for _, c := range file.Doc.List {
			if IsIgnoreDirective(c.Text) {
				delete(m, fset.Position(c.Pos()).Line)
				m[-1] = &ignoreEntry{pos: c.Pos(), used: true}
			}
		}
	}

	return m
}

// ShouldIgnore reports whether a diagnostic on the given line is
// suppressed, marking the matching directive as used. A directive
// covers its own line and the following one.
func (m IgnoreMap) ShouldIgnore(line int) bool {
	if entry, ok := m[-1]; ok {
		entry.used = true
		return true
	}
	if entry, ok := m[line]; ok {
		entry.used = true
		return true
	}
	if entry, ok := m[line-1]; ok {
		entry.used = true
		return true
	}
	return false
}

// MarkUsed marks the directive at the given line as used. Called for
// function-level ignores, which suppress by skipping the function
// before any diagnostic is produced.
func (m IgnoreMap) MarkUsed(line int) {
	if entry, ok := m[line]; ok {
		entry.used = true
	}
}

// UnusedIgnores returns positions of directives that never suppressed
// a diagnostic.
func (m IgnoreMap) UnusedIgnores() []token.Pos {
	var unused []token.Pos
	for line, entry := range m {
		if line == -1 {
			continue
		}
		if !entry.used {
			unused = append(unused, entry.pos)
		}
	}
	return unused
}

// FunctionIgnoreEntry records a function-level ignore directive.
type FunctionIgnoreEntry struct {
	// DirectiveLine is the line of the directive comment, used to mark
	// the corresponding IgnoreMap entry as used.
	DirectiveLine int
}

// BuildFunctionIgnores collects functions whose doc comment carries an
// ignore directive, keyed by the name position. SSA reports a declared
// function's position as its name position, so lookups use fn.Pos().
func BuildFunctionIgnores(fset *token.FileSet, file *ast.File) map[token.Pos]FunctionIgnoreEntry {
	result := make(map[token.Pos]FunctionIgnoreEntry)

	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Doc == nil {
			continue
		}
		for _, c := range fd.Doc.List {
			if IsIgnoreDirective(c.Text) {
				result[fd.Name.Pos()] = FunctionIgnoreEntry{
					DirectiveLine: fset.Position(c.Pos()).Line,
				}
				break
			}
		}
	}

	return result
}
