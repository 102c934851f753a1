// Package directive handles gcframe comment directives.
//
// # Supported Directives
//
//	//gcframe:ignore        - suppress warnings on the next or same line,
//	                          a whole function, or a whole file
//	//gcframe:notsafepoint  - the function must not reach a GC safepoint
//	                          (the Go spelling of JL_NOTSAFEPOINT); it is
//	                          also assumed safepoint-free for its callers
//	//gcframe:safe          - assume the function is safepoint-free
//	                          without checking its body
//
// # Placement
//
// Line directives go on the line before the affected code or at the end
// of the same line. Function directives go in the doc comment of the
// declaration. A file-level ignore goes in the package doc comment.
package directive

import "strings"

const prefix = "gcframe:"

// hasDirective reports whether the comment text carries the named
// directive. "//gcframe:name" and "// gcframe:name" are both accepted;
// the name must be followed by whitespace or the end of the comment.
func hasDirective(text, name string) bool {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, prefix+name) {
		return false
	}
	rest := text[len(prefix)+len(name):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

// IsIgnoreDirective reports whether text is an ignore directive.
func IsIgnoreDirective(text string) bool { return hasDirective(text, "ignore") }

// IsNotSafepointDirective reports whether text is a notsafepoint directive.
func IsNotSafepointDirective(text string) bool { return hasDirective(text, "notsafepoint") }

// IsSafeDirective reports whether text is a safe directive.
func IsSafeDirective(text string) bool { return hasDirective(text, "safe") }
