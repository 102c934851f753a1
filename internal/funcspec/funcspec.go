// Package funcspec parses and matches function specifications used by
// the -push, -pushargs, -pop and -safe flags.
//
// A spec names a package-level function or a method:
//
//	pkg/path.Func
//	pkg/path.Type.Method
//
// Flag values hold comma-separated lists of specs.
package funcspec

import (
	"go/types"
	"strings"
	"unicode"
)

// Spec is one parsed function specification.
type Spec struct {
	PkgPath  string
	TypeName string // empty for package-level functions
	FuncName string
}

// Parse splits a single spec string into its components. A spec with
// no dot is treated as a bare function name matching any package.
func Parse(s string) Spec {
	lastDot := strings.LastIndex(s, ".")
	if lastDot == -1 {
		return Spec{FuncName: s}
	}

	spec := Spec{FuncName: s[lastDot+1:]}
	prefix := s[:lastDot]

	// A second dot may separate a method's receiver type from the
	// package path. Type names start with an uppercase letter.
	if dot := strings.LastIndex(prefix, "."); dot != -1 {
		typeName := prefix[dot+1:]
		if typeName != "" && unicode.IsUpper(rune(typeName[0])) {
			spec.TypeName = typeName
			spec.PkgPath = prefix[:dot]
			return spec
		}
	}

	spec.PkgPath = prefix
	return spec
}

// ParseList parses a comma-separated list of specs, skipping empty
// entries.
func ParseList(s string) List {
	if s == "" {
		return nil
	}
	var specs List
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		specs = append(specs, Parse(part))
	}
	return specs
}

// Matches reports whether fn is the function this spec names.
func (s Spec) Matches(fn *types.Func) bool {
	if fn == nil || fn.Name() != s.FuncName {
		return false
	}

	if s.PkgPath != "" {
		pkg := fn.Pkg()
		if pkg == nil || pkg.Path() != s.PkgPath {
			return false
		}
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok {
		return false
	}
	recv := sig.Recv()

	if s.TypeName == "" {
		return recv == nil
	}
	if recv == nil {
		return false
	}

	recvType := recv.Type()
	if ptr, ok := recvType.(*types.Pointer); ok {
		recvType = ptr.Elem()
	}
	named, ok := recvType.(*types.Named)
	if !ok {
		return false
	}
	return named.Obj().Name() == s.TypeName
}

// List is a set of specs with a combined match test.
type List []Spec

// Matches reports whether any spec in the list names fn.
func (l List) Matches(fn *types.Func) bool {
	for _, s := range l {
		if s.Matches(fn) {
			return true
		}
	}
	return false
}
