package directive

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/ssa"
)

// FuncKey identifies an annotated function or method. It gives a
// structured way to match AST declarations with SSA functions without
// fragile string comparison against fn.String().
type FuncKey struct {
	PkgPath  string // package path
	Receiver string // receiver type name without pointer/package, empty for functions
	Name     string // function or method name
}

// FuncSet is a set of functions collected from function-level
// directives in the analyzed package.
type FuncSet struct {
	known map[FuncKey]struct{}
}

// NewFuncSet returns an empty FuncSet.
func NewFuncSet() *FuncSet {
	return &FuncSet{known: make(map[FuncKey]struct{})}
}

// Add inserts a key into the set.
func (s *FuncSet) Add(key FuncKey) {
	s.known[key] = struct{}{}
}

// Len returns the number of annotated functions.
func (s *FuncSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.known)
}

// Contains reports whether fn itself carries the directive.
func (s *FuncSet) Contains(fn *ssa.Function) bool {
	if s == nil || fn == nil {
		return false
	}
	key := FuncKey{Name: fn.Name()}
	if fn.Pkg != nil && fn.Pkg.Pkg != nil {
		key.PkgPath = fn.Pkg.Pkg.Path()
	}
	if recv := fn.Signature.Recv(); recv != nil {
		key.Receiver = receiverTypeName(recv.Type())
	}
	_, ok := s.known[key]
	return ok
}

// Covers reports whether fn or any enclosing function carries the
// directive. Function literals inherit the annotation of the function
// they are written in.
func (s *FuncSet) Covers(fn *ssa.Function) bool {
	for current := fn; current != nil; current = current.Parent() {
		if s.Contains(current) {
			return true
		}
	}
	return false
}

// CollectFuncs scans a file for function declarations whose doc comment
// matches the given directive predicate and returns their keys.
func CollectFuncs(file *ast.File, pkgPath string, match func(string) bool) []FuncKey {
	var keys []FuncKey

	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Doc == nil {
			continue
		}
		for _, c := range fd.Doc.List {
			if !match(c.Text) {
				continue
			}
			keys = append(keys, FuncKey{
				PkgPath:  pkgPath,
				Receiver: receiverDeclName(fd),
				Name:     fd.Name.Name,
			})
			break
		}
	}

	return keys
}

// receiverDeclName extracts the receiver type name from a declaration,
// stripping pointers and type parameters.
func receiverDeclName(fd *ast.FuncDecl) string {
	if fd.Recv == nil || len(fd.Recv.List) == 0 {
		return ""
	}
	expr := fd.Recv.List[0].Type
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}

// receiverTypeName extracts the named type behind an SSA receiver.
func receiverTypeName(t types.Type) string {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	if named, ok := t.(*types.Named); ok {
		return named.Obj().Name()
	}
	return ""
}
