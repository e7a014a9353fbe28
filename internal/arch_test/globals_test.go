package arch_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"
)

// allowedGlobals lists package-level vars that are global on purpose but
// don't match the detection heuristics.
var allowedGlobals = map[string][]string{
	// Built once at init from the base prefix list; read-only afterwards.
	"prefix": {"tables"},
	// strings.Replacer is safe for concurrent use.
	"unit": {"abbreviationNoise"},
	// Set once under defaultOnce.
	"index": {"defaultIndex"},
	// go:embed target.
	"catalog": {"builtinTOML"},
}

// allowedGlobalPrefixes treats every var with one of these prefixes as
// constant-like (lipgloss colors and styles).
var allowedGlobalPrefixes = map[string][]string{
	"ui": {"style", "color"},
}

// constantLike reports whether a package-level var initialized with val (of
// declared type typ) is one of the accepted immutable patterns: error
// sentinels, sync primitives, basic literals and composite literal tables.
func constantLike(typ, val ast.Expr) bool {
	if ident, ok := typ.(*ast.Ident); ok && ident.Name == "error" {
		return true
	}
	if sel, ok := typ.(*ast.SelectorExpr); ok {
		if pkg, ok := sel.X.(*ast.Ident); ok && (pkg.Name == "sync" || pkg.Name == "atomic") {
			return true
		}
	}
	switch v := val.(type) {
	case *ast.BasicLit, *ast.CompositeLit:
		return true
	case *ast.CallExpr:
		sel, ok := v.Fun.(*ast.SelectorExpr)
		if !ok {
			return false
		}
		pkg, ok := sel.X.(*ast.Ident)
		if !ok {
			return false
		}
		return (pkg.Name == "errors" && sel.Sel.Name == "New") ||
			(pkg.Name == "fmt" && sel.Sel.Name == "Errorf") ||
			(pkg.Name == "regexp" && sel.Sel.Name == "MustCompile")
	}
	return false
}

// packageVars calls fn for each package-level var with its declared type
// and initializer (either may be nil).
func packageVars(t *testing.T, node *ast.File, fn func(name string, typ, val ast.Expr)) {
	t.Helper()
	for _, decl := range node.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.VAR {
			continue
		}
		for _, spec := range gd.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for i, name := range vs.Names {
				var val ast.Expr
				if i < len(vs.Values) {
					val = vs.Values[i]
				}
				fn(name.Name, vs.Type, val)
			}
		}
	}
}

// TestNoMutableGlobalState flags package-level vars that are neither
// constant-like nor explicitly allowed.
func TestNoMutableGlobalState(t *testing.T) {
	t.Parallel()

	dir := internalDirPath(t)
	for _, pkg := range internalPackages(t) {
		t.Run(pkg, func(t *testing.T) {
			t.Parallel()

			allowed := make(map[string]bool)
			for _, n := range allowedGlobals[pkg] {
				allowed[n] = true
			}

			fset := token.NewFileSet()
			for _, filePath := range goFilesIn(t, filepath.Join(dir, pkg)) {
				node, err := parser.ParseFile(fset, filePath, nil, 0)
				if err != nil {
					t.Fatalf("parsing %s: %v", filePath, err)
				}
				packageVars(t, node, func(name string, typ, val ast.Expr) {
					if name == "_" || allowed[name] || constantLike(typ, val) {
						return
					}
					for _, p := range allowedGlobalPrefixes[pkg] {
						if strings.HasPrefix(name, p) {
							return
						}
					}
					t.Errorf("mutable global state in %s: var %s; use dependency injection or move to a function",
						filepath.Base(filePath), name)
				})
			}
		})
	}
}

// TestAllowedGlobalsAreUsed catches stale allowlist entries.
func TestAllowedGlobalsAreUsed(t *testing.T) {
	t.Parallel()

	dir := internalDirPath(t)
	for pkg, names := range allowedGlobals {
		t.Run(pkg, func(t *testing.T) {
			t.Parallel()

			declared := make(map[string]bool)
			fset := token.NewFileSet()
			for _, filePath := range goFilesIn(t, filepath.Join(dir, pkg)) {
				node, err := parser.ParseFile(fset, filePath, nil, 0)
				if err != nil {
					t.Fatalf("parsing %s: %v", filePath, err)
				}
				packageVars(t, node, func(name string, _, _ ast.Expr) {
					declared[name] = true
				})
			}
			for _, name := range names {
				if !declared[name] {
					t.Errorf("allowedGlobals[%q] contains %q but no such var exists; remove the stale entry", pkg, name)
				}
			}
		})
	}
}

// TestNoExportedTables flags exported package-level arrays, slices and maps.
// Importers could overwrite their elements; expose them through a function
// or method instead.
func TestNoExportedTables(t *testing.T) {
	t.Parallel()

	dir := internalDirPath(t)
	for _, pkg := range internalPackages(t) {
		t.Run(pkg, func(t *testing.T) {
			t.Parallel()

			fset := token.NewFileSet()
			for _, filePath := range goFilesIn(t, filepath.Join(dir, pkg)) {
				node, err := parser.ParseFile(fset, filePath, nil, 0)
				if err != nil {
					t.Fatalf("parsing %s: %v", filePath, err)
				}
				packageVars(t, node, func(name string, typ, val ast.Expr) {
					if ast.IsExported(name) && isTable(typ, val) {
						t.Errorf("exported table in %s: var %s can be modified by importers",
							filepath.Base(filePath), name)
					}
				})
			}
		})
	}
}

// isTable reports whether a var of declared type typ initialized with val is
// an array, slice or map.
func isTable(typ, val ast.Expr) bool {
	if lit, ok := val.(*ast.CompositeLit); ok && typ == nil {
		typ = lit.Type
	}
	switch typ.(type) {
	case *ast.ArrayType, *ast.MapType:
		return true
	}
	return false
}

func TestIsTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want bool
	}{
		{`package p; var Names = [2]string{"a", "b"}`, true},
		{`package p; var Items = []int{1}`, true},
		{`package p; var Lookup = map[string]int{"x": 1}`, true},
		{`package p; var Buf []byte`, true},
		{`package p; var Name = "x"`, false},
		{`package p; type T struct{}; var Default = T{}`, false},
	}
	for _, tt := range tests {
		fset := token.NewFileSet()
		node, err := parser.ParseFile(fset, "test.go", tt.src, 0)
		if err != nil {
			t.Fatalf("parsing %q: %v", tt.src, err)
		}
		packageVars(t, node, func(name string, typ, val ast.Expr) {
			if got := isTable(typ, val); got != tt.want {
				t.Errorf("isTable(%s) = %v, want %v", name, got, tt.want)
			}
		})
	}
}

func TestConstantLike(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want bool
	}{
		{`package p; import "errors"; var ErrFoo = errors.New("foo")`, true},
		{`package p; import "fmt"; var ErrBar = fmt.Errorf("bar: %w", nil)`, true},
		{`package p; import "sync"; var once sync.Once`, true},
		{`package p; var name = "hello"`, true},
		{`package p; var items = []string{"a", "b"}`, true},
		{`package p; var lookup = map[string]bool{"x": true}`, true},
		{`package p; var m = make(map[string]string)`, false},
		{`package p; var ch = make(chan int)`, false},
		{`package p; var buf []byte`, false},
		{`package p; var tables = build(); func build() int { return 0 }`, false},
	}

	for _, tt := range tests {
		fset := token.NewFileSet()
		node, err := parser.ParseFile(fset, "test.go", tt.src, 0)
		if err != nil {
			t.Fatalf("parsing %q: %v", tt.src, err)
		}
		packageVars(t, node, func(name string, typ, val ast.Expr) {
			if got := constantLike(typ, val); got != tt.want {
				t.Errorf("constantLike(%s) = %v, want %v in %q", name, got, tt.want, tt.src)
			}
		})
	}
}
