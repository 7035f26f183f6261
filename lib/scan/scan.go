// Package scan finds slottable component declarations in Go source and
// checks them without compiling the package.
//
// A declaration is a call to hxslot.New, optionally followed by chained
// WithDefault and WithProps calls:
//
//	var Card = hxslot.New("card", "header", "footer").
//	    WithDefault("header", hxslot.Tag("header"))
package scan

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pthm/hxslot"
)

// ImportPath is the package whose New calls are reported.
const ImportPath = "github.com/pthm/hxslot"

// Declaration is one hxslot.New call site.
type Declaration struct {
	File      string            `yaml:"file"`
	Line      int               `yaml:"line"`
	Component string            `yaml:"component"`
	Slots     []string          `yaml:"slots"`
	Defaults  map[string]string `yaml:"defaults,omitempty"`
	Props     []string          `yaml:"props,omitempty"`
	Problems  []string          `yaml:"problems,omitempty"`
}

// Scanner parses packages and collects declarations.
type Scanner struct {
	fset *token.FileSet
}

// New creates a new scanner.
func New() *Scanner {
	return &Scanner{fset: token.NewFileSet()}
}

// Scan returns the declarations in the given package patterns, sorted by
// file and line. A pattern is a directory or a directory followed by
// "/..." for the whole tree below it.
func (s *Scanner) Scan(patterns ...string) ([]Declaration, error) {
	dirs, err := findPackages(patterns)
	if err != nil {
		return nil, err
	}

	var decls []Declaration
	for _, dir := range dirs {
		found, err := s.scanDir(dir)
		if err != nil {
			return nil, fmt.Errorf("package %s: %w", dir, err)
		}
		decls = append(decls, found...)
	}

	sort.SliceStable(decls, func(i, j int) bool {
		if decls[i].File != decls[j].File {
			return decls[i].File < decls[j].File
		}
		return decls[i].Line < decls[j].Line
	})
	return decls, nil
}

// ScanSource scans a single file's source.
func (s *Scanner) ScanSource(filename string, src any) ([]Declaration, error) {
	file, err := parser.ParseFile(s.fset, filename, src, 0)
	if err != nil {
		return nil, err
	}
	return s.scanFile(file), nil
}

// findPackages resolves package patterns to directory paths.
func findPackages(patterns []string) ([]string, error) {
	var dirs []string

	for _, pattern := range patterns {
		if !strings.HasSuffix(pattern, "/...") {
			dirs = append(dirs, pattern)
			continue
		}

		root := strings.TrimSuffix(pattern, "/...")
		if root == "" {
			root = "."
		}
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			base := filepath.Base(path)
			if path != root && (strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") || base == "vendor" || base == "testdata") {
				return filepath.SkipDir
			}
			if hasGoFiles(path) {
				dirs = append(dirs, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return dirs, nil
}

func hasGoFiles(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if !entry.IsDir() && isSource(entry.Name()) {
			return true
		}
	}
	return false
}

func isSource(name string) bool {
	return strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go")
}

func (s *Scanner) scanDir(dir string) ([]Declaration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var decls []Declaration
	for _, entry := range entries {
		if entry.IsDir() || !isSource(entry.Name()) {
			continue
		}
		found, err := s.ScanSource(filepath.Join(dir, entry.Name()), nil)
		if err != nil {
			return nil, err
		}
		decls = append(decls, found...)
	}
	return decls, nil
}

func (s *Scanner) scanFile(file *ast.File) []Declaration {
	local := importName(file)
	if local == "" {
		return nil
	}

	var decls []Declaration
	seen := make(map[*ast.CallExpr]bool)

	// Chains are visited outermost call first, so the first visit of a
	// New call carries every chained WithDefault and WithProps.
	ast.Inspect(file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}

		var chained []*ast.CallExpr
		cur := call
		for {
			sel, ok := cur.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			if isPackageCall(sel, local, "New") {
				break
			}
			inner, ok := sel.X.(*ast.CallExpr)
			if !ok {
				return true
			}
			chained = append(chained, cur)
			cur = inner
		}
		if seen[cur] {
			return true
		}
		seen[cur] = true
		decls = append(decls, s.declaration(cur, chained))
		return true
	})

	return decls
}

// importName returns the name the file uses for the hxslot package, or ""
// if it is not imported.
func importName(file *ast.File) string {
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || path != ImportPath {
			continue
		}
		if imp.Name != nil {
			if imp.Name.Name == "_" || imp.Name.Name == "." {
				return ""
			}
			return imp.Name.Name
		}
		return "hxslot"
	}
	return ""
}

func isPackageCall(sel *ast.SelectorExpr, pkg, name string) bool {
	ident, ok := sel.X.(*ast.Ident)
	return ok && ident.Name == pkg && sel.Sel.Name == name
}

func (s *Scanner) declaration(newCall *ast.CallExpr, chained []*ast.CallExpr) Declaration {
	pos := s.fset.Position(newCall.Pos())
	d := Declaration{File: pos.Filename, Line: pos.Line}

	if len(newCall.Args) == 0 {
		d.Problems = append(d.Problems, "missing component name")
		return d
	}
	if name, ok := stringLit(newCall.Args[0]); ok {
		d.Component = name
	} else {
		d.Component = types.ExprString(newCall.Args[0])
	}

	args := newCall.Args[1:]
	if newCall.Ellipsis.IsValid() && len(args) > 0 {
		d.Problems = append(d.Problems, "slots passed as a slice cannot be checked")
		args = args[:len(args)-1]
	}

	declared := make(map[string]bool)
	for _, arg := range args {
		name, ok := stringLit(arg)
		if !ok {
			d.Problems = append(d.Problems, fmt.Sprintf("slot %s is not a string literal", types.ExprString(arg)))
			continue
		}
		if declared[name] {
			d.Problems = append(d.Problems, fmt.Sprintf("slot %q declared twice", name))
			continue
		}
		if !hxslot.ValidSlotName(name) {
			d.Problems = append(d.Problems, fmt.Sprintf("slot %q is not a plain identifier", name))
		}
		declared[name] = true
		d.Slots = append(d.Slots, name)
	}
	// chained runs outermost first; report in source order.
	for i := len(chained) - 1; i >= 0; i-- {
		call := chained[i]
		method := call.Fun.(*ast.SelectorExpr).Sel.Name
		if (method != "WithDefault" && method != "WithProps") || len(call.Args) != 2 {
			continue
		}
		slot, ok := stringLit(call.Args[0])
		if !ok {
			continue
		}
		if !declared[slot] {
			d.Problems = append(d.Problems, fmt.Sprintf("%s for undeclared slot %q", method, slot))
		}
		if method == "WithDefault" {
			if d.Defaults == nil {
				d.Defaults = make(map[string]string)
			}
			d.Defaults[slot] = types.ExprString(call.Args[1])
		} else {
			d.Props = append(d.Props, slot)
		}
	}

	return d
}

func stringLit(expr ast.Expr) (string, bool) {
	lit, ok := expr.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	s, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return s, true
}
