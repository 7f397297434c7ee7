// Package errfromtest type-checks source code into a [packages.Package] for
// tests which do not need the go command.
package errfromtest

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"sort"
	"testing"

	"golang.org/x/tools/go/packages"
)

// PkgPath is the import path of loaded packages.
const PkgPath = "example.com/p"

// Load parses and type-checks files as package p. Files are keyed by their
// names. Type errors fail the test unless allowTypeErrors is set, in which
// case they are recorded in the package like go/packages does.
func Load(t testing.TB, files map[string]string, allowTypeErrors bool) *packages.Package {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	fset := token.NewFileSet()
	var syntax []*ast.File
	for _, name := range names {
		file, err := parser.ParseFile(fset, name, files[name], parser.ParseComments|parser.AllErrors)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		syntax = append(syntax, file)
	}

	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Implicits:  make(map[ast.Node]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Scopes:     make(map[ast.Node]*types.Scope),
	}

	var typeErrs []packages.Error
	conf := &types.Config{
		Importer: importer.ForCompiler(fset, "source", nil),
		Error: func(err error) {
			terr := err.(types.Error)
			typeErrs = append(typeErrs, packages.Error{
				Pos:  terr.Fset.Position(terr.Pos).String(),
				Msg:  terr.Msg,
				Kind: packages.TypeError,
			})
		},
	}
	pkg, _ := conf.Check(PkgPath, fset, syntax, info)
	if len(typeErrs) != 0 && !allowTypeErrors {
		t.Fatalf("type check: %s", typeErrs[0])
	}

	return &packages.Package{
		ID:        PkgPath,
		Name:      pkg.Name(),
		PkgPath:   PkgPath,
		Fset:      fset,
		Syntax:    syntax,
		Types:     pkg,
		TypesInfo: info,
		Errors:    typeErrs,
	}
}

// LoadSource is [Load] for a single file named p.go.
func LoadSource(t testing.TB, src string) *packages.Package {
	t.Helper()
	return Load(t, map[string]string{"p.go": src}, false)
}
