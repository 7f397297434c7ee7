// Package parse reads union declarations, their variants, and the raw errfrom
// directives attached to them from a type-checked package.
package parse

import (
	"cmp"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"slices"

	"golang.org/x/tools/go/packages"

	"github.com/errfrom/errfrom/internal/errfrom/annotation"
)

// Parser reads the AST and types of the underlying package.
type Parser struct{ pkg *packages.Package }

func (p *Parser) Pkg() *packages.Package { return p.pkg }

// New creates a new [Parser].
func New(pkg *packages.Package) (*Parser, error) {
	if pkg.Name == "" {
		return nil, fmt.Errorf("need pkg name")
	}
	if pkg.PkgPath == "" {
		return nil, fmt.Errorf("need pkg path")
	}
	if pkg.Types == nil {
		return nil, fmt.Errorf("need pkg types")
	}
	if pkg.Fset == nil {
		return nil, fmt.Errorf("need pkg fset")
	}
	if pkg.Syntax == nil {
		return nil, fmt.Errorf("need pkg syntax")
	}
	if pkg.TypesInfo == nil {
		return nil, fmt.Errorf("need pkg types info")
	}
	return &Parser{pkg: pkg}, nil
}

// typeSpec is a package-level type declaration with its directives.
type typeSpec struct {
	spec *ast.TypeSpec
	obj  *types.TypeName
	raws []annotation.Raw
}

func (ts typeSpec) Pos() token.Pos { return ts.spec.Name.Pos() }
func (ts typeSpec) End() token.Pos { return ts.spec.Name.End() }

// find returns the first directive with the given name.
func (ts typeSpec) find(name string) (annotation.Raw, bool) {
	for _, raw := range ts.raws {
		if raw.Name == name {
			return raw, true
		}
	}
	return annotation.Raw{}, false
}

// typeSpecs collects package-level type declarations in source order.
func (p *Parser) typeSpecs() []typeSpec {
	var specs []typeSpec
	for _, file := range p.pkg.Syntax {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				spec := spec.(*ast.TypeSpec)

				obj, ok := p.pkg.TypesInfo.Defs[spec.Name].(*types.TypeName)
				if !ok {
					// Blank type names define nothing.
					continue
				}

				raws := annotation.FromCommentGroup(spec.Doc)
				if len(gen.Specs) == 1 {
					// The doc comment of "type X ..." is attached to the
					// declaration, not to the TypeSpec.
					raws = append(annotation.FromCommentGroup(gen.Doc), raws...)
				}

				specs = append(specs, typeSpec{spec, obj, raws})
			}
		}
	}

	slices.SortStableFunc(specs, func(a, b typeSpec) int {
		pa, pb := p.pkg.Fset.Position(a.Pos()), p.pkg.Fset.Position(b.Pos())
		if c := cmp.Compare(pa.Filename, pb.Filename); c != 0 {
			return c
		}
		return cmp.Compare(pa.Offset, pb.Offset)
	})
	return specs
}
