// Package codefmt writes generated Go code and formats types and positions
// for diagnostics.
package codefmt

import (
	"fmt"
	"go/token"
	"go/types"
	"os"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

// Formatter formats types and positions relative to a package. The zero
// value qualifies every type and formats no positions.
type Formatter struct {
	PkgPath string
	Fset    *token.FileSet
}

func New(pkg *packages.Package) Formatter {
	if pkg == nil {
		return Formatter{}
	}
	return Formatter{pkg.PkgPath, pkg.Fset}
}

// qf qualifies types of other packages by their package name.
func (f Formatter) qf(pkg *types.Package) string {
	if pkg.Path() == f.PkgPath {
		return ""
	}
	return pkg.Name()
}

// Type returns the type as it is written in the package.
//
// e.g., f.Type([types.Type for *fs.PathError]) => "*fs.PathError"
func (f Formatter) Type(typ types.Type) string {
	return types.TypeString(typ, f.qf)
}

// Position resolves pos in the file set. It is invalid if the formatter has no
// file set.
func (f Formatter) Position(pos token.Pos) token.Position {
	if f.Fset == nil || !pos.IsValid() {
		return token.Position{}
	}
	return f.Fset.Position(pos)
}

// FormatType is a shorthand for [Formatter.Type].
func FormatType(pkger Pkger, typ types.Type) string {
	if pkger == nil {
		return New(nil).Type(typ)
	}
	return New(pkger.Pkg()).Type(typ)
}

// wd is the cached working directory.
var wd, _ = os.Getwd()

// FormatPosition formats pos as file:line:column with the file relative to
// the working directory.
func FormatPosition(pos token.Position) string {
	if !pos.IsValid() {
		return "-:-"
	}

	filename := pos.Filename
	if rel, err := filepath.Rel(wd, filename); err == nil {
		filename = rel
	}

	return fmt.Sprintf("%s:%d:%d", filename, pos.Line, pos.Column)
}

type poser struct{ pos token.Pos }

func (p poser) Pos() token.Pos { return p.pos }

// Pos wraps a bare position as a [Poser].
func Pos(pos token.Pos) Poser { return poser{pos} }
