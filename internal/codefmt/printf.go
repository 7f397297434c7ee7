package codefmt

import (
	"fmt"
	"go/token"
	"go/types"
	"io"

	"golang.org/x/tools/go/packages"
)

type (
	Pkger interface{ Pkg() *packages.Package }
	Poser interface{ Pos() token.Pos }
	Ender interface{ End() token.Pos }
	Typer interface{ Type() types.Type }
)

func (f Formatter) wrapPrintfArgs(args []any) []any {
	wrapped := make([]any, len(args))
	for i, arg := range args {
		switch arg.(type) {
		case types.Type, Typer:
			wrapped[i] = formatArg{arg, f}
		default:
			wrapped[i] = arg
		}
	}
	return wrapped
}

type formatArg struct {
	x   any
	fmt Formatter
}

func (f formatArg) Type() types.Type {
	switch x := f.x.(type) {
	case types.Type:
		return x
	case Typer:
		return x.Type()
	}
	return nil
}

// Format implements fmt.Formatter. The %t verb writes the type as it is
// written in the package of the formatter:
//
//	%t: *fs.PathError rather than *io/fs.PathError
//
// Other verbs format the argument as usual, so %s still calls its String
// method.
func (f formatArg) Format(s fmt.State, verb rune) {
	if verb != 't' {
		fmt.Fprintf(s, fmt.FormatString(s, verb), f.x)
		return
	}

	typ := f.Type()
	if typ == nil {
		fmt.Fprintf(s, "[%%t cannot format %T]", f.x)
		return
	}
	_, _ = io.WriteString(s, f.fmt.Type(typ))
}

func (f Formatter) Sprintf(format string, args ...any) string {
	return fmt.Sprintf(format, f.wrapPrintfArgs(args)...)
}

func (f Formatter) Fprintf(w io.Writer, format string, args ...any) (int, error) {
	return fmt.Fprintf(w, format, f.wrapPrintfArgs(args)...)
}
