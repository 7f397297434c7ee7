// Package diag defines the diagnostics reported at generation time and renders
// them for humans, tools, and the go/analysis framework.
package diag

import (
	"fmt"
	"go/token"

	"github.com/errfrom/errfrom/internal/codefmt"
)

// Kind classifies a [Diagnostic].
type Kind uint8

const (
	// NotAUnion means a declaration marked as a union is not a sealed
	// interface.
	NotAUnion Kind = iota + 1

	// MissingSourceField means a context-mode variant has no source field.
	MissingSourceField

	// AmbiguousSourceField means a context-mode variant has more than one
	// source field.
	AmbiguousSourceField

	// WrongFieldType means a field cannot hold what the conversion stores:
	// a type-mode variant without a single string field, or a context-mode
	// field other than the source which is not assignable from string.
	WrongFieldType

	// MalformedAnnotation means a directive is unknown, misplaced,
	// duplicated, or has bad arguments.
	MalformedAnnotation
)

var kindNames = [...]string{
	NotAUnion:            "NotAUnion",
	MissingSourceField:   "MissingSourceField",
	AmbiguousSourceField: "AmbiguousSourceField",
	WrongFieldType:       "WrongFieldType",
	MalformedAnnotation:  "MalformedAnnotation",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Diagnostic is a generation failure anchored to the declaration, variant,
// field, or directive that caused it.
type Diagnostic struct {
	Kind Kind

	// Decl is the name of the union whose generation the diagnostic aborts.
	// It is empty for diagnostics that belong to no union.
	Decl string

	msg  string
	pos  token.Pos
	end  token.Pos
	fset *token.FileSet
}

// Message returns the message without the position.
func (d *Diagnostic) Message() string { return d.msg }

// Pos returns the position where the failure occurred. It may be invalid.
func (d *Diagnostic) Pos() token.Pos { return d.pos }

// End returns the end position of the failure. It may be invalid.
func (d *Diagnostic) End() token.Pos { return d.end }

// Position resolves [Diagnostic.Pos].
func (d *Diagnostic) Position() token.Position {
	if d.fset == nil || !d.pos.IsValid() {
		return token.Position{}
	}
	return d.fset.Position(d.pos)
}

// Error implements the error interface. If pos is valid, the position is
// prepended to the message.
func (d *Diagnostic) Error() string {
	if !d.pos.IsValid() {
		return d.msg
	}
	return fmt.Sprintf("%s: %s", codefmt.FormatPosition(d.Position()), d.msg)
}

// Errorf formats a diagnostic of the given kind for the declaration named decl.
// The diagnostic indicates the position of poser if it is valid. Arguments are
// formatted by [codefmt.Formatter], so %t formats types.
func Errorf(pkger codefmt.Pkger, kind Kind, decl string, poser codefmt.Poser, format string, args ...any) *Diagnostic {
	// Diagnostics are leaves. Never hide another error in them.
	for _, arg := range args {
		if _, ok := arg.(error); ok {
			panic("Diagnostic cannot wrap error")
		}
	}

	var f codefmt.Formatter
	if pkger != nil && pkger.Pkg() != nil {
		f = codefmt.New(pkger.Pkg())
	}

	var pos, end token.Pos
	if poser != nil {
		pos = poser.Pos()
		if ender, ok := poser.(codefmt.Ender); ok {
			end = ender.End()
		}
	}

	return &Diagnostic{
		Kind: kind,
		Decl: decl,
		msg:  f.Sprintf(format, args...),
		pos:  pos,
		end:  end,
		fset: f.Fset,
	}
}
