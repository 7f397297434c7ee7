package parse

import (
	"go/token"
	"go/types"

	"github.com/errfrom/errfrom/internal/errfrom/annotation"
)

// Decl is a union declaration: a named interface marked with errfrom:union.
type Decl struct {
	Name  string
	Obj   *types.TypeName
	Union *types.Interface

	// Directives are all errfrom directives on the declaration, including
	// errfrom:union itself.
	Directives []annotation.Raw

	// Variants are ordered by their position in the source code.
	Variants []*Variant
}

func (d *Decl) Pos() token.Pos   { return d.Obj.Pos() }
func (d *Decl) Type() types.Type { return d.Obj.Type() }
func (d *Decl) String() string   { return d.Name }

// Variant is a named type implementing a union.
type Variant struct {
	Name string
	Obj  *types.TypeName

	// Pointer is true if only the pointer type implements the union. The
	// conversion then returns *T instead of T.
	Pointer bool

	// Struct is nil if the underlying type is not a struct.
	Struct *types.Struct
	Fields []*Field

	// Annotations are the errfrom directives on the variant declaration.
	Annotations []annotation.Raw

	decl *Decl
}

func (v *Variant) Pos() token.Pos { return v.Obj.Pos() }

// Type returns the type constructed by a conversion, either T or *T.
func (v *Variant) Type() types.Type {
	if v.Pointer {
		return types.NewPointer(v.Obj.Type())
	}
	return v.Obj.Type()
}

// String returns the qualified variant name for messages, for example
// "AppError.Wrapped".
func (v *Variant) String() string {
	if v.decl == nil {
		return v.Name
	}
	return v.decl.Name + "." + v.Name
}

// Decl returns the union the variant belongs to.
func (v *Variant) Decl() *Decl { return v.decl }

// Field is a struct field of a variant.
type Field struct {
	Name  string
	Var   *types.Var
	Index int

	// SourceMarked is true if the field is annotated with errfrom:source.
	SourceMarked bool

	// Annotations are the errfrom directives from the field's comments and
	// struct tag.
	Annotations []annotation.Raw
}

func (f *Field) Pos() token.Pos   { return f.Var.Pos() }
func (f *Field) Type() types.Type { return f.Var.Type() }

// Blank reports whether the field is named "_".
func (f *Field) Blank() bool { return f.Name == "_" }
