package parse

import (
	"errors"
	"go/ast"
	"go/token"
	"go/types"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/errfrom/errfrom/internal/diag"
	"github.com/errfrom/errfrom/internal/errfrom/annotation"
)

// ParseDecls finds the unions declared in the package and discovers their
// variants.
//
// Declarations that are marked as unions but cannot be unions are reported as
// NotAUnion diagnostics. Directives on types which belong to no union are
// reported as MalformedAnnotation diagnostics. The returned declarations are
// still usable when the error is not nil.
func (p *Parser) ParseDecls() ([]*Decl, error) {
	specs := p.typeSpecs()

	var errs []error
	unions := linkedhashmap.New() // *types.TypeName -> *Decl
	rejected := false

	for _, ts := range specs {
		if _, ok := ts.find(annotation.Union); !ok {
			continue
		}

		decl, err := p.parseDecl(ts)
		if err != nil {
			errs = append(errs, err)
			rejected = true
			continue
		}
		unions.Put(ts.obj, decl)
	}

	// A type may implement several unions. It is a variant of each of them.
	claimed := make(map[*types.TypeName]bool)
	it := unions.Iterator()
	for it.Next() {
		decl := it.Value().(*Decl)
		for _, ts := range specs {
			if ts.obj == decl.Obj {
				continue
			}
			if _, ok := unions.Get(ts.obj); ok {
				continue
			}

			v, ok := p.parseVariant(decl, ts)
			if !ok {
				continue
			}
			decl.Variants = append(decl.Variants, v)
			claimed[ts.obj] = true
		}
	}

	for _, ts := range specs {
		if _, ok := unions.Get(ts.obj); ok || claimed[ts.obj] {
			continue
		}
		if _, ok := ts.find(annotation.Union); ok {
			continue // already rejected
		}
		if err := p.checkStray(ts, rejected); err != nil {
			errs = append(errs, err)
		}
	}

	decls := make([]*Decl, 0, unions.Size())
	for _, v := range unions.Values() {
		decls = append(decls, v.(*Decl))
	}
	return decls, errors.Join(errs...)
}

// parseDecl checks that a declaration marked as a union is a sealed
// interface.
func (p *Parser) parseDecl(ts typeSpec) (*Decl, error) {
	name := ts.obj.Name()
	notAUnion := func(reason string) error {
		return diag.Errorf(p, diag.NotAUnion, name, ts, "cannot use %s as union: %s", name, reason)
	}

	if ts.obj.IsAlias() {
		return nil, notAUnion("it is an alias")
	}

	named, ok := ts.obj.Type().(*types.Named)
	if !ok {
		return nil, notAUnion("it is not a named type")
	}
	if named.TypeParams().Len() > 0 {
		return nil, notAUnion("it is generic")
	}

	iface, ok := named.Underlying().(*types.Interface)
	if !ok {
		return nil, notAUnion("it is " + kindOf(named.Underlying()) + ", not an interface")
	}
	if !iface.IsMethodSet() {
		return nil, notAUnion("it is a constraint interface")
	}
	if iface.NumMethods() == 0 {
		return nil, notAUnion("it has no methods")
	}

	return &Decl{
		Name:       name,
		Obj:        ts.obj,
		Union:      iface,
		Directives: ts.raws,
	}, nil
}

// kindOf describes the kind of a type for messages.
func kindOf(t types.Type) string {
	switch t := t.(type) {
	case *types.Struct:
		return "a struct type"
	case *types.Basic:
		return t.Name()
	case *types.Pointer:
		return "a pointer type"
	case *types.Slice:
		return "a slice type"
	case *types.Array:
		return "an array type"
	case *types.Map:
		return "a map type"
	case *types.Chan:
		return "a channel type"
	case *types.Signature:
		return "a function type"
	}
	return "not an interface"
}

// parseVariant reports whether the type declared by ts implements the union,
// either as a value or through its pointer.
func (p *Parser) parseVariant(decl *Decl, ts typeSpec) (*Variant, bool) {
	if ts.obj.IsAlias() {
		return nil, false
	}

	named, ok := ts.obj.Type().(*types.Named)
	if !ok || named.TypeParams().Len() > 0 {
		return nil, false
	}
	if types.IsInterface(named) {
		return nil, false
	}

	var pointer bool
	switch {
	case types.Implements(named, decl.Union):
	case types.Implements(types.NewPointer(named), decl.Union):
		pointer = true
	default:
		return nil, false
	}

	v := &Variant{
		Name:        ts.obj.Name(),
		Obj:         ts.obj,
		Pointer:     pointer,
		Annotations: ts.raws,
		decl:        decl,
	}
	if st, ok := named.Underlying().(*types.Struct); ok {
		v.Struct = st
		v.Fields = p.parseFields(st, ts.spec.Type)
	}
	return v, true
}

// parseFields reads the fields of a struct and their directives. The fields
// are taken from the type so that a variant declared as "type V S" still has
// fields. Comments are only available when the struct literal is part of the
// declaration.
func (p *Parser) parseFields(st *types.Struct, expr ast.Expr) []*Field {
	var astFields []*ast.Field // by field index
	if lit, ok := ast.Unparen(expr).(*ast.StructType); ok {
		for _, f := range lit.Fields.List {
			n := max(len(f.Names), 1) // embedded fields have no names
			for range n {
				astFields = append(astFields, f)
			}
		}
	}
	if len(astFields) != st.NumFields() {
		astFields = nil
	}

	fields := make([]*Field, st.NumFields())
	for i := range st.NumFields() {
		v := st.Field(i)
		f := &Field{Name: v.Name(), Var: v, Index: i}

		if astFields != nil {
			af := astFields[i]
			f.Annotations = append(f.Annotations, annotation.FromCommentGroup(af.Doc)...)
			f.Annotations = append(f.Annotations, annotation.FromCommentGroup(af.Comment)...)
			if af.Tag != nil {
				f.Annotations = append(f.Annotations, annotation.FromTag(st.Tag(i), af.Tag.Pos(), af.Tag.End())...)
			}
		} else {
			f.Annotations = annotation.FromTag(st.Tag(i), v.Pos(), token.NoPos)
		}

		for _, raw := range f.Annotations {
			if raw.Name == annotation.Source {
				f.SourceMarked = true
			}
		}
		fields[i] = f
	}
	return fields
}

// checkStray reports errfrom directives on a type which is neither a union
// nor a variant. Variant directives are not reported when some union was
// rejected, because the type may have been meant as its variant.
func (p *Parser) checkStray(ts typeSpec, rejected bool) error {
	name := ts.obj.Name()
	for _, raw := range ts.raws {
		level, ok := annotation.LevelOf(raw.Name)
		switch {
		case !ok:
			return diag.Errorf(p, diag.MalformedAnnotation, "", raw, "%s", annotation.Unknown(raw))
		case level == annotation.VariantLevel && !rejected:
			return diag.Errorf(p, diag.MalformedAnnotation, "", raw,
				"%s on %s, which implements no union in this package", raw, name)
		case level == annotation.FieldLevel:
			return diag.Errorf(p, diag.MalformedAnnotation, "", raw,
				"%s is only allowed on struct fields", raw)
		}
	}
	return nil
}
