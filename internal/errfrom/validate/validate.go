// Package validate decides how each annotated variant of a union is
// converted, or why it cannot be.
package validate

import (
	"errors"
	"fmt"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/errfrom/errfrom/internal/codefmt"
	"github.com/errfrom/errfrom/internal/diag"
	"github.com/errfrom/errfrom/internal/errfrom/annotation"
	"github.com/errfrom/errfrom/internal/errfrom/parse"
)

// Spec describes one conversion to generate.
type Spec struct {
	Decl    *parse.Decl
	Variant *parse.Variant
	Mode    annotation.Mode

	// Source is the type of the converted value.
	Source types.Type

	// Field is the source field in context mode, or the only field in type
	// mode.
	Field *parse.Field

	// Context is the context message in context mode. An empty context
	// stores the bare description of the source.
	Context string
}

// Validator checks unions of a single package.
type Validator struct {
	pkg *packages.Package
}

func (v *Validator) Pkg() *packages.Package { return v.pkg }

// New creates a new [Validator].
func New(pkg *packages.Package) *Validator {
	return &Validator{pkg: pkg}
}

// Validate resolves the annotated variants of decl into specs in variant
// order. It stops at the first diagnostic and returns no specs in that case,
// because a union is generated completely or not at all.
func (v *Validator) Validate(decl *parse.Decl) ([]Spec, error) {
	if err := v.validateDirectives(decl); err != nil {
		return nil, err
	}

	var specs []Spec
	for _, variant := range decl.Variants {
		spec, ok, err := v.validateVariant(decl, variant)
		if err != nil {
			return nil, err
		}
		if ok {
			specs = append(specs, spec)
		}
	}
	return specs, nil
}

// validateDirectives checks the directives on the union declaration itself.
func (v *Validator) validateDirectives(decl *parse.Decl) error {
	seen := false
	for _, raw := range decl.Directives {
		level, ok := annotation.LevelOf(raw.Name)
		if !ok {
			return v.unknown(decl, raw)
		}

		switch level {
		case annotation.DeclLevel:
			if seen {
				return v.malformed(decl, raw, "duplicate %s on %s", raw, decl)
			}
			seen = true
			if !annotation.TakesArgs(raw.Name) && raw.Args != "" {
				return v.malformed(decl, raw, "%s takes no arguments, found %s", raw, raw.Args)
			}
		case annotation.VariantLevel:
			return v.malformed(decl, raw, "%s is not allowed on union %s; annotate its variants instead", raw, decl)
		case annotation.FieldLevel:
			return v.malformed(decl, raw, "%s is only allowed on struct fields", raw)
		}
	}
	return nil
}

// validateVariant returns false without error for a variant which is not
// annotated and whose fields carry no bad directives.
func (v *Validator) validateVariant(decl *parse.Decl, variant *parse.Variant) (Spec, bool, error) {
	var modal []annotation.Raw
	for _, raw := range variant.Annotations {
		level, ok := annotation.LevelOf(raw.Name)
		switch {
		case !ok:
			return Spec{}, false, v.unknown(decl, raw)
		case level == annotation.VariantLevel:
			modal = append(modal, raw)
		case level == annotation.FieldLevel:
			return Spec{}, false, v.malformed(decl, raw, "%s is only allowed on struct fields", raw)
		}
		// A union directive on a variant has already been rejected while
		// reading the declaration.
	}

	if len(modal) == 0 {
		// Nothing is generated, but the field directives must still be
		// known and in place.
		return Spec{}, false, v.validateFields(decl, variant)
	}
	if len(modal) > 1 {
		first, second := modal[0], modal[1]
		if first.Name == second.Name {
			return Spec{}, false, v.malformed(decl, second, "%s: duplicate %s", variant, second)
		}
		return Spec{}, false, v.malformed(decl, second, "%s: %s conflicts with %s", variant, second, first)
	}

	a, err := annotation.Parse(modal[0])
	if err != nil {
		return Spec{}, false, v.malformed(decl, modal[0], "%s: %s", variant, err.Error())
	}

	if variant.Struct == nil {
		return Spec{}, false, v.malformed(decl, variant, "%s: %s requires a struct type, found %t", variant, a.Raw, variant.Obj.Type().Underlying())
	}

	if err := v.validateFields(decl, variant); err != nil {
		return Spec{}, false, err
	}

	switch a.Mode {
	case annotation.ContextMode:
		return v.contextSpec(decl, variant, a)
	case annotation.TypeMode:
		return v.typeSpec(decl, variant, a)
	}
	panic("unreachable")
}

// validateFields checks the directives on the fields of a variant.
func (v *Validator) validateFields(decl *parse.Decl, variant *parse.Variant) error {
	for _, f := range variant.Fields {
		for _, raw := range f.Annotations {
			level, ok := annotation.LevelOf(raw.Name)
			switch {
			case !ok:
				return v.unknown(decl, raw)
			case level != annotation.FieldLevel:
				return v.malformed(decl, raw, "%s is not allowed on field %s.%s", raw, variant.Name, f.Name)
			case !annotation.TakesArgs(raw.Name) && raw.Args != "":
				return v.malformed(decl, raw, "%s takes no arguments, found %s", raw, raw.Args)
			}
		}
	}
	return nil
}

func (v *Validator) contextSpec(decl *parse.Decl, variant *parse.Variant, a annotation.Annotation) (Spec, bool, error) {
	var marked []*parse.Field
	for _, f := range variant.Fields {
		if !f.SourceMarked {
			continue
		}
		if f.Blank() {
			return Spec{}, false, v.malformed(decl, f, "%s: blank field cannot be the source", variant)
		}
		marked = append(marked, f)
	}

	switch len(marked) {
	case 0:
		return Spec{}, false, diag.Errorf(v, diag.MissingSourceField, decl.Name, variant,
			"%s: %s requires a source field marked with %s:%q", variant, a.Raw, annotation.TagKey, annotation.Source)
	case 1:
	default:
		names := make([]string, len(marked))
		for i, f := range marked {
			names[i] = f.Name
		}
		return Spec{}, false, diag.Errorf(v, diag.AmbiguousSourceField, decl.Name, marked[1],
			"%s: %s requires exactly one source field, found %d (%s)", variant, a.Raw, len(marked), strings.Join(names, ", "))
	}

	source := marked[0]
	str := types.Typ[types.String]
	for _, f := range variant.Fields {
		if f == source || f.Blank() {
			continue
		}
		if !types.AssignableTo(str, f.Type()) {
			return Spec{}, false, diag.Errorf(v, diag.WrongFieldType, decl.Name, f,
				"%s: %s stores the context message in %s, but its type is %t", variant, a.Raw, f.Name, f.Type())
		}
	}

	return Spec{
		Decl:    decl,
		Variant: variant,
		Mode:    annotation.ContextMode,
		Source:  source.Type(),
		Field:   source,
		Context: a.Context,
	}, true, nil
}

func (v *Validator) typeSpec(decl *parse.Decl, variant *parse.Variant, a annotation.Annotation) (Spec, bool, error) {
	for _, f := range variant.Fields {
		if f.SourceMarked {
			return Spec{}, false, v.malformed(decl, f, "%s: %s:%q is not allowed with %s", variant, annotation.TagKey, annotation.Source, a.Raw)
		}
	}

	source, err := v.resolveType(variant, a)
	if err != nil {
		return Spec{}, false, v.malformed(decl, a, "%s: %s", variant, err.Error())
	}

	if n := len(variant.Fields); n != 1 {
		return Spec{}, false, diag.Errorf(v, diag.WrongFieldType, decl.Name, variant,
			"%s: %s requires a single string field, found %d fields", variant, a.Raw, n)
	}

	f := variant.Fields[0]
	if f.Blank() {
		return Spec{}, false, diag.Errorf(v, diag.WrongFieldType, decl.Name, f,
			"%s: %s requires a single string field, found blank field", variant, a.Raw)
	}
	if !types.Identical(f.Type(), types.Typ[types.String]) {
		return Spec{}, false, diag.Errorf(v, diag.WrongFieldType, decl.Name, f,
			"%s: %s requires a single string field, found %s %t", variant, a.Raw, f.Name, f.Type())
	}

	return Spec{
		Decl:    decl,
		Variant: variant,
		Mode:    annotation.TypeMode,
		Source:  source,
		Field:   f,
	}, true, nil
}

// resolveType evaluates the parsed source type expression in the scope of
// the file declaring the variant, so the file's imports apply.
func (v *Validator) resolveType(variant *parse.Variant, a annotation.Annotation) (types.Type, error) {
	expr := types.ExprString(a.TypeExpr)
	tv, err := types.Eval(v.pkg.Fset, v.pkg.Types, variant.Pos(), expr)
	if err != nil {
		msg := err.Error()
		var terr types.Error
		if errors.As(err, &terr) {
			msg = terr.Msg
		}
		return nil, fmt.Errorf("cannot resolve %s: %s", expr, msg)
	}
	if !tv.IsType() {
		return nil, fmt.Errorf("%s is not a type", expr)
	}
	return tv.Type, nil
}

func (v *Validator) malformed(decl *parse.Decl, at codefmt.Poser, format string, args ...any) error {
	return diag.Errorf(v, diag.MalformedAnnotation, decl.Name, at, format, args...)
}

func (v *Validator) unknown(decl *parse.Decl, raw annotation.Raw) error {
	return v.malformed(decl, raw, "%s", annotation.Unknown(raw))
}
