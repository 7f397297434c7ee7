// Package emit writes conversion functions for validated specs.
package emit

import (
	"go/types"
	"maps"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/tools/go/types/typeutil"

	"github.com/errfrom/errfrom/internal/codefmt"
	"github.com/errfrom/errfrom/internal/errfrom/annotation"
	"github.com/errfrom/errfrom/internal/errfrom/parse"
	"github.com/errfrom/errfrom/internal/errfrom/validate"
)

// Emit writes one conversion function per spec in the given order. Each
// function gets its own copy of ns for local names.
func Emit(w *codefmt.Writer, ns codefmt.NS, specs []validate.Spec) {
	names := FuncNames(specs)
	for i, spec := range specs {
		if i != 0 {
			w.Printf("\n")
		}
		WriteFunc(w.WithNS(maps.Clone(ns)), spec, names[i])
	}
}

// FuncNames returns the name of the conversion function for each spec, for
// example "AppErrorFromInnerError". Different source types which share a
// short name within a union are qualified by [QualifiedSourceName], and
// numbered if that is not enough. Identical source types get the same name.
func FuncNames(specs []validate.Spec) []string {
	type key struct {
		decl   *parse.Decl
		source string
	}
	shared := make(map[key][]types.Type) // distinct source types by short name
	for _, spec := range specs {
		k := key{spec.Decl, codefmt.UpperFirst(SourceName(spec.Source))}
		if !slices.ContainsFunc(shared[k], func(t types.Type) bool { return types.Identical(t, spec.Source) }) {
			shared[k] = append(shared[k], spec.Source)
		}
	}

	taken := make(map[string]bool)
	assigned := make(map[*parse.Decl]*typeutil.Map) // types.Type -> string
	names := make([]string, len(specs))
	for i, spec := range specs {
		byType := assigned[spec.Decl]
		if byType == nil {
			byType = new(typeutil.Map)
			assigned[spec.Decl] = byType
		}
		if name, ok := byType.At(spec.Source).(string); ok {
			names[i] = name
			continue
		}

		source := codefmt.UpperFirst(SourceName(spec.Source))
		if len(shared[key{spec.Decl, source}]) > 1 {
			source = QualifiedSourceName(spec.Decl.Obj.Pkg(), spec.Source)
		}

		for name := range codefmt.DisambiguateName(spec.Decl.Name + "From" + source) {
			if !taken[name] {
				taken[name] = true
				byType.Set(spec.Source, name)
				names[i] = name
				break
			}
		}
	}
	return names
}

// SourceName names a source type for use in a function name. Named types
// and pointers to them are called by their type name. Other types are
// normalized from their type string.
func SourceName(t types.Type) string {
	if ptr, ok := types.Unalias(t).(*types.Pointer); ok {
		t = ptr.Elem()
	}
	switch t := types.Unalias(t).(type) {
	case *types.Named:
		return t.Obj().Name()
	case *types.Basic:
		return t.Name()
	}

	return normalize(types.TypeString(t, func(pkg *types.Package) string {
		return pkg.Name()
	}))
}

// QualifiedSourceName names a source type with everything that tells it
// apart from a type of the same name: a Ptr prefix for a pointer, the package
// name unless it is local, and the type arguments.
//
// e.g., QualifiedSourceName(p, *q.Result[int]) => "PtrQResultInt"
func QualifiedSourceName(local *types.Package, t types.Type) string {
	prefix := ""
	if ptr, ok := types.Unalias(t).(*types.Pointer); ok {
		prefix = "Ptr"
		t = ptr.Elem()
	}

	name := normalize(types.TypeString(t, func(pkg *types.Package) string {
		if pkg == local {
			return ""
		}
		return pkg.Name()
	}))
	return prefix + codefmt.UpperFirst(name)
}

func normalize(s string) string {
	if name := codefmt.NormalizeName(s); name != "" {
		return name
	}
	return "Value"
}

// WriteFunc writes the conversion function for spec:
//
//	// AppErrorFromInnerError converts InnerError to AppError as Wrapped.
//	func AppErrorFromInnerError(err InnerError) AppError {
//		return Wrapped{
//			Msg: fmt.Sprintf("use case error: %v", err),
//			Err: err,
//		}
//	}
func WriteFunc(w *codefmt.Writer, spec validate.Spec, name string) {
	param := w.Name("err")
	decl := spec.Decl.Obj.Type()
	variant := spec.Variant.Obj.Type()

	w.Printf("// %s converts %t to %t as %s.\n", name, spec.Source, decl, spec.Variant.Name)
	w.Printf("func %s(%s %t) %t {\n", name, param, spec.Source, decl)

	amp := ""
	if spec.Variant.Pointer {
		amp = "&"
	}

	values := fieldValues(w, spec, param)
	if len(values) == 0 {
		w.Printf("return %s%t{}\n", amp, variant)
		w.Printf("}\n")
		return
	}

	w.Printf("return %s%t{\n", amp, variant)
	for _, v := range values {
		w.Printf("%s: %s,\n", v.field, v.expr)
	}
	w.Printf("}\n")
	w.Printf("}\n")
}

type fieldValue struct {
	field string
	expr  string
}

// fieldValues returns the value of each settable field in field order.
func fieldValues(w *codefmt.Writer, spec validate.Spec, param string) []fieldValue {
	switch spec.Mode {
	case annotation.TypeMode:
		return []fieldValue{{spec.Field.Name, describe(w, param, "")}}

	case annotation.ContextMode:
		var values []fieldValue
		for _, f := range spec.Variant.Fields {
			switch {
			case f.Blank():
				continue
			case f == spec.Field:
				values = append(values, fieldValue{f.Name, param})
			default:
				values = append(values, fieldValue{f.Name, describe(w, param, spec.Context)})
			}
		}
		return values
	}
	panic("unknown mode")
}

// describe returns an expression which describes param as a string, prefixed
// with the context if it is not empty.
func describe(w *codefmt.Writer, param, context string) string {
	fmtName := w.Import("fmt", "fmt")
	if context == "" {
		return fmtName + ".Sprint(" + param + ")"
	}
	format := strings.ReplaceAll(context, "%", "%%") + ": %v"
	return fmtName + ".Sprintf(" + strconv.Quote(format) + ", " + param + ")"
}
