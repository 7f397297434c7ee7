package codefmt

import (
	"go/types"
	"io"
	"maps"
	"slices"

	"golang.org/x/tools/go/packages"
)

// Writer writes generated conversion functions. Packages of the types in
// Printf arguments are recorded so that the caller can write the import
// declarations afterwards.
type Writer struct {
	w       io.Writer
	pkg     *packages.Package
	fmt     Formatter
	imports map[string]Import
	renamed map[*types.Package]string // original names of renamed packages
	ns      NS
}

// NewWriter creates a new [Writer]. It does not initialize the namespace. To
// specify a namespace, use [Writer.WithNS].
func NewWriter(w io.Writer, pkg *packages.Package) *Writer {
	return &Writer{
		w:       w,
		pkg:     pkg,
		fmt:     New(pkg),
		imports: make(map[string]Import),
		renamed: make(map[*types.Package]string),
		ns:      nil,
	}
}

// Printf writes a formatted string to the underlying writer using
// [Formatter.Fprintf].
func (w *Writer) Printf(format string, args ...any) (int, error) {
	w.importArgs(args...)
	return w.fmt.Fprintf(w.w, format, args...)
}

// Name returns a unique name in the namespace of the writer.
func (w *Writer) Name(name string) string {
	return w.ns.Name(name)
}

// WithNS copies the writer and sets a new namespace.
func (w *Writer) WithNS(ns NS) *Writer {
	return &Writer{
		w:       w.w,
		pkg:     w.pkg,
		fmt:     w.fmt,
		imports: w.imports,
		renamed: w.renamed,
		ns:      ns,
	}
}

type Import struct {
	// The package to import.
	*types.Package

	// HasAlias indicates that the import has an alias.
	HasAlias bool
}

// Imports returns the imports collected by [Writer.Printf] and
// [Writer.Import], keyed by their name in the generated file.
func (w *Writer) Imports() map[string]Import {
	return w.imports
}

// SortedImports returns the names of the collected imports in order.
func (w *Writer) SortedImports() []string {
	return slices.Sorted(maps.Keys(w.imports))
}

// importType records packages where the type and its components are defined
// to import later.
func (w *Writer) importType(typ types.Type) {
	switch typ := types.Unalias(typ).(type) {
	case *types.Pointer:
		w.importType(typ.Elem())
	case *types.Slice:
		w.importType(typ.Elem())
	case *types.Array:
		w.importType(typ.Elem())
	case *types.Chan:
		w.importType(typ.Elem())
	case *types.Map:
		w.importType(typ.Key())
		w.importType(typ.Elem())
	case *types.Named:
		w.importObj(typ.Obj())
		for targ := range typ.TypeArgs().Types() {
			w.importType(targ)
		}
	}
}

// importObj records a package where the object is defined to import later.
func (w *Writer) importObj(obj types.Object) {
	if obj == nil {
		return
	}

	pkg := obj.Pkg()
	if pkg == nil {
		// Skip built-in objects
		return
	}

	if w.pkg.PkgPath == pkg.Path() {
		// Do not import the same package
		return
	}

	for name := range DisambiguateName(pkg.Name()) {
		prev, ok := w.imports[name]
		if ok && prev.Package == pkg {
			// Already imported with the same name.
			return
		}
		if !ok && w.pkg.Types.Scope().Lookup(name) == nil {
			// There's no conflict. Import the package with its original name.
			w.imports[name] = Import{Package: pkg, HasAlias: name != pkg.Name()}
			w.rename(pkg, name)
			return
		}
	}
}

// Import adds an import for the package with the given path and name. It
// returns the name of the imported package. The name might be different if it
// has tried to resolve name conflicts.
//
//	// fmtName can be used to refer to the "fmt" package without any name conflict.
//	fmtName := w.Import("fmt", "fmt")
//	w.Printf("%s.Sprint(err)", fmtName)
func (w *Writer) Import(path, name string) string {
	var pkgName string
	for _, imp := range w.pkg.Types.Imports() {
		if imp.Path() == path {
			pkgName = imp.Name()
			break
		}
	}

	if name == "" {
		name = pkgName
	}
	if pkgName == "" {
		// Not imported by the package yet. Assume the declared name.
		pkgName = name
	}
	pkg := types.NewPackage(path, name)

	for name := range DisambiguateName(name) {
		prev, ok := w.imports[name]
		if ok && prev.Path() == path {
			// Already imported with the same name.
			return name
		}
		if !ok && w.pkg.Types.Scope().Lookup(name) == nil {
			w.imports[name] = Import{Package: pkg, HasAlias: name != pkgName}
			pkg.SetName(name)
			return name
		}
	}

	panic("unreachable")
}

// rename sets the name of an imported package so that types in the package are
// formatted with the import name. The original name is kept for [Writer.Restore].
func (w *Writer) rename(pkg *types.Package, name string) {
	if name == pkg.Name() {
		return
	}
	if _, ok := w.renamed[pkg]; !ok {
		w.renamed[pkg] = pkg.Name()
	}
	pkg.SetName(name)
}

// Restore gives the original names back to the packages renamed by the
// writer. Packages are shared between all loaded packages, so it must be
// called before writing code for another package.
func (w *Writer) Restore() {
	for pkg, name := range w.renamed {
		pkg.SetName(name)
	}
	clear(w.renamed)
}

func (w *Writer) importArgs(args ...any) {
	for _, arg := range args {
		switch arg := arg.(type) {
		case types.Type:
			w.importType(arg)
		case Typer:
			w.importType(arg.Type())
		}
	}
}
