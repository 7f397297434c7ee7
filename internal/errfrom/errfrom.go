package errfrominternal

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"io"
	"log/slog"

	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"

	"github.com/errfrom/errfrom"
	"github.com/errfrom/errfrom/internal/codefmt"
	"github.com/errfrom/errfrom/internal/errfrom/emit"
	"github.com/errfrom/errfrom/internal/errfrom/parse"
	"github.com/errfrom/errfrom/internal/errfrom/validate"
)

// generatedBy starts the generated code comment of every generated file.
const generatedBy = "// Code generated by github.com/errfrom/errfrom"

// Errfrom generates conversion code for the unions in the target package.
// Call [Errfrom.Build] and then [Errfrom.Generate] to get the generated code.
// Unlike a failing package, a failing union does not stop the others. Build
// reports the failures, and Generate writes the unions which succeeded.
type Errfrom struct {
	p   *parse.Parser
	v   *validate.Validator
	ns  codefmt.NS
	buf *bytes.Buffer
	w   *codefmt.Writer
	log *slog.Logger

	decls []*parse.Decl
	specs map[*parse.Decl][]validate.Spec
}

// New creates a new [Errfrom] for the given package. The package must have
// its Syntax, Types and TypesInfo. A nil logger discards logs.
func New(pkg *packages.Package, logger *slog.Logger) (*Errfrom, error) {
	p, err := parse.New(pkg)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var buf bytes.Buffer
	return &Errfrom{
		p:     p,
		v:     validate.New(pkg),
		ns:    codefmt.NewNS(pkg.Types.Scope()),
		buf:   &buf,
		w:     codefmt.NewWriter(&buf, pkg),
		log:   logger.With("pkg", pkg.PkgPath),
		specs: make(map[*parse.Decl][]validate.Spec),
	}, nil
}

// Build reads and validates all unions in the package. The returned error
// joins a diagnostic for every failed union and for every stray directive.
// Unions that did not fail are still generated by [Errfrom.Generate].
func (ef *Errfrom) Build() error {
	decls, errs := ef.p.ParseDecls()

	for _, decl := range decls {
		specs, err := ef.v.Validate(decl)
		if err != nil {
			ef.log.Debug("union failed", "union", decl.Name, "err", err)
			errs = errors.Join(errs, err)
			continue
		}

		ef.log.Debug("union built", "union", decl.Name, "variants", len(decl.Variants), "conversions", len(specs))
		ef.warnSharedSources(decl, specs)
		ef.decls = append(ef.decls, decl)
		ef.specs[decl] = specs
	}

	return errs
}

// warnSharedSources logs conversions of a union which get the same function
// name. That happens only for identical source types. Both are generated, so
// the compiler rejects them.
func (ef *Errfrom) warnSharedSources(decl *parse.Decl, specs []validate.Spec) {
	seen := make(map[string]*parse.Variant)
	for i, name := range emit.FuncNames(specs) {
		spec := specs[i]
		if prev, ok := seen[name]; ok {
			ef.log.Warn("conversions share a source type",
				"union", decl.Name,
				"source", codefmt.FormatType(ef.p, spec.Source),
				"variants", []string{prev.Name, spec.Variant.Name},
				"func", name,
			)
			continue
		}
		seen[name] = spec.Variant
	}
}

// Specs returns the conversions to generate in declaration order.
func (ef *Errfrom) Specs() []validate.Spec {
	var specs []validate.Spec
	for _, decl := range ef.decls {
		specs = append(specs, ef.specs[decl]...)
	}
	return specs
}

// Generate generates conversion code for the package. It must be called after
// [Errfrom.Build]. It returns nil if there is nothing to generate.
func (ef *Errfrom) Generate() []byte {
	specs := ef.Specs()
	if len(specs) == 0 {
		return nil
	}

	defer ef.w.Restore()
	emit.Emit(ef.w, ef.ns, specs)
	return ef.frameCode()
}

// frameCode prepends the header, the package clause, and the imports to the
// generated functions.
func (ef *Errfrom) frameCode() []byte {
	versionSuffix := ""
	if Version != "" {
		versionSuffix = "@" + Version
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "//go:build !%s\n\n", errfrom.BuildTag)
	fmt.Fprintf(&buf, "%s%s. DO NOT EDIT.\n\n", generatedBy, versionSuffix)
	fmt.Fprintf(&buf, "package %s\n\n", ef.p.Pkg().Name)
	_, _ = io.Copy(&buf, ef.buf)
	code := buf.Bytes()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", code, parser.ParseComments)
	if err != nil {
		// Leave broken code for the compiler to report.
		ef.log.Error("generated code does not parse", "err", err)
		return code
	}

	imports := ef.w.Imports()
	for _, name := range ef.w.SortedImports() {
		imp := imports[name]
		if imp.HasAlias {
			astutil.AddNamedImport(fset, file, name, imp.Path())
		} else {
			astutil.AddImport(fset, file, imp.Path())
		}
	}
	ast.SortImports(fset, file)

	var out bytes.Buffer
	if err := format.Node(&out, fset, file); err != nil {
		ef.log.Error("cannot format generated code", "err", err)
		return code
	}

	// Apply gofmt once more to normalize the spacing around the import
	// declaration added to the tree.
	if fmtCode, err := format.Source(out.Bytes()); err == nil {
		return fmtCode
	}
	return out.Bytes()
}
