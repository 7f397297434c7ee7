// Package errfromanalysis reports errfrom diagnostics through the go/analysis
// framework, so editors and linters show them without running the generator.
package errfromanalysis

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"

	"github.com/errfrom/errfrom/internal/diag"
	errfrominternal "github.com/errfrom/errfrom/internal/errfrom"
)

// Analyzer validates errfrom directives in the package.
var Analyzer = &analysis.Analyzer{
	Name: "errfrom",
	Doc:  "check errfrom union and conversion directives",
	URL:  "https://pkg.go.dev/github.com/errfrom/errfrom",
	Run:  run,

	// Code may call conversions which are not generated yet.
	RunDespiteErrors: true,
}

func run(pass *analysis.Pass) (any, error) {
	pkg := &packages.Package{
		Name:      pass.Pkg.Name(),
		PkgPath:   pass.Pkg.Path(),
		Types:     pass.Pkg,
		Fset:      pass.Fset,
		Syntax:    pass.Files,
		TypesInfo: pass.TypesInfo,
	}

	ef, err := errfrominternal.New(pkg, nil)
	if err != nil {
		return nil, err
	}

	diags, others := diag.Collect(ef.Build())
	for _, d := range diags {
		pass.Report(analysis.Diagnostic{
			Pos:      d.Pos(),
			End:      d.End(),
			Category: d.Kind.String(),
			Message:  d.Message(),
		})
	}
	if len(others) != 0 {
		return nil, others[0]
	}
	return nil, nil
}
