// Package golangcilinterrfrom registers the errfrom analyzer as a
// golangci-lint module plugin. Build a custom golangci-lint binary with it by
// running the following command at this package's directory:
//
//	golangci-lint custom
//
// The resulting binary reports union and directive problems without
// generating any code.
package golangcilinterrfrom

import (
	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"

	"github.com/errfrom/errfrom/pkg/errfromanalysis"
)

func init() {
	register.Plugin("errfrom", New)
}

func New(settings any) (register.LinterPlugin, error) {
	return ErrfromLinter{}, nil
}

type ErrfromLinter struct{}

func (ErrfromLinter) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	return []*analysis.Analyzer{errfromanalysis.Analyzer}, nil
}

// GetLoadMode asks for type information because variants and source types
// are resolved with go/types.
func (ErrfromLinter) GetLoadMode() string {
	return register.LoadModeTypesInfo
}
