package errfrominternal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"

	"github.com/errfrom/errfrom"
	"github.com/errfrom/errfrom/internal/diag"
)

var Version string

// Options configures [Main].
type Options struct {
	// Dir is the working directory. Output paths are relative to it.
	Dir string

	// Env is the environment of the go command. Nil means the current
	// environment.
	Env []string

	// Tags are extra comma-separated build tags.
	Tags string

	// Tests includes test files.
	Tests bool

	// Output is the name of the generated file in each package. An empty
	// name means [errfrom.GeneratedFile].
	Output string

	// Jobs limits the number of packages built at once. Zero or less means
	// GOMAXPROCS.
	Jobs int

	// Logger receives progress logs. Nil discards them.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

func (o Options) output() string {
	if o.Output == "" {
		return errfrom.GeneratedFile
	}
	return o.Output
}

func (o Options) jobs() int {
	if o.Jobs <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Jobs
}

// Main is the main entry point for errfrom. It is used by the command-line tool
// directly.
//
// ctx bounds loading and building packages. patterns are the package patterns
// to process.
//
// It returns a map of output file paths to their contents. A nil content
// means the package has nothing to generate, so a file generated for it
// before is obsolete. [Apply] writes the outputs. Unions that fail do not
// prevent the others from being generated, so the outputs may be non-empty
// even if the error is not nil. The error joins a
// [diag.Diagnostic] for every failure in the source code and plain errors
// for everything else.
func Main(ctx context.Context, opts Options, patterns []string) (map[string][]byte, error) {
	log := opts.logger()

	pkgs, err := load(ctx, opts, patterns)
	if err != nil {
		return nil, err
	}

	// Building only reads the packages, so it runs in parallel.
	efs := make([]*Errfrom, len(pkgs))
	errs := make([]error, len(pkgs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs())
	for i, pkg := range pkgs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			ef, err := New(pkg, log)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", pkg.PkgPath, err)
				return nil
			}
			efs[i] = ef
			errs[i] = ef.Build()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Generating renames shared packages while writing, so it runs in
	// order.
	outs := make(map[string][]byte)
	for i, pkg := range pkgs {
		ef := efs[i]
		if ef == nil {
			continue
		}

		out := outputPath(opts, pkg)
		code := ef.Generate()
		if code == nil {
			// A file generated before must not outlive its unions.
			log.Debug("nothing to generate", "pkg", pkg.PkgPath)
			outs[out] = nil
			continue
		}

		outs[out] = code
		log.Debug("generated", "pkg", pkg.PkgPath, "file", out, "conversions", len(ef.Specs()))
	}

	return outs, diag.Reorder(errors.Join(errs...))
}

// Apply writes the outputs of [Main] relative to dir in path order. A nil
// output removes the file at its path if errfrom generated it. Other files
// are never removed. It returns the paths written and removed.
func Apply(dir string, outs map[string][]byte) (written, removed []string, err error) {
	for _, out := range slices.Sorted(maps.Keys(outs)) {
		path := out
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}

		code := outs[out]
		if code != nil {
			if err := os.WriteFile(path, code, 0o644); err != nil {
				return written, removed, err
			}
			written = append(written, out)
			continue
		}

		ok, err := isGeneratedFile(path)
		if err != nil {
			return written, removed, err
		}
		if !ok {
			continue
		}
		if err := os.Remove(path); err != nil {
			return written, removed, err
		}
		removed = append(removed, out)
	}
	return written, removed, nil
}

// isGeneratedFile reports whether the file at path exists and starts with
// the header of a generated file.
func isGeneratedFile(path string) (bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return IsGenerated(head[:n]), nil
}

// IsGenerated reports whether the generated code comment of errfrom is among
// the first lines of code, where [Errfrom.Generate] puts it.
func IsGenerated(code []byte) bool {
	lines := bytes.SplitN(code, []byte("\n"), 4)
	for _, line := range lines[:min(3, len(lines))] {
		line = bytes.TrimSpace(line)
		if bytes.HasPrefix(line, []byte(generatedBy)) && bytes.HasSuffix(line, []byte("DO NOT EDIT.")) {
			return true
		}
	}
	return false
}

// outputPath returns where the generated file of pkg is written, relative to
// the working directory if possible. External test packages get a _test.go
// file.
func outputPath(opts Options, pkg *packages.Package) string {
	dir := filepath.Dir(pkg.GoFiles[0])
	if rel, err := filepath.Rel(opts.Dir, dir); err == nil {
		dir = rel
	}

	name := opts.output()
	if strings.HasSuffix(pkg.Name, "_test") {
		name = strings.TrimSuffix(name, ".go") + "_test.go"
	}
	return filepath.Join(dir, name)
}

// load loads packages. Type errors are expected because code may call
// conversions which are not generated yet. Other errors abort.
func load(ctx context.Context, opts Options, patterns []string) ([]*packages.Package, error) {
	log := opts.logger()

	cfg := &packages.Config{
		Mode:       packages.NeedDeps | packages.NeedFiles | packages.NeedImports | packages.NeedName | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Context:    ctx,
		Dir:        opts.Dir,
		Env:        opts.Env,
		BuildFlags: []string{"-tags=" + errfrom.BuildTag},
		Tests:      opts.Tests,
	}
	if opts.Tags != "" {
		cfg.BuildFlags[0] += "," + opts.Tags
	}

	// Load the packages based on the provided patterns.
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found: %v", patterns)
	}
	log.Debug("loaded packages", "count", len(pkgs))

	// Check for errors in the loaded packages.
	var errs error
	for _, pkg := range pkgs {
		for _, err := range pkg.Errors {
			if err.Pos != "" {
				path, rowcol, _ := strings.Cut(err.Pos, ":")
				if rel, relErr := filepath.Rel(opts.Dir, path); relErr == nil {
					err.Pos = rel + ":" + rowcol
				}
			}

			if err.Kind == packages.TypeError {
				log.Debug("tolerated type error", "pkg", pkg.PkgPath, "err", err)
				continue
			}

			if err.Pos == "" {
				errs = errors.Join(errs, errors.New(err.Msg))
				continue
			}
			errs = errors.Join(errs, err)
		}
	}
	if errs != nil {
		return nil, diag.Reorder(errs)
	}

	return selectPackages(pkgs), nil
}

// selectPackages drops packages which would generate the same file twice.
// When tests are loaded, the test variant of a package replaces the package
// because it declares a superset. Test binaries have nothing to generate.
func selectPackages(pkgs []*packages.Package) []*packages.Package {
	tested := make(map[string]bool)
	for _, pkg := range pkgs {
		if isTestVariant(pkg) {
			tested[pkg.PkgPath] = true
		}
	}

	var selected []*packages.Package
	for _, pkg := range pkgs {
		switch {
		case len(pkg.GoFiles) == 0:
		case strings.HasSuffix(pkg.ID, ".test"):
		case !isTestVariant(pkg) && tested[pkg.PkgPath]:
		default:
			selected = append(selected, pkg)
		}
	}
	return selected
}

// isTestVariant reports whether pkg is a package recompiled with its test
// files, such as "p [p.test]".
func isTestVariant(pkg *packages.Package) bool {
	return strings.Contains(pkg.ID, " [") && !strings.HasSuffix(pkg.Name, "_test")
}
