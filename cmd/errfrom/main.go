// Command errfrom generates conversions into error unions.
//
// Usage:
//
//	errfrom [flags] [packages]
//	errfrom check [flags] [packages]
//
// The first form writes errfrom_gen.go into every package that declares a
// valid union. The second form only reports diagnostics. Both exit with
// status 1 if any diagnostic is reported.
//
// Flags override the settings of the nearest errfrom.toml file found from the
// working directory upwards.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/errfrom/errfrom/internal/diag"
	errfrominternal "github.com/errfrom/errfrom/internal/errfrom"
)

var Version = "dev"

func init() {
	errfrominternal.Version = Version
}

// errReported is returned after diagnostics have been written.
var errReported = errors.New("diagnostics reported")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "errfrom [flags] [packages]",
		Short:         "Generate conversions into error unions",
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args, false)
		},
	}
	f.register(cmd)

	check := &cobra.Command{
		Use:   "check [flags] [packages]",
		Short: "Report diagnostics without writing files",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args, true)
		},
	}
	cmd.AddCommand(check)

	return cmd
}

// flags are the command-line flags shared by all commands.
type flags struct {
	config  string
	tags    string
	tests   bool
	output  string
	color   string
	format  string
	jobs    int
	verbose bool
}

func (f *flags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "config file (default: nearest "+configFile+")")
	pf.StringVarP(&f.tags, "tags", "b", "", "comma-separated build tags")
	pf.BoolVarP(&f.tests, "tests", "t", false, "include tests")
	pf.StringVarP(&f.output, "output", "o", "", "output file name (default \""+defaultConfig().Output+"\")")
	pf.StringVarP(&f.color, "color", "c", "", "colorize (auto|always|never)")
	pf.StringVar(&f.format, "format", "", "diagnostic format (text|json)")
	pf.IntVarP(&f.jobs, "jobs", "j", 0, "packages to build at once (default GOMAXPROCS)")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "log progress to stderr")
}

// apply overrides cfg with the flags set on the command line.
func (f *flags) apply(cmd *cobra.Command, cfg *config) {
	changed := cmd.Flags().Changed
	if changed("tags") {
		cfg.Tags = f.tags
	}
	if changed("tests") {
		cfg.Tests = f.tests
	}
	if changed("output") {
		cfg.Output = f.output
	}
	if changed("color") {
		cfg.Color = f.color
	}
	if changed("format") {
		cfg.Format = f.format
	}
	if changed("jobs") {
		cfg.Jobs = f.jobs
	}
}

func run(cmd *cobra.Command, f flags, patterns []string, check bool) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	cfg, path, err := resolveConfig(wd, f.config)
	if err != nil {
		return err
	}
	f.apply(cmd, &cfg)
	if err := cfg.validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if path != "" {
		logger.Debug("loaded config", "path", path)
	}

	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	outs, mainErr := errfrominternal.Main(cmd.Context(), errfrominternal.Options{
		Dir:    wd,
		Env:    os.Environ(),
		Tags:   cfg.Tags,
		Tests:  cfg.Tests,
		Output: cfg.Output,
		Jobs:   cfg.Jobs,
		Logger: logger,
	}, patterns)

	if !check {
		// Unions which succeeded are written even if others failed.
		written, removed, err := errfrominternal.Apply(wd, outs)
		for _, out := range written {
			fmt.Fprintln(cmd.OutOrStdout(), "Generated:", out)
		}
		for _, out := range removed {
			fmt.Fprintln(cmd.OutOrStdout(), "Removed:", out)
		}
		if err != nil {
			return err
		}
	}

	if mainErr == nil {
		return nil
	}

	stderr := cmd.ErrOrStderr()
	r := diag.Reporter{
		W:      stderr,
		Format: diag.Format(cfg.Format),
		Color:  useColor(cfg.Color, isatty(stderr)),
	}
	if _, err := r.Report(mainErr); err != nil {
		return err
	}
	return errReported
}

// useColor decides whether to colorize output. It is called after the config
// has been validated.
func useColor(mode string, tty bool) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return tty && os.Getenv("NO_COLOR") == ""
}

// isatty reports whether w is a terminal. If it is true, we can use ANSI color
// codes.
func isatty(w any) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	_, err := unix.IoctlGetWinsize(int(file.Fd()), unix.TIOCGWINSZ)
	return err == nil
}
