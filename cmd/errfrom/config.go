package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/errfrom/errfrom"
	"github.com/errfrom/errfrom/internal/diag"
)

const configFile = "errfrom.toml"

// config is the content of errfrom.toml:
//
//	output = "errfrom_gen.go"
//	tags = "integration"
//	tests = false
//	color = "auto"   # auto|always|never
//	format = "text"  # text|json
//	jobs = 0
type config struct {
	Output string `toml:"output"`
	Tags   string `toml:"tags"`
	Tests  bool   `toml:"tests"`
	Color  string `toml:"color"`
	Format string `toml:"format"`
	Jobs   int    `toml:"jobs"`
}

func defaultConfig() config {
	return config{
		Output: errfrom.GeneratedFile,
		Color:  "auto",
		Format: string(diag.Text),
	}
}

func (c config) validate() error {
	var errs []error
	if c.Output == "" || filepath.Base(c.Output) != c.Output || !strings.HasSuffix(c.Output, ".go") {
		errs = append(errs, fmt.Errorf("output must be a .go file name, got %q", c.Output))
	}
	if !slices.Contains([]string{"auto", "always", "never"}, c.Color) {
		errs = append(errs, fmt.Errorf("color must be auto, always, or never, got %q", c.Color))
	}
	if _, err := diag.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("jobs must not be negative, got %d", c.Jobs))
	}
	return errors.Join(errs...)
}

// findConfig looks for errfrom.toml from startDir up to the root.
func findConfig(startDir string) (string, bool, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig reads a config file over the defaults. Unknown keys are errors
// because they are most likely typos.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// resolveConfig loads the explicit config file, or the nearest one from wd.
// Without any config file, the defaults are used. It returns the path of the
// loaded file, if any.
func resolveConfig(wd, explicit string) (config, string, error) {
	path := explicit
	if path == "" {
		found, ok, err := findConfig(wd)
		if err != nil {
			return config{}, "", err
		}
		if !ok {
			return defaultConfig(), "", nil
		}
		path = found
	}

	cfg, err := loadConfig(path)
	if err != nil {
		return config{}, "", err
	}
	return cfg, path, nil
}
