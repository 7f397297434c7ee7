package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, configFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
output = "zz_errfrom.go"
tags = "integration"
tests = true
color = "never"
format = "json"
jobs = 4
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config{
		Output: "zz_errfrom.go",
		Tags:   "integration",
		Tests:  true,
		Color:  "never",
		Format: "json",
		Jobs:   4,
	}, cfg)
	assert.NoError(t, cfg.validate())
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `tags = "e2e"`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	want := defaultConfig()
	want.Tags = "e2e"
	assert.Equal(t, want, cfg)
}

func TestLoadConfigUnknownKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "outptu = \"x.go\"\ncolour = \"never\"\n")

	_, err := loadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys: outptu, colour")
}

func TestLoadConfigSyntaxError(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "output = ")

	_, err := loadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")
}

func TestResolveConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeConfig(t, root, `jobs = 2`)
	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	cfg, path, err := resolveConfig(sub, "")
	require.NoError(t, err)
	assert.Equal(t, want, path)
	assert.Equal(t, 2, cfg.Jobs)
}

func TestResolveConfigExplicit(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `jobs = 2`)
	explicit := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(explicit, []byte(`jobs = 3`), 0o644))

	cfg, path, err := resolveConfig(root, explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, path)
	assert.Equal(t, 3, cfg.Jobs)
}

func TestConfigValidate(t *testing.T) {
	cfg := defaultConfig()
	cfg.Output = "dir/gen.go"
	cfg.Color = "rainbow"
	cfg.Format = "xml"
	cfg.Jobs = -1

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `output must be a .go file name, got "dir/gen.go"`)
	assert.Contains(t, err.Error(), `color must be auto, always, or never, got "rainbow"`)
	assert.Contains(t, err.Error(), `unknown format "xml"`)
	assert.Contains(t, err.Error(), "jobs must not be negative, got -1")
}

func TestFlagsOverrideConfig(t *testing.T) {
	var f flags
	cmd := &cobra.Command{Use: "errfrom"}
	f.register(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"-o", "gen.go", "--color=always", "-t"}))

	cfg := defaultConfig()
	cfg.Tags = "from-config"
	f.apply(cmd, &cfg)

	assert.Equal(t, "gen.go", cfg.Output)
	assert.Equal(t, "always", cfg.Color)
	assert.True(t, cfg.Tests)
	assert.Equal(t, "from-config", cfg.Tags, "unset flags keep the config")
}

func TestUseColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.True(t, useColor("always", false))
	assert.False(t, useColor("never", true))
	assert.True(t, useColor("auto", true))
	assert.False(t, useColor("auto", false))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, useColor("auto", true))
}

func TestIsattyNotFile(t *testing.T) {
	assert.False(t, isatty(&bytes.Buffer{}))
}
