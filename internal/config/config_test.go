package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/mpyw/panicreach/internal/detect"
)

func write(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := write(t, t.TempDir(), `
sinks = ["panic", " os.Exit "]
all_entries = true
tests = true
patterns = ["./cmd/..."]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.AllEntries || !cfg.Tests {
		t.Errorf("flags not decoded: %+v", cfg)
	}
	if !slices.Equal(cfg.Patterns, []string{"./cmd/..."}) {
		t.Errorf("Patterns = %v", cfg.Patterns)
	}
	if got := cfg.SinkNames(); !slices.Equal(got, []string{"panic", "os.Exit"}) {
		t.Errorf("SinkNames = %v", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(write(t, t.TempDir(), ""))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(cfg.Patterns, []string{"./..."}) {
		t.Errorf("Patterns = %v, want ./...", cfg.Patterns)
	}
	if got := cfg.SinkNames(); !slices.Equal(got, detect.DefaultSinks) {
		t.Errorf("SinkNames = %v, want defaults", got)
	}
}

func TestLoadUnknownKey(t *testing.T) {
	_, err := Load(write(t, t.TempDir(), `sink = ["panic"]`))
	if !errors.Is(err, ErrUnknownKey) {
		t.Errorf("err = %v, want ErrUnknownKey", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	if _, err := Load(write(t, t.TempDir(), `sinks = [`)); err == nil {
		t.Error("malformed TOML should fail")
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	want := write(t, root, `all_entries = true`)

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, path, err := Discover(nested)
	if err != nil {
		t.Fatal(err)
	}
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if !cfg.AllEntries {
		t.Error("config from the parent directory was not applied")
	}
}

func TestDiscoverNone(t *testing.T) {
	// TempDir lives outside any project, so nothing is found on the way up
	// unless the machine has a stray config at its root.
	dir := t.TempDir()
	if _, ok, _ := Find(dir); ok {
		t.Skip("a configuration file exists above the temp directory")
	}

	cfg, _, err := Discover(dir)
	if !errors.Is(err, ErrNoConfig) {
		t.Errorf("err = %v, want ErrNoConfig", err)
	}
	if !slices.Equal(cfg.Patterns, Default().Patterns) {
		t.Errorf("Discover should fall back to defaults, got %+v", cfg)
	}
}
