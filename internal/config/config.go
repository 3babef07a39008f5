// Package config loads the optional .panicreach.toml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mpyw/panicreach/internal/detect"
)

// FileName is the name of the project configuration file.
const FileName = ".panicreach.toml"

var (
	// ErrNoConfig indicates that no configuration file was found.
	ErrNoConfig = errors.New("no " + FileName + " found")
	// ErrUnknownKey indicates a key the configuration does not define.
	ErrUnknownKey = errors.New("unknown key")
)

// Config is the content of .panicreach.toml.
type Config struct {
	Sinks      []string `toml:"sinks"`
	AllEntries bool     `toml:"all_entries"`
	Tests      bool     `toml:"tests"`
	Patterns   []string `toml:"patterns"`
	NoColor    bool     `toml:"no_color"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{Patterns: []string{"./..."}}
}

// SinkNames returns the canonical sink names, or detect.DefaultSinks when
// none are configured.
func (c Config) SinkNames() []string {
	return detect.ParseSinks(strings.Join(c.Sinks, ","))
}

// Load parses the file at path on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: %w %q", path, ErrUnknownKey, undecoded[0].String())
	}
	if !meta.IsDefined("patterns") || len(cfg.Patterns) == 0 {
		cfg.Patterns = Default().Patterns
	}
	return cfg, nil
}

// Find walks up from startDir to locate the configuration file.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
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

// Discover finds and loads the configuration above startDir. When there is
// none it returns Default and an error wrapping ErrNoConfig.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", fmt.Errorf("%s: %w", startDir, ErrNoConfig)
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}
