package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mpyw/panicreach/internal"
	"github.com/mpyw/panicreach/internal/config"
	"github.com/mpyw/panicreach/internal/loader"
	internalssa "github.com/mpyw/panicreach/internal/ssa"
)

// ErrColorMode is returned for a --color value other than auto, on or off.
var ErrColorMode = errors.New("unsupported color mode")

// settings are the effective options of one command after merging the
// config file with the command line.
type settings struct {
	dir      string
	patterns []string
	cfg      config.Config
	color    string
	verbose  bool
}

func resolveSettings(cmd *cobra.Command, patterns []string) (settings, error) {
	pf := cmd.Root().PersistentFlags()

	var s settings
	var err error
	if s.dir, err = pf.GetString("dir"); err != nil {
		return settings{}, err
	}
	if s.color, err = pf.GetString("color"); err != nil {
		return settings{}, err
	}
	if s.verbose, err = pf.GetBool("verbose"); err != nil {
		return settings{}, err
	}
	configPath, err := pf.GetString("config")
	if err != nil {
		return settings{}, err
	}

	if s.cfg, err = loadConfig(configPath, s.dir); err != nil {
		return settings{}, err
	}
	if err := applyFlags(&s.cfg, pf); err != nil {
		return settings{}, err
	}

	s.patterns = patterns
	if len(s.patterns) == 0 {
		s.patterns = s.cfg.Patterns
	}
	return s, nil
}

// loadConfig reads path when given, otherwise searches upwards from dir.
// A missing file yields the defaults.
func loadConfig(path, dir string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, _, err := config.Discover(dir)
	if errors.Is(err, config.ErrNoConfig) {
		return cfg, nil
	}
	return cfg, err
}

// applyFlags overrides cfg with the flags set on the command line.
func applyFlags(cfg *config.Config, pf *pflag.FlagSet) error {
	if pf.Changed("sinks") {
		v, err := pf.GetString("sinks")
		if err != nil {
			return err
		}
		cfg.Sinks = strings.Split(v, ",")
	}
	if pf.Changed("all-entries") {
		v, err := pf.GetBool("all-entries")
		if err != nil {
			return err
		}
		cfg.AllEntries = v
	}
	if pf.Changed("tests") {
		v, err := pf.GetBool("tests")
		if err != nil {
			return err
		}
		cfg.Tests = v
	}
	return nil
}

func (s settings) progress() *loader.Progress {
	if !s.verbose {
		return loader.NewProgress(nil, false)
	}
	return loader.NewProgress(os.Stderr, true)
}

// useColor decides whether output written to out is colorized.
func (s settings) useColor(out io.Writer) (bool, error) {
	switch s.color {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		f, ok := out.(*os.File)
		return !s.cfg.NoColor && ok && isTerminal(f), nil
	}
	return false, fmt.Errorf("%w %q (must be auto, on or off)", ErrColorMode, s.color)
}

// analysis is a loaded program with the result of one standalone run.
type analysis struct {
	prog *loader.Program
	res  *internal.Result
}

func analyze(ctx context.Context, s settings, progress *loader.Progress) (*analysis, error) {
	prog, err := loader.Load(ctx, loader.Options{
		Dir:      s.dir,
		Tests:    s.cfg.Tests,
		Patterns: s.patterns,
	}, progress)
	if err != nil {
		return nil, err
	}

	progress.Log("Building call graph...")
	x := internalssa.NewIndexer()
	candidates := x.Candidates(prog.Funcs, prog.Silenced)
	res := internal.Run(x.Index(), candidates, internal.Options{
		Mode:       internal.Standalone,
		Sinks:      s.cfg.SinkNames(),
		AllEntries: s.cfg.AllEntries,
	})

	progress.Log("Graph: %d nodes, %d sinks, %d findings (status %s)",
		res.Graph.Len(), len(res.Policy.Sinks()), res.Spots.Len(), res.Status)
	if !res.Policy.HasSinks() {
		progress.Log("  none of %v is reachable", s.cfg.SinkNames())
	}

	return &analysis{prog: prog, res: res}, nil
}

