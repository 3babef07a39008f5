package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mpyw/panicreach/internal/callgraph"
	"github.com/mpyw/panicreach/internal/fnindex"
)

// ErrUnknownFunction is returned when a name is not a node of the graph.
var ErrUnknownFunction = errors.New("function not in call graph")

var pathLimit int

func init() {
	backtraceCmd.Flags().IntVar(&pathLimit, "limit", 100, "maximum number of paths to print (0 for all)")
	pathsCmd.Flags().IntVar(&pathLimit, "limit", 100, "maximum number of paths to print (0 for all)")
}

var backtraceCmd = &cobra.Command{
	Use:   "backtrace <function> [patterns...]",
	Short: "Print the call paths from root callers down to a function",
	Long: `Print every acyclic call path that ends at the named function and starts at
a function nothing calls. Names use the display form, e.g. os.Exit or
example.com/pkg.Type.Method.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := analyzeFor(cmd, args[1:])
		if err != nil {
			return err
		}
		to, err := a.lookup(args[0])
		if err != nil {
			return err
		}
		return writePaths(cmd.OutOrStdout(), a.res.Graph.BacktraceN(to, pathLimit), pathLimit)
	},
}

var pathsCmd = &cobra.Command{
	Use:   "paths <from> <to> [patterns...]",
	Short: "Print the call paths between two functions",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := analyzeFor(cmd, args[2:])
		if err != nil {
			return err
		}
		from, err := a.lookup(args[0])
		if err != nil {
			return err
		}
		to, err := a.lookup(args[1])
		if err != nil {
			return err
		}
		return writePaths(cmd.OutOrStdout(), a.res.Graph.CallPathsN(from, to, pathLimit), pathLimit)
	},
}

func analyzeFor(cmd *cobra.Command, patterns []string) (*analysis, error) {
	s, err := resolveSettings(cmd, patterns)
	if err != nil {
		return nil, err
	}
	return analyze(cmd.Context(), s, s.progress())
}

func (a *analysis) lookup(name string) (*fnindex.Node, error) {
	n := a.res.Graph.Lookup(name)
	if n == nil {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownFunction)
	}
	return n, nil
}

func writePaths(w io.Writer, paths []callgraph.Path, limit int) error {
	for _, p := range paths {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	if limit > 0 && len(paths) == limit {
		_, err := fmt.Fprintf(w, "(stopped after %d paths, raise --limit to see more)\n", limit)
		return err
	}
	return nil
}
