// Command panicgraph runs the panicreach analysis over a whole program and
// exposes the call graph behind its findings.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mpyw/panicreach/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "panicgraph",
	Short: "Whole-program failure sink reachability",
	Long: `panicgraph loads packages with all their dependencies, builds the call graph
of every declared function and reports the ones that can reach panic,
log.Fatal, os.Exit or another configured failure sink.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(backtraceCmd)
	rootCmd.AddCommand(pathsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("verbose", false, "log progress details to stderr")
	flags.String("config", "", "path to the config file (default: "+config.FileName+" searched upwards from --dir)")
	flags.String("dir", ".", "directory to load packages from")
	flags.String("sinks", "", "comma-separated list of failure sinks; overrides the config file")
	flags.Bool("all-entries", false, "also report functions marked with //panicreach:silence")
	flags.Bool("tests", false, "include test files")
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
