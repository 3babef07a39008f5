package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mpyw/panicreach/internal/emit"
)

var checkCmd = &cobra.Command{
	Use:   "check [patterns...]",
	Short: "Report functions that can reach a failure sink",
	Long: `Report every declared function that can reach a failure sink, with an
annotated snippet of its body. Findings are advisory: the exit code is zero
unless the program cannot be loaded or its source cannot be read.`,
	RunE: checkExecution,
}

func checkExecution(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	color, err := s.useColor(out)
	if err != nil {
		return err
	}

	a, err := analyze(cmd.Context(), s, s.progress())
	if err != nil {
		return err
	}

	n, err := a.render(out, color)
	if err != nil {
		return err
	}
	if n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d function(s) can reach a failure sink\n", n)
	}
	return nil
}

// render writes one snippet per record that keeps a witness after the
// ignore directives, and returns how many were written.
func (a *analysis) render(w io.Writer, color bool) (int, error) {
	fset := a.prog.Fset
	r := emit.NewRenderer(fset, emit.NewFiles(fset), !color)

	var n int
	for _, rec := range a.res.Spots.Records() {
		if rec = a.prog.Ignores.Filter(fset, rec); rec == nil {
			continue
		}
		if n > 0 {
			fmt.Fprintln(w)
		}
		if err := r.Render(w, rec); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
