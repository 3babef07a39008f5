package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpyw/panicreach/internal/store"
)

var exportDB string

func init() {
	exportCmd.Flags().StringVar(&exportDB, "db", "panicreach.sqlite", "output SQLite database (replaced if it exists)")
}

var exportCmd = &cobra.Command{
	Use:   "export [patterns...]",
	Short: "Write the call graph and findings to SQLite",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSettings(cmd, args)
		if err != nil {
			return err
		}
		progress := s.progress()

		a, err := analyze(cmd.Context(), s, progress)
		if err != nil {
			return err
		}
		if err := store.Write(exportDB, a.prog.Fset, a.res, progress); err != nil {
			return fmt.Errorf("export %s: %w", exportDB, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d functions to %s\n", a.res.Graph.Len(), exportDB)
		return nil
	},
}
