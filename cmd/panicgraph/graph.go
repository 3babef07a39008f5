package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mpyw/panicreach/internal/callgraph"
	"github.com/mpyw/panicreach/internal/localize"
)

var graphFormat string

func init() {
	graphCmd.Flags().StringVar(&graphFormat, "format", "json", "output format (json|text)")
}

var graphCmd = &cobra.Command{
	Use:   "graph [patterns...]",
	Short: "Print the call graph and the localized spots",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch graphFormat {
		case "json", "text":
		default:
			return fmt.Errorf("unsupported format %q (must be json or text)", graphFormat)
		}

		s, err := resolveSettings(cmd, args)
		if err != nil {
			return err
		}
		a, err := analyze(cmd.Context(), s, s.progress())
		if err != nil {
			return err
		}
		return a.writeGraph(cmd.OutOrStdout(), graphFormat)
	},
}

type graphPayload struct {
	Graph callgraph.Snapshot `json:"graph"`
	Spots localize.Snapshot  `json:"spots"`
}

func (a *analysis) writeGraph(w io.Writer, format string) error {
	payload := graphPayload{
		Graph: a.res.Graph.Snapshot(),
		Spots: a.res.Spots.Snapshot(a.prog.Fset),
	}

	if format == "text" {
		_, err := fmt.Fprintf(w, "%s%s", payload.Graph, payload.Spots)
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}
