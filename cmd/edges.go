package cmd

import (
	"fmt"

	"github.com/msalah0e/semnet/internal/graph"
	"github.com/msalah0e/semnet/internal/ui"
	"github.com/spf13/cobra"
)

func edgesCmd() *cobra.Command {
	var (
		flags      viewFlags
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "edges",
		Short: "List relations at or above a similarity threshold",
		Run: func(cmd *cobra.Command, args []string) {
			g, _ := loadGraph()
			_, t, _ := flags.resolve(cmd)
			edges := graph.FilterEdges(g.Edges, t)

			if jsonOutput {
				printJSON(map[string]any{"threshold": t, "edges": edges})
				return
			}

			ui.Banner(fmt.Sprintf("%d of %d relations at %.2f", len(edges), len(g.Edges), t))
			if len(edges) == 0 {
				fmt.Println("  No relations at this threshold. Lower it with --threshold.")
				return
			}

			labels := make(map[string]string, len(g.Nodes))
			for _, n := range g.Nodes {
				labels[n.ID] = n.Label
			}
			rows := make([][]string, 0, len(edges))
			for _, e := range edges {
				rows = append(rows, []string{labels[e.Source], labels[e.Target], fmt.Sprintf("%.3f", e.Weight)})
			}
			ui.Table([]string{"SOURCE", "TARGET", "WEIGHT"}, rows)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
