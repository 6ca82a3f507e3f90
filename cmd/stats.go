package cmd

import (
	"fmt"

	"github.com/msalah0e/semnet/internal/ui"
	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	var (
		flags      viewFlags
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Network statistics at a similarity threshold",
		Long: `Compute descriptive statistics over the edges whose weight is at or above
the threshold: density, average (weighted) degree, weight summary, topic count
and the most central nodes.

  semnet stats
  semnet stats --threshold 0.6 --top 3
  semnet stats --json | jq .density`,
		Run: func(cmd *cobra.Command, args []string) {
			g, _ := loadGraph()
			_, t, k := flags.resolve(cmd)
			stats := g.Visible(t).Stats(k)

			if jsonOutput {
				printJSON(stats)
				return
			}

			ui.Banner(fmt.Sprintf("stats at %.2f", t))
			ui.KV("Nodes", stats.NodeCount)
			ui.KV("Edges", stats.EdgeCount)
			ui.KV("Density", fmtOptional(stats.Density))
			if stats.Density != nil {
				fmt.Printf("  %s  %s\n", fmt.Sprintf("%-20s", ""), ui.Bar(*stats.Density*100, 30))
			}
			ui.KV("Avg degree", fmt.Sprintf("%.2f", stats.AvgDegree))
			ui.KV("Avg weighted degree", fmt.Sprintf("%.3f", stats.AvgWeightedDegree))
			ui.KV("Topics", stats.TopicCount)

			fmt.Println()
			if w := stats.Weights; w != nil {
				ui.KV("Weight min", fmt.Sprintf("%.3f", w.Min))
				ui.KV("Weight max", fmt.Sprintf("%.3f", w.Max))
				ui.KV("Weight mean", fmt.Sprintf("%.3f", w.Mean))
				ui.KV("Weight median", fmt.Sprintf("%.3f", w.Median))
			} else {
				fmt.Printf("  %s No edges at this threshold\n", ui.WarnIcon())
			}

			if len(stats.CentralNodes) > 0 {
				fmt.Println()
				rows := make([][]string, 0, len(stats.CentralNodes))
				for i, n := range stats.CentralNodes {
					rows = append(rows, []string{fmt.Sprint(i + 1), n.Name, n.ID, fmt.Sprint(n.Degree)})
				}
				ui.Table([]string{"#", "NAME", "ID", "DEGREE"}, rows)
			}
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
