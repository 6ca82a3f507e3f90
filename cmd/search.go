package cmd

import (
	"fmt"
	"strings"

	"github.com/msalah0e/semnet/internal/ui"
	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find spaces by name (case-insensitive substring)",
		Long: `Search node labels. A single match is highlighted; several matches are
listed without a highlight.

  semnet search voltaire
  semnet search "kunst" --json`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			g, _ := loadGraph()
			h := g.Search(strings.Join(args, " "))

			if jsonOutput {
				printJSON(h)
				return
			}

			if len(h.Matches) == 0 {
				fmt.Printf("  No spaces match %q\n", h.Query)
				return
			}

			labels := make(map[string]string, len(g.Nodes))
			for _, n := range g.Nodes {
				labels[n.ID] = n.Label
			}

			if h.HasHighlight() {
				fmt.Printf("  %s %s %s\n", ui.StatusIcon(true), ui.Brand.Sprint(labels[h.Highlighted]), ui.Subtle.Sprint(h.Highlighted))
				return
			}

			fmt.Printf("  %d matches for %q %s\n\n", len(h.Matches), h.Query, ui.Subtle.Sprint("(refine to highlight one)"))
			for _, id := range h.Matches {
				fmt.Printf("  %s  %s\n", ui.Info.Sprintf("%-6s", id), labels[id])
			}
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
