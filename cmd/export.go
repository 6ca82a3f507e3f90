package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/msalah0e/semnet/internal/graph"
	"github.com/msalah0e/semnet/internal/ui"
	"github.com/spf13/cobra"
)

var exportFormats = []string{"json", "dot", "yaml", "html"}

// renderView encodes v in the named format.
func renderView(v graph.View, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return graph.ExportJSON(v)
	case "yaml", "yml":
		return graph.ExportYAML(v)
	case "dot":
		return []byte(graph.ExportDOT(v)), nil
	case "html":
		page, err := graph.ExportHTML(v)
		return []byte(page), err
	default:
		return nil, fmt.Errorf("unknown format: %s (use %s)", format, strings.Join(exportFormats, ", "))
	}
}

func exportCmd() *cobra.Command {
	var (
		flags  viewFlags
		format string
		query  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered network with its statistics",
		Long: `Export the view at a threshold: nodes, visible edges, statistics and the
search highlight.

  semnet export --format json > view.json
  semnet export --format dot | dot -Tsvg > graph.svg
  semnet export --format html --query voltaire -o relations.html`,
		Run: func(cmd *cobra.Command, args []string) {
			g, _ := loadGraph()
			rng, t, k := flags.resolve(cmd)
			v := graph.BuildView(g, rng, t, query, k)

			data, err := renderView(v, format)
			if err != nil {
				ui.Bad.Printf("  Export failed: %v\n", err)
				os.Exit(1)
			}

			if output == "" {
				fmt.Print(string(data))
				if len(data) > 0 && data[len(data)-1] != '\n' {
					fmt.Println()
				}
				return
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				ui.Bad.Printf("  Failed to write %s: %v\n", output, err)
				os.Exit(1)
			}
			ui.Good.Printf("  %s Wrote %s (%s, %d visible edges)\n", ui.StatusIcon(true), output, format, len(v.Edges))
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Export format: json, dot, yaml, or html")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Search query to highlight")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return exportFormats, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
