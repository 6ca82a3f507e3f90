package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/msalah0e/semnet/internal/graph"
	"github.com/msalah0e/semnet/internal/ui"
	"github.com/spf13/cobra"
)

func viewCmd() *cobra.Command {
	var (
		flags viewFlags
		query string
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the interactive relations graph in a browser",
		Run: func(cmd *cobra.Command, args []string) {
			g, _ := loadGraph()
			if len(g.Nodes) == 0 {
				fmt.Println("  Empty graph — nothing to show")
				return
			}

			rng, t, k := flags.resolve(cmd)
			v := graph.BuildView(g, rng, t, query, k)

			htmlPath := filepath.Join(os.TempDir(), "semnet-relations.html")
			page, err := graph.ExportHTML(v)
			if err != nil {
				ui.Bad.Printf("  Failed to render HTML: %v\n", err)
				os.Exit(1)
			}
			if err := os.WriteFile(htmlPath, []byte(page), 0o644); err != nil {
				ui.Bad.Printf("  Failed to write HTML: %v\n", err)
				os.Exit(1)
			}

			if err := openBrowser(htmlPath); err != nil {
				fmt.Printf("  HTML written to: %s\n", htmlPath)
				fmt.Println("  Open it in your browser to see the graph")
				return
			}

			ui.Good.Printf("  %s Opened relations graph (%d nodes, %d of %d edges at %.2f)\n",
				ui.StatusIcon(true), len(v.Nodes), len(v.Edges), len(g.Edges), v.Threshold)
			ui.Subtle.Printf("  %s\n", htmlPath)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&query, "query", "q", "", "Search query to highlight")
	return cmd
}

func openBrowser(path string) error {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		c = exec.Command("open", path)
	case "linux":
		c = exec.Command("xdg-open", path)
	default:
		c = exec.Command("cmd", "/c", "start", path)
	}
	return c.Start()
}
