package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/msalah0e/semnet/internal/graph"
	"github.com/msalah0e/semnet/internal/parallel"
	"github.com/msalah0e/semnet/internal/survey"
	"github.com/msalah0e/semnet/internal/ui"
	"github.com/spf13/cobra"
)

// validateArtifact decodes a graph or survey file and summarizes it. A graph
// is any object carrying nodes, edges or links; anything else is read as
// survey counts.
func validateArtifact(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return "", fmt.Errorf("not a JSON object: %w", err)
	}

	_, hasNodes := probe["nodes"]
	_, hasEdges := probe["edges"]
	_, hasLinks := probe["links"]
	if hasNodes || hasEdges || hasLinks {
		g, report, err := graph.Decode(bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		summary := fmt.Sprintf("graph: %d nodes, %d edges, %d topics", len(g.Nodes), len(g.Edges), len(g.Topics()))
		if n := report.Skipped(); n > 0 {
			summary += fmt.Sprintf(", %d records skipped (%d malformed nodes, %d duplicate nodes, %d malformed edges, %d dangling edges)",
				n, report.MalformedNodes, report.DuplicateNodes, report.MalformedEdges, report.DanglingEdges)
		}
		return summary, nil
	}

	counts, err := survey.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("survey: %d answers, %d responses", len(counts.Shares()), counts.Total()), nil
}

func validateCmd() *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "validate <files...>",
		Short: "Check graph and survey files in parallel",
		Long: `Decode each file and report what it holds and which records would be
skipped on load.

  semnet validate data/*.json
  semnet validate --concurrency 8 exports/*.json`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if concurrency <= 0 {
				concurrency = loadConfig().Parallel.Concurrency
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			tasks := make([]parallel.Task, len(args))
			for i, path := range args {
				tasks[i] = parallel.Task{
					Name: path,
					Fn: func(ctx context.Context) (string, error) {
						return validateArtifact(ctx, path)
					},
				}
			}

			ui.Banner(fmt.Sprintf("validating %d files", len(tasks)))
			results := parallel.Run(ctx, tasks, concurrency, func(r parallel.Result) {
				if r.OK {
					fmt.Printf("  %s %s %s\n", ui.StatusIcon(true), r.Name, ui.Subtle.Sprint(r.Summary))
					return
				}
				fmt.Printf("  %s %s %s\n", ui.StatusIcon(false), r.Name, ui.Bad.Sprintf("(%v)", r.Err))
				for _, line := range parallel.TruncateLines(r.Summary, 5) {
					if line != "" {
						fmt.Printf("      %s\n", ui.Subtle.Sprint(line))
					}
				}
			})

			fmt.Println()
			if failed := parallel.Failed(results); failed > 0 {
				ui.Bad.Printf("  %d of %d files failed\n", failed, len(results))
				os.Exit(1)
			}
			ui.Good.Printf("  %s All %d files valid\n", ui.StatusIcon(true), len(results))
		},
	}

	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "Files to check at once (default: config parallel.concurrency)")
	return cmd
}
