package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/msalah0e/semnet/internal/annotation"
	"github.com/msalah0e/semnet/internal/server"
	"github.com/msalah0e/semnet/internal/survey"
	"github.com/msalah0e/semnet/internal/ui"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the network, statistics and annotations over HTTP",
		Long: `Start the JSON API.

  GET  /v1/graph?threshold=0.55&q=voltaire&top=5
  GET  /v1/graph/edges | /v1/graph/stats | /v1/graph/search?q=
  GET  /v1/annotations   (POST, PATCH /:id, POST /:id/reset, DELETE /:id)
  GET  /v1/survey
  GET  /health, /metrics`,
		Run: func(cmd *cobra.Command, args []string) {
			c := loadConfig()
			if addr == "" {
				addr = c.Server.Addr
			}
			logger := newLogger()
			g, source := loadGraph()

			path := annotationsPath()
			store, err := annotation.Load(path)
			if err != nil {
				ui.Bad.Printf("  Failed to load annotations: %v\n", err)
				os.Exit(1)
			}
			if n := store.Skipped(); n > 0 {
				logger.Warn("annotations loaded with skipped entries", "path", path, "skipped", n)
			}

			var counts survey.Counts
			if c.Survey.Path != "" {
				counts, err = survey.LoadFile(c.Survey.Path)
				if err != nil {
					ui.Bad.Printf("  Failed to load survey: %v\n", err)
					os.Exit(1)
				}
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			srv := server.New(server.Deps{
				Graph:            g,
				Range:            c.Graph.Range(),
				DefaultThreshold: c.Graph.ThresholdDefault,
				TopK:             c.Graph.TopK,
				Annotations:      store,
				AnnotationsPath:  path,
				Survey:           counts,
				Logger:           logger,
				Registry:         reg,
			})

			ui.Banner("serve")
			ui.KV("Graph", fmt.Sprintf("%s (%d nodes, %d edges)", source, len(g.Nodes), len(g.Edges)))
			ui.KV("Listening", "http://localhost"+displayAddr(addr))
			ui.KV("Annotations", path)
			fmt.Println()
			fmt.Println(ui.Subtle.Sprint("  Ctrl-C to stop"))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.Run(ctx, addr, c.Server.ReadTimeout.Duration); err != nil {
				ui.Bad.Printf("  Server error: %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: config server.addr)")
	return cmd
}

// displayAddr keeps the port part of addr for the localhost URL.
func displayAddr(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i:]
		}
	}
	return ":" + addr
}
