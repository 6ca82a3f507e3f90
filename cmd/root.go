package cmd

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/msalah0e/semnet/internal/config"
	"github.com/msalah0e/semnet/internal/graph"
	"github.com/msalah0e/semnet/internal/logging"
	"github.com/msalah0e/semnet/internal/ui"
	"github.com/spf13/cobra"
)

var version = "0.3.0"

// sampleSource names the embedded graph in messages and logs.
const sampleSource = "embedded sample"

var (
	cfg         *config.Config
	sampleGraph []byte
	graphPath   string
)

// SetSampleGraph sets the graph used when neither --graph nor the config names one.
func SetSampleGraph(data []byte) {
	sampleGraph = data
}

func loadConfig() *config.Config {
	if cfg == nil {
		cfg = config.Load()
	}
	return cfg
}

func newLogger() *slog.Logger {
	c := loadConfig()
	return logging.New(logging.Config{
		Level:   c.Log.Level,
		JSON:    c.Log.Format == "json",
		Service: "semnet",
	})
}

// graphSource resolves which graph to load: the flag, then the config, then
// the embedded sample (returned as "").
func graphSource() string {
	if graphPath != "" {
		return graphPath
	}
	return loadConfig().Graph.Path
}

// loadGraph loads the active graph or exits.
func loadGraph() (*graph.Graph, string) {
	logger := newLogger()
	path := graphSource()

	var (
		g      *graph.Graph
		report graph.LoadReport
		err    error
	)
	if path == "" {
		path = sampleSource
		g, report, err = graph.Decode(bytes.NewReader(sampleGraph))
	} else {
		g, report, err = graph.LoadFile(path)
	}
	if err != nil {
		ui.Bad.Printf("  Failed to load graph: %v\n", err)
		os.Exit(1)
	}

	report.Log(logger, path)
	return g, path
}

var rootCmd = &cobra.Command{
	Use:   "semnet",
	Short: "semnet — explore a semantic network of spaces",
	Long: ui.Brand.Sprint(ui.Net+" semnet") + " — explore a weighted semantic network\n" +
		ui.Subtle.Sprint("Filter relations by similarity, compute network statistics, and search labels"),
	Version: version + " " + ui.Net,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.SetColor(loadConfig().UI.Color)
	},
	Run: func(cmd *cobra.Command, args []string) {
		g, source := loadGraph()
		c := loadConfig()
		rng := c.Graph.Range()
		t := rng.Clamp(c.Graph.ThresholdDefault)
		stats := g.Visible(t).Stats(c.Graph.TopK)

		ui.Banner("semantic network")
		ui.KV("Source", source)
		ui.KV("Nodes", len(g.Nodes))
		ui.KV("Edges", len(g.Edges))
		ui.KV("Topics", len(g.Topics()))
		ui.KV("Threshold range", fmt.Sprintf("%.2f – %.2f (step %.2f)", rng.Min, rng.Max, rng.Step))
		ui.KV(fmt.Sprintf("Visible at %.2f", t), stats.EdgeCount)
		fmt.Println()
		fmt.Println(ui.Subtle.Sprint("  Try: semnet stats, semnet search <name>, semnet view"))
	},
}

func init() {
	rootCmd.SetVersionTemplate("semnet {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&graphPath, "graph", "", "Semantic network JSON (default: config graph.path, then the embedded sample)")

	rootCmd.AddCommand(
		statsCmd(),
		edgesCmd(),
		searchCmd(),
		exportCmd(),
		viewCmd(),
		annotateCmd(),
		surveyCmd(),
		validateCmd(),
		serveCmd(),
		configCmd(),
		completionCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
