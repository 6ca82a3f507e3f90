package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/msalah0e/semnet/internal/graph"
	"github.com/msalah0e/semnet/internal/ui"
	"github.com/spf13/cobra"
)

// viewFlags are shared by the commands that compute a filtered view.
type viewFlags struct {
	threshold float64
	top       int
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&f.threshold, "threshold", "t", 0, "Minimum edge weight (default: config graph.threshold_default, clamped to the range)")
	cmd.Flags().IntVar(&f.top, "top", 0, "Number of central nodes to report (default: config graph.top_k)")
}

// resolve returns the clamped threshold and top-K, falling back to config for
// flags the user did not set.
func (f *viewFlags) resolve(cmd *cobra.Command) (graph.ThresholdRange, float64, int) {
	c := loadConfig()
	rng := c.Graph.Range()

	t := c.Graph.ThresholdDefault
	if flag := cmd.Flags().Lookup("threshold"); flag != nil && flag.Changed {
		t = f.threshold
	}
	k := c.Graph.TopK
	if f.top > 0 {
		k = f.top
	}
	if k <= 0 {
		k = graph.DefaultTopK
	}
	return rng, rng.Clamp(t), k
}

// printJSON writes v as indented JSON on stdout or exits.
func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		ui.Bad.Printf("  JSON encoding failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func fmtOptional(v *float64) string {
	if v == nil {
		return ui.Subtle.Sprint("n/a")
	}
	return fmt.Sprintf("%.3f", *v)
}
