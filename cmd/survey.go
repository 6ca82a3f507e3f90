package cmd

import (
	"fmt"
	"os"

	"github.com/msalah0e/semnet/internal/survey"
	"github.com/msalah0e/semnet/internal/ui"
	"github.com/spf13/cobra"
)

func surveyCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "survey [file]",
		Short: "Show survey answer shares",
		Long: `Read a {"answer": count} JSON file and show each answer's share of the total.
Without an argument the config survey.path is used.`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			path := loadConfig().Survey.Path
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				ui.Bad.Println("  No survey file given and survey.path is not set")
				os.Exit(1)
			}

			counts, err := survey.LoadFile(path)
			if err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}
			shares := counts.Shares()

			if jsonOutput {
				printJSON(map[string]any{"total": counts.Total(), "shares": shares})
				return
			}

			ui.Banner(fmt.Sprintf("survey — %d responses", counts.Total()))
			if len(shares) == 0 {
				fmt.Println("  No answers recorded")
				return
			}
			for _, s := range shares {
				fmt.Printf("  %s %s %s\n",
					ui.Brand.Sprintf("%-24s", s.Label),
					ui.Bar(s.Percent, 24),
					ui.Subtle.Sprintf("%5.1f%%  (%d)", s.Percent, s.Count))
			}
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
