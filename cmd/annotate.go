package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/msalah0e/semnet/internal/annotation"
	"github.com/msalah0e/semnet/internal/config"
	"github.com/msalah0e/semnet/internal/ui"
	"github.com/spf13/cobra"
)

func annotationsPath() string {
	return annotation.Path(config.ConfigDir())
}

func loadAnnotations() *annotation.Store {
	s, err := annotation.Load(annotationsPath())
	if err != nil {
		ui.Bad.Printf("  Failed to load annotations: %v\n", err)
		os.Exit(1)
	}
	if n := s.Skipped(); n > 0 {
		fmt.Printf("  %s Skipped %d invalid entries in %s\n", ui.WarnIcon(), n, annotationsPath())
	}
	return s
}

func saveAnnotations(s *annotation.Store) {
	if err := s.Save(annotationsPath()); err != nil {
		ui.Bad.Printf("  Failed to save annotations: %v\n", err)
		os.Exit(1)
	}
}

func parseAnnotationID(arg string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		ui.Bad.Printf("  Invalid annotation id: %s\n", arg)
		os.Exit(1)
	}
	return id
}

// swatch renders a #rrggbb colour as a coloured block where the terminal allows.
func swatch(hex string) string {
	var r, g, b int
	if _, err := fmt.Sscanf(strings.TrimPrefix(hex, "#"), "%02x%02x%02x", &r, &g, &b); err != nil {
		return "  "
	}
	return color.RGB(r, g, b).Sprint("██")
}

func annotateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "annotate",
		Short:   "Manage annotation classes",
		Aliases: []string{"annotations", "ann"},
		Run: func(cmd *cobra.Command, args []string) {
			printAnnotations(loadAnnotations())
		},
	}

	cmd.AddCommand(
		annotateListCmd(),
		annotateAddCmd(),
		annotateRenameCmd(),
		annotateRemoveCmd(),
		annotateResetCmd(),
	)
	return cmd
}

func printAnnotations(s *annotation.Store) {
	list := s.List()
	ui.Banner("annotation classes")
	if len(list) == 0 {
		fmt.Println("  No annotation classes. Add one:")
		fmt.Println()
		ui.Info.Println("  semnet annotate add <name> --color #3b82f6")
		return
	}
	for _, a := range list {
		fmt.Printf("  %s %s %s %s\n",
			ui.Subtle.Sprintf("%3d", a.ID),
			swatch(a.Color),
			ui.Brand.Sprintf("%-20s", a.Name),
			ui.Subtle.Sprintf("%4d  %s", a.Count, a.OriginalName))
	}
}

func annotateListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List annotation classes",
		Aliases: []string{"ls"},
		Run: func(cmd *cobra.Command, args []string) {
			s := loadAnnotations()
			if jsonOutput {
				printJSON(s.List())
				return
			}
			printAnnotations(s)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func annotateAddCmd() *cobra.Command {
	var hex string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an annotation class",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			s := loadAnnotations()
			a, err := s.Add(strings.Join(args, " "), hex)
			if err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}
			saveAnnotations(s)
			ui.Good.Printf("  %s Added %s %s (id %d)\n", ui.StatusIcon(true), swatch(a.Color), ui.Brand.Sprint(a.Name), a.ID)
		},
	}

	cmd.Flags().StringVar(&hex, "color", annotation.DefaultColor, "Colour as #rrggbb")
	return cmd
}

func annotateRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "rename <id> <name>",
		Short:             "Rename an annotation class",
		Args:              cobra.MinimumNArgs(2),
		ValidArgsFunction: annotationCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			s := loadAnnotations()
			a, err := s.Rename(parseAnnotationID(args[0]), strings.Join(args[1:], " "))
			if err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}
			saveAnnotations(s)
			ui.Good.Printf("  %s Renamed %d to %s\n", ui.StatusIcon(true), a.ID, ui.Brand.Sprint(a.Name))
		},
	}
}

func annotateRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "remove <id>",
		Short:             "Remove an annotation class",
		Aliases:           []string{"rm"},
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: annotationCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			s := loadAnnotations()
			id := parseAnnotationID(args[0])
			if err := s.Remove(id); err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}
			saveAnnotations(s)
			ui.Good.Printf("  %s Removed annotation %d\n", ui.StatusIcon(true), id)
		},
	}
}

func annotateResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "reset <id>",
		Short:             "Restore the original theme name",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: annotationCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			s := loadAnnotations()
			a, err := s.Reset(parseAnnotationID(args[0]))
			if err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}
			saveAnnotations(s)
			ui.Good.Printf("  %s Reset %d to %s\n", ui.StatusIcon(true), a.ID, ui.Brand.Sprint(a.Name))
		},
	}
}
