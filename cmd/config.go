package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/msalah0e/semnet/internal/config"
	"github.com/msalah0e/semnet/internal/ui"
	"github.com/spf13/cobra"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}

	cmd.AddCommand(configShowCmd(), configInitCmd(), configPathCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Run: func(cmd *cobra.Command, args []string) {
			if err := toml.NewEncoder(os.Stdout).Encode(loadConfig()); err != nil {
				ui.Bad.Printf("  Failed to encode config: %v\n", err)
				os.Exit(1)
			}
		},
	}
}

func configInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default config file if none exists",
		Run: func(cmd *cobra.Command, args []string) {
			path := config.Path()
			if _, err := os.Stat(path); err == nil {
				fmt.Printf("  %s Config already exists: %s\n", ui.WarnIcon(), path)
				return
			}
			if err := config.EnsureExists(); err != nil {
				ui.Bad.Printf("  Failed to write config: %v\n", err)
				os.Exit(1)
			}
			ui.Good.Printf("  %s Wrote %s\n", ui.StatusIcon(true), path)
		},
	}
}

func configPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.Path())
		},
	}
}
