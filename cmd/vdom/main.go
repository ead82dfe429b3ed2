package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vdom/internal/config"
	"github.com/vango-dev/vdom/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// configPath is the --config flag shared by all commands.
var configPath string

func main() {
	if err := rootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vdom",
		Short: "Drive the vdom reconciliation engine from the command line",
		Long: `vdom mounts small demo trees into an in-memory host and shows
what each render pass did to it.

  • Keyed, soft-keyed and unkeyed list reconciliation
  • Delegated events and two-way input bindings
  • Scoped component styles
  • Per-pass host write and read counts`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to a vdom.json or vdom.yaml file (default: nearest one above the working directory)")

	cmd.AddCommand(
		demoCmd(),
		configCmd(),
		versionCmd(),
	)
	return cmd
}

// loadConfig loads the file named by --config, or the nearest project
// configuration, or the defaults.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.LoadFromWorkingDir()
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
