// Command plazactl is the platform ops CLI: asset manifest builds,
// configuration reads and writes, theme inspection, custom-domain
// verification, and database migrations.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plazakit/plaza/pkg/clilog"
	"github.com/plazakit/plaza/pkg/config"
)

var (
	configPath string
	verbose    bool
	noColor    bool

	out *clilog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "plazactl",
	Short: "Operations CLI for the plaza platform",
	Long: `plazactl manages a plaza deployment from the command line:
builds cache-busting asset manifests, reads and writes the platform
configuration, prints resolved theme variables, verifies custom domain
ownership, and applies database migrations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		mode := clilog.ColorAuto
		if noColor {
			mode = clilog.ColorOff
		}
		out = clilog.New(clilog.WithColor(mode), clilog.WithVerbose(verbose))
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "platform configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print detail output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	if err := rootCmd.Execute(); err != nil {
		if out != nil {
			out.Error("%v", err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// loadConfig reads the platform configuration the same way the daemon
// does: file (when present) under PLAZA_* environment overrides.
func loadConfig() (*config.Config, error) {
	opts := []config.Option{}
	if _, err := os.Stat(configPath); err == nil {
		opts = append(opts, config.WithYAMLFile(configPath))
	}
	opts = append(opts, config.WithEnv("PLAZA"))

	cfg, err := config.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}
