// =============================================================================
// Adaos Calculator - Root Command
// =============================================================================
//
// COBRA CLI STRUCTURE:
//   adaoscalc
//   ├── process  (decode report, resolve prices, write Nexus export)
//   ├── inspect  (print suppliers, resolved prices and stats)
//   └── version
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adaos-tools/adaoscalc/internal/config"
	"github.com/adaos-tools/adaoscalc/internal/logger"
	"github.com/adaos-tools/adaoscalc/pkg/utils"
)

// cfgFile holds the path to the configuration file, overridable via --config.
var cfgFile string

// verbose enables debug logging when set.
var verbose bool

// rootCmd is the base command all subcommands attach to.
var rootCmd = &cobra.Command{
	Use:   "adaoscalc",
	Short: "Adaos Calculator - purchase price aggregation and Nexus export",
	Long: `Adaos Calculator ingests goods-receipt reports (XLSX or CSV), groups the
receipt lines per product, reconciles multiple observed purchase prices under
a selectable strategy or manual override, applies a markup, and exports the
resulting sale prices as a Nexus bulk-import workbook.

Example Usage:
  adaoscalc process --file report.xlsx            # export with settings from config.yaml
  adaoscalc process --file report.xlsx --dry-run  # compute and summarize, write nothing
  adaoscalc inspect --file report.xlsx            # review resolved prices on screen`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the CLI. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadConfig reads the configured settings file. A missing file at the
// default location falls back to defaults; an explicitly given missing file
// is an error.
func loadConfig() (*config.Config, error) {
	if utils.FileExists(cfgFile) {
		return config.Load(cfgFile)
	}
	if cfgFile != "config.yaml" {
		return nil, fmt.Errorf("config file %s does not exist", cfgFile)
	}
	return config.Default(), nil
}

// newLogger builds the run logger from config level and the --verbose flag.
func newLogger(cfg *config.Config) (*zap.SugaredLogger, error) {
	return logger.New(cfg.LogLevel, verbose)
}
