// =============================================================================
// Adaos Calculator - Process Command
// =============================================================================
//
// The 'process' command runs the full pipeline for one report file and
// writes the dated Nexus export workbook. Settings come from the config
// file; the most common ones can be overridden per run with flags.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adaos-tools/adaoscalc/internal/config"
	"github.com/adaos-tools/adaoscalc/internal/converter"
	"github.com/adaos-tools/adaoscalc/internal/pricing"
)

// reportFile is the report to process.
var reportFile string

// dryRun computes and summarizes without writing the export workbook.
var dryRun bool

// outDir overrides the configured output directory when set.
var outDir string

// strategyFlag overrides the configured price strategy when set.
var strategyFlag string

// markupFlag overrides the configured global markup when set.
var markupFlag float64

// searchFlag overrides the configured search filter when set.
var searchFlag string

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process a goods-receipt report and write the Nexus export",
	Long: `The process command decodes the given report, groups receipt lines per
product, resolves a base purchase price per product (strategy or manual
override), applies the markup, and writes the export workbook named
<prefix>_DD.MM.YYYY.xlsx into the output directory.

The export contains the explicitly selected products, or every product that
passes the supplier and search filters when the selection is empty. When
nothing is eligible the command fails and no file is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&reportFile, "file", "", "Path to the goods-receipt report (.xlsx or .csv)")
	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run the pipeline without writing the export workbook")
	processCmd.Flags().StringVar(&outDir, "out", "", "Output directory (overrides config)")
	processCmd.Flags().StringVar(&strategyFlag, "strategy", "", "Price strategy: min, max, avg or last (overrides config)")
	processCmd.Flags().Float64Var(&markupFlag, "markup", 0, "Global markup percent (overrides config)")
	processCmd.Flags().StringVar(&searchFlag, "search", "", "Name/code substring filter (overrides config)")
	processCmd.MarkFlagRequired("file")
}

func runProcess(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyOverrides(cmd, cfg); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	conv := converter.New(reportFile, cfg, log, dryRun)
	result := conv.Run()
	if result.Error != nil {
		return result.Error
	}

	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Rows parsed:       %d (%d with dates)\n", result.Stats.RowsParsed, result.Stats.RowsWithDates)
	fmt.Printf("Suppliers:         %d (%d active)\n", result.Stats.Suppliers, result.Stats.ActiveSuppliers)
	fmt.Printf("Products:          %d (%d with multiple prices)\n", result.Stats.Products, result.Stats.Pricing.MultiPrice)
	fmt.Printf("Records exported:  %d\n", result.Stats.RecordsExported)
	if dryRun {
		fmt.Println("Output:            (dry-run, nothing written)")
	} else {
		fmt.Printf("Output:            %s\n", result.OutputFile)
	}
	if result.ArchivedTo != "" {
		fmt.Printf("Report archived:   %s\n", result.ArchivedTo)
	}
	fmt.Printf("Time elapsed:      %s\n", result.Stats.ProcessingTime)
	return nil
}

// applyOverrides copies changed flags over the loaded configuration.
// Flag presence, not value, decides: --markup 0 is a real override.
func applyOverrides(cmd *cobra.Command, cfg *config.Config) error {
	if outDir != "" {
		cfg.OutputDir = outDir
	}
	if cmd.Flags().Changed("strategy") {
		if _, err := pricing.ParseStrategy(strategyFlag); err != nil {
			return err
		}
		cfg.Strategy = strategyFlag
	}
	if cmd.Flags().Changed("markup") {
		m := markupFlag
		cfg.GlobalMarkup = &m
	}
	if cmd.Flags().Changed("search") {
		cfg.Search = searchFlag
	}
	return nil
}
