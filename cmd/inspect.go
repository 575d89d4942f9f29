// =============================================================================
// Adaos Calculator - Inspect Command
// =============================================================================
//
// The 'inspect' command runs the engine without writing anything: it prints
// the supplier universe, the per-product resolution (distinct prices, base
// price, sale prices, override flags) and the summary stats used when
// reviewing prices before an export.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/adaos-tools/adaoscalc/internal/converter"
	"github.com/adaos-tools/adaoscalc/internal/export"
	"github.com/adaos-tools/adaoscalc/internal/pricing"
	"github.com/adaos-tools/adaoscalc/internal/types"
)

// inspectFile is the report to inspect.
var inspectFile string

// suppliersOnly limits output to the supplier list.
var suppliersOnly bool

// inspectSearch filters the printed products by name/code substring.
var inspectSearch string

// inspectLimit caps the number of product lines printed, 0 = all.
var inspectLimit int

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Review suppliers and resolved prices without exporting",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVar(&inspectFile, "file", "", "Path to the goods-receipt report (.xlsx or .csv)")
	inspectCmd.Flags().BoolVar(&suppliersOnly, "suppliers", false, "Print only the supplier universe")
	inspectCmd.Flags().StringVar(&inspectSearch, "search", "", "Name/code substring filter (overrides config)")
	inspectCmd.Flags().IntVar(&inspectLimit, "limit", 0, "Maximum product lines to print (0 = all)")
	inspectCmd.MarkFlagRequired("file")
}

func runInspect(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("search") {
		cfg.Search = inspectSearch
	}

	rows, ingest, err := converter.Ingest(inspectFile, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode report: %w", err)
	}

	active := cfg.ActiveSuppliers(ingest.Suppliers)
	fmt.Printf("%s: %d entries, %d with date\n\n", inspectFile, ingest.Entries, ingest.WithDates)
	fmt.Printf("Suppliers (%d, %d active):\n", len(ingest.Suppliers), len(active))
	for _, s := range ingest.Suppliers {
		marker := " "
		if _, ok := active[s]; ok {
			marker = "*"
		}
		fmt.Printf("  %s %s\n", marker, s)
	}
	if suppliersOnly {
		return nil
	}

	products := pricing.Resolve(rows, cfg.Settings(ingest.Suppliers))

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tPRICES\tBASE\tMARKUP\tSALE\tSALE+TVA\tLAST ENTRY\tFLAGS")
	for i, p := range products {
		if inspectLimit > 0 && i >= inspectLimit {
			fmt.Fprintf(w, "... %d more\n", len(products)-inspectLimit)
			break
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.1f%%\t%.2f\t%.2f\t%s\t%s\n",
			p.ExternalCode,
			p.Name,
			priceList(p.DistinctPrices),
			export.Round2(p.BasePrice),
			p.EffectiveMarkup,
			export.Round2(p.SalePrice),
			export.Round2(p.SalePriceWithTax),
			lastEntryLabel(p),
			flagLabel(p),
		)
	}
	w.Flush()

	st := pricing.ComputeStats(products)
	fmt.Printf("\nTotal: %d  Multi-price: %d  Custom markup: %d  Manual prices: %d  With dates: %d\n",
		st.Total, st.MultiPrice, st.CustomMarkup, st.ManualPrices, st.WithDates)
	return nil
}

func priceList(prices []float64) string {
	if len(prices) == 0 {
		return "-"
	}
	parts := make([]string, len(prices))
	for i, p := range prices {
		parts[i] = pricing.PriceKey(p)
	}
	return strings.Join(parts, " / ")
}

func lastEntryLabel(p types.ResolvedProduct) string {
	if p.MostRecent.ReceiptDate == nil {
		return "-"
	}
	return p.MostRecent.ReceiptDate.Format(time.DateOnly)
}

func flagLabel(p types.ResolvedProduct) string {
	var flags []string
	if p.HasManualPrice {
		flags = append(flags, "manual")
	}
	if p.HasCustomMarkup {
		flags = append(flags, "markup")
	}
	return strings.Join(flags, ",")
}
