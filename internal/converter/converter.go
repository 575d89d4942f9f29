// =============================================================================
// Adaos Calculator - Pipeline Orchestrator
// =============================================================================
//
// This module runs the whole derivation for one report file:
//
//   1. Decode the report (XLSX or CSV) into purchase rows
//   2. Resolve the active-supplier set against the file's supplier universe
//   3. Group rows per product and resolve base prices
//   4. Apply markups and compute sale prices
//   5. Project the export selection into Nexus records
//   6. Write the dated export workbook (unless dry-run)
//   7. Optionally archive the processed report
//
// Every derived structure is a pure function of the row set and the settings;
// re-running with the same inputs produces the same output file content.
// A failed decode leaves no partial state behind: nothing is written.
//
// =============================================================================

package converter

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adaos-tools/adaoscalc/internal/config"
	"github.com/adaos-tools/adaoscalc/internal/csvparser"
	"github.com/adaos-tools/adaoscalc/internal/export"
	"github.com/adaos-tools/adaoscalc/internal/pricing"
	"github.com/adaos-tools/adaoscalc/internal/types"
	"github.com/adaos-tools/adaoscalc/internal/xlsxparser"
	"github.com/adaos-tools/adaoscalc/pkg/utils"
)

// Result is the outcome of one pipeline run.
type Result struct {
	// RunID identifies the run in logs and summaries.
	RunID string

	// InputFile is the processed report.
	InputFile string

	// OutputFile is the written export workbook, empty on dry-run or failure.
	OutputFile string

	// ArchivedTo is where the report was moved when archival is enabled.
	ArchivedTo string

	Success bool
	Error   error

	Stats Stats
}

// Stats collects the per-run figures.
type Stats struct {
	RowsParsed      int
	RowsWithDates   int
	Suppliers       int
	ActiveSuppliers int
	Products        int
	Pricing         pricing.Stats
	RecordsExported int
	ProcessingTime  time.Duration
}

// Converter processes a single report file.
type Converter struct {
	inputPath string
	cfg       *config.Config
	log       *zap.SugaredLogger
	dryRun    bool
}

// New creates a converter for one report.
func New(inputPath string, cfg *config.Config, log *zap.SugaredLogger, dryRun bool) *Converter {
	return &Converter{inputPath: inputPath, cfg: cfg, log: log, dryRun: dryRun}
}

// Ingest decodes a report by extension: .csv goes through the CSV parser,
// everything else through the XLSX parser.
func Ingest(path string, cfg *config.Config) ([]types.PurchaseRow, types.IngestStats, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return csvparser.Parse(path, cfg.Delimiter())
	}
	return xlsxparser.Parse(path)
}

// Run executes the pipeline and reports the outcome.
func (c *Converter) Run() Result {
	start := time.Now()
	result := Result{
		RunID:     uuid.New().String(),
		InputFile: c.inputPath,
	}

	rows, ingest, err := Ingest(c.inputPath, c.cfg)
	if err != nil {
		result.Error = fmt.Errorf("failed to decode report: %w", err)
		return result
	}
	result.Stats.RowsParsed = ingest.Entries
	result.Stats.RowsWithDates = ingest.WithDates
	result.Stats.Suppliers = len(ingest.Suppliers)
	c.log.Infow("report decoded",
		"file", filepath.Base(c.inputPath),
		"entries", ingest.Entries,
		"with_dates", ingest.WithDates,
		"suppliers", len(ingest.Suppliers))

	settings := c.cfg.Settings(ingest.Suppliers)
	result.Stats.ActiveSuppliers = len(settings.ActiveSuppliers)

	products := pricing.Resolve(rows, settings)
	result.Stats.Products = len(products)
	result.Stats.Pricing = pricing.ComputeStats(products)
	c.log.Debugw("products resolved",
		"products", len(products),
		"multi_price", result.Stats.Pricing.MultiPrice,
		"strategy", settings.Strategy)

	records, err := export.Project(products, c.cfg.SelectionSet())
	if err != nil {
		result.Error = err
		return result
	}
	result.Stats.RecordsExported = len(records)

	if c.dryRun {
		c.log.Infow("dry-run: skipping export write", "records", len(records))
		result.Success = true
		result.Stats.ProcessingTime = time.Since(start)
		return result
	}

	if err := utils.EnsureDir(c.cfg.OutputDir); err != nil {
		result.Error = err
		return result
	}
	outPath := filepath.Join(c.cfg.OutputDir, export.Filename(c.cfg.OutputPrefix, time.Now()))
	if err := export.Write(records, outPath); err != nil {
		result.Error = err
		return result
	}
	result.OutputFile = outPath
	c.log.Infow("export written", "file", outPath, "records", len(records))

	if c.cfg.Archive.Enabled {
		archived, err := utils.ArchiveFile(c.inputPath, c.cfg.Archive.Dir)
		if err != nil {
			// The export succeeded; a failed archive move is not fatal.
			c.log.Warnw("failed to archive report", "error", err)
		} else {
			result.ArchivedTo = archived
			c.log.Infow("report archived", "to", archived)
		}
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(start)
	return result
}
