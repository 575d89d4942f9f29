// =============================================================================
// Adaos Calculator - Configuration Module
// =============================================================================
//
// This module loads the YAML settings file. The settings are the whole
// caller-adjustable surface of the pricing engine: price strategy, markups,
// supplier filter, per-product overrides, search term and export selection,
// plus output and logging options.
//
// The configuration file is optional; every field has a default that matches
// the usual review workflow (strategy "min", global markup 20%).
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/adaos-tools/adaoscalc/internal/pricing"
)

// Config is the application configuration.
type Config struct {
	// OutputDir is where export workbooks are written. Default "./output".
	OutputDir string `yaml:"output_dir"`

	// OutputPrefix is the export filename prefix; the current date and the
	// .xlsx extension are appended. Default "definit_text".
	OutputPrefix string `yaml:"output_prefix"`

	// LogLevel controls verbosity: debug, info, warn or error. Default "info".
	LogLevel string `yaml:"log_level"`

	// Strategy picks the base price for multi-price products:
	// min, max, avg or last. Default "min".
	Strategy string `yaml:"strategy"`

	// GlobalMarkup is the default markup percent. Default 20.
	GlobalMarkup *float64 `yaml:"global_markup"`

	// Suppliers restricts which suppliers contribute rows.
	Suppliers SupplierFilter `yaml:"suppliers"`

	// ItemMarkups overrides the global markup per product id
	// (external code, or name for code-less products).
	ItemMarkups map[string]float64 `yaml:"item_markups"`

	// ManualPrices pins a product's base price to one of its observed
	// prices. A price no longer observed is silently ignored.
	ManualPrices map[string]float64 `yaml:"manual_prices"`

	// Search is a case-insensitive name/code substring filter.
	Search string `yaml:"search"`

	// ExportSelection lists the product ids to export. Empty exports
	// everything that passes the filters.
	ExportSelection []string `yaml:"export_selection"`

	// Archive controls moving processed reports out of the way.
	Archive ArchiveConfig `yaml:"archive"`

	// CSVDelimiter is the field separator for CSV reports. Default ",".
	CSVDelimiter string `yaml:"csv_delimiter"`
}

// SupplierFilter derives the active-supplier set from the supplier universe
// found in the report: start from Include when non-empty (else everyone),
// then drop Exclude.
type SupplierFilter struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// ArchiveConfig controls processed-report archival.
type ArchiveConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// defaultGlobalMarkup is the usual retail markup of the shop.
const defaultGlobalMarkup = 20.0

// Load reads and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.OutputPrefix == "" {
		cfg.OutputPrefix = "definit_text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Strategy == "" {
		cfg.Strategy = string(pricing.StrategyMin)
	}
	if cfg.GlobalMarkup == nil {
		m := defaultGlobalMarkup
		cfg.GlobalMarkup = &m
	}
	if cfg.Archive.Dir == "" {
		cfg.Archive.Dir = "./input_archive"
	}
	if cfg.CSVDelimiter == "" {
		cfg.CSVDelimiter = ","
	}
}

func validate(cfg *Config) error {
	if _, err := pricing.ParseStrategy(cfg.Strategy); err != nil {
		return err
	}
	if *cfg.GlobalMarkup < -100 {
		return fmt.Errorf("global_markup %v is below -100%%", *cfg.GlobalMarkup)
	}
	for id, pct := range cfg.ItemMarkups {
		if pct < -100 {
			return fmt.Errorf("item_markups[%s] %v is below -100%%", id, pct)
		}
	}
	for id, price := range cfg.ManualPrices {
		if price <= 0 {
			return fmt.Errorf("manual_prices[%s] must be positive, got %v", id, price)
		}
	}
	if len([]rune(cfg.CSVDelimiter)) != 1 {
		return fmt.Errorf("csv_delimiter must be a single character, got %q", cfg.CSVDelimiter)
	}
	return nil
}

// Delimiter returns the CSV field separator as a rune.
func (c *Config) Delimiter() rune {
	return []rune(c.CSVDelimiter)[0]
}

// ActiveSuppliers resolves the supplier filter against the supplier universe
// of the current report.
func (c *Config) ActiveSuppliers(universe []string) map[string]struct{} {
	active := make(map[string]struct{})
	if len(c.Suppliers.Include) > 0 {
		for _, s := range c.Suppliers.Include {
			active[s] = struct{}{}
		}
	} else {
		for _, s := range universe {
			active[s] = struct{}{}
		}
	}
	for _, s := range c.Suppliers.Exclude {
		delete(active, s)
	}
	return active
}

// SelectionSet returns the explicit export selection as a set.
func (c *Config) SelectionSet() map[string]struct{} {
	sel := make(map[string]struct{}, len(c.ExportSelection))
	for _, id := range c.ExportSelection {
		sel[id] = struct{}{}
	}
	return sel
}

// Settings assembles the engine settings for the given supplier universe.
// Strategy is already validated at load time.
func (c *Config) Settings(universe []string) pricing.Settings {
	strategy, _ := pricing.ParseStrategy(c.Strategy)
	return pricing.Settings{
		ActiveSuppliers: c.ActiveSuppliers(universe),
		Strategy:        strategy,
		GlobalMarkup:    *c.GlobalMarkup,
		ItemMarkups:     c.ItemMarkups,
		ManualPrices:    c.ManualPrices,
		Search:          c.Search,
	}
}
