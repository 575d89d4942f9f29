// =============================================================================
// Adaos Calculator - Main Entry Point
// =============================================================================
//
// USAGE:
//   adaoscalc process --file report.xlsx   - Resolve prices and write the Nexus export
//   adaoscalc inspect --file report.xlsx   - Review suppliers and resolved prices
//   adaoscalc version                      - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : row model, parsers, pricing engine, export writer
//   - pkg/       : shared file utilities
//
// =============================================================================

package main

import (
	"github.com/adaos-tools/adaoscalc/cmd"
)

func main() {
	cmd.Execute()
}
