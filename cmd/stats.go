package cmd

import (
	"github.com/geoqa/geoqa/core"
	"github.com/geoqa/geoqa/internal/contract"
	"github.com/spf13/cobra"
)

// statsCmd inspects attribute columns in depth.
var statsCmd = &cobra.Command{
	Use:   "stats <dataset>",
	Short: "Show per-column attribute statistics for a dataset.",
	Long: `Profile the attribute table of a vector dataset column by column.

For every column this reports null/non-null counts, distinct cardinality,
the inferred value kind, and the most frequent values. Numeric columns
additionally get min/max/mean/median/stddev and quartiles; text columns get
string length statistics.

Use this to:
- Find columns with poor completeness before they reach production
- Verify a column holds the value kind you expect (numeric vs text)
- Inspect value distributions without loading the data into a notebook
- Drill into one column with --column for focused review

Examples:
  # Statistics for every column
  geoqa stats parcels.geojson

  # Drill into a single column
  geoqa stats --column owner_name parcels.geojson

  # Show more frequent values per column
  geoqa stats --top-values 10 parcels.geojson

  # Export column statistics as CSV
  geoqa stats --output csv --output-file columns.csv parcels.geojson`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStats(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run stats analysis", err)
		}
	},
}
