package cmd

import (
	"github.com/geoqa/geoqa/core"
	"github.com/geoqa/geoqa/internal/contract"
	"github.com/spf13/cobra"
)

// historyCmd lists recorded assessment runs.
var historyCmd = &cobra.Command{
	Use:   "history [dataset]",
	Short: "Show recorded assessment runs and the score trend.",
	Long: `List past profile and check runs from the run store, newest first,
with an ascii chart of the score trend.

The optional argument filters runs to one dataset by name (the file stem,
for example 'parcels' for parcels.geojson). Without it, runs across all
datasets are listed.

Use this to:
- Watch a dataset's score move across vendor deliveries
- Confirm repairs and pipeline changes stuck over time
- Find when a quality regression was first recorded

Examples:
  # All recorded runs
  geoqa history

  # Runs for one dataset
  geoqa history parcels

  # More rows, machine-readable
  geoqa history --limit 100 --output json parcels`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteHistory(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot show run history", err)
		}
	},
}
