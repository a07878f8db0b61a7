package cmd

import (
	"errors"

	"github.com/geoqa/geoqa/core"
	"github.com/geoqa/geoqa/internal/contract"
	"github.com/spf13/cobra"
)

// checkBaselineAndExecute validates the baseline dataset and executes the given function.
func checkBaselineAndExecute(executeFunc core.ExecutorFunc) {
	if cfg.BasePath == "" {
		contract.LogFatal("Cannot run comparison", errors.New("baseline and target datasets must be provided"))
	}
	if err := executeFunc(rootCtx, cfg, storeManager); err != nil {
		contract.LogFatal("Cannot run comparison", err)
	}
}

// compareCmd focused on baseline-versus-target quality deltas.
var compareCmd = &cobra.Command{
	Use:   "compare <base-dataset> <target-dataset>",
	Short: "Compare quality between two datasets.",
	Long: `Assess two datasets and report how quality changed from the first
(the baseline) to the second (the target).

Ideal for:
- Vendor delivery reviews - compare a new drop against the accepted one
- Repair validation - confirm 'geoqa fix' actually improved the data
- Pipeline upgrades - check an ETL change did not degrade output quality
- Version tracking - watch a dataset evolve across releases

The comparison shows the score delta, per-component deltas sorted by
impact, checks that changed status, and the feature count difference.

Examples:
  # Compare last month's delivery to this month's
  geoqa compare parcels_2024_01.geojson parcels_2024_02.geojson

  # Verify a repair pass
  geoqa compare parcels.geojson parcels_fixed.geojson

  # Export the deltas as JSON
  geoqa compare --output json old.gpkg new.gpkg`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		checkBaselineAndExecute(core.ExecuteCompare)
	},
}
