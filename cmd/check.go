package cmd

import (
	"github.com/geoqa/geoqa/core"
	"github.com/geoqa/geoqa/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check <dataset>",
	Short: "Enforce a minimum quality score for CI/CD pipelines (fails build on violations)",
	Long: `Assess a dataset and enforce a quality gate against its score.

Designed specifically for CI/CD integration - exits with a non-zero code when
the score falls below the minimum or any high-severity check fails, so
pipelines can block bad data before it ships.

Default minimum score: 60.0

Use cases:
- Data delivery gates - reject vendor drops that do not meet the bar
- Pre-publish validation - keep broken geometries out of tile builds
- Regression detection - catch quality drops between dataset versions
- Contract enforcement - hold suppliers to an agreed score

Examples:
  # Gate with the default minimum score
  geoqa check parcels.geojson

  # Require a stricter score for production data
  geoqa check --min-score 85 parcels.geojson

  # Machine-readable gate result for pipeline logs
  geoqa check --output json parcels.geojson

  # Gate without recording the run
  geoqa check --store-backend none parcels.geojson`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Gate evaluation is done in ExecuteCheck
		if err := core.ExecuteCheck(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Quality gate failed", err)
		}
	},
}
