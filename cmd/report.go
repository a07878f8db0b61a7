package cmd

import (
	"github.com/geoqa/geoqa/core"
	"github.com/geoqa/geoqa/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd renders the standalone HTML report.
var reportCmd = &cobra.Command{
	Use:   "report <dataset>",
	Short: "Write a self-contained HTML quality report.",
	Long: `Assess a dataset and render the result as a single HTML file that can
be mailed or attached to a ticket without any extra assets.

The report includes:
- Score badge with the component contribution bars
- Full quality checks table with severities and statuses
- Geometry classification and complexity summary
- Worst columns by completeness plus the full column table
- Spatial extent, reference system, and per-type size measures

Examples:
  # Write geoqa_report.html in the current directory
  geoqa report parcels.geojson

  # Choose the output location
  geoqa report --output-file reviews/parcels.html parcels.geojson`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot write report", err)
		}
	},
}
