package cmd

import (
	"github.com/geoqa/geoqa/core"
	"github.com/geoqa/geoqa/internal/contract"
	"github.com/spf13/cobra"
)

// profileCmd performs the full quality assessment.
var profileCmd = &cobra.Command{
	Use:   "profile <dataset>",
	Short: "Show the full quality profile for a dataset.",
	Long: `Assess a vector dataset and print its complete quality profile.

Runs every geometry, attribute, and spatial check in one pass, helping you:
- See the weighted 0-100 quality score and its component breakdown
- Spot invalid, empty, missing, and duplicate geometries
- Review per-column attribute completeness at a glance
- Confirm the declared reference system and bounding extent
- Judge whether a dataset is fit for production use

Each profile run is recorded in the run store so score trends can be
reviewed later with 'geoqa history'.

Examples:
  # Profile a GeoJSON dataset
  geoqa profile parcels.geojson

  # Profile a GeoPackage with more workers
  geoqa profile --workers 8 buildings.gpkg

  # Emit the full result as JSON for scripting
  geoqa profile --output json parcels.geojson

  # One-off look without recording the run
  geoqa profile --store-backend none parcels.geojson`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteProfile(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run profile assessment", err)
		}
	},
}
