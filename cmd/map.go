package cmd

import (
	"github.com/geoqa/geoqa/core"
	"github.com/geoqa/geoqa/internal/contract"
	"github.com/spf13/cobra"
)

// mapCmd renders the interactive inspection map.
var mapCmd = &cobra.Command{
	Use:   "map <dataset>",
	Short: "Write an interactive HTML map of the assessed dataset.",
	Long: `Assess a dataset and render its features on an interactive Leaflet map.

Invalid geometries are highlighted in red and duplicates in orange so
problem features can be located visually. Feature popups show the attribute
values and the per-feature classification. The view fits the dataset extent
automatically.

The map loads Leaflet from a CDN; everything else (including the feature
data) is embedded in the single HTML file. Datasets in a projected reference
system are drawn as-is with a warning, since Leaflet expects degrees.

Examples:
  # Write geoqa_map.html in the current directory
  geoqa map parcels.geojson

  # Choose the output location
  geoqa map --output-file reviews/parcels_map.html parcels.geojson`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMap(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot write map", err)
		}
	},
}
