// Package webmap renders an assessed dataset as an interactive Leaflet map.
// The page embeds the full feature collection as GeoJSON and colors every
// feature by its quality status, so flagged geometries can be inspected
// visually without any server side. Only the Leaflet assets and the
// OpenStreetMap tiles load from the network.
package webmap

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/schema"
)

// DefaultFileName is used when no output file is configured.
const DefaultFileName = "geoqa_map.html"

// statusProperty carries the quality classification of each feature into the
// embedded GeoJSON, where the page styles and labels by it.
const statusProperty = "_geoqa_status"

// maxPopupColumns caps how many attribute columns a feature popup lists.
const maxPopupColumns = 5

// Feature statuses as they appear in the embedded GeoJSON. A feature gets the
// most severe status that applies: invalid beats duplicate. Missing and empty
// geometries have nothing to draw and stay out of the collection, counted in
// the header instead.
const (
	validStatus     = "valid"
	invalidStatus   = "invalid"
	duplicateStatus = "duplicate"
)

//go:embed webmap.gohtml
var mapTemplate string

var tmpl = template.Must(template.New("webmap").Parse(mapTemplate))

// mapData is the template payload for the map page.
type mapData struct {
	Dataset      string
	Score        string
	Label        string
	FeatureCount int
	FlaggedCount int
	SkippedCount int
	Warning      string
	GeoJSON      template.JS
}

// GeoJSON output shapes, matching RFC 7946 member names.
type geojsonMapFeature struct {
	Type       string          `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

type geojsonMapCollection struct {
	Type     string              `json:"type"`
	Features []geojsonMapFeature `json:"features"`
}

// Write renders the dataset and its assessment as a single HTML page. The
// result must come from assessing the same dataset, since the invalid and
// duplicate feature indices are taken from its geometry summary.
func Write(w io.Writer, ds contract.Dataset, result *schema.AssessmentResult, cfg *contract.Config) error {
	data, err := buildMapData(ds, result, cfg)
	if err != nil {
		return err
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render map: %w", err)
	}
	return nil
}

func buildMapData(ds contract.Dataset, result *schema.AssessmentResult, cfg *contract.Config) (mapData, error) {
	invalid := invalidIndexSet(result.Geometry)
	duplicate := duplicateIndexSet(result.Geometry)

	popupColumns := ds.Columns()
	if len(popupColumns) > maxPopupColumns {
		popupColumns = popupColumns[:maxPopupColumns]
	}

	collection := geojsonMapCollection{
		Type:     "FeatureCollection",
		Features: make([]geojsonMapFeature, 0, ds.FeatureCount()),
	}
	flagged := 0
	skipped := 0
	for i := range ds.FeatureCount() {
		f := ds.Feature(i)
		if f.Geometry == nil || f.Geometry.Empty() {
			skipped++
			continue
		}
		raw, err := geojson.Marshal(f.Geometry)
		if err != nil {
			return mapData{}, fmt.Errorf("failed to encode feature %d: %w", i, err)
		}
		status := statusFor(i, invalid, duplicate)
		if status != validStatus {
			flagged++
		}
		props := make(map[string]any, len(popupColumns)+1)
		for _, name := range popupColumns {
			if v, ok := f.Attrs[name]; ok {
				props[name] = v
			}
		}
		props[statusProperty] = status
		collection.Features = append(collection.Features, geojsonMapFeature{
			Type:       "Feature",
			Geometry:   raw,
			Properties: props,
		})
	}

	encoded, err := json.Marshal(collection)
	if err != nil {
		return mapData{}, fmt.Errorf("failed to encode feature collection: %w", err)
	}

	return mapData{
		Dataset:      result.Dataset,
		Score:        fmt.Sprintf("%.*f", cfg.Precision, result.Score.Value),
		Label:        contract.GetPlainLabel(result.Score.Value),
		FeatureCount: result.FeatureCount,
		FlaggedCount: flagged,
		SkippedCount: skipped,
		Warning:      crsWarning(result.Spatial.CRS),
		GeoJSON:      template.JS(encoded),
	}, nil
}

// statusFor classifies one drawable feature for the map.
func statusFor(index int, invalid, duplicate map[int]bool) string {
	switch {
	case invalid[index]:
		return invalidStatus
	case duplicate[index]:
		return duplicateStatus
	default:
		return validStatus
	}
}

func invalidIndexSet(geo schema.GeometrySummary) map[int]bool {
	set := make(map[int]bool, len(geo.InvalidFeatures))
	for _, inv := range geo.InvalidFeatures {
		set[inv.Index] = true
	}
	return set
}

func duplicateIndexSet(geo schema.GeometrySummary) map[int]bool {
	set := make(map[int]bool)
	for _, group := range geo.DuplicateGroups {
		for _, idx := range group.Indices {
			set[idx] = true
		}
	}
	return set
}

// crsWarning explains why features may land in the wrong place. Coordinates
// are drawn exactly as stored, never reprojected, so anything that is not
// plain WGS 84 degrees deserves a banner.
func crsWarning(crs *schema.CRSInfo) string {
	switch {
	case crs == nil:
		return "No coordinate reference system is declared. Coordinates are drawn as degrees and may not line up with the basemap."
	case crs.Projected:
		return fmt.Sprintf("Dataset uses projected reference system %s. Coordinates are drawn without reprojection and will not line up with the basemap.", crs.Code)
	default:
		return ""
	}
}
