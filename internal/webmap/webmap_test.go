package webmap

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/internal/geodata"
	"github.com/geoqa/geoqa/schema"
)

func sampleMapDataset() *geodata.MemoryDataset {
	crs := &schema.CRSInfo{Code: "EPSG:4326", Name: "WGS 84", Units: "degree", Geographic: true}
	columns := []string{"name", "lanes", "surface", "width", "speed", "observed"}
	features := []schema.Feature{
		{
			Geometry: geom.NewLineString(geom.XY).MustSetCoords([]geom.Coord{{13.1, 52.5}, {13.2, 52.6}}),
			Attrs:    map[string]any{"name": "Hauptstrasse", "lanes": 2, "observed": "2025-06-01"},
		},
		{
			Geometry: geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{
				{{0, 0}, {2, 2}, {2, 0}, {0, 2}, {0, 0}},
			}),
			Attrs: map[string]any{"name": "Bowtie"},
		},
		{Geometry: geom.NewPointEmpty(geom.XY)},
		{Geometry: geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{13.5, 52.4})},
		{Geometry: geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{13.5, 52.4})},
		{Malformed: "unclosed ring"},
	}
	return geodata.NewMemoryDataset("roads", "/data/roads.geojson", crs, columns, features)
}

func sampleMapResult() *schema.AssessmentResult {
	return &schema.AssessmentResult{
		Dataset:      "roads",
		Source:       "/data/roads.geojson",
		FeatureCount: 6,
		ColumnCount:  6,
		Score:        schema.QualityScore{Value: 74.2},
		Geometry: schema.GeometrySummary{
			Total:        6,
			ValidCount:   4,
			InvalidCount: 1,
			MissingCount: 1,
			EmptyCount:   1,
			InvalidFeatures: []schema.InvalidFeature{
				{Index: 1, Reason: "self-intersection"},
			},
			DuplicateGroups: []schema.DuplicateGroup{{Indices: []int{3, 4}}},
			DuplicateCount:  1,
		},
		Spatial: schema.SpatialSummary{
			CRS: &schema.CRSInfo{Code: "EPSG:4326", Name: "WGS 84", Units: "degree", Geographic: true},
		},
	}
}

func TestWriteMap(t *testing.T) {
	cfg := &contract.Config{Precision: 1}

	var buf bytes.Buffer
	err := Write(&buf, sampleMapDataset(), sampleMapResult(), cfg)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "<title>GeoQA Map: roads</title>")
	assert.Contains(t, html, "https://unpkg.com/leaflet@1.9.4/dist/leaflet.css")
	assert.Contains(t, html, "https://unpkg.com/leaflet@1.9.4/dist/leaflet.js")
	assert.Contains(t, html, "74.2/100 Fair")
	assert.Contains(t, html, "6 features, 3 flagged, 2 not drawn")
	assert.Contains(t, html, `"_geoqa_status":"valid"`)
	assert.Contains(t, html, `"_geoqa_status":"invalid"`)
	assert.Contains(t, html, `"_geoqa_status":"duplicate"`)
	assert.Contains(t, html, "Hauptstrasse")
	assert.Contains(t, html, "Duplicate geometry")
	assert.Contains(t, html, "fitBounds")

	// Geographic CRS needs no banner.
	assert.NotContains(t, html, `<div class="warning">`)
}

func TestWriteMapSkipsUndrawableGeometries(t *testing.T) {
	cfg := &contract.Config{Precision: 1}

	var buf bytes.Buffer
	err := Write(&buf, sampleMapDataset(), sampleMapResult(), cfg)
	require.NoError(t, err)

	// Four of the six features are drawable; the empty point and the
	// malformed feature are not.
	assert.Equal(t, 4, bytes.Count(buf.Bytes(), []byte(`"_geoqa_status"`)))
	assert.NotContains(t, buf.String(), "unclosed ring")
}

func TestWriteMapPopupColumnsLimited(t *testing.T) {
	cfg := &contract.Config{Precision: 1}

	var buf bytes.Buffer
	err := Write(&buf, sampleMapDataset(), sampleMapResult(), cfg)
	require.NoError(t, err)

	// "observed" is the sixth column, past the popup cap.
	assert.NotContains(t, buf.String(), "observed")
	assert.Contains(t, buf.String(), `"lanes":2`)
}

func TestWriteMapProjectedWarning(t *testing.T) {
	cfg := &contract.Config{Precision: 1}
	result := sampleMapResult()
	result.Spatial.CRS = &schema.CRSInfo{Code: "EPSG:25833", Name: "ETRS89 / UTM zone 33N", Units: "metre", Projected: true}

	var buf bytes.Buffer
	err := Write(&buf, sampleMapDataset(), result, cfg)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `<div class="warning">`)
	assert.Contains(t, buf.String(), "EPSG:25833")
	assert.Contains(t, buf.String(), "without reprojection")
}

func TestWriteMapMissingCRSWarning(t *testing.T) {
	cfg := &contract.Config{Precision: 1}
	result := sampleMapResult()
	result.Spatial.CRS = nil

	var buf bytes.Buffer
	err := Write(&buf, sampleMapDataset(), result, cfg)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "No coordinate reference system is declared")
}

func TestWriteMapEscapesValues(t *testing.T) {
	cfg := &contract.Config{Precision: 1}
	crs := &schema.CRSInfo{Code: "EPSG:4326", Geographic: true}
	features := []schema.Feature{
		{
			Geometry: geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{1, 2}),
			Attrs:    map[string]any{"name": "</script><script>alert(1)"},
		},
	}
	ds := geodata.NewMemoryDataset("roads<script>alert(1)</script>", "/tmp/x", crs, []string{"name"}, features)
	result := sampleMapResult()
	result.Dataset = "roads<script>alert(1)</script>"
	result.Geometry = schema.GeometrySummary{Total: 1, ValidCount: 1}

	var buf bytes.Buffer
	err := Write(&buf, ds, result, cfg)
	require.NoError(t, err)

	html := buf.String()
	assert.NotContains(t, html, "<script>alert(1)")
	assert.Contains(t, html, "&lt;script&gt;")
	// Attribute values reach the page through JSON, where the encoder
	// escapes angle brackets.
	assert.Contains(t, html, `</script>`)
}

func TestWriteMapEmptyDataset(t *testing.T) {
	cfg := &contract.Config{Precision: 1}
	ds := geodata.NewMemoryDataset("empty", "/tmp/empty.geojson", nil, nil, nil)
	result := &schema.AssessmentResult{Dataset: "empty", Score: schema.QualityScore{Value: 0}}

	var buf bytes.Buffer
	err := Write(&buf, ds, result, cfg)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"features":[]`)
}

func TestStatusFor(t *testing.T) {
	invalid := map[int]bool{1: true, 3: true}
	duplicate := map[int]bool{2: true, 3: true}

	assert.Equal(t, "valid", statusFor(0, invalid, duplicate))
	assert.Equal(t, "invalid", statusFor(1, invalid, duplicate))
	assert.Equal(t, "duplicate", statusFor(2, invalid, duplicate))
	// Invalid wins when both apply.
	assert.Equal(t, "invalid", statusFor(3, invalid, duplicate))
}

func TestIndexSets(t *testing.T) {
	geo := schema.GeometrySummary{
		InvalidFeatures: []schema.InvalidFeature{{Index: 4, Reason: "ring not closed"}},
		DuplicateGroups: []schema.DuplicateGroup{
			{Indices: []int{0, 7}},
			{Indices: []int{2, 3, 5}},
		},
	}

	assert.Equal(t, map[int]bool{4: true}, invalidIndexSet(geo))
	assert.Equal(t, map[int]bool{0: true, 2: true, 3: true, 5: true, 7: true}, duplicateIndexSet(geo))
}

func TestCrsWarning(t *testing.T) {
	assert.Contains(t, crsWarning(nil), "No coordinate reference system")
	assert.Contains(t, crsWarning(&schema.CRSInfo{Code: "EPSG:3857", Projected: true}), "EPSG:3857")
	assert.Empty(t, crsWarning(&schema.CRSInfo{Code: "EPSG:4326", Geographic: true}))
}
