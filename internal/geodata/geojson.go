package geodata

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/schema"
)

type geojsonCollection struct {
	Type     string            `json:"type"`
	CRS      json.RawMessage   `json:"crs"`
	Features []json.RawMessage `json:"features"`
}

type geojsonFeature struct {
	Geometry   json.RawMessage `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

// OpenGeoJSON loads a GeoJSON FeatureCollection. A file that is not valid
// JSON or not a FeatureCollection fails here; a feature whose geometry does
// not decode is kept and marked malformed so the assessment can report it.
func OpenGeoJSON(path string) (contract.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var fc geojsonCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("decode %s: expected FeatureCollection, got %q", path, fc.Type)
	}

	features := make([]schema.Feature, 0, len(fc.Features))
	var columns []string
	seen := make(map[string]bool)
	for _, raw := range fc.Features {
		f := decodeGeoJSONFeature(raw)
		features = append(features, f)
		columns = appendNewColumns(columns, seen, f.Attrs)
	}

	name := contract.DatasetNameFromPath(path)
	return NewMemoryDataset(name, path, decodeGeoJSONCRS(fc.CRS), columns, features), nil
}

// decodeGeoJSONFeature decodes one feature, downgrading geometry decode
// failures to a malformed marker instead of an error.
func decodeGeoJSONFeature(raw json.RawMessage) schema.Feature {
	var f geojsonFeature
	if err := json.Unmarshal(raw, &f); err != nil {
		return schema.Feature{Malformed: err.Error()}
	}

	feature := schema.Feature{Attrs: f.Properties}
	if len(f.Geometry) == 0 || string(f.Geometry) == "null" {
		return feature
	}

	var g geom.T
	if err := geojson.Unmarshal(f.Geometry, &g); err != nil {
		feature.Malformed = err.Error()
		return feature
	}
	feature.Geometry = g
	return feature
}

// decodeGeoJSONCRS resolves the legacy crs member. RFC 7946 dropped the
// member and fixed the reference system to WGS 84, so an absent member
// means EPSG:4326 while an explicit null means the producer declared none.
func decodeGeoJSONCRS(raw json.RawMessage) *schema.CRSInfo {
	if len(raw) == 0 {
		return crsFromCode("EPSG:4326")
	}
	if string(raw) == "null" {
		return nil
	}

	var legacy struct {
		Properties struct {
			Name string `json:"name"`
		} `json:"properties"`
	}
	if err := json.Unmarshal(raw, &legacy); err != nil || legacy.Properties.Name == "" {
		return nil
	}
	return parseCRSName(legacy.Properties.Name)
}

// appendNewColumns folds a feature's attribute names into the running
// column list. Decoding loses JSON object order, so names introduced by the
// same feature land alphabetically.
func appendNewColumns(columns []string, seen map[string]bool, attrs map[string]any) []string {
	fresh := make([]string, 0, len(attrs))
	for name := range attrs {
		if !seen[name] {
			seen[name] = true
			fresh = append(fresh, name)
		}
	}
	sort.Strings(fresh)
	return append(columns, fresh...)
}
