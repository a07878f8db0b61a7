package geodata

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/schema"
)

type geojsonOutFeature struct {
	Type       string          `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

type geojsonOutCollection struct {
	Type     string              `json:"type"`
	CRS      json.RawMessage     `json:"crs,omitempty"`
	Features []geojsonOutFeature `json:"features"`
}

// WriteGeoJSON serializes a dataset as a GeoJSON FeatureCollection, stdout
// when path is empty. Features whose source geometry never decoded come out
// with a null geometry, so the output keeps the input's feature count.
func WriteGeoJSON(path string, ds contract.Dataset) error {
	fc := geojsonOutCollection{
		Type: "FeatureCollection",
		CRS:  encodeGeoJSONCRS(ds.CRS()),
	}

	fc.Features = make([]geojsonOutFeature, 0, ds.FeatureCount())
	for i := range ds.FeatureCount() {
		out, err := encodeGeoJSONFeature(ds.Feature(i))
		if err != nil {
			return fmt.Errorf("encode feature %d: %w", i, err)
		}
		fc.Features = append(fc.Features, out)
	}

	file, err := contract.SelectOutputFile(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(fc)
}

func encodeGeoJSONFeature(f schema.Feature) (geojsonOutFeature, error) {
	out := geojsonOutFeature{
		Type:       "Feature",
		Geometry:   json.RawMessage("null"),
		Properties: f.Attrs,
	}
	if f.Attrs == nil {
		out.Properties = map[string]any{}
	}
	if f.Geometry == nil {
		return out, nil
	}
	if f.Geometry.Empty() {
		out.Geometry = encodeEmptyGeometry(f.Geometry)
		return out, nil
	}

	raw, err := geojson.Marshal(f.Geometry)
	if err != nil {
		return geojsonOutFeature{}, err
	}
	out.Geometry = raw
	return out, nil
}

// Empty geometries encode with an explicit empty coordinates array, the form
// RFC 7946 prescribes. Points need this path because their coordinate
// accessor requires exactly one position.
func encodeEmptyGeometry(g geom.T) json.RawMessage {
	switch t := schema.GeometryTypeOf(g); t {
	case schema.GeometryCollectionType:
		return json.RawMessage(`{"type":"GeometryCollection","geometries":[]}`)
	case schema.UnknownType:
		return json.RawMessage("null")
	default:
		return json.RawMessage(`{"type":"` + string(t) + `","coordinates":[]}`)
	}
}

// encodeGeoJSONCRS emits the legacy crs member. EPSG:4326 is the RFC 7946
// default and stays implicit; an undeclared system becomes an explicit null
// so a round trip through the reader preserves it.
func encodeGeoJSONCRS(crs *schema.CRSInfo) json.RawMessage {
	if crs == nil {
		return json.RawMessage("null")
	}
	if crs.Code == "EPSG:4326" {
		return nil
	}

	authority, code, found := strings.Cut(crs.Code, ":")
	if !found {
		return nil
	}
	member := fmt.Sprintf(
		`{"type":"name","properties":{"name":"urn:ogc:def:crs:%s::%s"}}`,
		authority, code,
	)
	return json.RawMessage(member)
}
