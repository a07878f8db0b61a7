// Package schema has models, enums and shared constants for all parts of geoqa.
package schema

import (
	"github.com/twpayne/go-geom"
)

// Feature represents one dataset record: a geometry value plus a mapping of
// attribute names to attribute values. Identity is the feature's index
// position in the dataset, stable for the lifetime of one assessment.
type Feature struct {
	Geometry  geom.T         // nil when the source record carries no geometry
	Malformed string         // decode failure text when the source geometry could not be parsed
	Attrs     map[string]any // attribute values; entries may be nil
}

// GeometryClassification is the per-feature result of the geometry checker.
// Computed once per feature and never mutated after computation.
type GeometryClassification struct {
	Index    int          `json:"index"`
	Status   GeomStatus   `json:"status"`
	Empty    bool         `json:"empty"`
	Type     GeometryType `json:"type"`
	Vertices int          `json:"vertices"`
	Reason   string       `json:"reason,omitempty"` // set when Status is invalid
}

// DuplicateGroup holds the ascending feature indices whose geometries are
// byte-identical under the canonical binary encoding. Groups always have at
// least two members; singletons are not represented.
type DuplicateGroup struct {
	Indices []int `json:"indices"`
}

// VertexStats aggregates per-feature vertex counts over all present geometries.
type VertexStats struct {
	Total int     `json:"total"`
	Mean  float64 `json:"mean"`
	Min   int     `json:"min"`
	Max   int     `json:"max"`
}

// InvalidFeature identifies one invalid geometry and why it failed.
type InvalidFeature struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// GeometrySummary is the dataset-wide output of the geometry checker.
type GeometrySummary struct {
	Total           int                  `json:"total"`
	ValidCount      int                  `json:"valid_count"`
	InvalidCount    int                  `json:"invalid_count"`
	MissingCount    int                  `json:"missing_count"`
	EmptyCount      int                  `json:"empty_count"`
	TypeHistogram   map[GeometryType]int `json:"type_histogram"`
	MixedTypes      bool                 `json:"mixed_types"`
	DuplicateGroups []DuplicateGroup     `json:"duplicate_groups,omitempty"`
	DuplicateCount  int                  `json:"duplicate_count"` // redundant copies beyond each group's first member
	InvalidFeatures []InvalidFeature     `json:"invalid_features,omitempty"`
	Vertices        *VertexStats         `json:"vertices,omitempty"`
}

// GeometryTypeOf maps a geometry value to its GeometryType.
func GeometryTypeOf(g geom.T) GeometryType {
	switch g.(type) {
	case *geom.Point:
		return PointType
	case *geom.MultiPoint:
		return MultiPointType
	case *geom.LineString:
		return LineStringType
	case *geom.MultiLineString:
		return MultiLineStringType
	case *geom.Polygon:
		return PolygonType
	case *geom.MultiPolygon:
		return MultiPolygonType
	case *geom.GeometryCollection:
		return GeometryCollectionType
	default:
		return UnknownType
	}
}

// IsPolygonal reports whether the type carries area.
func (t GeometryType) IsPolygonal() bool {
	return t == PolygonType || t == MultiPolygonType
}

// IsLinear reports whether the type carries length.
func (t GeometryType) IsLinear() bool {
	return t == LineStringType || t == MultiLineStringType
}

// IsPuntal reports whether the type is point-like.
func (t GeometryType) IsPuntal() bool {
	return t == PointType || t == MultiPointType
}
