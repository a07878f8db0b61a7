package schema

// CRSInfo describes the dataset's declared coordinate reference system.
type CRSInfo struct {
	Code       string `json:"code"` // authority code, e.g. "EPSG:4326"
	Name       string `json:"name,omitempty"`
	Units      string `json:"units,omitempty"`
	Geographic bool   `json:"geographic"`
	Projected  bool   `json:"projected"`
}

// Extent is the union of per-feature bounding boxes over all non-empty
// geometries, with a derived center. Coordinates are in the dataset's native
// units, rounded to six decimals.
type Extent struct {
	MinX    float64 `json:"min_x"`
	MinY    float64 `json:"min_y"`
	MaxX    float64 `json:"max_x"`
	MaxY    float64 `json:"max_y"`
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
}

// Width returns the extent span along the x axis.
func (e Extent) Width() float64 { return e.MaxX - e.MinX }

// Height returns the extent span along the y axis.
func (e Extent) Height() float64 { return e.MaxY - e.MinY }

// Measure kinds reported per geometry type.
const (
	AreaMeasure      = "area"
	PerimeterMeasure = "perimeter"
	LengthMeasure    = "length"
)

// MeasureSummary summarizes one size measure (area, perimeter or length)
// over the non-empty geometries of a single type.
type MeasureSummary struct {
	Kind   string  `json:"kind"` // "area", "perimeter" or "length"
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Total  float64 `json:"total"`
}

// SpatialSummary is the dataset-wide output of the spatial analyzer. CRS is
// nil when the dataset declares no reference system; Bounds is nil when no
// non-empty geometry exists.
type SpatialSummary struct {
	CRS          *CRSInfo                          `json:"crs,omitempty"`
	Bounds       *Extent                           `json:"bounds,omitempty"`
	DominantType GeometryType                      `json:"dominant_type,omitempty"`
	Measures     map[GeometryType][]MeasureSummary `json:"measures,omitempty"`
}
