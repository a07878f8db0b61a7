package schema

// AssessmentResult is the full serializable snapshot of one assessment. It is
// the payload behind JSON output, the HTML report, the web map, the MCP tools
// and the run store. It carries no timestamps so identical inputs serialize
// to identical bytes.
type AssessmentResult struct {
	Dataset      string                 `json:"dataset"`
	Source       string                 `json:"source"`
	FeatureCount int                    `json:"feature_count"`
	ColumnCount  int                    `json:"column_count"`
	Score        QualityScore           `json:"score"`
	Checks       []CheckResult          `json:"checks"`
	Geometry     GeometrySummary        `json:"geometry"`
	Columns      []AttributeColumnStats `json:"columns"`
	Spatial      SpatialSummary         `json:"spatial"`
}

// FixReport summarizes one repair pass over a dataset.
type FixReport struct {
	Attempted int   `json:"attempted"` // invalid geometries the pass tried to repair
	Repaired  int   `json:"repaired"`
	Unfixable []int `json:"unfixable,omitempty"` // indices still invalid after the pass
}
