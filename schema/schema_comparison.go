package schema

// ComponentDelta is the change of one score component between two assessments.
type ComponentDelta struct {
	Component ComponentKey `json:"component"`
	Before    float64      `json:"before"` // raw percentage
	After     float64      `json:"after"`
	Delta     float64      `json:"delta"`
}

// CheckTransition records a quality check whose status changed.
type CheckTransition struct {
	Name   CheckName   `json:"name"`
	Before CheckStatus `json:"before"`
	After  CheckStatus `json:"after"`
}

// ComparisonResult holds the delta between a base and a target assessment.
type ComparisonResult struct {
	BaseDataset   string            `json:"base_dataset"`
	TargetDataset string            `json:"target_dataset"`
	BaseScore     float64           `json:"base_score"`
	TargetScore   float64           `json:"target_score"`
	ScoreDelta    float64           `json:"score_delta"`
	Components    []ComponentDelta  `json:"components"`
	Transitions   []CheckTransition `json:"transitions,omitempty"`
	DeltaFeatures int               `json:"delta_features"`
}
