package schema

// ScoreComponent is one weighted sub-metric of the quality score. Raw is the
// component's raw percentage in [0,100]; Weighted is Weight * Raw.
type ScoreComponent struct {
	Weight   float64 `json:"weight"`
	Raw      float64 `json:"raw"`
	Weighted float64 `json:"weighted"`
}

// QualityScore is the single weighted 0-100 score with its breakdown. Value
// always equals the sum of weighted contributions rounded to one decimal, so
// the number is reconstructible from Components alone.
type QualityScore struct {
	Value      float64                         `json:"value"`
	Components map[ComponentKey]ScoreComponent `json:"components"`
}

// CheckResult is one named quality check outcome. Read-only once produced.
type CheckResult struct {
	Name     CheckName   `json:"name"`
	Severity Severity    `json:"severity"`
	Status   CheckStatus `json:"status"`
	Issues   int         `json:"issues"`
	Detail   string      `json:"detail"`
}

// GateResult holds the outcome of a policy gate evaluation.
type GateResult struct {
	Passed       bool          `json:"passed"`
	Score        float64       `json:"score"`
	MinScore     float64       `json:"min_score"`
	FailedChecks []CheckResult `json:"failed_checks,omitempty"`
	WarnedChecks []CheckResult `json:"warned_checks,omitempty"`
}
