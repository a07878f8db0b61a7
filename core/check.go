package core

import (
	"github.com/geoqa/geoqa/schema"
)

// EvaluateGate decides whether an assessment clears the minimum score bar.
// Passing requires both the score threshold and zero failed checks, so a
// dataset cannot buy its way past a missing CRS with perfect attributes.
func EvaluateGate(result *schema.AssessmentResult, minScore float64) schema.GateResult {
	gate := schema.GateResult{
		Score:    result.Score.Value,
		MinScore: minScore,
	}

	for _, check := range result.Checks {
		switch check.Status {
		case schema.FailStatus:
			gate.FailedChecks = append(gate.FailedChecks, check)
		case schema.WarnStatus:
			gate.WarnedChecks = append(gate.WarnedChecks, check)
		}
	}

	gate.Passed = gate.Score >= minScore && len(gate.FailedChecks) == 0
	return gate
}
