package core

import (
	"math"
	"sort"

	"github.com/geoqa/geoqa/schema"
)

// CompareProfiles diffs two assessments, typically of two versions of the
// same dataset. Component deltas cover the raw percentages before
// weighting, so a drop reads the same regardless of component weight.
func CompareProfiles(base, target *Profile) schema.ComparisonResult {
	result := schema.ComparisonResult{
		BaseDataset:   base.dataset,
		TargetDataset: target.dataset,
		BaseScore:     base.score.Value,
		TargetScore:   target.score.Value,
		ScoreDelta:    roundTo(target.score.Value-base.score.Value, scorePrecision),
		DeltaFeatures: target.geometry.Total - base.geometry.Total,
	}

	for key, baseComponent := range base.score.Components {
		targetComponent := target.score.Components[key]
		result.Components = append(result.Components, schema.ComponentDelta{
			Component: key,
			Before:    baseComponent.Raw,
			After:     targetComponent.Raw,
			Delta:     roundTo(targetComponent.Raw-baseComponent.Raw, statsPrecision),
		})
	}
	sortComponentDeltas(result.Components)

	baseChecks := make(map[schema.CheckName]schema.CheckResult, len(base.checks))
	for _, check := range base.checks {
		baseChecks[check.Name] = check
	}
	for _, targetCheck := range target.checks {
		baseCheck, ok := baseChecks[targetCheck.Name]
		if !ok || baseCheck.Status == targetCheck.Status {
			continue
		}
		result.Transitions = append(result.Transitions, schema.CheckTransition{
			Name:   targetCheck.Name,
			Before: baseCheck.Status,
			After:  targetCheck.Status,
		})
	}

	return result
}

// sortComponentDeltas sorts deltas by absolute delta, then delta sign, then
// component name.
func sortComponentDeltas(deltas []schema.ComponentDelta) {
	sort.Slice(deltas, func(i, j int) bool {
		a := deltas[i]
		b := deltas[j]

		// Primary: Absolute delta (descending)
		absA := math.Abs(a.Delta)
		absB := math.Abs(b.Delta)
		if absA != absB {
			return absA > absB
		}

		// Secondary: Delta sign (positive before negative)
		if a.Delta != b.Delta {
			return a.Delta > b.Delta
		}

		// Tertiary: Component name (ascending)
		return a.Component < b.Component
	})
}
