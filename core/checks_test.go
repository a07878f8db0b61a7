package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoqa/geoqa/schema"
)

// TestStatusFor pins the threshold grid: high severity fails below the
// threshold, lower severities warn, and residual issues above the threshold
// still warn.
func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		raw      float64
		severity schema.Severity
		issues   int
		expected schema.CheckStatus
	}{
		{name: "clean pass", raw: 1.0, severity: schema.HighSeverity, issues: 0, expected: schema.PassStatus},
		{name: "high above threshold with issues", raw: 0.95, severity: schema.HighSeverity, issues: 3, expected: schema.WarnStatus},
		{name: "high below threshold", raw: 0.89, severity: schema.HighSeverity, issues: 5, expected: schema.FailStatus},
		{name: "medium below threshold", raw: 0.89, severity: schema.MediumSeverity, issues: 5, expected: schema.WarnStatus},
		{name: "low below threshold", raw: 0.5, severity: schema.LowSeverity, issues: 1, expected: schema.WarnStatus},
		{name: "exactly at threshold", raw: 0.90, severity: schema.HighSeverity, issues: 0, expected: schema.PassStatus},
		{name: "medium clean", raw: 0.95, severity: schema.MediumSeverity, issues: 0, expected: schema.PassStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, statusFor(tt.raw, tt.severity, tt.issues))
		})
	}
}

// TestBuildChecksOrder checks that the battery always reports in the fixed
// order, regardless of input.
func TestBuildChecksOrder(t *testing.T) {
	checks := buildChecks(schema.GeometrySummary{Total: 1, ValidCount: 1}, nil, nil)
	require.Len(t, checks, len(schema.AllChecks))

	names := make([]schema.CheckName, len(checks))
	for i, check := range checks {
		names[i] = check.Name
	}
	assert.Equal(t, schema.AllChecks, names)
}

// TestBuildChecksHealthy checks the pass details on a flawless dataset.
func TestBuildChecksHealthy(t *testing.T) {
	geo := schema.GeometrySummary{
		Total:         4,
		ValidCount:    4,
		TypeHistogram: map[schema.GeometryType]int{schema.PointType: 4},
	}
	columns := []schema.AttributeColumnStats{{Name: "a", NonNullCount: 4}}
	crs := &schema.CRSInfo{Code: "EPSG:4326"}

	byName := checksByName(buildChecks(geo, columns, crs))

	for name, check := range byName {
		assert.Equal(t, schema.PassStatus, check.Status, "check %s", name)
		assert.Zero(t, check.Issues, "check %s", name)
	}

	assert.Equal(t, "4 of 4 geometries valid", byName[schema.CheckGeometryValidity].Detail)
	assert.Equal(t, "no empty geometries", byName[schema.CheckEmptyGeometries].Detail)
	assert.Equal(t, "no duplicate geometries", byName[schema.CheckDuplicateGeometries].Detail)
	assert.Equal(t, "CRS: EPSG:4326", byName[schema.CheckCRSDefined].Detail)
	assert.Equal(t, "all attribute values present", byName[schema.CheckAttributeCompleteness].Detail)
	assert.Equal(t, "uniform type Point", byName[schema.CheckGeometryTypes].Detail)
}

// TestBuildChecksDegraded checks statuses and details on a dataset with
// every defect class present.
func TestBuildChecksDegraded(t *testing.T) {
	geo := schema.GeometrySummary{
		Total:           20,
		ValidCount:      17,
		InvalidCount:    2,
		MissingCount:    1,
		EmptyCount:      1,
		DuplicateCount:  2,
		DuplicateGroups: []schema.DuplicateGroup{{Indices: []int{3, 9}}},
		TypeHistogram: map[schema.GeometryType]int{
			schema.PointType:      15,
			schema.LineStringType: 4,
		},
		MixedTypes: true,
	}
	columns := []schema.AttributeColumnStats{
		{Name: "a", NullCount: 5, NonNullCount: 15},
		{Name: "b", NonNullCount: 20},
	}

	byName := checksByName(buildChecks(geo, columns, nil))

	validity := byName[schema.CheckGeometryValidity]
	assert.Equal(t, schema.FailStatus, validity.Status)
	assert.Equal(t, 3, validity.Issues)
	assert.Equal(t, "17 of 20 geometries valid (2 invalid, 1 missing)", validity.Detail)

	empty := byName[schema.CheckEmptyGeometries]
	assert.Equal(t, schema.WarnStatus, empty.Status)
	assert.Equal(t, 1, empty.Issues)
	assert.Equal(t, "1 empty geometries", empty.Detail)

	duplicates := byName[schema.CheckDuplicateGeometries]
	assert.Equal(t, schema.WarnStatus, duplicates.Status)
	assert.Equal(t, 2, duplicates.Issues)
	assert.Equal(t, "2 duplicate features in 1 groups", duplicates.Detail)

	crs := byName[schema.CheckCRSDefined]
	assert.Equal(t, schema.FailStatus, crs.Status)
	assert.Equal(t, 1, crs.Issues)
	assert.Equal(t, "no CRS declared", crs.Detail)

	completeness := byName[schema.CheckAttributeCompleteness]
	assert.Equal(t, schema.WarnStatus, completeness.Status)
	assert.Equal(t, 1, completeness.Issues)
	assert.Equal(t, "1 of 2 columns contain nulls", completeness.Detail)

	types := byName[schema.CheckGeometryTypes]
	assert.Equal(t, schema.WarnStatus, types.Status)
	assert.Equal(t, 4, types.Issues)
	assert.Equal(t, "4 of 19 features deviate from dominant type Point", types.Detail)
}

// TestBuildChecksZeroFeatures checks the battery stays total on an empty
// input instead of dividing by zero.
func TestBuildChecksZeroFeatures(t *testing.T) {
	checks := buildChecks(schema.GeometrySummary{}, nil, nil)

	require.Len(t, checks, len(schema.AllChecks))
	for _, check := range checks {
		assert.Equal(t, "no features", check.Detail, check.Name)
		assert.Zero(t, check.Issues, check.Name)
	}

	byName := checksByName(checks)
	assert.Equal(t, schema.FailStatus, byName[schema.CheckGeometryValidity].Status)
	assert.Equal(t, schema.WarnStatus, byName[schema.CheckEmptyGeometries].Status)
	assert.Equal(t, schema.FailStatus, byName[schema.CheckCRSDefined].Status)
	assert.Equal(t, schema.WarnStatus, byName[schema.CheckGeometryTypes].Status)
}

func checksByName(checks []schema.CheckResult) map[schema.CheckName]schema.CheckResult {
	byName := make(map[schema.CheckName]schema.CheckResult, len(checks))
	for _, check := range checks {
		byName[check.Name] = check
	}
	return byName
}
