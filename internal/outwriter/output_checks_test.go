package outwriter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteGateResultsTablePassed(t *testing.T) {
	result := sampleAssessment()
	gate := &schema.GateResult{
		Passed:   true,
		Score:    87.3,
		MinScore: 60.0,
	}
	cfg := &contract.Config{
		Output:       schema.TextOut,
		Precision:    1,
		Workers:      4,
		StoreBackend: schema.SQLiteBackend,
		Width:        120,
	}

	var buf bytes.Buffer
	err := WriteGateResults(&buf, result, gate, cfg, 80*time.Millisecond)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "geometry_validity")
	assert.Contains(t, output, "PASSED: score 87.3, minimum 60.0")
	assert.NotContains(t, output, "Failed checks")
	assert.Contains(t, output, "Assessment completed in 80ms with 4 workers. Store backend: sqlite")
}

func TestWriteGateResultsTableFailed(t *testing.T) {
	result := sampleAssessment()
	gate := &schema.GateResult{
		Passed:   false,
		Score:    45.2,
		MinScore: 60.0,
		FailedChecks: []schema.CheckResult{
			{Name: schema.CheckGeometryValidity, Severity: schema.HighSeverity, Status: schema.FailStatus, Issues: 40},
			{Name: schema.CheckCRSDefined, Severity: schema.HighSeverity, Status: schema.FailStatus, Issues: 1},
		},
		WarnedChecks: []schema.CheckResult{
			{Name: schema.CheckEmptyGeometries, Severity: schema.MediumSeverity, Status: schema.WarnStatus, Issues: 3},
		},
	}
	cfg := &contract.Config{
		Output:       schema.TextOut,
		Precision:    1,
		Workers:      2,
		StoreBackend: schema.NoneBackend,
		Width:        120,
	}

	var buf bytes.Buffer
	err := WriteGateResults(&buf, result, gate, cfg, 30*time.Millisecond)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "FAILED: score 45.2, minimum 60.0")
	assert.Contains(t, output, "Failed checks: geometry_validity, crs_defined")
	assert.Contains(t, output, "Warned checks: empty_geometries")
}

func TestWriteGateResultsJSON(t *testing.T) {
	result := sampleAssessment()
	gate := &schema.GateResult{
		Passed:   true,
		Score:    87.3,
		MinScore: 60.0,
	}
	cfg := &contract.Config{
		Output:    schema.JSONOut,
		Precision: 1,
	}

	var buf bytes.Buffer
	err := WriteGateResults(&buf, result, gate, cfg, time.Millisecond)
	require.NoError(t, err)

	var parsed map[string]any
	err = json.Unmarshal(buf.Bytes(), &parsed)
	require.NoError(t, err)

	assert.Equal(t, true, parsed["passed"])
	assert.Equal(t, 87.3, parsed["score"])
	assert.Equal(t, 60.0, parsed["min_score"])
}

func TestWriteGateResultsCSV(t *testing.T) {
	result := sampleAssessment()
	gate := &schema.GateResult{
		Passed:   false,
		Score:    45.2,
		MinScore: 60.0,
	}
	cfg := &contract.Config{
		Output:    schema.CSVOut,
		Precision: 1,
	}

	var buf bytes.Buffer
	err := WriteGateResults(&buf, result, gate, cfg, time.Millisecond)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + 2 check rows

	assert.Contains(t, lines[0], "min_score")
	assert.Contains(t, lines[0], "passed")
	assert.Contains(t, lines[1], "geometry_validity")
	assert.Contains(t, lines[1], "45.2")
	assert.Contains(t, lines[1], "false")
}

func TestFormatGateVerdict(t *testing.T) {
	fmtFloat, _ := createFormatters(1)

	tests := []struct {
		name     string
		gate     *schema.GateResult
		cfg      *contract.Config
		expected string
	}{
		{
			name:     "passed plain",
			gate:     &schema.GateResult{Passed: true, Score: 80.0, MinScore: 60.0},
			cfg:      &contract.Config{},
			expected: "PASSED: score 80.0, minimum 60.0",
		},
		{
			name:     "failed plain",
			gate:     &schema.GateResult{Passed: false, Score: 40.0, MinScore: 60.0},
			cfg:      &contract.Config{},
			expected: "FAILED: score 40.0, minimum 60.0",
		},
		{
			name:     "passed with emoji",
			gate:     &schema.GateResult{Passed: true, Score: 80.0, MinScore: 60.0},
			cfg:      &contract.Config{UseEmojis: true},
			expected: "✅ PASSED: score 80.0, minimum 60.0",
		},
		{
			name:     "failed with emoji",
			gate:     &schema.GateResult{Passed: false, Score: 40.0, MinScore: 60.0},
			cfg:      &contract.Config{UseEmojis: true},
			expected: "❌ FAILED: score 40.0, minimum 60.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatGateVerdict(tt.gate, tt.cfg, fmtFloat))
		})
	}
}

func TestJoinCheckNames(t *testing.T) {
	checks := []schema.CheckResult{
		{Name: schema.CheckGeometryValidity},
		{Name: schema.CheckCRSDefined},
	}
	assert.Equal(t, "geometry_validity, crs_defined", joinCheckNames(checks))
	assert.Equal(t, "", joinCheckNames(nil))
}

func TestWriteChecksTable(t *testing.T) {
	checks := []schema.CheckResult{
		{
			Name:     schema.CheckDuplicateGeometries,
			Severity: schema.MediumSeverity,
			Status:   schema.WarnStatus,
			Issues:   2,
			Detail:   "2 duplicates in 1 group",
		},
	}
	cfg := &contract.Config{Width: 120}

	var buf bytes.Buffer
	err := writeChecksTable(&buf, checks, cfg, "%d")
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "duplicate_geometries")
	assert.Contains(t, output, "medium")
	assert.Contains(t, output, "warn")
	assert.Contains(t, output, "2 duplicates in 1 group")
}
