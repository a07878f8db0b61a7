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

func TestWriteFixResultsText(t *testing.T) {
	report := &schema.FixReport{
		Attempted: 5,
		Repaired:  3,
		Unfixable: []int{14, 73},
	}
	cfg := &contract.Config{Output: schema.TextOut}

	var buf bytes.Buffer
	err := WriteFixResults(&buf, report, "/data/roads_fixed.geojson", cfg, 40*time.Millisecond)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Attempted repairs: 5")
	assert.Contains(t, output, "Repaired: 3")
	assert.Contains(t, output, "Unfixable: 2 (indices 14, 73)")
	assert.Contains(t, output, "Wrote repaired dataset to /data/roads_fixed.geojson")
	assert.Contains(t, output, "Repair completed in 40ms.")
}

func TestWriteFixResultsTextNothingToRepair(t *testing.T) {
	report := &schema.FixReport{}
	cfg := &contract.Config{Output: schema.TextOut}

	var buf bytes.Buffer
	err := WriteFixResults(&buf, report, "", cfg, time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, "No invalid geometries to repair.\n", buf.String())
}

func TestWriteFixResultsTextAllRepaired(t *testing.T) {
	report := &schema.FixReport{
		Attempted: 4,
		Repaired:  4,
	}
	cfg := &contract.Config{Output: schema.TextOut}

	var buf bytes.Buffer
	err := WriteFixResults(&buf, report, "", cfg, time.Millisecond)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Unfixable: 0")
	assert.NotContains(t, output, "indices")
	assert.NotContains(t, output, "Wrote repaired dataset")
}

func TestWriteFixResultsJSON(t *testing.T) {
	report := &schema.FixReport{
		Attempted: 5,
		Repaired:  3,
		Unfixable: []int{14, 73},
	}
	cfg := &contract.Config{Output: schema.JSONOut}

	var buf bytes.Buffer
	err := WriteFixResults(&buf, report, "/data/roads_fixed.geojson", cfg, time.Millisecond)
	require.NoError(t, err)

	var parsed map[string]any
	err = json.Unmarshal(buf.Bytes(), &parsed)
	require.NoError(t, err)

	assert.Equal(t, "/data/roads_fixed.geojson", parsed["output"])
	assert.Equal(t, float64(5), parsed["attempted"]) // JSON numbers are float64
	assert.Equal(t, float64(3), parsed["repaired"])

	unfixable, ok := parsed["unfixable"].([]any)
	require.True(t, ok)
	assert.Len(t, unfixable, 2)
}

func TestWriteFixResultsCSV(t *testing.T) {
	report := &schema.FixReport{
		Attempted: 5,
		Repaired:  3,
		Unfixable: []int{14, 73},
	}
	cfg := &contract.Config{Output: schema.CSVOut}

	var buf bytes.Buffer
	err := WriteFixResults(&buf, report, "/data/roads_fixed.geojson", cfg, time.Millisecond)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t, "attempted,repaired,unfixable,unfixable_indices,output", lines[0])
	assert.Equal(t, "5,3,2,14|73,/data/roads_fixed.geojson", lines[1])
}

func TestJoinIndices(t *testing.T) {
	assert.Equal(t, "14, 73", joinIndices([]int{14, 73}))
	assert.Equal(t, "7", joinIndices([]int{7}))
	assert.Equal(t, "", joinIndices(nil))
}
