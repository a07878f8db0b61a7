package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geoqa/geoqa/schema"
)

// FuzzBuildScore fuzzes buildScore with random count combinations and
// checks the bound and reconstruction invariants.
func FuzzBuildScore(f *testing.F) {
	f.Add(uint8(100), uint8(95), uint8(0), uint8(90), false)
	f.Add(uint8(0), uint8(0), uint8(0), uint8(0), true)
	f.Add(uint8(10), uint8(10), uint8(10), uint8(10), true)
	f.Add(uint8(7), uint8(3), uint8(2), uint8(5), false)

	f.Fuzz(func(t *testing.T, total, valid, empty, nonNull uint8, crsDefined bool) {
		geo := schema.GeometrySummary{
			Total:      int(total),
			ValidCount: min(int(valid), int(total)),
			EmptyCount: min(int(empty), int(total)),
		}
		columns := []schema.AttributeColumnStats{
			{Name: "col", NonNullCount: min(int(nonNull), int(total))},
		}

		score := buildScore(geo, columns, crsDefined)

		assert.GreaterOrEqual(t, score.Value, 0.0)
		assert.LessOrEqual(t, score.Value, 100.0)

		var sum float64
		for _, component := range score.Components {
			sum += component.Weighted
		}
		assert.InDelta(t, roundTo(sum, scorePrecision), score.Value, 1e-9)
	})
}

// FuzzClassifyValue fuzzes the attribute kind mapping with strings and
// floats. Classification must never panic and nulls must stay nulls.
func FuzzClassifyValue(f *testing.F) {
	f.Add("hello", 1.5)
	f.Add("", 0.0)
	f.Add("üñíçødé", -2.25)

	f.Fuzz(func(t *testing.T, s string, v float64) {
		kind, _ := classifyValue(s)
		assert.Equal(t, schema.TextKind, kind)

		kind, num := classifyValue(v)
		if kind == schema.NumericKind {
			assert.Equal(t, v, num)
		} else {
			assert.Equal(t, schema.NullKind, kind)
		}
	})
}
