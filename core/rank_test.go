package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geoqa/geoqa/schema"
)

// TestRankColumnsByNulls checks ordering, tie stability and truncation.
func TestRankColumnsByNulls(t *testing.T) {
	columns := []schema.AttributeColumnStats{
		{Name: "a", NullPct: 0},
		{Name: "b", NullPct: 50},
		{Name: "c", NullPct: 25},
		{Name: "d", NullPct: 50},
	}

	ranked := RankColumnsByNulls(columns, 3)

	names := make([]string, len(ranked))
	for i, col := range ranked {
		names[i] = col.Name
	}
	// b and d tie, so they keep their input order.
	assert.Equal(t, []string{"b", "d", "c"}, names)

	// The input slice stays in dataset order.
	assert.Equal(t, "a", columns[0].Name)
	assert.Equal(t, "b", columns[1].Name)

	all := RankColumnsByNulls(columns, 0)
	assert.Len(t, all, 4)

	assert.Len(t, RankColumnsByNulls(columns, 10), 4)
	assert.Empty(t, RankColumnsByNulls(nil, 5))
}
