package core

import (
	"slices"
	"sort"

	"github.com/geoqa/geoqa/schema"
)

// RankColumnsByNulls orders columns by descending null percentage and keeps
// the first limit entries. Ties preserve dataset column order. A limit of
// zero or less returns all columns.
func RankColumnsByNulls(columns []schema.AttributeColumnStats, limit int) []schema.AttributeColumnStats {
	ranked := slices.Clone(columns)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].NullPct > ranked[j].NullPct
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
