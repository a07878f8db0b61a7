package core

import (
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/schema"
)

// profileAttributes computes per-column statistics over the whole dataset in
// a single scan. Column order follows the dataset's column order.
func profileAttributes(ds contract.Dataset, topValues int) []schema.AttributeColumnStats {
	names := ds.Columns()
	accs := make([]*columnAccumulator, len(names))
	for i, name := range names {
		accs[i] = newColumnAccumulator(name)
	}

	total := ds.FeatureCount()
	for i := range total {
		attrs := ds.Feature(i).Attrs
		for j, name := range names {
			accs[j].observe(attrs[name])
		}
	}

	columns := make([]schema.AttributeColumnStats, len(names))
	for i, acc := range accs {
		columns[i] = acc.finalize(total, topValues)
	}
	return columns
}

// columnAccumulator gathers the raw material for one column's statistics.
type columnAccumulator struct {
	name       string
	nullCount  int
	kindCounts map[schema.ColumnKind]int
	kindOrder  []schema.ColumnKind
	numbers    []float64
	textLens   []float64
	counts     map[string]int
	valueOrder []string
}

func newColumnAccumulator(name string) *columnAccumulator {
	return &columnAccumulator{
		name:       name,
		kindCounts: make(map[schema.ColumnKind]int),
		counts:     make(map[string]int),
	}
}

// observe folds one attribute value into the accumulator. Missing keys
// arrive as nil and count as nulls, as do NaN floats.
func (a *columnAccumulator) observe(v any) {
	kind, num := classifyValue(v)
	if kind == schema.NullKind {
		a.nullCount++
		return
	}

	if a.kindCounts[kind] == 0 {
		a.kindOrder = append(a.kindOrder, kind)
	}
	a.kindCounts[kind]++

	if kind == schema.NumericKind {
		a.numbers = append(a.numbers, num)
	}
	if s, ok := v.(string); ok {
		a.textLens = append(a.textLens, float64(len([]rune(s))))
	}

	key := schema.ValueString(v)
	if a.counts[key] == 0 {
		a.valueOrder = append(a.valueOrder, key)
	}
	a.counts[key]++
}

// finalize turns the accumulated material into column statistics.
func (a *columnAccumulator) finalize(total, topValues int) schema.AttributeColumnStats {
	nonNull := total - a.nullCount
	col := schema.AttributeColumnStats{
		Name:          a.name,
		Kind:          a.majorityKind(),
		NullCount:     a.nullCount,
		NonNullCount:  nonNull,
		DistinctCount: len(a.counts),
	}
	if total > 0 {
		col.NullPct = roundTo(float64(a.nullCount)/float64(total)*100.0, statsPrecision)
	}

	// The numeric summary only applies when every non-null value is numeric.
	// A column mixing numbers with text gets frequencies instead.
	if nonNull > 0 && len(a.numbers) == nonNull {
		col.Numeric = summarizeNumbers(a.numbers)
	}
	if col.Kind == schema.TextKind && len(a.textLens) > 0 {
		col.Text = summarizeText(a.textLens)
	}
	col.TopValues = a.rankTopValues(topValues)

	return col
}

// majorityKind picks the most frequent kind among non-null values. Ties go
// to the kind observed first.
func (a *columnAccumulator) majorityKind() schema.ColumnKind {
	if len(a.kindOrder) == 0 {
		return schema.NullKind
	}
	best := a.kindOrder[0]
	for _, kind := range a.kindOrder[1:] {
		if a.kindCounts[kind] > a.kindCounts[best] {
			best = kind
		}
	}
	return best
}

// rankTopValues orders distinct values by descending frequency. Equal
// frequencies keep first-seen order.
func (a *columnAccumulator) rankTopValues(limit int) []schema.ValueCount {
	ranked := make([]schema.ValueCount, 0, len(a.valueOrder))
	for _, value := range a.valueOrder {
		ranked = append(ranked, schema.ValueCount{Value: value, Count: a.counts[value]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// classifyValue maps a raw attribute value to its kind. Numeric kinds also
// report the value as a float so summaries can accumulate it.
func classifyValue(v any) (schema.ColumnKind, float64) {
	switch t := v.(type) {
	case nil:
		return schema.NullKind, 0
	case float64:
		if math.IsNaN(t) {
			return schema.NullKind, 0
		}
		return schema.NumericKind, t
	case float32:
		if math.IsNaN(float64(t)) {
			return schema.NullKind, 0
		}
		return schema.NumericKind, float64(t)
	case int:
		return schema.NumericKind, float64(t)
	case int8:
		return schema.NumericKind, float64(t)
	case int16:
		return schema.NumericKind, float64(t)
	case int32:
		return schema.NumericKind, float64(t)
	case int64:
		return schema.NumericKind, float64(t)
	case uint:
		return schema.NumericKind, float64(t)
	case uint8:
		return schema.NumericKind, float64(t)
	case uint16:
		return schema.NumericKind, float64(t)
	case uint32:
		return schema.NumericKind, float64(t)
	case uint64:
		return schema.NumericKind, float64(t)
	case bool:
		return schema.BooleanKind, 0
	case string:
		return schema.TextKind, 0
	case time.Time:
		return schema.TemporalKind, 0
	default:
		return schema.OtherKind, 0
	}
}

// summarizeNumbers computes the numeric summary for a uniformly numeric
// column. Quartiles fall back to the extremes when the sample is too small
// for interpolation.
func summarizeNumbers(values []float64) *schema.NumericSummary {
	data := stats.Float64Data(values)
	minV, _ := stats.Min(data)
	maxV, _ := stats.Max(data)
	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)

	summary := &schema.NumericSummary{
		Min:    roundTo(minV, statsPrecision),
		Max:    roundTo(maxV, statsPrecision),
		Mean:   roundTo(mean, statsPrecision),
		Median: roundTo(median, statsPrecision),
		Q25:    roundTo(percentileOr(data, 25, minV), statsPrecision),
		Q75:    roundTo(percentileOr(data, 75, maxV), statsPrecision),
	}
	if len(values) >= 2 {
		std, _ := stats.StandardDeviationSample(data)
		summary.Std = roundTo(std, statsPrecision)
	}

	for _, v := range values {
		if v == 0 {
			summary.Zeros++
		}
		if v < 0 {
			summary.Negatives++
		}
	}
	return summary
}

// percentileOr returns the requested percentile, or the fallback when the
// sample is too small for the estimator.
func percentileOr(data stats.Float64Data, percent, fallback float64) float64 {
	v, err := stats.Percentile(data, percent)
	if err != nil {
		return fallback
	}
	return v
}

// summarizeText computes length statistics over the string values of a
// text column. Lengths count runes, not bytes.
func summarizeText(lengths []float64) *schema.TextSummary {
	data := stats.Float64Data(lengths)
	minV, _ := stats.Min(data)
	maxV, _ := stats.Max(data)
	mean, _ := stats.Mean(data)

	return &schema.TextSummary{
		MinLength:  int(minV),
		MaxLength:  int(maxV),
		MeanLength: roundTo(mean, statsPrecision),
	}
}
