package core

import (
	"github.com/montanaflynn/stats"

	"github.com/geoqa/geoqa/schema"
)

// Rounding precision for the different result surfaces.
const (
	scorePrecision  = 1
	statsPrecision  = 4
	extentPrecision = 6
)

// buildScore turns analyzer outputs into the weighted quality score.
// The weights are fixed: external pipelines gate releases on the absolute
// value, so changing them is a breaking change for every consumer.
func buildScore(geo schema.GeometrySummary, columns []schema.AttributeColumnStats, crsDefined bool) schema.QualityScore {
	fractions := componentFractions(geo, columns, crsDefined)

	weights := schema.GetScoreWeights()
	components := make(map[schema.ComponentKey]schema.ScoreComponent, len(weights))

	var sum float64
	for key, weight := range weights {
		raw := roundTo(fractions[key]*100.0, statsPrecision)
		weighted := roundTo(weight*raw, statsPrecision)
		components[key] = schema.ScoreComponent{
			Weight:   weight,
			Raw:      raw,
			Weighted: weighted,
		}
		sum += weighted
	}

	return schema.QualityScore{
		Value:      roundTo(sum, scorePrecision),
		Components: components,
	}
}

// componentFractions computes each component's raw fraction in [0, 1].
// A dataset with zero features bottoms out every component, CRS included,
// so the degenerate score is 0 rather than a division failure.
func componentFractions(geo schema.GeometrySummary, columns []schema.AttributeColumnStats, crsDefined bool) map[schema.ComponentKey]float64 {
	fractions := map[schema.ComponentKey]float64{
		schema.ComponentValidity:     0,
		schema.ComponentCompleteness: 0,
		schema.ComponentCRS:          0,
		schema.ComponentNoEmpty:      0,
	}
	if geo.Total == 0 {
		return fractions
	}

	total := float64(geo.Total)
	fractions[schema.ComponentValidity] = float64(geo.ValidCount) / total
	fractions[schema.ComponentCompleteness] = completenessFraction(columns, geo.Total)
	if crsDefined {
		fractions[schema.ComponentCRS] = 1.0
	}
	fractions[schema.ComponentNoEmpty] = (total - float64(geo.EmptyCount)) / total

	return fractions
}

// completenessFraction is the mean per-column fraction of non-null values.
// A dataset with no attribute columns is complete by definition.
func completenessFraction(columns []schema.AttributeColumnStats, total int) float64 {
	if len(columns) == 0 {
		return 1.0
	}
	if total <= 0 {
		return 0.0
	}
	var sum float64
	for _, col := range columns {
		sum += float64(col.NonNullCount) / float64(total)
	}
	return sum / float64(len(columns))
}

// roundTo rounds half away from zero to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	rounded, err := stats.Round(v, places)
	if err != nil {
		return 0
	}
	return rounded
}
