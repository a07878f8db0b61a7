package core

import (
	"math"
	"slices"

	"github.com/montanaflynn/stats"
	"github.com/twpayne/go-geom"

	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/schema"
)

// analyzeSpatial computes the spatial summary: declared CRS, the union
// extent of all non-empty geometries, the dominant geometry type and planar
// size measures per type. All measures are in the dataset's own units.
func analyzeSpatial(ds contract.Dataset) schema.SpatialSummary {
	summary := schema.SpatialSummary{
		CRS:          ds.CRS(),
		DominantType: schema.UnknownType,
		Measures:     make(map[schema.GeometryType][]schema.MeasureSummary),
	}

	histogram := make(map[schema.GeometryType]int)
	areas := make(map[schema.GeometryType][]float64)
	perimeters := make(map[schema.GeometryType][]float64)
	lengths := make(map[schema.GeometryType][]float64)

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	haveBounds := false

	for i := range ds.FeatureCount() {
		f := ds.Feature(i)
		if f.Malformed != "" || f.Geometry == nil {
			continue
		}
		g := f.Geometry
		gType := schema.GeometryTypeOf(g)
		histogram[gType]++

		if g.Empty() {
			continue
		}

		b := g.Bounds()
		bMinX, bMinY := b.Min(0), b.Min(1)
		bMaxX, bMaxY := b.Max(0), b.Max(1)
		if finiteCoords([]float64{bMinX, bMinY, bMaxX, bMaxY}) {
			minX = math.Min(minX, bMinX)
			minY = math.Min(minY, bMinY)
			maxX = math.Max(maxX, bMaxX)
			maxY = math.Max(maxY, bMaxY)
			haveBounds = true
		}

		switch {
		case gType.IsPolygonal():
			areas[gType] = append(areas[gType], geometryArea(g))
			perimeters[gType] = append(perimeters[gType], geometryPerimeter(g))
		case gType.IsLinear():
			lengths[gType] = append(lengths[gType], geometryLength(g))
		}
	}

	summary.DominantType = dominantType(histogram)

	if haveBounds {
		summary.Bounds = &schema.Extent{
			MinX:    roundTo(minX, extentPrecision),
			MinY:    roundTo(minY, extentPrecision),
			MaxX:    roundTo(maxX, extentPrecision),
			MaxY:    roundTo(maxY, extentPrecision),
			CenterX: roundTo((minX+maxX)/2, extentPrecision),
			CenterY: roundTo((minY+maxY)/2, extentPrecision),
		}
	}

	for gType, values := range areas {
		summary.Measures[gType] = append(summary.Measures[gType],
			summarizeMeasure(schema.AreaMeasure, values),
			summarizeMeasure(schema.PerimeterMeasure, perimeters[gType]))
	}
	for gType, values := range lengths {
		summary.Measures[gType] = append(summary.Measures[gType],
			summarizeMeasure(schema.LengthMeasure, values))
	}

	return summary
}

// dominantType picks the most common geometry type. Ties go to the type
// that sorts first, so the outcome never depends on map iteration order.
func dominantType(histogram map[schema.GeometryType]int) schema.GeometryType {
	types := make([]schema.GeometryType, 0, len(histogram))
	for t := range histogram {
		types = append(types, t)
	}
	slices.Sort(types)

	dominant := schema.UnknownType
	best := 0
	for _, t := range types {
		if histogram[t] > best {
			best = histogram[t]
			dominant = t
		}
	}
	return dominant
}

// summarizeMeasure condenses one list of per-feature measures.
func summarizeMeasure(kind string, values []float64) schema.MeasureSummary {
	data := stats.Float64Data(values)
	minV, _ := stats.Min(data)
	maxV, _ := stats.Max(data)
	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	sum, _ := stats.Sum(data)

	ms := schema.MeasureSummary{
		Kind:   kind,
		Count:  len(values),
		Min:    roundTo(minV, statsPrecision),
		Max:    roundTo(maxV, statsPrecision),
		Mean:   roundTo(mean, statsPrecision),
		Median: roundTo(median, statsPrecision),
		Total:  roundTo(sum, statsPrecision),
	}
	if len(values) >= 2 {
		std, _ := stats.StandardDeviationSample(data)
		ms.Std = roundTo(std, statsPrecision)
	}
	return ms
}

// geometryArea returns the planar area of polygonal geometries and zero for
// everything else.
func geometryArea(g geom.T) float64 {
	switch t := g.(type) {
	case *geom.Polygon:
		return polygonArea(t)
	case *geom.MultiPolygon:
		var total float64
		for i := range t.NumPolygons() {
			total += polygonArea(t.Polygon(i))
		}
		return total
	default:
		return 0
	}
}

// geometryPerimeter returns the total ring length of polygonal geometries,
// holes included.
func geometryPerimeter(g geom.T) float64 {
	switch t := g.(type) {
	case *geom.Polygon:
		return polygonPerimeter(t)
	case *geom.MultiPolygon:
		var total float64
		for i := range t.NumPolygons() {
			total += polygonPerimeter(t.Polygon(i))
		}
		return total
	default:
		return 0
	}
}

// geometryLength returns the planar length of linear geometries.
func geometryLength(g geom.T) float64 {
	switch t := g.(type) {
	case *geom.LineString:
		return pathLength(t.Coords())
	case *geom.MultiLineString:
		var total float64
		for i := range t.NumLineStrings() {
			total += pathLength(t.LineString(i).Coords())
		}
		return total
	default:
		return 0
	}
}

// polygonArea is the shell area minus hole areas, never below zero.
func polygonArea(p *geom.Polygon) float64 {
	if p.NumLinearRings() == 0 {
		return 0
	}
	area := math.Abs(ringArea(p.LinearRing(0).Coords()))
	for i := 1; i < p.NumLinearRings(); i++ {
		area -= math.Abs(ringArea(p.LinearRing(i).Coords()))
	}
	return math.Max(area, 0)
}

func polygonPerimeter(p *geom.Polygon) float64 {
	var total float64
	for i := range p.NumLinearRings() {
		total += pathLength(p.LinearRing(i).Coords())
	}
	return total
}

// ringArea returns the signed shoelace area of a ring: positive for
// counterclockwise winding, negative for clockwise. An unclosed ring is
// closed implicitly.
func ringArea(ring []geom.Coord) float64 {
	if len(ring) < 3 {
		return 0
	}
	var sum float64
	for i := 0; i+1 < len(ring); i++ {
		sum += ring[i][0]*ring[i+1][1] - ring[i+1][0]*ring[i][1]
	}
	first, last := ring[0], ring[len(ring)-1]
	if first[0] != last[0] || first[1] != last[1] {
		sum += last[0]*first[1] - first[0]*last[1]
	}
	return sum / 2
}

// pathLength sums the segment lengths along a coordinate sequence.
func pathLength(coords []geom.Coord) float64 {
	var total float64
	for i := 0; i+1 < len(coords); i++ {
		total += math.Hypot(coords[i+1][0]-coords[i][0], coords[i+1][1]-coords[i][1])
	}
	return total
}
