package core

import (
	"math"

	"github.com/twpayne/go-geom"

	"github.com/geoqa/geoqa/schema"
)

// Validity failure reasons. The wording follows what mainstream GIS tooling
// emits for the same defects, so downstream consumers can match on it.
const (
	reasonSelfIntersection     = "Self-intersection"
	reasonRingSelfIntersection = "Ring Self-intersection"
	reasonTooFewPoints         = "Too few points in geometry component"
	reasonInvalidCoordinate    = "Invalid Coordinate"
	reasonRingNotClosed        = "Ring is not closed"
	reasonHoleOutsideShell     = "Hole lies outside shell"
	reasonUnparseable          = "unparseable"
)

// classifyFeature assigns exactly one validity status to a feature and flags
// emptiness separately. A missing geometry is never marked empty, and a
// malformed one counts as invalid rather than aborting the run.
func classifyFeature(index int, f schema.Feature) schema.GeometryClassification {
	if f.Malformed != "" {
		return schema.GeometryClassification{
			Index:  index,
			Status: schema.InvalidGeom,
			Type:   schema.UnknownType,
			Reason: reasonUnparseable,
		}
	}
	if f.Geometry == nil {
		return schema.GeometryClassification{
			Index:  index,
			Status: schema.MissingGeom,
			Type:   schema.UnknownType,
		}
	}

	cls := schema.GeometryClassification{
		Index:    index,
		Status:   schema.ValidGeom,
		Empty:    f.Geometry.Empty(),
		Type:     schema.GeometryTypeOf(f.Geometry),
		Vertices: vertexCount(f.Geometry),
	}
	if reason := validateGeometry(f.Geometry); reason != "" {
		cls.Status = schema.InvalidGeom
		cls.Reason = reason
	}
	return cls
}

// validateGeometry returns an empty string for valid geometries and the
// first failure reason otherwise. Points carry no structural constraints,
// so only their coordinates are checked.
func validateGeometry(g geom.T) string {
	if gc, ok := g.(*geom.GeometryCollection); ok {
		for _, sub := range gc.Geoms() {
			if reason := validateGeometry(sub); reason != "" {
				return reason
			}
		}
		return ""
	}

	if !finiteCoords(g.FlatCoords()) {
		return reasonInvalidCoordinate
	}

	switch t := g.(type) {
	case *geom.LineString:
		return validateLine(t.NumCoords())
	case *geom.MultiLineString:
		for i := range t.NumLineStrings() {
			if reason := validateLine(t.LineString(i).NumCoords()); reason != "" {
				return reason
			}
		}
	case *geom.Polygon:
		return validatePolygon(t)
	case *geom.MultiPolygon:
		for i := range t.NumPolygons() {
			if reason := validatePolygon(t.Polygon(i)); reason != "" {
				return reason
			}
		}
	}
	return ""
}

// validateLine checks a single linestring component. Empty components are
// valid; a non-empty one needs at least two coordinates.
func validateLine(numCoords int) string {
	if numCoords == 1 {
		return reasonTooFewPoints
	}
	return ""
}

// validatePolygon checks every ring of a polygon, then the relationship
// between the shell and its holes.
func validatePolygon(p *geom.Polygon) string {
	if p.Empty() {
		return ""
	}

	rings := make([][]geom.Coord, 0, p.NumLinearRings())
	for i := range p.NumLinearRings() {
		rings = append(rings, p.LinearRing(i).Coords())
	}

	for _, ring := range rings {
		if reason := validateRing(ring); reason != "" {
			return reason
		}
	}

	shell := rings[0]
	for _, hole := range rings[1:] {
		if len(hole) == 0 {
			continue
		}
		if ringsCross(shell, hole) {
			return reasonSelfIntersection
		}
		if !pointInRing(hole[0], shell) {
			return reasonHoleOutsideShell
		}
	}
	return ""
}

// validateRing checks closure, coordinate count and self-intersection for a
// single ring.
func validateRing(ring []geom.Coord) string {
	if len(ring) == 0 {
		return ""
	}
	if len(ring) < 4 {
		return reasonTooFewPoints
	}

	first, last := ring[0], ring[len(ring)-1]
	if first[0] != last[0] || first[1] != last[1] {
		return reasonRingNotClosed
	}

	return ringSelfIntersection(ring)
}

// ringSelfIntersection detects pinch points (a vertex revisited before the
// ring closes) and proper crossings between non-adjacent segments.
// Consecutive duplicate vertices are tolerated; they degrade precision but
// do not change the ring's interior.
func ringSelfIntersection(ring []geom.Coord) string {
	n := len(ring)

	seen := make(map[[2]float64]int, n)
	for i, c := range ring[:n-1] {
		key := [2]float64{c[0], c[1]}
		if prev, ok := seen[key]; ok && i-prev > 1 {
			return reasonRingSelfIntersection
		}
		seen[key] = i
	}

	for i := 0; i < n-1; i++ {
		for j := i + 2; j < n-1; j++ {
			if i == 0 && j == n-2 {
				continue // first and last segments share the closing vertex
			}
			if segmentsCross(ring[i], ring[i+1], ring[j], ring[j+1]) {
				return reasonSelfIntersection
			}
		}
	}
	return ""
}

// ringsCross reports whether any segment of ring a properly crosses any
// segment of ring b.
func ringsCross(a, b []geom.Coord) bool {
	for i := 0; i+1 < len(a); i++ {
		for j := 0; j+1 < len(b); j++ {
			if segmentsCross(a[i], a[i+1], b[j], b[j+1]) {
				return true
			}
		}
	}
	return false
}

// segmentsCross reports whether segments ab and cd intersect at a point
// interior to both. Shared endpoints do not count; collinear overlap does.
func segmentsCross(a, b, c, d geom.Coord) bool {
	d1 := orientation(c, d, a)
	d2 := orientation(c, d, b)
	d3 := orientation(a, b, c)
	d4 := orientation(a, b, d)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	if d1 == 0 && d2 == 0 && d3 == 0 && d4 == 0 {
		return collinearOverlap(a, b, c, d)
	}
	return false
}

// orientation returns the cross product of (b-a) and (p-a): positive when p
// lies left of ab, negative when right, zero when collinear.
func orientation(a, b, p geom.Coord) float64 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}

// collinearOverlap reports whether two collinear segments overlap in more
// than a single point.
func collinearOverlap(a, b, c, d geom.Coord) bool {
	overlaps := func(lo1, hi1, lo2, hi2 float64) bool {
		if lo1 > hi1 {
			lo1, hi1 = hi1, lo1
		}
		if lo2 > hi2 {
			lo2, hi2 = hi2, lo2
		}
		return math.Min(hi1, hi2) > math.Max(lo1, lo2)
	}
	return overlaps(a[0], b[0], c[0], d[0]) || overlaps(a[1], b[1], c[1], d[1])
}

// pointInRing implements the even-odd ray casting rule. Points exactly on
// the boundary may land on either side.
func pointInRing(p geom.Coord, ring []geom.Coord) bool {
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > p[1]) != (yj > p[1]) &&
			p[0] < (xj-xi)*(p[1]-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// finiteCoords reports whether every coordinate value is a finite number.
func finiteCoords(flat []float64) bool {
	for _, v := range flat {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// vertexCount returns the number of coordinates in a geometry, descending
// into collections member by member.
func vertexCount(g geom.T) int {
	if gc, ok := g.(*geom.GeometryCollection); ok {
		total := 0
		for _, sub := range gc.Geoms() {
			total += vertexCount(sub)
		}
		return total
	}
	stride := g.Stride()
	if stride == 0 {
		return 0
	}
	return len(g.FlatCoords()) / stride
}
