package core

import (
	"slices"

	"github.com/twpayne/go-geom"

	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/schema"
)

// RepairDataset attempts mechanical repairs on every invalid geometry and
// returns the resulting feature list. The input dataset is never modified.
// Repairs cover unclosed rings, consecutive duplicate vertices and ring
// winding; crossing rings have no mechanical fix and stay as they are.
func RepairDataset(ds contract.Dataset) ([]schema.Feature, schema.FixReport) {
	var report schema.FixReport
	features := make([]schema.Feature, 0, ds.FeatureCount())

	for i := range ds.FeatureCount() {
		f := ds.Feature(i)

		if f.Malformed != "" {
			report.Attempted++
			report.Unfixable = append(report.Unfixable, i)
			features = append(features, f)
			continue
		}
		if f.Geometry == nil || validateGeometry(f.Geometry) == "" {
			features = append(features, normalizeFeature(f))
			continue
		}

		report.Attempted++
		repaired := repairGeometry(f.Geometry)
		if validateGeometry(repaired) == "" {
			report.Repaired++
			f.Geometry = repaired
		} else {
			report.Unfixable = append(report.Unfixable, i)
		}
		features = append(features, f)
	}

	return features, report
}

// normalizeFeature rewinds valid polygons to the conventional orientation
// (counterclockwise shells, clockwise holes) without touching anything else.
func normalizeFeature(f schema.Feature) schema.Feature {
	switch f.Geometry.(type) {
	case *geom.Polygon, *geom.MultiPolygon:
		f.Geometry = repairGeometry(f.Geometry)
	}
	return f
}

// repairGeometry returns a repaired copy of the geometry. Points have
// nothing to repair and come back unchanged.
func repairGeometry(g geom.T) geom.T {
	switch t := g.(type) {
	case *geom.LineString:
		return geom.NewLineString(t.Layout()).MustSetCoords(dedupConsecutive(t.Coords()))
	case *geom.MultiLineString:
		lines := t.Coords()
		out := make([][]geom.Coord, len(lines))
		for i, line := range lines {
			out[i] = dedupConsecutive(line)
		}
		return geom.NewMultiLineString(t.Layout()).MustSetCoords(out)
	case *geom.Polygon:
		return repairPolygon(t)
	case *geom.MultiPolygon:
		polygons := t.Coords()
		out := make([][][]geom.Coord, len(polygons))
		for i, rings := range polygons {
			out[i] = repairRings(rings)
		}
		return geom.NewMultiPolygon(t.Layout()).MustSetCoords(out)
	case *geom.GeometryCollection:
		repaired := geom.NewGeometryCollection()
		for _, sub := range t.Geoms() {
			repaired.MustPush(repairGeometry(sub))
		}
		return repaired
	default:
		return g
	}
}

func repairPolygon(p *geom.Polygon) *geom.Polygon {
	return geom.NewPolygon(p.Layout()).MustSetCoords(repairRings(p.Coords()))
}

// repairRings closes each ring, strips consecutive duplicate vertices and
// rewinds shells counterclockwise and holes clockwise.
func repairRings(rings [][]geom.Coord) [][]geom.Coord {
	out := make([][]geom.Coord, len(rings))
	for i, ring := range rings {
		fixed := dedupConsecutive(ring)
		fixed = closeRing(fixed)
		out[i] = orientRing(fixed, i == 0)
	}
	return out
}

// dedupConsecutive drops vertices that repeat their immediate predecessor
// in the XY plane.
func dedupConsecutive(coords []geom.Coord) []geom.Coord {
	if len(coords) < 2 {
		return slices.Clone(coords)
	}
	out := make([]geom.Coord, 0, len(coords))
	out = append(out, coords[0])
	for _, c := range coords[1:] {
		prev := out[len(out)-1]
		if c[0] == prev[0] && c[1] == prev[1] {
			continue
		}
		out = append(out, c)
	}
	return out
}

// closeRing appends the first vertex when the ring does not end where it
// started.
func closeRing(ring []geom.Coord) []geom.Coord {
	if len(ring) < 3 {
		return ring
	}
	first, last := ring[0], ring[len(ring)-1]
	if first[0] == last[0] && first[1] == last[1] {
		return ring
	}
	return append(ring, first)
}

// orientRing reverses the ring when its winding does not match the
// conventional orientation for its role.
func orientRing(ring []geom.Coord, isShell bool) []geom.Coord {
	area := ringArea(ring)
	if (isShell && area < 0) || (!isShell && area > 0) {
		reversed := slices.Clone(ring)
		slices.Reverse(reversed)
		return reversed
	}
	return ring
}
