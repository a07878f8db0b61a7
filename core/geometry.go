package core

import (
	"encoding/binary"
	"sync"

	"github.com/montanaflynn/stats"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"

	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/schema"
)

// classifiedFeature pairs a classification with the feature's canonical
// encoding. The encoding is empty when the feature cannot participate in
// duplicate detection.
type classifiedFeature struct {
	cls    schema.GeometryClassification
	dupKey string
}

// summarizeGeometries classifies every feature and aggregates counts, the
// type histogram, duplicate groups and vertex statistics. Classification is
// spread over a worker pool since features are independent of each other.
func summarizeGeometries(ds contract.Dataset, workers int) schema.GeometrySummary {
	classified := classifyAllFeatures(ds, workers)

	summary := schema.GeometrySummary{
		Total:         len(classified),
		TypeHistogram: make(map[schema.GeometryType]int),
	}

	vertexCounts := make([]int, 0, len(classified))
	for _, cf := range classified {
		c := cf.cls
		switch c.Status {
		case schema.ValidGeom:
			summary.ValidCount++
		case schema.InvalidGeom:
			summary.InvalidCount++
			summary.InvalidFeatures = append(summary.InvalidFeatures, schema.InvalidFeature{
				Index:  c.Index,
				Reason: c.Reason,
			})
		case schema.MissingGeom:
			summary.MissingCount++
		}
		if c.Empty {
			summary.EmptyCount++
		}
		if c.Type != schema.UnknownType {
			summary.TypeHistogram[c.Type]++
			vertexCounts = append(vertexCounts, c.Vertices)
		}
	}
	summary.MixedTypes = len(summary.TypeHistogram) > 1
	summary.DuplicateGroups = groupDuplicates(classified)
	for _, group := range summary.DuplicateGroups {
		summary.DuplicateCount += len(group.Indices) - 1
	}
	summary.Vertices = summarizeVertices(vertexCounts)

	return summary
}

// classifyAllFeatures runs per-feature classification on a worker pool and
// returns the results in feature order.
func classifyAllFeatures(ds contract.Dataset, workers int) []classifiedFeature {
	total := ds.FeatureCount()
	indexCh := make(chan int, total)
	resultCh := make(chan classifiedFeature, total)
	var wg sync.WaitGroup

	// Start worker pool
	for range max(workers, 1) {
		wg.Go(func() {
			for i := range indexCh {
				f := ds.Feature(i)
				resultCh <- classifiedFeature{
					cls:    classifyFeature(i, f),
					dupKey: duplicateKey(f),
				}
			}
		})
	}

	// Send feature indices to worker channel
	for i := range total {
		indexCh <- i
	}
	close(indexCh)

	// Wait for all workers to finish processing
	wg.Wait()
	close(resultCh)

	// Slot results back into feature order
	classified := make([]classifiedFeature, total)
	for cf := range resultCh {
		classified[cf.cls.Index] = cf
	}
	return classified
}

// duplicateKey returns the canonical little-endian binary encoding of a
// geometry, projected to two dimensions. Missing, malformed and empty
// geometries are not duplicate candidates and yield an empty key.
func duplicateKey(f schema.Feature) string {
	if f.Malformed != "" || f.Geometry == nil || f.Geometry.Empty() {
		return ""
	}
	encoded, err := wkb.Marshal(force2D(f.Geometry), binary.LittleEndian)
	if err != nil {
		return ""
	}
	return string(encoded)
}

// groupDuplicates buckets features by canonical encoding. A single hash pass
// keeps this linear in the feature count. Indices within each group ascend,
// and groups are ordered by their first member.
func groupDuplicates(classified []classifiedFeature) []schema.DuplicateGroup {
	buckets := make(map[string][]int)
	keyOrder := make([]string, 0)

	for _, cf := range classified {
		if cf.dupKey == "" {
			continue
		}
		if _, ok := buckets[cf.dupKey]; !ok {
			keyOrder = append(keyOrder, cf.dupKey)
		}
		buckets[cf.dupKey] = append(buckets[cf.dupKey], cf.cls.Index)
	}

	groups := make([]schema.DuplicateGroup, 0)
	for _, key := range keyOrder {
		if indices := buckets[key]; len(indices) > 1 {
			groups = append(groups, schema.DuplicateGroup{Indices: indices})
		}
	}
	return groups
}

// summarizeVertices computes coordinate count statistics over all parsed
// geometries. Returns nil when no geometry was parsed at all.
func summarizeVertices(counts []int) *schema.VertexStats {
	if len(counts) == 0 {
		return nil
	}

	vs := &schema.VertexStats{Min: counts[0], Max: counts[0]}
	values := make([]float64, len(counts))
	for i, c := range counts {
		vs.Total += c
		vs.Min = min(vs.Min, c)
		vs.Max = max(vs.Max, c)
		values[i] = float64(c)
	}
	mean, _ := stats.Mean(values)
	vs.Mean = roundTo(mean, statsPrecision)

	return vs
}

// force2D projects a geometry onto the XY plane so that equality comparison
// ignores any elevation or measure values the source format carried.
func force2D(g geom.T) geom.T {
	if g.Layout() == geom.XY {
		return g
	}
	switch t := g.(type) {
	case *geom.Point:
		if t.Empty() {
			return geom.NewPointEmpty(geom.XY)
		}
		return geom.NewPoint(geom.XY).MustSetCoords(coord2D(t.Coords()))
	case *geom.MultiPoint:
		return geom.NewMultiPoint(geom.XY).MustSetCoords(coords2D(t.Coords()))
	case *geom.LineString:
		return geom.NewLineString(geom.XY).MustSetCoords(coords2D(t.Coords()))
	case *geom.MultiLineString:
		return geom.NewMultiLineString(geom.XY).MustSetCoords(rings2D(t.Coords()))
	case *geom.Polygon:
		return geom.NewPolygon(geom.XY).MustSetCoords(rings2D(t.Coords()))
	case *geom.MultiPolygon:
		return geom.NewMultiPolygon(geom.XY).MustSetCoords(polygons2D(t.Coords()))
	case *geom.GeometryCollection:
		flattened := geom.NewGeometryCollection()
		for _, sub := range t.Geoms() {
			flattened.MustPush(force2D(sub))
		}
		return flattened
	default:
		return g
	}
}

func coord2D(c geom.Coord) geom.Coord {
	if len(c) < 2 {
		return nil // empty member point
	}
	return geom.Coord{c[0], c[1]}
}

func coords2D(cs []geom.Coord) []geom.Coord {
	out := make([]geom.Coord, len(cs))
	for i, c := range cs {
		out[i] = coord2D(c)
	}
	return out
}

func rings2D(css [][]geom.Coord) [][]geom.Coord {
	out := make([][]geom.Coord, len(css))
	for i, cs := range css {
		out[i] = coords2D(cs)
	}
	return out
}

func polygons2D(csss [][][]geom.Coord) [][][]geom.Coord {
	out := make([][][]geom.Coord, len(csss))
	for i, css := range csss {
		out[i] = rings2D(css)
	}
	return out
}
