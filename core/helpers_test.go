package core

import (
	"github.com/twpayne/go-geom"

	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/internal/geodata"
	"github.com/geoqa/geoqa/schema"
)

// Geometry and dataset fixtures shared by the tests in this package.

func testPoint(x, y float64) *geom.Point {
	return geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{x, y})
}

func testLine(coords ...geom.Coord) *geom.LineString {
	return geom.NewLineString(geom.XY).MustSetCoords(coords)
}

func testPolygon(rings ...[]geom.Coord) *geom.Polygon {
	return geom.NewPolygon(geom.XY).MustSetCoords(rings)
}

// squareRing returns a closed counterclockwise square with the given lower
// left corner and side length.
func squareRing(origin, side float64) []geom.Coord {
	return []geom.Coord{
		{origin, origin},
		{origin + side, origin},
		{origin + side, origin + side},
		{origin, origin + side},
		{origin, origin},
	}
}

// bowtieRing returns a closed ring whose two halves cross at (1,1).
func bowtieRing() []geom.Coord {
	return []geom.Coord{{0, 0}, {2, 2}, {2, 0}, {0, 2}, {0, 0}}
}

func geomFeature(g geom.T) schema.Feature {
	return schema.Feature{Geometry: g}
}

func attrFeature(attrs map[string]any) schema.Feature {
	return schema.Feature{Geometry: testPoint(0, 0), Attrs: attrs}
}

func testDataset(crs *schema.CRSInfo, columns []string, features ...schema.Feature) contract.Dataset {
	return geodata.NewMemoryDataset("test", "test.geojson", crs, columns, features)
}
