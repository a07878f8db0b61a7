package geodata

import (
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/schema"
)

// GeoPackage binary header flag masks.
const (
	gpkgFlagEnvelope = 0x0e // bits 1-3: envelope contents indicator
	gpkgFlagEmpty    = 0x10 // bit 4: empty geometry
	gpkgFlagExtended = 0x20 // bit 5: extended geometry type
)

// envelope indicator code to envelope byte length
var gpkgEnvelopeSizes = map[byte]int{0: 0, 1: 32, 2: 48, 3: 48, 4: 64}

// OpenGeoPackage loads the first feature table of a GeoPackage. The file is
// opened read-only; multi-table packages assess one table per run.
func OpenGeoPackage(path string) (contract.Dataset, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open GeoPackage at %q: %w", path, err)
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(1)

	table, geomColumn, srsID, err := firstFeatureTable(db)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	crs, err := lookupGeoPackageCRS(db, srsID)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	columns, features, err := readFeatureTable(db, table, geomColumn)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	name := contract.DatasetNameFromPath(path)
	return NewMemoryDataset(name, path, crs, columns, features), nil
}

// firstFeatureTable returns the first registered feature table with its
// geometry column and spatial reference id.
func firstFeatureTable(db *sql.DB) (string, string, int, error) {
	row := db.QueryRow(`
		SELECT table_name, column_name, srs_id
		FROM gpkg_geometry_columns
		ORDER BY table_name
		LIMIT 1`)

	var table, column string
	var srsID int
	if err := row.Scan(&table, &column, &srsID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", 0, contract.ErrNoGeometry
		}
		return "", "", 0, fmt.Errorf("query gpkg_geometry_columns: %w", err)
	}
	return table, column, srsID, nil
}

// lookupGeoPackageCRS resolves a srs_id against gpkg_spatial_ref_sys. The
// reserved ids 0 and -1 mean undefined reference systems and map to nil.
func lookupGeoPackageCRS(db *sql.DB, srsID int) (*schema.CRSInfo, error) {
	if srsID == 0 || srsID == -1 {
		return nil, nil
	}

	row := db.QueryRow(`
		SELECT organization, organization_coordsys_id, srs_name, definition
		FROM gpkg_spatial_ref_sys
		WHERE srs_id = ?`, srsID)

	var org, name, definition string
	var code int
	if err := row.Scan(&org, &code, &name, &definition); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query gpkg_spatial_ref_sys: %w", err)
	}
	if strings.EqualFold(org, "NONE") {
		return nil, nil
	}

	def := strings.ToUpper(strings.TrimSpace(definition))
	return &schema.CRSInfo{
		Code:       fmt.Sprintf("%s:%d", strings.ToUpper(org), code),
		Name:       name,
		Units:      unitFromDefinition(definition),
		Geographic: strings.HasPrefix(def, "GEOGCS") || strings.HasPrefix(def, "GEOGCRS"),
		Projected:  strings.HasPrefix(def, "PROJCS") || strings.HasPrefix(def, "PROJCRS"),
	}, nil
}

// unitFromDefinition extracts the coordinate unit name from a WKT
// definition. The last UNIT entry is the one that applies to the
// coordinates; earlier ones belong to nested base systems.
func unitFromDefinition(definition string) string {
	idx := strings.LastIndex(definition, `UNIT["`)
	if idx < 0 {
		return ""
	}
	rest := definition[idx+len(`UNIT["`):]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return ""
	}
	return rest[:end]
}

// readFeatureTable scans every row of a feature table. Non-geometry columns
// become attributes in table schema order.
func readFeatureTable(db *sql.DB, table, geomColumn string) ([]string, []schema.Feature, error) {
	rows, err := db.Query(fmt.Sprintf(`SELECT * FROM %s`, quoteIdent(table)))
	if err != nil {
		return nil, nil, fmt.Errorf("query table %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	names, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	geomIdx := -1
	columns := make([]string, 0, len(names)-1)
	for i, name := range names {
		if strings.EqualFold(name, geomColumn) {
			geomIdx = i
			continue
		}
		columns = append(columns, name)
	}
	if geomIdx < 0 {
		return nil, nil, fmt.Errorf("%w: table %s has no column %s", contract.ErrNoGeometry, table, geomColumn)
	}

	var features []schema.Feature
	values := make([]any, len(names))
	ptrs := make([]any, len(names))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("scan table %s: %w", table, err)
		}

		feature := schema.Feature{Attrs: make(map[string]any, len(columns))}
		for i, name := range names {
			if i == geomIdx {
				feature.Geometry, feature.Malformed = decodeGeomValue(values[i])
				continue
			}
			feature.Attrs[name] = values[i]
		}
		features = append(features, feature)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate table %s: %w", table, err)
	}

	return columns, features, nil
}

// decodeGeomValue turns a scanned geometry cell into a geometry or a
// malformed marker. NULL cells mean a missing geometry.
func decodeGeomValue(v any) (geom.T, string) {
	if v == nil {
		return nil, ""
	}
	blob, ok := v.([]byte)
	if !ok {
		return nil, fmt.Sprintf("geometry column holds %T, not a blob", v)
	}
	g, err := decodeGPKGBlob(blob)
	if err != nil {
		return nil, err.Error()
	}
	return g, ""
}

// decodeGPKGBlob parses the GeoPackage binary header and unmarshals the WKB
// payload behind it.
func decodeGPKGBlob(blob []byte) (geom.T, error) {
	if len(blob) < 8 {
		return nil, errors.New("geometry blob shorter than the GeoPackage header")
	}
	if blob[0] != 'G' || blob[1] != 'P' {
		return nil, errors.New("geometry blob lacks the GP magic")
	}

	flags := blob[3]
	if flags&gpkgFlagExtended != 0 {
		return nil, errors.New("extended geometry types are not supported")
	}
	envSize, ok := gpkgEnvelopeSizes[(flags&gpkgFlagEnvelope)>>1]
	if !ok {
		return nil, errors.New("invalid envelope contents indicator")
	}

	offset := 8 + envSize
	if len(blob) < offset+5 {
		return nil, errors.New("geometry blob shorter than its declared envelope")
	}
	payload := blob[offset:]

	if flags&gpkgFlagEmpty != 0 {
		return emptyGeometryFromWKB(payload)
	}
	return wkb.Unmarshal(payload)
}

// emptyGeometryFromWKB builds the empty geometry matching a WKB type code.
// The payload behind an empty flag varies by producer, so only the type
// word is trusted.
func emptyGeometryFromWKB(payload []byte) (geom.T, error) {
	var order binary.ByteOrder = binary.BigEndian
	if payload[0] == 1 {
		order = binary.LittleEndian
	}

	switch order.Uint32(payload[1:5]) % 1000 {
	case 1:
		return geom.NewPointEmpty(geom.XY), nil
	case 2:
		return geom.NewLineString(geom.XY), nil
	case 3:
		return geom.NewPolygon(geom.XY), nil
	case 4:
		return geom.NewMultiPoint(geom.XY), nil
	case 5:
		return geom.NewMultiLineString(geom.XY), nil
	case 6:
		return geom.NewMultiPolygon(geom.XY), nil
	case 7:
		return geom.NewGeometryCollection(), nil
	default:
		return nil, errors.New("unknown geometry type code on empty geometry")
	}
}

// quoteIdent quotes a SQL identifier for SQLite.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
