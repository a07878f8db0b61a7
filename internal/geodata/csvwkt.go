package geodata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/schema"
)

// csvGeometryColumns lists accepted geometry column names, checked
// case-insensitively against the header.
var csvGeometryColumns = []string{"geometry", "wkt", "geom"}

// OpenCSV loads a CSV file whose geometry column holds WKT. Attribute cells
// are typed by inference and the dataset never declares a CRS, since CSV
// has nowhere to carry one.
func OpenCSV(path string) (contract.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", path, err)
	}

	geomIdx := findGeometryColumn(header)
	if geomIdx < 0 {
		return nil, fmt.Errorf("%w: %s", contract.ErrNoGeometry, path)
	}

	columns := make([]string, 0, len(header)-1)
	for i, name := range header {
		if i != geomIdx {
			columns = append(columns, name)
		}
	}

	var features []schema.Feature
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s line %d: %w", path, line, err)
		}
		features = append(features, decodeCSVRecord(record, header, geomIdx))
	}

	name := contract.DatasetNameFromPath(path)
	return NewMemoryDataset(name, path, nil, columns, features), nil
}

// findGeometryColumn returns the index of the first header cell with an
// accepted geometry column name, or -1.
func findGeometryColumn(header []string) int {
	for i, name := range header {
		for _, candidate := range csvGeometryColumns {
			if strings.EqualFold(strings.TrimSpace(name), candidate) {
				return i
			}
		}
	}
	return -1
}

// decodeCSVRecord turns one CSV record into a feature. An empty geometry
// cell means a missing geometry; a cell that fails WKT parsing marks the
// feature malformed.
func decodeCSVRecord(record, header []string, geomIdx int) schema.Feature {
	feature := schema.Feature{Attrs: make(map[string]any, len(header)-1)}

	for i, cell := range record {
		if i == geomIdx {
			text := strings.TrimSpace(cell)
			if text == "" {
				continue
			}
			g, err := wkt.Unmarshal(text)
			if err != nil {
				feature.Malformed = err.Error()
				continue
			}
			feature.Geometry = g
			continue
		}
		feature.Attrs[header[i]] = inferValue(cell)
	}

	return feature
}

// inferValue types a CSV cell. Empty cells are nulls; numbers, booleans and
// ISO dates are recognized; everything else stays text.
func inferValue(cell string) any {
	if cell == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	if strings.EqualFold(cell, "true") {
		return true
	}
	if strings.EqualFold(cell, "false") {
		return false
	}
	if t, err := time.Parse(time.RFC3339, cell); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", cell); err == nil {
		return t
	}
	return cell
}
