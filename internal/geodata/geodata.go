// Package geodata has format drivers that load vector datasets into memory.
package geodata

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/geoqa/geoqa/internal/contract"
)

// ErrUnsupportedFormat marks a dataset path whose extension matches no driver.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Open loads the dataset at path with the driver matching its extension.
// Every driver decodes the full dataset up front, so feature access after
// Open never touches the source again.
func Open(path string) (contract.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return OpenGeoJSON(path)
	case ".gpkg":
		return OpenGeoPackage(path)
	case ".csv":
		return OpenCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
