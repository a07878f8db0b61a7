package geodata

import (
	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/schema"
)

// MemoryDataset holds a fully decoded dataset. Every driver materializes
// into one of these, and repair passes build fresh ones from their output.
type MemoryDataset struct {
	name     string
	source   string
	crs      *schema.CRSInfo
	columns  []string
	features []schema.Feature
}

var _ contract.Dataset = (*MemoryDataset)(nil) // Compile-time check

// NewMemoryDataset wraps already decoded features as a Dataset. The caller
// hands over ownership of the slices.
func NewMemoryDataset(name, source string, crs *schema.CRSInfo, columns []string, features []schema.Feature) *MemoryDataset {
	return &MemoryDataset{
		name:     name,
		source:   source,
		crs:      crs,
		columns:  columns,
		features: features,
	}
}

// Name implements the contract.Dataset interface.
func (d *MemoryDataset) Name() string {
	return d.name
}

// Source implements the contract.Dataset interface.
func (d *MemoryDataset) Source() string {
	return d.source
}

// CRS implements the contract.Dataset interface.
func (d *MemoryDataset) CRS() *schema.CRSInfo {
	return d.crs
}

// Columns implements the contract.Dataset interface.
func (d *MemoryDataset) Columns() []string {
	return d.columns
}

// FeatureCount implements the contract.Dataset interface.
func (d *MemoryDataset) FeatureCount() int {
	return len(d.features)
}

// Feature implements the contract.Dataset interface.
func (d *MemoryDataset) Feature(i int) schema.Feature {
	return d.features[i]
}
