// Package core has core logic for assessing, scoring and checking datasets.
package core

import (
	"fmt"
	"slices"
	"sync"

	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/schema"
)

// Options tunes an assessment run.
type Options struct {
	Workers   int // concurrent classification workers, defaults to the CPU count
	TopValues int // distinct values listed per column, defaults to contract.DefaultTopValues
}

// Profile is an immutable assessment of one dataset. Assess returns a fully
// computed profile and queries never mutate it, so a profile is only ever
// observed in its assessed state. Re-profiling a changed dataset means
// building a new Profile.
type Profile struct {
	dataset string
	source  string

	geometry    schema.GeometrySummary
	columns     []schema.AttributeColumnStats
	columnIndex map[string]int
	spatial     schema.SpatialSummary
	score       schema.QualityScore
	checks      []schema.CheckResult
}

// Assess runs the full assessment over a dataset. The geometry, attribute
// and spatial analyzers share no state, so they run concurrently and join
// before scoring. Assessing the same dataset twice yields identical results.
func Assess(ds contract.Dataset, opts Options) (*Profile, error) {
	if ds.FeatureCount() == 0 {
		return nil, contract.ErrNoFeatures
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = contract.DefaultWorkers
	}
	topValues := opts.TopValues
	if topValues <= 0 {
		topValues = contract.DefaultTopValues
	}

	p := &Profile{
		dataset: ds.Name(),
		source:  ds.Source(),
	}

	var wg sync.WaitGroup
	wg.Go(func() {
		p.geometry = summarizeGeometries(ds, workers)
	})
	wg.Go(func() {
		p.columns = profileAttributes(ds, topValues)
	})
	wg.Go(func() {
		p.spatial = analyzeSpatial(ds)
	})
	wg.Wait()

	p.columnIndex = make(map[string]int, len(p.columns))
	for i, col := range p.columns {
		p.columnIndex[col.Name] = i
	}

	p.score = buildScore(p.geometry, p.columns, p.spatial.CRS != nil)
	p.checks = buildChecks(p.geometry, p.columns, p.spatial.CRS)

	return p, nil
}

// Dataset returns the profiled dataset's display name.
func (p *Profile) Dataset() string {
	return p.dataset
}

// Source returns where the profiled dataset came from.
func (p *Profile) Source() string {
	return p.source
}

// Score returns the weighted quality score.
func (p *Profile) Score() schema.QualityScore {
	return p.score
}

// Checks returns the check battery results in report order.
func (p *Profile) Checks() []schema.CheckResult {
	return slices.Clone(p.checks)
}

// GeometrySummary returns the aggregated geometry results.
func (p *Profile) GeometrySummary() schema.GeometrySummary {
	return p.geometry
}

// Columns returns statistics for every attribute column in dataset order.
func (p *Profile) Columns() []schema.AttributeColumnStats {
	return slices.Clone(p.columns)
}

// Column returns statistics for a single attribute column. The statistics
// come from the same pass as Columns, so both views always agree.
func (p *Profile) Column(name string) (schema.AttributeColumnStats, error) {
	i, ok := p.columnIndex[name]
	if !ok {
		return schema.AttributeColumnStats{}, fmt.Errorf("%w: %s", contract.ErrUnknownColumn, name)
	}
	return p.columns[i], nil
}

// SpatialSummary returns the spatial extent, CRS and measure results.
func (p *Profile) SpatialSummary() schema.SpatialSummary {
	return p.spatial
}

// Result assembles the complete assessment for serialization and storage.
func (p *Profile) Result() *schema.AssessmentResult {
	return &schema.AssessmentResult{
		Dataset:      p.dataset,
		Source:       p.source,
		FeatureCount: p.geometry.Total,
		ColumnCount:  len(p.columns),
		Score:        p.score,
		Checks:       slices.Clone(p.checks),
		Geometry:     p.geometry,
		Columns:      slices.Clone(p.columns),
		Spatial:      p.spatial,
	}
}
