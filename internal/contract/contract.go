// Package contract provides interfaces and shared utilities for the geoqa CLI's internal architecture.
package contract

import (
	"time"

	"github.com/geoqa/geoqa/schema"
)

// Dataset is the read-only view of a loaded vector dataset that the
// assessment engine consumes. Format drivers produce one per source file,
// and the in-memory implementation backs tests and repair output.
type Dataset interface {
	// --- Identity ---

	// Name returns a short display name for the dataset, usually the file stem.
	Name() string

	// Source returns where the dataset came from (a file path, or "memory").
	Source() string

	// --- Structure ---

	// CRS returns the coordinate reference system declared by the source,
	// or nil when the source declares none. Drivers never guess: a missing
	// declaration stays nil even when a default would be plausible.
	CRS() *schema.CRSInfo

	// Columns returns attribute column names in first-seen order.
	Columns() []string

	// --- Features ---

	// FeatureCount returns the number of features in the dataset.
	FeatureCount() int

	// Feature returns the feature at index i, which must be in [0, FeatureCount()).
	// Implementations hold features in memory, so repeated access is cheap.
	Feature(i int) schema.Feature
}

// StoreManager defines the interface for managing run stores.
// This allows the store layer to be mocked for testing.
type StoreManager interface {
	GetRunStore() RunStore
}

// RunStore defines the interface for tracking assessment runs and their check outcomes.
type RunStore interface {
	// BeginRun creates a new assessment run and returns its unique ID
	BeginRun(startTime time.Time, dataset, source, contentHash string) (string, error)

	// FinishRun updates the assessment run with completion data
	FinishRun(runID string, endTime time.Time, result *schema.AssessmentResult) error

	// RecordChecks stores per-check outcomes for a run
	RecordChecks(runID string, checks []schema.CheckResult) error

	// ListRuns returns up to limit recent runs, newest first. An empty
	// dataset name matches runs across all datasets.
	ListRuns(dataset string, limit int) ([]schema.RunRecord, error)

	// GetAllRuns retrieves every recorded run, oldest first
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllRunChecks retrieves every recorded per-check outcome
	GetAllRunChecks() ([]schema.RunCheckRecord, error)

	// GetStatus returns status information about the run store
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection
	Close() error
}
