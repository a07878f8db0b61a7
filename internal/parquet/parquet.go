// Package parquet provides data structures and functions for exporting
// assessment run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/geoqa/geoqa/schema"
)

// Run represents a single assessment run with metadata.
// This struct maps to the geoqa_runs database table.
type Run struct {
	// RunID is the unique identifier for this assessment run
	RunID string `parquet:"run_id,snappy"`

	// Dataset is the logical name of the assessed dataset
	Dataset string `parquet:"dataset,snappy"`

	// Source is the path or URI the dataset was loaded from
	Source string `parquet:"source,snappy"`

	// ContentHash is the SHA-256 of the input bytes at assessment time
	ContentHash string `parquet:"content_hash,snappy"`

	// StartedAt is when the assessment began (stored as TIMESTAMP with nanosecond precision)
	StartedAt time.Time `parquet:"started_at,snappy"`

	// FinishedAt is when the assessment completed (nullable, stored as TIMESTAMP with nanosecond precision)
	FinishedAt *time.Time `parquet:"finished_at,optional,snappy"`

	// DurationMs is the duration of the assessment run in milliseconds (nullable)
	DurationMs *int64 `parquet:"duration_ms,optional,snappy"`

	// FeatureCount is the number of features in the assessed dataset
	FeatureCount int32 `parquet:"feature_count,snappy"`

	// ColumnCount is the number of attribute columns in the assessed dataset
	ColumnCount int32 `parquet:"column_count,snappy"`

	// Score is the weighted quality score on the 0-100 scale
	Score float64 `parquet:"score,snappy"`

	// ScoreLabel is the plain-text quality label for the score
	ScoreLabel string `parquet:"score_label,snappy"`

	// Components contains the JSON-encoded score component breakdown
	Components string `parquet:"components,snappy"`
}

// RunCheck represents the outcome of one quality check within a run.
// This struct maps to the geoqa_run_checks database table.
type RunCheck struct {
	// RunID references the parent assessment run
	RunID string `parquet:"run_id,snappy"`

	// Name identifies the quality check
	Name string `parquet:"name,snappy"`

	// Severity is the fixed severity class of the check
	Severity string `parquet:"severity,snappy"`

	// Status is the check outcome (pass, warn or fail)
	Status string `parquet:"status,snappy"`

	// Issues is the number of offending features or columns
	Issues int32 `parquet:"issues,snappy"`

	// Detail is a short human-readable finding
	Detail string `parquet:"detail,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the Run struct tags
	writer := parquet.NewGenericWriter[Run](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteRunChecksParquet writes a slice of RunCheck structs to a Parquet file.
func WriteRunChecksParquet(data []RunCheck, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the RunCheck struct tags
	writer := parquet.NewGenericWriter[RunCheck](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchRuns generates sample Run data for demonstration.
func MockFetchRuns() []Run {
	now := time.Now()
	started1 := now.Add(-2 * time.Hour)
	finished1 := started1.Add(42 * time.Second)
	durationMs1 := finished1.Sub(started1).Milliseconds()

	started2 := now.Add(-24 * time.Hour)
	finished2 := started2.Add(3 * time.Minute)
	durationMs2 := finished2.Sub(started2).Milliseconds()

	started3 := now.Add(-10 * time.Minute)
	// Note: the third run is still in progress, so completion fields are nil

	return []Run{
		{
			RunID:        "5f1c9a49-9031-4f4e-9056-9a6f3c7a0001",
			Dataset:      "roads",
			Source:       "/data/roads.geojson",
			ContentHash:  "8f434346648f6b96df89dda901c5176b10a6d83961dd3c1ac88b59b2dc327aa4",
			StartedAt:    started1,
			FinishedAt:   &finished1,
			DurationMs:   &durationMs1,
			FeatureCount: 12840,
			ColumnCount:  9,
			Score:        87.3,
			ScoreLabel:   "Good",
			Components:   `{"geometry_validity":{"weight":0.4,"raw":96.1,"weighted":38.4}}`,
		},
		{
			RunID:        "5f1c9a49-9031-4f4e-9056-9a6f3c7a0002",
			Dataset:      "parcels",
			Source:       "/data/parcels.gpkg",
			ContentHash:  "2c26b46b68ffc68ff99b453c1d30413413422d706483bfa0f98a5e886266e7ae",
			StartedAt:    started2,
			FinishedAt:   &finished2,
			DurationMs:   &durationMs2,
			FeatureCount: 310552,
			ColumnCount:  17,
			Score:        64.9,
			ScoreLabel:   "Fair",
			Components:   `{"geometry_validity":{"weight":0.4,"raw":71.2,"weighted":28.5}}`,
		},
		{
			RunID:     "5f1c9a49-9031-4f4e-9056-9a6f3c7a0003",
			Dataset:   "buildings",
			Source:    "/data/buildings.geojson",
			StartedAt: started3,
			// FinishedAt and DurationMs are nil while the run is in flight
		},
	}
}

// MockFetchRunChecks generates sample RunCheck data for demonstration.
func MockFetchRunChecks() []RunCheck {
	return []RunCheck{
		{
			RunID:    "5f1c9a49-9031-4f4e-9056-9a6f3c7a0001",
			Name:     "geometry_validity",
			Severity: "high",
			Status:   "pass",
			Issues:   0,
			Detail:   "all 12840 geometries valid",
		},
		{
			RunID:    "5f1c9a49-9031-4f4e-9056-9a6f3c7a0001",
			Name:     "crs_defined",
			Severity: "high",
			Status:   "pass",
			Issues:   0,
			Detail:   "EPSG:4326",
		},
		{
			RunID:    "5f1c9a49-9031-4f4e-9056-9a6f3c7a0002",
			Name:     "geometry_validity",
			Severity: "high",
			Status:   "fail",
			Issues:   894,
			Detail:   "894 invalid geometries (0.3%)",
		},
	}
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:        record.RunID,
			Dataset:      record.Dataset,
			Source:       record.Source,
			ContentHash:  record.ContentHash,
			StartedAt:    record.StartedAt,
			FinishedAt:   record.FinishedAt,
			DurationMs:   record.DurationMs,
			FeatureCount: int32(record.FeatureCount),
			ColumnCount:  int32(record.ColumnCount),
			Score:        record.Score,
			ScoreLabel:   record.ScoreLabel,
			Components:   record.Components,
		}
	}
	return result
}

// ConvertRunCheckRecords converts schema.RunCheckRecord to RunCheck for Parquet export.
func ConvertRunCheckRecords(records []schema.RunCheckRecord) []RunCheck {
	result := make([]RunCheck, len(records))
	for i, record := range records {
		result[i] = RunCheck{
			RunID:    record.RunID,
			Name:     record.Name,
			Severity: record.Severity,
			Status:   record.Status,
			Issues:   int32(record.Issues),
			Detail:   record.Detail,
		}
	}
	return result
}
