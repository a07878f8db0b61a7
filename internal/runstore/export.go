package runstore

import (
	"errors"
	"fmt"

	"github.com/geoqa/geoqa/internal/parquet"
)

// ExecuteRunExport performs the actual export of run history to Parquet files.
func ExecuteRunExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the run store
	store := Manager.GetRunStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total check records: %d\n", status.TableSizes[runChecksTable])

	// Retrieve all runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	// Retrieve all per-check outcomes
	runChecks, err := store.GetAllRunChecks()
	if err != nil {
		return fmt.Errorf("failed to retrieve run checks: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetRunChecks := parquet.ConvertRunCheckRecords(runChecks)

	// Write runs to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	// Write per-check outcomes to Parquet
	runChecksFile := outputFile + ".run_checks.parquet"
	if err := parquet.WriteRunChecksParquet(parquetRunChecks, runChecksFile); err != nil {
		return fmt.Errorf("failed to write run checks: %w", err)
	}
	fmt.Printf("Exported %d check records to: %s\n", len(parquetRunChecks), runChecksFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
