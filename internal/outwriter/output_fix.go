package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/schema"
)

// WriteFixResults outputs a repair report, dispatching based on the output format configured.
func WriteFixResults(w io.Writer, report *schema.FixReport, outPath string, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSONResultsForFix(w, report, outPath); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVResultsForFix(w, report, outPath); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable lines
		return writeFixText(w, report, outPath, duration)
	}
	return nil
}

// writeFixText prints the repair report as plain lines.
func writeFixText(w io.Writer, report *schema.FixReport, outPath string, duration time.Duration) error {
	if report.Attempted == 0 {
		_, err := fmt.Fprintf(w, "No invalid geometries to repair.\n")
		return err
	}

	if _, err := fmt.Fprintf(w, "Attempted repairs: %d\n", report.Attempted); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Repaired: %d\n", report.Repaired); err != nil {
		return err
	}
	if len(report.Unfixable) > 0 {
		if _, err := fmt.Fprintf(w, "Unfixable: %d (indices %s)\n", len(report.Unfixable), joinIndices(report.Unfixable)); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "Unfixable: 0\n"); err != nil {
			return err
		}
	}
	if outPath != "" {
		if _, err := fmt.Fprintf(w, "Wrote repaired dataset to %s\n", outPath); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Repair completed in %v.\n", duration); err != nil {
		return err
	}
	return nil
}

// joinIndices renders feature indices for the unfixable line.
func joinIndices(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ", ")
}

// writeCSVResultsForFix writes the repair report as a single CSV row.
func writeCSVResultsForFix(w io.Writer, report *schema.FixReport, outPath string) error {
	header := []string{
		"attempted",
		"repaired",
		"unfixable",
		"unfixable_indices",
		"output",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		indices := make([]string, len(report.Unfixable))
		for i, idx := range report.Unfixable {
			indices[i] = strconv.Itoa(idx)
		}
		rec := []string{
			strconv.Itoa(report.Attempted),
			strconv.Itoa(report.Repaired),
			strconv.Itoa(len(report.Unfixable)),
			strings.Join(indices, "|"),
			outPath,
		}
		return csvWriter.Write(rec)
	})
}

// writeJSONResultsForFix writes the repair report in JSON format.
func writeJSONResultsForFix(w io.Writer, report *schema.FixReport, outPath string) error {
	// Add the output path so the document points at the repaired dataset
	type JSONFixReport struct {
		Output string `json:"output,omitempty"`
		schema.FixReport
	}

	output := JSONFixReport{
		Output:    outPath,
		FixReport: *report,
	}

	return writeJSON(w, output)
}
