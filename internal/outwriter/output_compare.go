package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteComparisonResults outputs the comparison results, dispatching based on the output format configured.
func WriteComparisonResults(w io.Writer, comparisonResult schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSONResultsForComparison(w, comparisonResult); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVResultsForComparison(w, comparisonResult, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeComparisonTable(w, comparisonResult, cfg, fmtFloat, duration)
	}
	return nil
}

// writeComparisonTable writes the component deltas in a custom comparison format.
func writeComparisonTable(w io.Writer, comparisonResult schema.ComparisonResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if _, err := fmt.Fprintf(w, "Base:   %s (score %s)\n", comparisonResult.BaseDataset, fmtFloat(comparisonResult.BaseScore)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Target: %s (score %s)\n\n", comparisonResult.TargetDataset, fmtFloat(comparisonResult.TargetScore)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Component", "Before", "After", "Delta"})

	// Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// Prepare Data Rows
	var red, green, yellow func(...any) string
	if cfg.UseColors {
		red = color.New(color.FgRed).SprintFunc()
		green = color.New(color.FgGreen).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
	} else {
		red = fmt.Sprint
		green = fmt.Sprint
		yellow = fmt.Sprint
	}
	var data [][]string
	for _, c := range comparisonResult.Components {
		row := []string{
			string(c.Component),
			fmtFloat(c.Before),
			fmtFloat(c.After),
			formatScoreDelta(c.Delta, cfg.Precision, red, green, yellow),
		}
		data = append(data, row)
	}

	// Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Check transitions below the table
	if len(comparisonResult.Transitions) > 0 {
		if _, err := fmt.Fprintf(w, "Check transitions:\n"); err != nil {
			return err
		}
		for _, t := range comparisonResult.Transitions {
			line := fmt.Sprintf("%s: %s → %s", t.Name, t.Before, t.After)
			if statusRank(t.After) > statusRank(t.Before) {
				line = red(line)
			} else if statusRank(t.After) < statusRank(t.Before) {
				line = green(line)
			}
			if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
				return err
			}
		}
	}

	// Compute summary stats
	deltaStr := formatScoreDelta(comparisonResult.ScoreDelta, cfg.Precision, red, green, yellow)
	if _, err := fmt.Fprintf(w, "Score delta: %s, feature delta: %+d\n", deltaStr, comparisonResult.DeltaFeatures); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Comparison completed in %v with %d workers.\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// formatScoreDelta renders a score change with its direction indicator.
// Rising quality is the good direction here, so positive deltas are green.
func formatScoreDelta(delta float64, precision int, red, green, yellow func(...any) string) string {
	switch {
	case delta > 0:
		// Explicitly add + sign
		return green(fmt.Sprintf("+%.*f ▲", precision, delta))
	case delta < 0:
		// Keeps the - sign from the float
		return red(fmt.Sprintf("%.*f ▼", precision, delta))
	default:
		// For 0.0 deltas, format simply without an indicator
		return yellow(fmt.Sprintf("%.*f", precision, 0.0))
	}
}

// statusRank orders check statuses from best to worst for transition coloring.
func statusRank(s schema.CheckStatus) int {
	switch s {
	case schema.PassStatus:
		return 0
	case schema.WarnStatus:
		return 1
	default: // fail
		return 2
	}
}

// writeJSONResultsForComparison marshals the schema.ComparisonResult to JSON and writes it.
func writeJSONResultsForComparison(w io.Writer, comparisonResult schema.ComparisonResult) error {
	return writeJSON(w, comparisonResult)
}

// writeCSVResultsForComparison writes the schema.ComparisonResult data in CSV format.
// The overall score appears as the first row so gating scripts can read one file.
func writeCSVResultsForComparison(w io.Writer, comparisonResult schema.ComparisonResult, fmtFloat func(float64) string) error {
	header := []string{
		"component",
		"before",
		"after",
		"delta",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		scoreRow := []string{
			"score",
			fmtFloat(comparisonResult.BaseScore),
			fmtFloat(comparisonResult.TargetScore),
			fmtFloat(comparisonResult.ScoreDelta),
		}
		if err := csvWriter.Write(scoreRow); err != nil {
			return err
		}
		for _, c := range comparisonResult.Components {
			row := []string{
				string(c.Component),
				fmtFloat(c.Before),
				fmtFloat(c.After),
				fmtFloat(c.Delta),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
