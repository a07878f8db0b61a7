package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Display limits for attribute values inside table cells.
const (
	summaryValueLen = 24
	detailValueLen  = 40
	summaryTopCount = 3
)

// WriteStatsResults outputs attribute column statistics, dispatching based on the output format configured.
func WriteStatsResults(w io.Writer, dataset string, columns []schema.AttributeColumnStats, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSONResultsForStats(w, dataset, columns); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVResultsForStats(w, columns, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeStatsTable(w, columns, cfg, fmtFloat, intFmt, duration)
	}
	return nil
}

// writeStatsTable generates and writes the human-readable column table.
func writeStatsTable(w io.Writer, columns []schema.AttributeColumnStats, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Column", "Kind", "Non-Null", "Nulls", "Null %", "Distinct", "Summary"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, col := range columns {
		data = append(data, []string{
			col.Name,
			string(col.Kind),
			fmt.Sprintf(intFmt, col.NonNullCount),
			fmt.Sprintf(intFmt, col.NullCount),
			fmtFloat(col.NullPct),
			fmt.Sprintf(intFmt, col.DistinctCount),
			formatColumnSummary(col, fmtFloat),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Single-column queries get the full detail below the table
	if len(columns) == 1 {
		if err := writeColumnDetail(w, columns[0], fmtFloat); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Showing %d columns\n", len(columns)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Analysis completed in %v with %d workers.\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// formatColumnSummary renders the per-kind one-cell summary for a column.
func formatColumnSummary(col schema.AttributeColumnStats, fmtFloat func(float64) string) string {
	switch {
	case col.NonNullCount == 0:
		return "all null"
	case col.Numeric != nil:
		return fmt.Sprintf("min %s, max %s, mean %s", fmtFloat(col.Numeric.Min), fmtFloat(col.Numeric.Max), fmtFloat(col.Numeric.Mean))
	case col.Text != nil:
		return fmt.Sprintf("len %d-%d, mean %s", col.Text.MinLength, col.Text.MaxLength, fmtFloat(col.Text.MeanLength))
	case len(col.TopValues) > 0:
		return "top: " + formatTopValues(col.TopValues, summaryTopCount)
	default:
		return ""
	}
}

// formatTopValues joins the most frequent values for one table cell.
func formatTopValues(values []schema.ValueCount, limit int) string {
	n := min(len(values), limit)
	parts := make([]string, n)
	for i := range n {
		parts[i] = fmt.Sprintf("%s (%d)", schema.AbbreviateValue(values[i].Value, summaryValueLen), values[i].Count)
	}
	return strings.Join(parts, ", ")
}

// writeColumnDetail prints the expanded view for a single-column query.
func writeColumnDetail(w io.Writer, col schema.AttributeColumnStats, fmtFloat func(float64) string) error {
	if len(col.TopValues) > 0 {
		if _, err := fmt.Fprintf(w, "Top values:\n"); err != nil {
			return err
		}
		for _, vc := range col.TopValues {
			if _, err := fmt.Fprintf(w, "  %s: %d\n", schema.AbbreviateValue(vc.Value, detailValueLen), vc.Count); err != nil {
				return err
			}
		}
	}
	if col.Numeric != nil {
		if _, err := fmt.Fprintf(w, "Quartiles: q25 %s, median %s, q75 %s\n",
			fmtFloat(col.Numeric.Q25), fmtFloat(col.Numeric.Median), fmtFloat(col.Numeric.Q75)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Spread: std %s, zeros %d, negatives %d\n",
			fmtFloat(col.Numeric.Std), col.Numeric.Zeros, col.Numeric.Negatives); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVResultsForStats writes the column statistics in CSV format.
func writeCSVResultsForStats(w io.Writer, columns []schema.AttributeColumnStats, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"column",
		"kind",
		"non_null",
		"nulls",
		"null_pct",
		"distinct",
		"min",
		"max",
		"mean",
		"median",
		"std",
		"q25",
		"q75",
		"zeros",
		"negatives",
		"min_len",
		"max_len",
		"mean_len",
		"top_values",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, col := range columns {
			rec := []string{
				col.Name,
				string(col.Kind),
				fmt.Sprintf(intFmt, col.NonNullCount),
				fmt.Sprintf(intFmt, col.NullCount),
				fmtFloat(col.NullPct),
				fmt.Sprintf(intFmt, col.DistinctCount),
			}
			if col.Numeric != nil {
				rec = append(rec,
					fmtFloat(col.Numeric.Min),
					fmtFloat(col.Numeric.Max),
					fmtFloat(col.Numeric.Mean),
					fmtFloat(col.Numeric.Median),
					fmtFloat(col.Numeric.Std),
					fmtFloat(col.Numeric.Q25),
					fmtFloat(col.Numeric.Q75),
					fmt.Sprintf(intFmt, col.Numeric.Zeros),
					fmt.Sprintf(intFmt, col.Numeric.Negatives),
				)
			} else {
				rec = append(rec, "", "", "", "", "", "", "", "", "")
			}
			if col.Text != nil {
				rec = append(rec,
					fmt.Sprintf(intFmt, col.Text.MinLength),
					fmt.Sprintf(intFmt, col.Text.MaxLength),
					fmtFloat(col.Text.MeanLength),
				)
			} else {
				rec = append(rec, "", "", "")
			}
			rec = append(rec, joinTopValuesCSV(col.TopValues))
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// joinTopValuesCSV flattens top values into a single pipe-separated CSV cell.
func joinTopValuesCSV(values []schema.ValueCount) string {
	parts := make([]string, len(values))
	for i, vc := range values {
		parts[i] = fmt.Sprintf("%s:%d", vc.Value, vc.Count)
	}
	return strings.Join(parts, "|")
}

// writeJSONResultsForStats writes the column statistics in JSON format.
func writeJSONResultsForStats(w io.Writer, dataset string, columns []schema.AttributeColumnStats) error {
	// Wrap the columns with the dataset identity so the document is self-contained
	type JSONColumnStats struct {
		Dataset string                        `json:"dataset"`
		Columns []schema.AttributeColumnStats `json:"columns"`
	}

	output := JSONColumnStats{
		Dataset: dataset,
		Columns: columns,
	}

	return writeJSON(w, output)
}
