package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteProfileResults outputs one assessment, dispatching based on the output format configured.
func WriteProfileResults(w io.Writer, result *schema.AssessmentResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSONResultsForProfile(w, result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVResultsForProfile(w, result, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable tables
		return writeProfileTables(w, result, cfg, fmtFloat, intFmt, duration)
	}
	return nil
}

// writeProfileTables generates and writes the human-readable assessment view.
func writeProfileTables(w io.Writer, result *schema.AssessmentResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	if err := writeProfileHeader(w, result, cfg); err != nil {
		return err
	}

	if err := writeComponentsTable(w, result.Score, fmtFloat); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := writeChecksTable(w, result.Checks, cfg, intFmt); err != nil {
		return err
	}

	return writeProfileSummary(w, result, cfg, fmtFloat, duration)
}

// writeProfileHeader prints the dataset identity block above the tables.
func writeProfileHeader(w io.Writer, result *schema.AssessmentResult, cfg *contract.Config) error {
	title := result.Dataset
	if cfg.UseEmojis {
		title = "🌍 " + title
	}
	if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n", strings.Repeat("=", utf8.RuneCountInString(title))); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Source: %s\n", result.Source); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Features: %d, Columns: %d\n", result.FeatureCount, result.ColumnCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "CRS: %s\n", formatCRS(result.Spatial.CRS)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// writeComponentsTable renders the score breakdown in fixed component order.
func writeComponentsTable(w io.Writer, score schema.QualityScore, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Component", "Weight", "Raw", "Weighted"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, key := range schema.AllComponents {
		comp, ok := score.Components[key]
		if !ok {
			continue
		}
		data = append(data, []string{
			string(key),
			fmt.Sprintf("%.2f", comp.Weight),
			fmtFloat(comp.Raw),
			fmtFloat(comp.Weighted),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeProfileSummary prints the trailing summary lines after the tables.
func writeProfileSummary(w io.Writer, result *schema.AssessmentResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	g := result.Geometry
	if _, err := fmt.Fprintf(w, "Geometry: %d valid, %d invalid, %d missing, %d empty of %d (%d duplicates)\n",
		g.ValidCount, g.InvalidCount, g.MissingCount, g.EmptyCount, g.Total, g.DuplicateCount); err != nil {
		return err
	}
	if len(g.TypeHistogram) > 0 {
		if _, err := fmt.Fprintf(w, "Types: %s\n", formatTypeHistogram(g.TypeHistogram)); err != nil {
			return err
		}
	}
	if g.Vertices != nil {
		if _, err := fmt.Fprintf(w, "Vertices: %d total, mean %s per feature\n", g.Vertices.Total, fmtFloat(g.Vertices.Mean)); err != nil {
			return err
		}
	}
	if b := result.Spatial.Bounds; b != nil {
		if _, err := fmt.Fprintf(w, "Extent: [%g, %g] to [%g, %g]\n", b.MinX, b.MinY, b.MaxX, b.MaxY); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Quality score: %s (%s)\n", fmtFloat(result.Score.Value), scoreLabel(result.Score.Value, cfg.UseColors)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Assessment completed in %v with %d workers. Store backend: %s\n", duration, cfg.Workers, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// formatCRS renders the CRS identity for a header line.
func formatCRS(crs *schema.CRSInfo) string {
	if crs == nil {
		return "not declared"
	}
	if crs.Name != "" {
		return fmt.Sprintf("%s (%s)", crs.Code, crs.Name)
	}
	return crs.Code
}

// formatTypeHistogram renders geometry type counts, largest first.
func formatTypeHistogram(hist map[schema.GeometryType]int) string {
	type typeCount struct {
		name  schema.GeometryType
		count int
	}
	counts := make([]typeCount, 0, len(hist))
	for name, count := range hist {
		counts = append(counts, typeCount{name, count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].name < counts[j].name
	})

	parts := make([]string, len(counts))
	for i, tc := range counts {
		parts[i] = fmt.Sprintf("%s (%d)", tc.name, tc.count)
	}
	return strings.Join(parts, ", ")
}

// writeCSVResultsForProfile writes the assessment in CSV format, one row per check.
func writeCSVResultsForProfile(w io.Writer, result *schema.AssessmentResult, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"dataset",
		"score",
		"label",
		"check",
		"severity",
		"status",
		"issues",
		"detail",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, c := range result.Checks {
			rec := []string{
				result.Dataset,                               // Dataset
				fmtFloat(result.Score.Value),                 // Score
				contract.GetPlainLabel(result.Score.Value),   // Label
				string(c.Name),                               // Check
				string(c.Severity),                           // Severity
				string(c.Status),                             // Status
				fmt.Sprintf(intFmt, c.Issues),                // Issues
				c.Detail,                                     // Detail
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForProfile writes the assessment in JSON format.
func writeJSONResultsForProfile(w io.Writer, result *schema.AssessmentResult) error {
	// Prepare the data structure for JSON with the quality label added
	type JSONAssessmentResult struct {
		Label string `json:"label"`
		schema.AssessmentResult
	}

	output := JSONAssessmentResult{
		Label:            contract.GetPlainLabel(result.Score.Value),
		AssessmentResult: *result,
	}

	return writeJSON(w, output)
}
