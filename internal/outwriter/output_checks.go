package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteGateResults outputs the quality gate evaluation, dispatching based on the output format configured.
func WriteGateResults(w io.Writer, result *schema.AssessmentResult, gate *schema.GateResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSONResultsForGate(w, gate); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVResultsForGate(w, result, gate, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table plus verdict block
		return writeGateTable(w, result, gate, cfg, fmtFloat, intFmt, duration)
	}
	return nil
}

// writeChecksTable renders the quality check rows shared by profile and gate output.
func writeChecksTable(w io.Writer, checks []schema.CheckResult, cfg *contract.Config, intFmt string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Check", "Severity", "Status", "Issues", "Detail"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, c := range checks {
		data = append(data, []string{
			string(c.Name),
			string(c.Severity),
			statusCell(c.Status, cfg.UseColors),
			fmt.Sprintf(intFmt, c.Issues),
			c.Detail,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeGateTable generates and writes the human-readable gate view.
func writeGateTable(w io.Writer, result *schema.AssessmentResult, gate *schema.GateResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	if err := writeChecksTable(w, result.Checks, cfg, intFmt); err != nil {
		return err
	}

	verdict := formatGateVerdict(gate, cfg, fmtFloat)
	if _, err := fmt.Fprintf(w, "%s\n", verdict); err != nil {
		return err
	}
	if len(gate.FailedChecks) > 0 {
		if _, err := fmt.Fprintf(w, "Failed checks: %s\n", joinCheckNames(gate.FailedChecks)); err != nil {
			return err
		}
	}
	if len(gate.WarnedChecks) > 0 {
		if _, err := fmt.Fprintf(w, "Warned checks: %s\n", joinCheckNames(gate.WarnedChecks)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Assessment completed in %v with %d workers. Store backend: %s\n", duration, cfg.Workers, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// formatGateVerdict builds the one-line pass/fail verdict with optional emoji and color.
func formatGateVerdict(gate *schema.GateResult, cfg *contract.Config, fmtFloat func(float64) string) string {
	verdict := "PASSED"
	paint := fmt.Sprint
	if cfg.UseColors {
		paint = color.New(color.FgGreen, color.Bold).SprintFunc()
	}
	if !gate.Passed {
		verdict = "FAILED"
		if cfg.UseColors {
			paint = color.New(color.FgRed, color.Bold).SprintFunc()
		}
	}
	if cfg.UseEmojis {
		if gate.Passed {
			verdict = "✅ " + verdict
		} else {
			verdict = "❌ " + verdict
		}
	}
	return paint(fmt.Sprintf("%s: score %s, minimum %s", verdict, fmtFloat(gate.Score), fmtFloat(gate.MinScore)))
}

// joinCheckNames joins check names for the verdict detail lines.
func joinCheckNames(checks []schema.CheckResult) string {
	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = string(c.Name)
	}
	return strings.Join(names, ", ")
}

// writeCSVResultsForGate writes the gate evaluation in CSV format, one row per check.
func writeCSVResultsForGate(w io.Writer, result *schema.AssessmentResult, gate *schema.GateResult, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"check",
		"severity",
		"status",
		"issues",
		"detail",
		"score",
		"min_score",
		"passed",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, c := range result.Checks {
			rec := []string{
				string(c.Name),                    // Check
				string(c.Severity),                // Severity
				string(c.Status),                  // Status
				fmt.Sprintf(intFmt, c.Issues),     // Issues
				c.Detail,                          // Detail
				fmtFloat(gate.Score),              // Score
				fmtFloat(gate.MinScore),           // Minimum
				strconv.FormatBool(gate.Passed),   // Verdict
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForGate marshals the schema.GateResult to JSON and writes it.
func writeJSONResultsForGate(w io.Writer, gate *schema.GateResult) error {
	return writeJSON(w, gate)
}
