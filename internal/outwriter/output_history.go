package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/schema"
	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// trendChartHeight is the row count of the ascii score trend chart.
const trendChartHeight = 8

// WriteHistoryResults outputs recorded runs, dispatching based on the output format configured.
// Runs are expected newest first, as the run store lists them.
func WriteHistoryResults(w io.Writer, runs []schema.RunRecord, cfg *contract.Config) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSONResultsForHistory(w, runs); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVResultsForHistory(w, runs, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table plus trend chart
		return writeHistoryTable(w, runs, cfg, fmtFloat, intFmt)
	}
	return nil
}

// writeHistoryTable generates and writes the human-readable run table.
func writeHistoryTable(w io.Writer, runs []schema.RunRecord, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintf(w, "No recorded runs found. Run 'geoqa profile <dataset>' to record one.\n")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Run", "Finished", "Dataset", "Source", "Score", "Label", "Features", "Duration"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range runs {
		data = append(data, []string{
			shortRunID(r.RunID),
			formatRunFinished(r.FinishedAt),
			r.Dataset,
			contract.TruncatePath(r.Source, getMaxTablePathWidth(cfg)),
			formatRunScore(r, fmtFloat),
			formatRunLabel(r, cfg.UseColors),
			fmt.Sprintf(intFmt, r.FeatureCount),
			formatRunDuration(r.DurationMs),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	// Trend chart over finished runs, oldest to newest
	scores := finishedScores(runs)
	if len(scores) >= 2 {
		chart := asciigraph.Plot(scores,
			asciigraph.Height(trendChartHeight),
			asciigraph.Caption("score trend (oldest to newest)"))
		if _, err := fmt.Fprintf(w, "\n%s\n\n", chart); err != nil {
			return err
		}
	}

	if cfg.DatasetName != "" {
		_, err := fmt.Fprintf(w, "Showing last %d runs for %s\n", len(runs), cfg.DatasetName)
		return err
	}
	_, err := fmt.Fprintf(w, "Showing last %d runs\n", len(runs))
	return err
}

// finishedScores collects scores of completed runs in chronological order.
func finishedScores(runs []schema.RunRecord) []float64 {
	var scores []float64
	for i := len(runs) - 1; i >= 0; i-- {
		if runs[i].FinishedAt != nil {
			scores = append(scores, runs[i].Score)
		}
	}
	return scores
}

// shortRunID abbreviates a run UUID for table display.
func shortRunID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}

// formatRunFinished renders the completion time of a run.
func formatRunFinished(finishedAt *time.Time) string {
	if finishedAt == nil {
		return "in flight"
	}
	return finishedAt.Format("2006-01-02 15:04:05")
}

// formatRunScore renders the score cell, blank for unfinished runs.
func formatRunScore(r schema.RunRecord, fmtFloat func(float64) string) string {
	if r.FinishedAt == nil {
		return "-"
	}
	return fmtFloat(r.Score)
}

// formatRunLabel renders the label cell, blank for unfinished runs.
func formatRunLabel(r schema.RunRecord, useColors bool) string {
	if r.FinishedAt == nil {
		return "-"
	}
	return scoreLabel(r.Score, useColors)
}

// formatRunDuration renders the run duration cell.
func formatRunDuration(durationMs *int64) string {
	if durationMs == nil {
		return "-"
	}
	return (time.Duration(*durationMs) * time.Millisecond).String()
}

// writeCSVResultsForHistory writes the recorded runs in CSV format.
func writeCSVResultsForHistory(w io.Writer, runs []schema.RunRecord, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"run_id",
		"dataset",
		"source",
		"content_hash",
		"started_at",
		"finished_at",
		"duration_ms",
		"features",
		"columns",
		"score",
		"label",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, r := range runs {
			finishedAt := ""
			if r.FinishedAt != nil {
				finishedAt = r.FinishedAt.Format(contract.DateTimeFormat)
			}
			durationMs := ""
			if r.DurationMs != nil {
				durationMs = strconv.FormatInt(*r.DurationMs, 10)
			}
			rec := []string{
				r.RunID,
				r.Dataset,
				r.Source,
				r.ContentHash,
				r.StartedAt.Format(contract.DateTimeFormat),
				finishedAt,
				durationMs,
				fmt.Sprintf(intFmt, r.FeatureCount),
				fmt.Sprintf(intFmt, r.ColumnCount),
				fmtFloat(r.Score),
				r.ScoreLabel,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForHistory writes the recorded runs in JSON format.
func writeJSONResultsForHistory(w io.Writer, runs []schema.RunRecord) error {
	if runs == nil {
		runs = []schema.RunRecord{}
	}
	return writeJSON(w, runs)
}
