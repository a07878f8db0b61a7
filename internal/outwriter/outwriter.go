// Package outwriter has output and writer logic.
package outwriter

import (
	"io"
	"time"

	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/internal/report"
	"github.com/geoqa/geoqa/internal/webmap"
	"github.com/geoqa/geoqa/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteProfile prints a full assessment using the configured output format.
func (ow *OutWriter) WriteProfile(result *schema.AssessmentResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteProfileResults(w, result, cfg, duration)
	}, successMessage(cfg.Output))
}

// WriteGate prints quality gate results using the configured output format.
func (ow *OutWriter) WriteGate(result *schema.AssessmentResult, gate *schema.GateResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteGateResults(w, result, gate, cfg, duration)
	}, successMessage(cfg.Output))
}

// WriteStats prints attribute column statistics using the configured output format.
func (ow *OutWriter) WriteStats(dataset string, columns []schema.AttributeColumnStats, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteStatsResults(w, dataset, columns, cfg, duration)
	}, successMessage(cfg.Output))
}

// WriteComparison prints comparison results using the configured output format.
func (ow *OutWriter) WriteComparison(result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteComparisonResults(w, result, cfg, duration)
	}, successMessage(cfg.Output))
}

// WriteHistory prints recorded assessment runs using the configured output format.
func (ow *OutWriter) WriteHistory(runs []schema.RunRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteHistoryResults(w, runs, cfg)
	}, successMessage(cfg.Output))
}

// WriteFix prints a repair report using the configured output format.
func (ow *OutWriter) WriteFix(fixReport *schema.FixReport, outPath string, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteFixResults(w, fixReport, outPath, cfg, duration)
	}, successMessage(cfg.Output))
}

// WriteReport renders the standalone HTML quality report. An empty output
// file falls back to the default report name.
func (ow *OutWriter) WriteReport(result *schema.AssessmentResult, worstColumns []schema.AttributeColumnStats, cfg *contract.Config) error {
	outputFile := cfg.OutputFile
	if outputFile == "" {
		outputFile = report.DefaultFileName
	}
	return writeWithFile(outputFile, func(w io.Writer) error {
		return report.Write(w, result, worstColumns, cfg)
	}, "Wrote report")
}

// WriteMap renders the interactive Leaflet map for an assessed dataset.
// An empty output file falls back to the default map name.
func (ow *OutWriter) WriteMap(ds contract.Dataset, result *schema.AssessmentResult, cfg *contract.Config) error {
	outputFile := cfg.OutputFile
	if outputFile == "" {
		outputFile = webmap.DefaultFileName
	}
	return writeWithFile(outputFile, func(w io.Writer) error {
		return webmap.Write(w, ds, result, cfg)
	}, "Wrote map")
}
