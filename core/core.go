package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/internal/geodata"
	"github.com/geoqa/geoqa/internal/outwriter"
	"github.com/geoqa/geoqa/schema"
)

// ExecutorFunc defines the function signature for executing different assessment modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// worstColumnsLimit caps the null-ranking section of the HTML report.
const worstColumnsLimit = 5

var writer = outwriter.NewOutWriter()

// runAssessment opens the configured dataset, assesses it, and records the
// run when a store is available. Recording failures warn and never abort
// the assessment itself.
func runAssessment(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (*Profile, contract.Dataset, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogAssessHeader(cfg)
	}

	ds, err := geodata.Open(cfg.DatasetPath)
	if err != nil {
		return nil, nil, err
	}

	var store contract.RunStore
	if mgr != nil && !shouldSkipStore(ctx) {
		store = mgr.GetRunStore()
	}
	runID := beginRun(store, cfg, ds)

	profile, err := Assess(ds, Options{Workers: cfg.Workers, TopValues: cfg.TopValues})
	if err != nil {
		return nil, nil, err
	}

	finishRun(store, runID, profile.Result())
	return profile, ds, nil
}

// beginRun opens a run record and returns its ID, or "" when recording is off.
func beginRun(store contract.RunStore, cfg *contract.Config, ds contract.Dataset) string {
	if store == nil {
		return ""
	}
	contentHash, err := geodata.HashFile(cfg.DatasetPath)
	if err != nil {
		contract.LogWarn("Dataset hashing failed", err)
	}
	runID, err := store.BeginRun(time.Now(), ds.Name(), ds.Source(), contentHash)
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return ""
	}
	return runID
}

// finishRun completes the run record with the assessment outcome.
func finishRun(store contract.RunStore, runID string, result *schema.AssessmentResult) {
	if store == nil || runID == "" {
		return
	}
	if err := store.FinishRun(runID, time.Now(), result); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
	if err := store.RecordChecks(runID, result.Checks); err != nil {
		contract.LogWarn("Failed to record run checks", err)
	}
}

// GetProfileResults assesses the configured dataset and returns the full result.
func GetProfileResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (*schema.AssessmentResult, time.Duration, error) {
	start := time.Now()
	profile, _, err := runAssessment(ctx, cfg, mgr)
	if err != nil {
		return nil, 0, err
	}
	return profile.Result(), time.Since(start), nil
}

// GetStatsResults assesses the configured dataset and returns its attribute
// column statistics. When cfg.Column is set, only that column is returned.
// Stats runs are not recorded in the run store.
func GetStatsResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (string, []schema.AttributeColumnStats, time.Duration, error) {
	start := time.Now()
	profile, _, err := runAssessment(WithSkipStore(ctx), cfg, mgr)
	if err != nil {
		return "", nil, 0, err
	}
	columns := profile.Columns()
	if cfg.Column != "" {
		column, err := profile.Column(cfg.Column)
		if err != nil {
			return "", nil, 0, err
		}
		columns = []schema.AttributeColumnStats{column}
	}
	return profile.Dataset(), columns, time.Since(start), nil
}

// GetCheckResults assesses the configured dataset and evaluates the quality
// gate against cfg.MinScore.
func GetCheckResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (*schema.AssessmentResult, schema.GateResult, time.Duration, error) {
	start := time.Now()
	profile, _, err := runAssessment(ctx, cfg, mgr)
	if err != nil {
		return nil, schema.GateResult{}, 0, err
	}
	result := profile.Result()
	gate := EvaluateGate(result, cfg.MinScore)
	return result, gate, time.Since(start), nil
}

// GetCompareResults assesses the baseline and target datasets and computes
// the quality deltas between them. Neither side is recorded as a run.
func GetCompareResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.ComparisonResult, time.Duration, error) {
	start := time.Now()
	if cfg.BasePath == "" {
		return schema.ComparisonResult{}, 0, errors.New("comparison requires a baseline dataset")
	}

	// Print single header for the comparison
	if !shouldSuppressHeader(ctx) {
		outwriter.LogCompareHeader(cfg)
	}
	ctx = WithSuppressHeader(WithSkipStore(ctx))

	baseCfg, err := cfg.CloneForDataset(cfg.BasePath)
	if err != nil {
		return schema.ComparisonResult{}, 0, err
	}
	base, _, err := runAssessment(ctx, baseCfg, mgr)
	if err != nil {
		return schema.ComparisonResult{}, 0, err
	}
	target, _, err := runAssessment(ctx, cfg, mgr)
	if err != nil {
		return schema.ComparisonResult{}, 0, err
	}
	return CompareProfiles(base, target), time.Since(start), nil
}

// GetFixResults repairs the configured dataset and writes the repaired copy
// when at least one geometry changed. The returned path is empty when
// nothing was written.
func GetFixResults(_ context.Context, cfg *contract.Config) (*schema.FixReport, string, time.Duration, error) {
	start := time.Now()
	ds, err := geodata.Open(cfg.DatasetPath)
	if err != nil {
		return nil, "", 0, err
	}

	features, report := RepairDataset(ds)
	if report.Repaired == 0 {
		return &report, "", time.Since(start), nil
	}

	outPath := cfg.FixOutput
	if outPath == "" {
		outPath = deriveFixedPath(cfg.DatasetPath)
	}
	repaired := geodata.NewMemoryDataset(ds.Name(), outPath, ds.CRS(), ds.Columns(), features)
	if err := geodata.WriteGeoJSON(outPath, repaired); err != nil {
		return nil, "", 0, err
	}
	return &report, outPath, time.Since(start), nil
}

// GetHistoryResults lists recorded runs, newest first. cfg.DatasetName
// narrows the listing to one dataset when set.
func GetHistoryResults(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.RunRecord, error) {
	store := mgr.GetRunStore()
	if cfg.StoreBackend == schema.NoneBackend || store == nil {
		return nil, errors.New("run tracking is disabled (store-backend none)")
	}
	return store.ListRuns(cfg.DatasetName, cfg.ResultLimit)
}

// deriveFixedPath places the repaired dataset next to the source file.
// The output is always GeoJSON regardless of the input format.
func deriveFixedPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "_fixed.geojson"
}

// ExecuteProfile runs the full assessment and prints results to stdout.
// It serves as the main entry point for the 'profile' command.
func ExecuteProfile(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	result, duration, err := GetProfileResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return writer.WriteProfile(result, cfg, duration)
}

// ExecuteStats runs the attribute profiling pass and prints column statistics.
func ExecuteStats(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	dataset, columns, duration, err := GetStatsResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return writer.WriteStats(dataset, columns, cfg, duration)
}

// ExecuteCheck runs the assessment, prints the gate verdict and exits with
// a non-zero status when the gate fails. Suitable for CI pipelines.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	result, gate, duration, err := GetCheckResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if err := writer.WriteGate(result, &gate, cfg, duration); err != nil {
		return err
	}
	if !gate.Passed {
		os.Exit(1)
	}
	return nil
}

// ExecuteFix repairs invalid geometries and prints the repair report.
func ExecuteFix(ctx context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	report, outPath, duration, err := GetFixResults(ctx, cfg)
	if err != nil {
		return err
	}
	return writer.WriteFix(report, outPath, cfg, duration)
}

// ExecuteCompare assesses the baseline and target datasets and prints the deltas.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	result, duration, err := GetCompareResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return writer.WriteComparison(result, cfg, duration)
}

// ExecuteReport runs the assessment and renders the standalone HTML report.
func ExecuteReport(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	profile, _, err := runAssessment(WithSkipStore(ctx), cfg, mgr)
	if err != nil {
		return err
	}
	result := profile.Result()
	worst := RankColumnsByNulls(result.Columns, worstColumnsLimit)
	return writer.WriteReport(result, worst, cfg)
}

// ExecuteMap runs the assessment and renders the interactive Leaflet map.
func ExecuteMap(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	profile, ds, err := runAssessment(WithSkipStore(ctx), cfg, mgr)
	if err != nil {
		return err
	}
	return writer.WriteMap(ds, profile.Result(), cfg)
}

// ExecuteHistory prints recorded assessment runs for the configured dataset.
func ExecuteHistory(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	runs, err := GetHistoryResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return writer.WriteHistory(runs, cfg)
}
