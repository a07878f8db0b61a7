// Package main provides a performance benchmarking tool for the GeoQA CLI.
// It generates synthetic datasets of different sizes, measures execution times
// across command types, running each test multiple times, treating the first
// successful run as cold and averaging the rest as warm, generating CSV output
// for performance analysis and documentation.
//
// Prerequisites:
// - geoqa binary installed and available in PATH
//
// Usage: go run benchmark/main.go [dataset-dir]
//
//	dataset-dir: Directory where synthetic benchmark datasets are generated
package main

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-store average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset     string
	Command     string
	NoStoreTime string
	ColdTime    string
	WarmTime    string
}

// DatasetSpec describes one synthetic dataset to generate.
type DatasetSpec struct {
	Name     string
	Kind     string // point or polygon
	Features int
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	DatasetBase  string
	Timeout      time.Duration
	Workers      int
	NoStoreRuns  int
	StoreRuns    int
	TestDatasets []DatasetSpec
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [dataset-dir]\n", os.Args[0])
		os.Exit(1)
	}
	datasetBase := os.Args[1]

	config := BenchmarkConfig{
		DatasetBase: datasetBase,
		Timeout:     5 * time.Minute,
		Workers:     8,
		NoStoreRuns: 3,
		StoreRuns:   4,
		TestDatasets: []DatasetSpec{
			{Name: "points-10k", Kind: "point", Features: 10_000},
			{Name: "polygons-10k", Kind: "polygon", Features: 10_000},
			{Name: "polygons-100k", Kind: "polygon", Features: 100_000},
		},
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	if err := generateDatasets(config); err != nil {
		fmt.Printf("Dataset generation failed: %v\n", err)
		os.Exit(1)
	}

	// Clear recorded runs using geoqa store clear
	fmt.Printf("Clearing run store...\n")
	clearCmd := exec.Command("geoqa", "store", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear run store: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Run store cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the geoqa binary is available.
func checkPrerequisites() error {
	if _, err := exec.LookPath("geoqa"); err != nil {
		return fmt.Errorf("geoqa binary not found in PATH")
	}
	return nil
}

// generateDatasets writes the synthetic GeoJSON datasets used by the benchmark.
// Each dataset carries a small fraction of defects (invalid geometries, null
// attributes) so the checks have real work to do.
func generateDatasets(config BenchmarkConfig) error {
	if err := os.MkdirAll(config.DatasetBase, 0o755); err != nil {
		return err
	}

	for _, spec := range config.TestDatasets {
		path := datasetPath(config, spec)
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Reusing existing dataset %s\n", path)
			continue
		}
		fmt.Printf("Generating %s (%d features)\n", path, spec.Features)
		if err := writeDataset(path, spec); err != nil {
			return fmt.Errorf("failed to generate %s: %w", spec.Name, err)
		}
	}
	return nil
}

func datasetPath(config BenchmarkConfig, spec DatasetSpec) string {
	return filepath.Join(config.DatasetBase, spec.Name+".geojson")
}

// writeDataset streams one FeatureCollection to disk feature by feature so
// even the 100k dataset stays cheap to build.
func writeDataset(path string, spec DatasetSpec) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	categories := []string{"residential", "commercial", "industrial", "park"}

	w := bufio.NewWriter(file)
	if _, err := w.WriteString(`{"type":"FeatureCollection","features":[`); err != nil {
		return err
	}

	for i := range spec.Features {
		// Every 10th name is null, so completeness stays below 100%.
		var name any = fmt.Sprintf("feat-%d", i)
		if i%10 == 0 {
			name = nil
		}

		feature := map[string]any{
			"type":     "Feature",
			"geometry": geometryFor(spec.Kind, i),
			"properties": map[string]any{
				"id":       i,
				"name":     name,
				"category": categories[i%len(categories)],
			},
		}

		data, err := json.Marshal(feature)
		if err != nil {
			return err
		}
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}

	if _, err := w.WriteString("]}"); err != nil {
		return err
	}
	return w.Flush()
}

// geometryFor lays features out on a grid. Every 50th polygon is a bowtie so
// the validity check finds invalid geometries.
func geometryFor(kind string, i int) map[string]any {
	x := float64(i%1000) * 0.01
	y := float64(i/1000) * 0.01

	if kind == "point" {
		return map[string]any{"type": "Point", "coordinates": []float64{x, y}}
	}

	const d = 0.008
	ring := [][]float64{{x, y}, {x + d, y}, {x + d, y + d}, {x, y + d}, {x, y}}
	if i%50 == 0 {
		// Self-intersecting ring
		ring = [][]float64{{x, y}, {x + d, y + d}, {x + d, y}, {x, y + d}, {x, y}}
	}
	return map[string]any{"type": "Polygon", "coordinates": [][][]float64{ring}}
}

// runBenchmarks executes all benchmark tests across configured datasets
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, %d workers, no-store: %d runs, store: %d runs\n",
		len(config.TestDatasets), config.Timeout, config.Workers, config.NoStoreRuns, config.StoreRuns)

	for _, spec := range config.TestDatasets {
		fmt.Printf("Benchmarking %s\n", spec.Name)

		path := datasetPath(config, spec)

		// Full profile assessment
		result := runBenchmarkSuite(config, spec.Name, path, "profile", "profile assessment", "")
		results = append(results, result)

		// Quality gate
		result = runBenchmarkSuite(config, spec.Name, path, "check", "quality gate", "--min-score 50")
		results = append(results, result)

		// Attribute statistics
		result = runBenchmarkSuite(config, spec.Name, path, "stats", "attribute stats", "")
		results = append(results, result)
	}

	return results
}

// runBenchmarkSuite runs both no-store and store benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, dataset, path, command, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, dataset)

	// Helper to run a benchmark phase
	runPhase := func(storeBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, path, command, extraArgs, storeBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-store runs
	_, noStoreAvg := runPhase("none", config.NoStoreRuns, "No-store")

	// Phase 2: Store runs
	coldTime, warmAvg := runPhase("sqlite", config.StoreRuns, "Store")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-store average: %s, Cold time: %s, Warm average: %s\n", noStoreAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:     dataset,
		Command:     command,
		NoStoreTime: noStoreAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a geoqa command multiple times with the specified store backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, path, command, extraArgs, storeBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{command, "--store-backend", storeBackend, "--workers", strconv.Itoa(config.Workers)}
	if extraArgs != "" {
		args = append(args, parseArgs(extraArgs)...)
	}
	args = append(args, path)

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("geoqa", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

func parseArgs(argsStr string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, r := range argsStr {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes && current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			} else if inQuotes {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	var completionPhrase string
	if command == "stats" {
		completionPhrase = "Analysis completed in"
	} else {
		completionPhrase = "Assessment completed in"
	}

	return strings.Contains(outputStr, completionPhrase) &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/geoqa_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"dataset", "cmd", "no_store_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.NoStoreTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "profile", "Profile Assessment:")
	printCommandSummary(results, "check", "Quality Gate:")
	printCommandSummary(results, "stats", "Attribute Stats:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-14s: No-store: %s, Cold: %s, Warm: %s\n", result.Dataset, result.NoStoreTime, result.ColdTime, result.WarmTime)
		}
	}
}
