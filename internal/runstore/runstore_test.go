package runstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoqa/geoqa/schema"
)

// sampleResult builds an assessment result with the given score for store tests.
func sampleResult(score float64) *schema.AssessmentResult {
	return &schema.AssessmentResult{
		Dataset:      "roads",
		Source:       "/data/roads.geojson",
		FeatureCount: 120,
		ColumnCount:  4,
		Score: schema.QualityScore{
			Value: score,
			Components: map[schema.ComponentKey]schema.ScoreComponent{
				schema.ComponentValidity: {Weight: 0.40, Raw: 100.0, Weighted: 40.0},
			},
		},
	}
}

func sampleChecks() []schema.CheckResult {
	return []schema.CheckResult{
		{Name: schema.CheckGeometryValidity, Severity: schema.HighSeverity, Status: schema.PassStatus, Issues: 0},
		{Name: schema.CheckCRSDefined, Severity: schema.HighSeverity, Status: schema.FailStatus, Issues: 1, Detail: "no CRS declared"},
	}
}

func TestRunStore_NoneBackend(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// BeginRun should return an empty ID for NoneBackend
	runID, err := store.BeginRun(time.Now(), "roads", "/data/roads.geojson", "abc")
	assert.NoError(t, err)
	assert.Empty(t, runID)

	// Other operations should not error
	err = store.RecordChecks(runID, sampleChecks())
	assert.NoError(t, err)

	err = store.FinishRun(runID, time.Now(), sampleResult(90.0))
	assert.NoError(t, err)

	runs, err := store.ListRuns("", 10)
	assert.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected, "NoneBackend should report as not connected")

	err = store.Close()
	assert.NoError(t, err)
}

func TestRunStore_SQLite(t *testing.T) {
	// Use in-memory SQLite for testing
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	startTime := time.Date(2024, 5, 1, 10, 0, 0, 123456789, time.UTC)
	runID, err := store.BeginRun(startTime, "roads", "/data/roads.geojson", "abc123")
	require.NoError(t, err)
	assert.Len(t, runID, 36, "run ID should be a UUID")

	err = store.RecordChecks(runID, sampleChecks())
	assert.NoError(t, err)

	endTime := startTime.Add(1500 * time.Millisecond)
	err = store.FinishRun(runID, endTime, sampleResult(92.5))
	assert.NoError(t, err)

	// Read the run back and verify every persisted field
	runs, err := store.ListRuns("roads", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Equal(t, "roads", run.Dataset)
	assert.Equal(t, "/data/roads.geojson", run.Source)
	assert.Equal(t, "abc123", run.ContentHash)
	assert.True(t, run.StartedAt.Equal(startTime), "StartedAt should round-trip")
	require.NotNil(t, run.FinishedAt)
	assert.True(t, run.FinishedAt.Equal(endTime), "FinishedAt should round-trip")
	require.NotNil(t, run.DurationMs)
	assert.Equal(t, int64(1500), *run.DurationMs)
	assert.Equal(t, 120, run.FeatureCount)
	assert.Equal(t, 4, run.ColumnCount)
	assert.Equal(t, 92.5, run.Score)
	assert.Equal(t, "Good", run.ScoreLabel)
	assert.Contains(t, run.Components, string(schema.ComponentValidity))
}

func TestRunStore_ListRuns(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	datasets := []string{"roads", "parcels", "roads"}

	var runIDs []string
	for i, dataset := range datasets {
		startTime := base.Add(time.Duration(i) * time.Hour)
		id, err := store.BeginRun(startTime, dataset, "/data/"+dataset, "")
		require.NoError(t, err)
		runIDs = append(runIDs, id)

		err = store.FinishRun(id, startTime.Add(time.Second), sampleResult(80.0+float64(i)))
		require.NoError(t, err)
	}

	// Verify all IDs are unique
	assert.NotEqual(t, runIDs[0], runIDs[1])
	assert.NotEqual(t, runIDs[1], runIDs[2])

	t.Run("newest first across datasets", func(t *testing.T) {
		runs, err := store.ListRuns("", 10)
		require.NoError(t, err)
		require.Len(t, runs, 3)
		assert.Equal(t, runIDs[2], runs[0].RunID)
		assert.Equal(t, runIDs[1], runs[1].RunID)
		assert.Equal(t, runIDs[0], runs[2].RunID)
	})

	t.Run("dataset filter", func(t *testing.T) {
		runs, err := store.ListRuns("roads", 10)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, runIDs[2], runs[0].RunID)
		assert.Equal(t, runIDs[0], runs[1].RunID)
	})

	t.Run("limit", func(t *testing.T) {
		runs, err := store.ListRuns("", 1)
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, runIDs[2], runs[0].RunID)
	})

	t.Run("unknown dataset", func(t *testing.T) {
		runs, err := store.ListRuns("rivers", 10)
		require.NoError(t, err)
		assert.Empty(t, runs)
	})
}

func TestRunStore_GetAllRuns(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Test empty store
	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	var runIDs []string
	for i := range 3 {
		id, err := store.BeginRun(base.Add(time.Duration(i)*time.Minute), "roads", "", "")
		require.NoError(t, err)
		runIDs = append(runIDs, id)
	}

	// Oldest first, and unfinished runs carry no completion data
	runs, err = store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 3)
	for i, run := range runs {
		assert.Equal(t, runIDs[i], run.RunID)
		assert.Nil(t, run.FinishedAt)
		assert.Nil(t, run.DurationMs)
	}
}

func TestRunStore_GetAllRunChecks(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Test empty store
	checks, err := store.GetAllRunChecks()
	assert.NoError(t, err)
	assert.Empty(t, checks)

	runID, err := store.BeginRun(time.Now(), "roads", "", "")
	require.NoError(t, err)

	err = store.RecordChecks(runID, sampleChecks())
	require.NoError(t, err)

	checks, err = store.GetAllRunChecks()
	require.NoError(t, err)
	require.Len(t, checks, 2)

	// Ordered by run_id then name
	assert.Equal(t, string(schema.CheckCRSDefined), checks[0].Name)
	assert.Equal(t, string(schema.FailStatus), checks[0].Status)
	assert.Equal(t, 1, checks[0].Issues)
	assert.Equal(t, "no CRS declared", checks[0].Detail)

	assert.Equal(t, string(schema.CheckGeometryValidity), checks[1].Name)
	assert.Equal(t, string(schema.PassStatus), checks[1].Status)
	assert.Equal(t, string(schema.HighSeverity), checks[1].Severity)
}

func TestRunStore_GetStatus(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Empty store
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRuns)
	assert.Empty(t, status.LastRunID)

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	firstID, err := store.BeginRun(base, "roads", "", "")
	require.NoError(t, err)
	lastID, err := store.BeginRun(base.Add(time.Hour), "parcels", "", "")
	require.NoError(t, err)
	err = store.RecordChecks(firstID, sampleChecks())
	require.NoError(t, err)

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, lastID, status.LastRunID)
	assert.True(t, status.LastRunTime.Equal(base.Add(time.Hour)))
	assert.True(t, status.OldestRunTime.Equal(base))
	assert.Equal(t, int64(2), status.TableSizes[runsTable])
	assert.Equal(t, int64(2), status.TableSizes[runChecksTable])
}

func TestRunStore_GetStatusStorageBytes(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = store.BeginRun(time.Now(), "roads", "", "")
	require.NoError(t, err)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Positive(t, status.StorageBytes)
}

func TestRunStore_DurationCapture(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	t.Run("duration calculation", func(t *testing.T) {
		startTime := time.Now().Add(-100 * time.Millisecond)
		runID, err := store.BeginRun(startTime, "roads", "", "")
		require.NoError(t, err)

		endTime := time.Now()
		err = store.FinishRun(runID, endTime, sampleResult(75.0))
		assert.NoError(t, err)

		// Query the database to verify the stored times and duration agree
		db := store.(*RunStoreImpl).db
		var storedStart, storedEnd string
		var storedDurationMs int64
		row := db.QueryRow(`SELECT started_at, finished_at, duration_ms FROM "geoqa_runs" WHERE run_id = ?`, runID)
		err = row.Scan(&storedStart, &storedEnd, &storedDurationMs)
		require.NoError(t, err)

		parsedStart, err := time.Parse(time.RFC3339Nano, storedStart)
		assert.NoError(t, err)
		parsedEnd, err := time.Parse(time.RFC3339Nano, storedEnd)
		assert.NoError(t, err)

		expectedDurationMs := parsedEnd.Sub(parsedStart).Milliseconds()
		assert.Equal(t, expectedDurationMs, storedDurationMs)
		assert.GreaterOrEqual(t, storedDurationMs, int64(100))
	})

	t.Run("zero duration edge case", func(t *testing.T) {
		startTime := time.Now()
		runID, err := store.BeginRun(startTime, "roads", "", "")
		require.NoError(t, err)

		// End immediately with same time
		err = store.FinishRun(runID, startTime, sampleResult(75.0))
		assert.NoError(t, err)

		runs, err := store.ListRuns("roads", 1)
		require.NoError(t, err)
		require.Len(t, runs, 1)
		require.NotNil(t, runs[0].DurationMs)
		assert.Equal(t, int64(0), *runs[0].DurationMs)
	})
}

func TestRunStore_FinishUnknownRun(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	err = store.FinishRun("no-such-run", time.Now(), sampleResult(50.0))
	assert.Error(t, err, "finishing an unknown run should fail on the start time lookup")
}

func TestRunStore_ScoreLabels(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	tests := []struct {
		score float64
		label string
	}{
		{95.0, "Good"},
		{70.0, "Fair"},
		{45.0, "Poor"},
		{10.0, "Critical"},
	}

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, tt := range tests {
		startTime := base.Add(time.Duration(i) * time.Minute)
		runID, err := store.BeginRun(startTime, "labels", "", "")
		require.NoError(t, err)
		err = store.FinishRun(runID, startTime.Add(time.Second), sampleResult(tt.score))
		require.NoError(t, err)
	}

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, len(tests))
	for i, tt := range tests {
		assert.Equal(t, tt.label, runs[i].ScoreLabel, "score %.1f", tt.score)
	}
}

func TestNewRunStore_UnsupportedBackend(t *testing.T) {
	_, err := NewRunStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

// TestQuoteTableName tests the quoteTableName function for all backends.
func TestQuoteTableName(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		backend   schema.DatabaseBackend
		want      string
	}{
		{
			name:      "SQLite backend",
			tableName: "geoqa_runs",
			backend:   schema.SQLiteBackend,
			want:      `"geoqa_runs"`,
		},
		{
			name:      "MySQL backend",
			tableName: "geoqa_runs",
			backend:   schema.MySQLBackend,
			want:      "`geoqa_runs`",
		},
		{
			name:      "PostgreSQL backend",
			tableName: "geoqa_runs",
			backend:   schema.PostgreSQLBackend,
			want:      `"geoqa_runs"`,
		},
		{
			name:      "None backend defaults to SQLite style",
			tableName: "geoqa_runs",
			backend:   schema.NoneBackend,
			want:      `"geoqa_runs"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := quoteTableName(tt.tableName, tt.backend)
			assert.Equal(t, tt.want, got, "quoteTableName(%q, %q)", tt.tableName, tt.backend)
		})
	}
}

// TestFormatTime tests per-backend time conversion.
func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 500000000, time.UTC)

	sqliteValue := formatTime(ts, schema.SQLiteBackend)
	assert.Equal(t, "2024-05-01T10:00:00.5Z", sqliteValue, "SQLite stores RFC3339Nano strings")

	mysqlValue := formatTime(ts, schema.MySQLBackend)
	assert.Equal(t, ts, mysqlValue, "MySQL uses native time values")

	pgValue := formatTime(ts, schema.PostgreSQLBackend)
	assert.Equal(t, ts, pgValue, "PostgreSQL uses native time values")
}

// TestGetCreateRunsQuery tests the runs DDL for different backends.
func TestGetCreateRunsQuery(t *testing.T) {
	tests := []struct {
		name         string
		backend      schema.DatabaseBackend
		wantContains []string
	}{
		{
			name:    "SQLite backend",
			backend: schema.SQLiteBackend,
			wantContains: []string{
				"CREATE TABLE IF NOT EXISTS",
				`"geoqa_runs"`,
				"run_id TEXT PRIMARY KEY",
				"started_at TEXT NOT NULL",
				"score REAL",
			},
		},
		{
			name:    "MySQL backend",
			backend: schema.MySQLBackend,
			wantContains: []string{
				"CREATE TABLE IF NOT EXISTS",
				"`geoqa_runs`",
				"run_id VARCHAR(36) PRIMARY KEY",
				"started_at DATETIME(6) NOT NULL",
				"score DOUBLE",
			},
		},
		{
			name:    "PostgreSQL backend",
			backend: schema.PostgreSQLBackend,
			wantContains: []string{
				"CREATE TABLE IF NOT EXISTS",
				`"geoqa_runs"`,
				"run_id TEXT PRIMARY KEY",
				"started_at TIMESTAMPTZ NOT NULL",
				"score DOUBLE PRECISION",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getCreateRunsQuery(tt.backend)
			for _, want := range tt.wantContains {
				assert.Contains(t, got, want, "getCreateRunsQuery() should contain %q", want)
			}
		})
	}
}

// TestGetCreateRunChecksQuery tests the checks DDL for different backends.
func TestGetCreateRunChecksQuery(t *testing.T) {
	for _, backend := range []schema.DatabaseBackend{schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend} {
		t.Run(string(backend), func(t *testing.T) {
			got := getCreateRunChecksQuery(backend)
			assert.Contains(t, got, "CREATE TABLE IF NOT EXISTS")
			assert.Contains(t, got, "PRIMARY KEY (run_id, name)")
		})
	}
}
