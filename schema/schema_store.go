package schema

import "time"

// RunRecord represents a row from the geoqa_runs table.
type RunRecord struct {
	RunID        string     `json:"run_id"`
	Dataset      string     `json:"dataset"`
	Source       string     `json:"source"`
	ContentHash  string     `json:"content_hash,omitempty"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	DurationMs   *int64     `json:"duration_ms,omitempty"`
	FeatureCount int        `json:"feature_count"`
	ColumnCount  int        `json:"column_count"`
	Score        float64    `json:"score"`
	ScoreLabel   string     `json:"score_label"`
	Components   string     `json:"components"` // JSON-encoded component breakdown
}

// RunCheckRecord represents a row from the geoqa_run_checks table.
type RunCheckRecord struct {
	RunID    string `json:"run_id"`
	Name     string `json:"name"`
	Severity string `json:"severity"`
	Status   string `json:"status"`
	Issues   int    `json:"issues"`
	Detail   string `json:"detail"`
}

// StoreStatus represents the status of the run store.
type StoreStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     string           `json:"last_run_id,omitempty"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TableSizes    map[string]int64 `json:"table_sizes"`
	StorageBytes  int64            `json:"storage_bytes,omitempty"`
}
