package schema

import "time"

// CacheStatus represents the status of the transaction cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// ResultsStatus represents the status of the results store.
type ResultsStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalPairs    int              `json:"total_pairs"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RunRecord represents a row from the protopair_runs table.
type RunRecord struct {
	RunID             int64
	Repo              string
	StartTime         time.Time
	EndTime           *time.Time
	TotalTransactions int32
	TotalPairs        int32
	ConfigParams      *string
}

// PairRecord represents a row from the protopair_pairs table.
type PairRecord struct {
	RunID      int64
	Repo       string
	ProtoFile  string
	OtherFile  string
	Pairs      int32
	ProtoCount int32
	OtherCount int32
	Support    float64
	Confidence float64
	Lift       float64
	RecordedAt time.Time
}
