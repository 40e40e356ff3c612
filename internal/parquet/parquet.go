// Package parquet provides data structures and functions for exporting mined
// co-change data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/protopair/schema"
	"github.com/parquet-go/parquet-go"
)

// MiningRun represents a single mining run with metadata.
// This struct maps to the protopair_runs database table.
type MiningRun struct {
	// RunID is the unique identifier for this mining run
	RunID int64 `parquet:"run_id,snappy"`

	// Repo is the repository the run mined
	Repo string `parquet:"repo,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// TotalTransactions is the number of proto-relevant transactions observed
	TotalTransactions int32 `parquet:"total_transactions,snappy"`

	// TotalPairs is the number of qualifying pairs the run produced
	TotalPairs int32 `parquet:"total_pairs,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// PairMetrics represents the mined metrics for a single pair in a run.
// This struct maps to the protopair_pairs database table.
type PairMetrics struct {
	// RunID references the parent mining run
	RunID int64 `parquet:"run_id,snappy"`

	// Repo is the repository the pair was mined from
	Repo string `parquet:"repo,snappy"`

	// ProtoFile is the anchoring proto file path
	ProtoFile string `parquet:"proto_file,snappy"`

	// OtherFile is the co-changing file path
	OtherFile string `parquet:"other_file,snappy"`

	// Pairs is the number of transactions containing both files
	Pairs int32 `parquet:"pairs,snappy"`

	// ProtoCount is the number of transactions containing the proto file
	ProtoCount int32 `parquet:"proto_count,snappy"`

	// OtherCount is the number of transactions containing the other file
	OtherCount int32 `parquet:"other_count,snappy"`

	// Support is the fraction of transactions containing both files
	Support float64 `parquet:"support,snappy"`

	// Confidence is the conditional probability of the other file changing
	Confidence float64 `parquet:"confidence,snappy"`

	// Lift measures association strength relative to independence
	Lift float64 `parquet:"lift,snappy"`

	// RecordedAt is when the pair was persisted
	RecordedAt time.Time `parquet:"recorded_at,snappy"`
}

// ConvertRunRecords converts database run records to their Parquet form.
func ConvertRunRecords(records []schema.RunRecord) []MiningRun {
	output := make([]MiningRun, len(records))
	for i, r := range records {
		output[i] = MiningRun{
			RunID:             r.RunID,
			Repo:              r.Repo,
			StartTime:         r.StartTime,
			EndTime:           r.EndTime,
			TotalTransactions: r.TotalTransactions,
			TotalPairs:        r.TotalPairs,
			ConfigParams:      r.ConfigParams,
		}
	}
	return output
}

// ConvertPairRecords converts database pair records to their Parquet form.
func ConvertPairRecords(records []schema.PairRecord) []PairMetrics {
	output := make([]PairMetrics, len(records))
	for i, r := range records {
		output[i] = PairMetrics{
			RunID:      r.RunID,
			Repo:       r.Repo,
			ProtoFile:  r.ProtoFile,
			OtherFile:  r.OtherFile,
			Pairs:      r.Pairs,
			ProtoCount: r.ProtoCount,
			OtherCount: r.OtherCount,
			Support:    r.Support,
			Confidence: r.Confidence,
			Lift:       r.Lift,
			RecordedAt: r.RecordedAt,
		}
	}
	return output
}

// MockFetchMiningRuns generates sample MiningRun data for demonstration.
func MockFetchMiningRuns() []MiningRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := now.Add(-1*time.Hour - 55*time.Minute)
	configParams1 := `{"anchor":"each","limit":100,"min_lift":1.0}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := now.Add(-23*time.Hour - 58*time.Minute)
	configParams2 := `{"anchor":"merged","limit":50}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: endTime3 and configParams3 are nil to demonstrate nullable fields

	return []MiningRun{
		{
			RunID:             1,
			Repo:              "/repos/payments",
			StartTime:         startTime1,
			EndTime:           &endTime1,
			TotalTransactions: 1520,
			TotalPairs:        34,
			ConfigParams:      &configParams1,
		},
		{
			RunID:             2,
			Repo:              "/repos/inventory",
			StartTime:         startTime2,
			EndTime:           &endTime2,
			TotalTransactions: 640,
			TotalPairs:        12,
			ConfigParams:      &configParams2,
		},
		{
			RunID:             3,
			Repo:              "/repos/payments",
			StartTime:         startTime3,
			EndTime:           nil, // Still running - nullable field
			TotalTransactions: 0,
			TotalPairs:        0,
			ConfigParams:      nil, // No config stored - nullable field
		},
	}
}

// MockFetchPairMetrics generates sample PairMetrics data for demonstration.
func MockFetchPairMetrics() []PairMetrics {
	now := time.Now()

	return []PairMetrics{
		{
			RunID:      1,
			Repo:       "/repos/payments",
			ProtoFile:  "api/payment.proto",
			OtherFile:  "gen/payment.pb.go",
			Pairs:      48,
			ProtoCount: 52,
			OtherCount: 50,
			Support:    0.031,
			Confidence: 0.923,
			Lift:       28.1,
			RecordedAt: now.Add(-1 * time.Hour),
		},
		{
			RunID:      1,
			Repo:       "/repos/payments",
			ProtoFile:  "api/payment.proto",
			OtherFile:  "internal/ledger/ledger.go",
			Pairs:      12,
			ProtoCount: 52,
			OtherCount: 110,
			Support:    0.008,
			Confidence: 0.231,
			Lift:       3.2,
			RecordedAt: now.Add(-1 * time.Hour),
		},
		{
			RunID:      2,
			Repo:       "/repos/inventory",
			ProtoFile:  "proto/stock.proto",
			OtherFile:  "services/stock/handler.go",
			Pairs:      6,
			ProtoCount: 14,
			OtherCount: 40,
			Support:    0.009,
			Confidence: 0.429,
			Lift:       6.9,
			RecordedAt: now.Add(-23 * time.Hour),
		},
	}
}

// WriteMiningRunsParquet writes a slice of MiningRun structs to a Parquet file.
func WriteMiningRunsParquet(data []MiningRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the MiningRun struct tags
	writer := parquet.NewGenericWriter[MiningRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WritePairMetricsParquet writes a slice of PairMetrics structs to a Parquet file.
func WritePairMetricsParquet(data []PairMetrics, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the PairMetrics struct tags
	writer := parquet.NewGenericWriter[PairMetrics](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
