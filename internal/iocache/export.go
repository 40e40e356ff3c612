package iocache

import (
	"errors"
	"fmt"

	"github.com/huangsam/protopair/internal/parquet"
)

// ExecuteResultsExport performs the actual export of results data to Parquet files.
func ExecuteResultsExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the results store
	store := Manager.GetResultsStore()
	if store == nil {
		return errors.New("results store is not configured")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get results status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no results data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total mining runs: %d\n", status.TotalRuns)
	fmt.Printf("Total pair records: %d\n", status.TableSizes[pairsTable])

	// Retrieve all mining runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve mining runs: %w", err)
	}

	// Retrieve all pair records
	pairs, err := store.GetAllPairs()
	if err != nil {
		return fmt.Errorf("failed to retrieve pair records: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetPairs := parquet.ConvertPairRecords(pairs)

	// Write mining runs to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteMiningRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write mining runs: %w", err)
	}
	fmt.Printf("Exported %d mining runs to: %s\n", len(parquetRuns), runsFile)

	// Write pair metrics to Parquet
	pairsFile := outputFile + ".pairs.parquet"
	if err := parquet.WritePairMetricsParquet(parquetPairs, pairsFile); err != nil {
		return fmt.Errorf("failed to write pair metrics: %w", err)
	}
	fmt.Printf("Exported %d pair records to: %s\n", len(parquetPairs), pairsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
