package cmd

import (
	"fmt"

	"github.com/huangsam/protopair/internal/contract"
	"github.com/huangsam/protopair/internal/iocache"
	"github.com/huangsam/protopair/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// resultsSetup loads minimal configuration needed for results operations.
// This is used by commands that need results access without full shared setup.
func resultsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get results-related config values
	backendStr := viper.GetString("results-backend")
	connStr := viper.GetString("results-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize stores with the loaded config (no transaction caching for results commands)
	if err := iocache.InitStores(schema.NoneBackend, "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize results tracking: %w", err)
	}

	cfg.ResultsBackend = backend
	cfg.ResultsDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// resultsSetupWrapper wraps resultsSetup to provide PreRunE for results commands.
func resultsSetupWrapper(_ *cobra.Command, _ []string) error {
	return resultsSetup()
}

// resultsMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func resultsMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get results-related config values
	backendStr := viper.GetString("results-backend")
	connStr := viper.GetString("results-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetResultsDBFilePath()
	}

	cfg.ResultsBackend = backend
	cfg.ResultsDBConnect = connStr

	return nil
}

// resultsMigrateSetupWrapper wraps resultsMigrateSetup to provide PreRunE for migrate command.
func resultsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return resultsMigrateSetup()
}

// resultsCmd focused on mining results management.
//
// Note: Results subcommands use minimal initialization (resultsSetup) instead of
// the full sharedSetup used by mining commands. This avoids Git repo validation
// and complex config processing for simple results operations.
var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Manage historical mining results and exports",
	Long: `Manage historical mining data used for trend tracking and reporting.

When enabled, Protopair tracks every mining run, storing:
- Run metadata (timestamp, configuration, transaction counts)
- Ranked pair metrics (support, confidence, lift per pair)

This enables longitudinal analysis of schema coupling, trend detection, and
data export for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show results tracking statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all tracking data
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  protopair results status

  # Export for analysis in pandas/DuckDB
  protopair results export --output-file mining-data`,
}

// resultsClearCmd clears the results data.
var resultsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all historical mining results",
	Long: `Delete all stored mining runs and pair metric history.

This removes:
- All mining run metadata
- Historical pair metrics across all runs

WARNING: This action cannot be undone. Consider exporting data first.

Use this when:
- Resetting trend tracking
- Database storage is full
- Starting fresh mining history

Examples:
  # Export before clearing
  protopair results export --output-file backup
  protopair results clear

  # Clear and start fresh
  protopair results clear`,
	PreRunE: resultsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearResults(cfg.ResultsBackend, contract.GetResultsDBFilePath(), cfg.ResultsDBConnect); err != nil {
			contract.LogFatal("Failed to clear results data", err)
		}
		fmt.Println("Results data cleared successfully.")
	},
}

// resultsStatusCmd shows results status.
var resultsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display results tracking statistics and connection details",
	Long: `Show detailed information about historical mining tracking.

Displays:
- Backend type and connection status
- Total number of mining runs stored
- Last and oldest mining run timestamps
- Total pairs recorded across all runs
- Database table sizes

Use this to:
- Verify results tracking is enabled and working
- Monitor data accumulation over time
- Check database connection health
- Estimate storage requirements

Examples:
  # Check results tracking status
  protopair results status`,
	PreRunE: resultsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetResultsStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get results status", err)
		}
		iocache.PrintResultsStatus(status)
	},
}

// resultsExportCmd exports mining results to Parquet files.
var resultsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export historical data to Parquet for BI tools and analytics",
	Long: `Export all stored mining data to Parquet format for use with analytics tools.

Exports two datasets:
- Mining runs - metadata about each mining execution
- Pair metrics - support, confidence and lift per recorded pair

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Schema evolution for future data additions
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Use cases:
- Coupling trend analysis across releases
- Custom dashboards and visualizations
- Executive reporting on schema health

Examples:
  # Export all data
  protopair results export --output-file mining-data

  # Use with DuckDB for analysis
  protopair results export --output-file data
  duckdb -c "SELECT * FROM read_parquet('data.pairs.parquet') LIMIT 10"`,
	PreRunE: resultsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteResultsExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export results data", err)
		}
	},
}

// resultsMigrateCmd runs database migrations for the results store.
var resultsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the results tracking store.

Migrations allow:
- Upgrading to new schema versions when Protopair is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed
- Testing new features on specific schema versions

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  protopair results migrate

  # Migrate to specific version
  protopair results migrate --target-version 2

  # Rollback to previous version
  protopair results migrate --target-version 0`,
	PreRunE: resultsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateResults(cfg.ResultsBackend, cfg.ResultsDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
