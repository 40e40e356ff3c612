package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/protopair/internal/contract"
	"github.com/huangsam/protopair/schema"
)

// Table names for results tracking.
const (
	runsTable  = "protopair_runs"
	pairsTable = "protopair_pairs"
)

// ResultsStoreImpl implements the ResultsStore interface.
type ResultsStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.ResultsStore = &ResultsStoreImpl{} // Compile-time check

// NewResultsStore creates a new ResultsStore with the specified backend.
func NewResultsStore(backend schema.DatabaseBackend, connStr string) (contract.ResultsStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetResultsDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled tracking
		return &ResultsStoreImpl{
			db:         nil,
			backend:    backend,
			driverName: "",
		}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Verify the database server is running and accessible", backend, err)
	}

	// Create the table schemas
	if err := createResultsTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create results tables: %w", err)
	}

	return &ResultsStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// createResultsTables creates the results tracking tables.
func createResultsTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{pairsTable, getCreatePairsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for protopair_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				repo VARCHAR(512) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				total_transactions INT,
				total_pairs INT,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				repo TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				total_transactions INT,
				total_pairs INT,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				repo TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				total_transactions INTEGER,
				total_pairs INTEGER,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreatePairsQuery returns the CREATE TABLE query for protopair_pairs.
func getCreatePairsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(pairsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				repo VARCHAR(512) NOT NULL,
				proto_file VARCHAR(512) NOT NULL,
				other_file VARCHAR(512) NOT NULL,
				pair_count INT NOT NULL,
				proto_count INT NOT NULL,
				other_count INT NOT NULL,
				support DOUBLE NOT NULL,
				confidence DOUBLE NOT NULL,
				lift DOUBLE NOT NULL,
				recorded_at DATETIME(6) NOT NULL,
				PRIMARY KEY (run_id, proto_file, other_file)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				repo TEXT NOT NULL,
				proto_file TEXT NOT NULL,
				other_file TEXT NOT NULL,
				pair_count INT NOT NULL,
				proto_count INT NOT NULL,
				other_count INT NOT NULL,
				support DOUBLE PRECISION NOT NULL,
				confidence DOUBLE PRECISION NOT NULL,
				lift DOUBLE PRECISION NOT NULL,
				recorded_at TIMESTAMPTZ NOT NULL,
				PRIMARY KEY (run_id, proto_file, other_file)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				repo TEXT NOT NULL,
				proto_file TEXT NOT NULL,
				other_file TEXT NOT NULL,
				pair_count INTEGER NOT NULL,
				proto_count INTEGER NOT NULL,
				other_count INTEGER NOT NULL,
				support REAL NOT NULL,
				confidence REAL NOT NULL,
				lift REAL NOT NULL,
				recorded_at TEXT NOT NULL,
				PRIMARY KEY (run_id, proto_file, other_file)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new mining run and returns its unique ID.
func (rs *ResultsStoreImpl) BeginRun(repo string, startTime time.Time, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return 0, nil
	}

	// Serialize config params to JSON
	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(runsTable, rs.backend)

	var runID int64
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (repo, start_time, config_params) VALUES ($1, $2, $3) RETURNING run_id`, quotedTableName)
		err = rs.db.QueryRow(query, repo, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (repo, start_time, config_params) VALUES (?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = rs.db.Exec(query, repo, formatTime(startTime, rs.backend), string(configJSON))
		if err != nil {
			return 0, err
		}
		runID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert mining run: %w", err)
	}

	return runID, nil
}

// EndRun updates the mining run with completion data.
func (rs *ResultsStoreImpl) EndRun(runID int64, endTime time.Time, totalTransactions, totalPairs int) error {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(runsTable, rs.backend)

	var updateQuery string
	var args []any

	switch rs.backend {
	case schema.PostgreSQLBackend:
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, total_transactions = $2, total_pairs = $3 WHERE run_id = $4`, quotedTableName)
		args = []any{endTime, totalTransactions, totalPairs, runID}
	default: // SQLite and MySQL
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, total_transactions = ?, total_pairs = ? WHERE run_id = ?`, quotedTableName)
		args = []any{formatTime(endTime, rs.backend), totalTransactions, totalPairs, runID}
	}

	if _, err := rs.db.Exec(updateQuery, args...); err != nil {
		return fmt.Errorf("failed to update mining run: %w", err)
	}

	return nil
}

// RecordPairs stores the ranked pair metrics of one run in a single transaction.
func (rs *ResultsStoreImpl) RecordPairs(runID int64, repo string, records []schema.MetricRecord) error {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}
	if len(records) == 0 {
		return nil
	}

	quotedTableName := quoteTableName(pairsTable, rs.backend)

	var query string
	switch rs.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, repo, proto_file, other_file, pair_count, proto_count,
			                 other_count, support, confidence, lift, recorded_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, repo, proto_file, other_file, pair_count, proto_count,
			                 other_count, support, confidence, lift, recorded_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, quotedTableName)
	}

	tx, err := rs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin pair insert transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	recordedAt := formatTime(time.Now(), rs.backend)
	for _, r := range records {
		args := []any{
			runID, repo, r.ProtoFile, r.OtherFile, r.Pairs, r.ProtoCount,
			r.OtherCount, r.Support, r.Confidence, r.Lift, recordedAt,
		}
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("failed to insert pair record: %w", err)
		}
	}

	return tx.Commit()
}

// Close closes the underlying connection.
func (rs *ResultsStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the results store.
func (rs *ResultsStoreImpl) GetStatus() (schema.ResultsStatus, error) {
	status := schema.ResultsStatus{
		Backend:    string(rs.backend),
		Connected:  rs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}

	// Get total runs
	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(runsTable, rs.backend))
	row := rs.db.QueryRow(runsQuery)
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		// Get last run info
		lastRunQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quoteTableName(runsTable, rs.backend))
		row = rs.db.QueryRow(lastRunQuery)

		switch rs.backend {
		case schema.SQLiteBackend:
			var lastRunID int64
			var lastRunTimeStr string
			if err := row.Scan(&lastRunID, &lastRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
			status.LastRunID = lastRunID
			lastRunTime, err := time.Parse(time.RFC3339Nano, lastRunTimeStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse last run time: %w", err)
			}
			status.LastRunTime = lastRunTime
		default: // MySQL and PostgreSQL store as native datetime
			if err := row.Scan(&status.LastRunID, &status.LastRunTime); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
		}

		// Get oldest run time
		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quoteTableName(runsTable, rs.backend))
		row = rs.db.QueryRow(oldestRunQuery)

		switch rs.backend {
		case schema.SQLiteBackend:
			var oldestRunTimeStr string
			if err := row.Scan(&oldestRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get oldest run time: %w", err)
			}
			oldestRunTime, err := time.Parse(time.RFC3339Nano, oldestRunTimeStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse oldest run time: %w", err)
			}
			status.OldestRunTime = oldestRunTime
		default: // MySQL and PostgreSQL store as native datetime
			if err := row.Scan(&status.OldestRunTime); err != nil {
				return status, fmt.Errorf("failed to get oldest run time: %w", err)
			}
		}

		// Get total pairs recorded
		pairsQuery := fmt.Sprintf("SELECT COALESCE(SUM(total_pairs), 0) FROM %s", quoteTableName(runsTable, rs.backend))
		row = rs.db.QueryRow(pairsQuery)
		if err := row.Scan(&status.TotalPairs); err != nil {
			return status, fmt.Errorf("failed to get total pairs: %w", err)
		}
	}

	// Get table sizes
	tables := []string{runsTable, pairsTable}
	for _, table := range tables {
		quotedTable := quoteTableName(table, rs.backend)
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTable)
		row = rs.db.QueryRow(countQuery)
		var count int64
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRuns retrieves all mining runs from the store.
func (rs *ResultsStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(runsTable, rs.backend)
	query := fmt.Sprintf("SELECT run_id, repo, start_time, end_time, total_transactions, total_pairs, config_params FROM %s ORDER BY run_id", quotedTableName)

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query mining runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord

	for rows.Next() {
		var record schema.RunRecord
		var totalTransactions, totalPairs sql.NullInt32

		switch rs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &record.Repo, &startTimeStr, &endTimeStr, &totalTransactions, &totalPairs, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan mining run: %w", err)
			}
			// Parse start time
			startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			record.StartTime = startTime
			// Parse end time if present
			if endTimeStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.Repo, &record.StartTime, &record.EndTime, &totalTransactions, &totalPairs, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan mining run: %w", err)
			}
		}

		record.TotalTransactions = totalTransactions.Int32
		record.TotalPairs = totalPairs.Int32
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mining runs: %w", err)
	}

	return results, nil
}

// GetAllPairs retrieves all recorded pair metrics from the store.
func (rs *ResultsStoreImpl) GetAllPairs() ([]schema.PairRecord, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(pairsTable, rs.backend)
	query := fmt.Sprintf(`SELECT run_id, repo, proto_file, other_file, pair_count, proto_count,
    other_count, support, confidence, lift, recorded_at
    FROM %s ORDER BY run_id, proto_file, other_file`, quotedTableName)

	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pair records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.PairRecord

	for rows.Next() {
		var record schema.PairRecord

		switch rs.backend {
		case schema.SQLiteBackend:
			var recordedAtStr string
			if err := rows.Scan(&record.RunID, &record.Repo, &record.ProtoFile, &record.OtherFile,
				&record.Pairs, &record.ProtoCount, &record.OtherCount,
				&record.Support, &record.Confidence, &record.Lift, &recordedAtStr); err != nil {
				return nil, fmt.Errorf("failed to scan pair record: %w", err)
			}
			recordedAt, err := time.Parse(time.RFC3339Nano, recordedAtStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse recorded_at: %w", err)
			}
			record.RecordedAt = recordedAt
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.Repo, &record.ProtoFile, &record.OtherFile,
				&record.Pairs, &record.ProtoCount, &record.OtherCount,
				&record.Support, &record.Confidence, &record.Lift, &record.RecordedAt); err != nil {
				return nil, fmt.Errorf("failed to scan pair record: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pair records: %w", err)
	}

	return results, nil
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}
