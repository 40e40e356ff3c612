package contract

import (
	"time"

	"github.com/huangsam/protopair/schema"
)

// CacheManager defines the interface for managing persistent stores.
// This allows the persistence layer to be mocked for testing.
type CacheManager interface {
	GetTransactionStore() CacheStore
	GetResultsStore() ResultsStore
}

// CacheStore defines the interface for cached transaction-log storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// ResultsStore defines the interface for persisting mined pair metrics
// across runs, so results can be inspected and exported later.
type ResultsStore interface {
	BeginRun(repo string, startTime time.Time, configParams map[string]any) (int64, error)
	EndRun(runID int64, endTime time.Time, totalTransactions, totalPairs int) error
	RecordPairs(runID int64, repo string, records []schema.MetricRecord) error
	GetStatus() (schema.ResultsStatus, error)
	GetAllRuns() ([]schema.RunRecord, error)
	GetAllPairs() ([]schema.PairRecord, error)
	Close() error
}
