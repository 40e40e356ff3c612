package iocache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/protopair/schema"
	"github.com/stretchr/testify/assert"
)

// withMockResultsStore swaps the global results store for the duration of a test.
func withMockResultsStore(t *testing.T, mockStore *MockResultsStore) {
	t.Helper()
	Manager.Lock()
	previous := Manager.results
	if mockStore != nil {
		Manager.results = mockStore
	} else {
		Manager.results = nil
	}
	Manager.Unlock()

	t.Cleanup(func() {
		Manager.Lock()
		Manager.results = previous
		Manager.Unlock()
	})
}

func TestExecuteResultsExport(t *testing.T) {
	t.Run("missing output file", func(t *testing.T) {
		err := ExecuteResultsExport("")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "--output-file is required")
	})

	t.Run("results store not configured", func(t *testing.T) {
		withMockResultsStore(t, nil)

		err := ExecuteResultsExport("/tmp/out")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "results store is not configured")
	})

	t.Run("status error is propagated", func(t *testing.T) {
		mockStore := new(MockResultsStore)
		mockStore.On("GetStatus").Return(schema.ResultsStatus{}, errors.New("boom"))
		withMockResultsStore(t, mockStore)

		err := ExecuteResultsExport("/tmp/out")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get results status")
		mockStore.AssertExpectations(t)
	})

	t.Run("no data to export", func(t *testing.T) {
		mockStore := new(MockResultsStore)
		mockStore.On("GetStatus").Return(schema.ResultsStatus{
			Backend:    "sqlite",
			Connected:  true,
			TotalRuns:  0,
			TableSizes: map[string]int64{},
		}, nil)
		withMockResultsStore(t, mockStore)

		err := ExecuteResultsExport("/tmp/out")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no results data found")
		mockStore.AssertExpectations(t)
	})

	t.Run("successful export writes parquet files", func(t *testing.T) {
		now := time.Now()
		endTime := now.Add(time.Second)
		configJSON := `{"anchor":"each"}`

		mockStore := new(MockResultsStore)
		mockStore.On("GetStatus").Return(schema.ResultsStatus{
			Backend:    "sqlite",
			Connected:  true,
			TotalRuns:  1,
			TotalPairs: 1,
			TableSizes: map[string]int64{runsTable: 1, pairsTable: 1},
		}, nil)
		mockStore.On("GetAllRuns").Return([]schema.RunRecord{
			{
				RunID: 1, Repo: "/test/repo", StartTime: now, EndTime: &endTime,
				TotalTransactions: 10, TotalPairs: 1, ConfigParams: &configJSON,
			},
		}, nil)
		mockStore.On("GetAllPairs").Return([]schema.PairRecord{
			{
				RunID: 1, Repo: "/test/repo",
				ProtoFile: "api/user.proto", OtherFile: "gen/user.pb.go",
				Pairs: 4, ProtoCount: 5, OtherCount: 4,
				Support: 0.4, Confidence: 0.8, Lift: 2.0,
				RecordedAt: now,
			},
		}, nil)
		withMockResultsStore(t, mockStore)

		outputFile := filepath.Join(t.TempDir(), "export")
		assert.NoError(t, ExecuteResultsExport(outputFile))

		for _, suffix := range []string{".runs.parquet", ".pairs.parquet"} {
			info, err := os.Stat(outputFile + suffix)
			assert.NoError(t, err, "Expected %s%s to exist", outputFile, suffix)
			assert.Greater(t, info.Size(), int64(0))
		}
		mockStore.AssertExpectations(t)
	})
}
