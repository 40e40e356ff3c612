package iocache

import (
	"testing"
	"time"

	"github.com/huangsam/protopair/schema"
	"github.com/stretchr/testify/assert"
)

func TestPrintCacheStatus(t *testing.T) {
	t.Run("connected with entries", func(t *testing.T) {
		assert.NotPanics(t, func() {
			PrintCacheStatus(schema.CacheStatus{
				Backend:         "sqlite",
				Connected:       true,
				TotalEntries:    3,
				LastEntryTime:   time.Now(),
				OldestEntryTime: time.Now().Add(-time.Hour),
				TableSizeBytes:  4096,
			})
		})
	})

	t.Run("disconnected", func(t *testing.T) {
		assert.NotPanics(t, func() {
			PrintCacheStatus(schema.CacheStatus{Backend: "none", Connected: false})
		})
	})
}

func TestPrintResultsStatus(t *testing.T) {
	t.Run("connected with runs", func(t *testing.T) {
		assert.NotPanics(t, func() {
			PrintResultsStatus(schema.ResultsStatus{
				Backend:       "sqlite",
				Connected:     true,
				TotalRuns:     2,
				LastRunID:     2,
				LastRunTime:   time.Now(),
				OldestRunTime: time.Now().Add(-time.Hour),
				TotalPairs:    10,
				TableSizes:    map[string]int64{runsTable: 2, pairsTable: 10},
			})
		})
	})

	t.Run("disconnected", func(t *testing.T) {
		assert.NotPanics(t, func() {
			PrintResultsStatus(schema.ResultsStatus{Backend: "none", Connected: false})
		})
	})
}
