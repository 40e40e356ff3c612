// Package iocache is for durable storage of mined data.
package iocache

import (
	"sync"

	"github.com/huangsam/protopair/internal/contract"
)

// CacheStoreManager manages the transaction cache and results stores.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	transactions contract.CacheStore
	results      contract.ResultsStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetTransactionStore returns the transaction CacheStore.
func (mgr *CacheStoreManager) GetTransactionStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.transactions
}

// GetResultsStore returns the results ResultsStore.
func (mgr *CacheStoreManager) GetResultsStore() contract.ResultsStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.results
}
