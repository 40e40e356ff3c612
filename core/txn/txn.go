// Package txn turns raw Git history into per-commit change sets and caches
// the parsed result per repository state.
package txn

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/protopair/internal/contract"
	"github.com/huangsam/protopair/schema"
)

// currentCacheVersion defines the version of the cached change-log payload.
// Bump it whenever the parser output changes shape.
const currentCacheVersion = 1

// cacheMaxAge bounds how long a cached change log is trusted. The key
// already embeds the HEAD hash, so this only guards against refs moving
// without HEAD changing (e.g. fetched branches under --all).
const cacheMaxAge = 7 * 24 * time.Hour

// CachedCollectCommits returns the parsed non-merge commit history for one
// repository, consulting the transaction cache first.
func CachedCollectCommits(ctx context.Context, client contract.GitClient, mgr contract.CacheManager, repoPath string) ([]schema.Commit, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetTransactionStore()
	}
	if store == nil {
		// Fallback to direct collection
		return collectCommits(ctx, client, repoPath)
	}

	key := generateCacheKey(ctx, client, repoPath)

	// Check for cache hit
	if commits := checkCacheHit(store, key); commits != nil {
		return commits, nil
	}

	// Cache miss: collect and store
	return collectAndStore(ctx, client, store, key, repoPath)
}

// checkCacheHit attempts to retrieve and validate a cached change log.
func checkCacheHit(store contract.CacheStore, key string) []schema.Commit {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= cacheMaxAge {
			var commits []schema.Commit
			if err := json.Unmarshal(data, &commits); err == nil {
				return commits // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// collectAndStore collects the change log and stores it in the cache.
func collectAndStore(ctx context.Context, client contract.GitClient, store contract.CacheStore, key, repoPath string) ([]schema.Commit, error) {
	commits, err := collectCommits(ctx, client, repoPath)
	if err != nil {
		return nil, err
	}

	// Store in cache
	if data, err := json.Marshal(commits); err == nil {
		_ = store.Set(key, data, currentCacheVersion, time.Now().Unix())
	}

	return commits, nil
}

// collectCommits runs the git change log and parses it.
func collectCommits(ctx context.Context, client contract.GitClient, repoPath string) ([]schema.Commit, error) {
	out, err := client.GetChangeLog(ctx, repoPath)
	if err != nil {
		return nil, err
	}
	return ParseChangeLog(out)
}

// generateCacheKey creates a unique key from the repository path and its
// HEAD hash, so the cache invalidates whenever the repository advances.
func generateCacheKey(ctx context.Context, client contract.GitClient, repoPath string) string {
	repoHash, err := client.GetRepoHash(ctx, repoPath)
	if err != nil {
		// Unborn HEAD or similar; an empty hash still yields a stable key.
		repoHash = ""
	}

	key := fmt.Sprintf("%s:%s:%d", repoPath, repoHash, currentCacheVersion)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
