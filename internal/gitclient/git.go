// Package gitclient has the git client.
package gitclient

import "github.com/huangsam/protopair/internal/contract"

// GitClient defines the necessary operations for reading commit history.
// This allows the mining logic to be tested without a real git executable.
type GitClient = contract.GitClient
