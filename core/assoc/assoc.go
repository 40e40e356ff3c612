// Package assoc has the pure association-mining engine: transaction
// modeling, co-change counting, support/confidence/lift computation and
// deterministic ranking. Nothing in this package touches Git or I/O.
package assoc

import "strings"

// Transaction is the set of file paths changed by a single commit.
// Duplicates collapse and order is irrelevant.
type Transaction map[string]struct{}

// NewTransaction builds a transaction from a raw changed-path sequence.
// An empty input yields an empty transaction, which is never proto-relevant.
func NewTransaction(paths []string) Transaction {
	tx := make(Transaction, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		tx[p] = struct{}{}
	}
	return tx
}

// Relevant reports whether the transaction touches at least one file with
// the given proto suffix.
func (tx Transaction) Relevant(ext string) bool {
	for p := range tx {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}

// ProtoPaths returns the subset of paths matching the proto suffix.
func (tx Transaction) ProtoPaths(ext string) []string {
	var protos []string
	for p := range tx {
		if strings.HasSuffix(p, ext) {
			protos = append(protos, p)
		}
	}
	return protos
}
