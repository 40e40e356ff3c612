package assoc

import (
	"strings"

	"github.com/huangsam/protopair/schema"
)

// MergedAnchorLabel is the synthetic anchor path used by the merged anchor
// policy. Angle brackets keep it visually distinct from real repository
// paths in every output format.
const MergedAnchorLabel = "<all-protos>"

// PairKey is the directed composite key for a co-change pair. A struct key
// gives value equality without separator-collision bugs that path
// concatenation would invite.
type PairKey struct {
	Proto string
	Other string
}

// CounterSet accumulates the frequency counts for one repository's mining
// pass. It is caller-owned so parallel per-repository runs never share
// state. Counters only grow; there are no error conditions.
type CounterSet struct {
	// Total is the number of proto-relevant transactions observed.
	Total int

	// FileOccurrence maps a path to the number of relevant transactions
	// containing it. Every count is at most Total.
	FileOccurrence map[string]int

	// PairCooccurrence maps a directed (proto, other) key to the number of
	// relevant transactions containing both paths.
	PairCooccurrence map[PairKey]int
}

// NewCounterSet returns an empty accumulator.
func NewCounterSet() *CounterSet {
	return &CounterSet{
		FileOccurrence:   make(map[string]int),
		PairCooccurrence: make(map[PairKey]int),
	}
}

// Observe folds one transaction into the counters. Transactions without a
// proto file contribute nothing. Each distinct path counts once per
// transaction and each directed pair counts once per transaction, no matter
// how many proto files co-occur; a path is never paired with itself.
func (c *CounterSet) Observe(tx Transaction, ext string, policy schema.AnchorPolicy) {
	if !tx.Relevant(ext) {
		return
	}

	c.Total++
	for p := range tx {
		c.FileOccurrence[p]++
	}

	if policy == schema.MergedAnchor {
		// The virtual anchor occurs in every relevant transaction, so its
		// occurrence count always equals Total.
		c.FileOccurrence[MergedAnchorLabel]++
		for o := range tx {
			if strings.HasSuffix(o, ext) {
				continue
			}
			c.PairCooccurrence[PairKey{Proto: MergedAnchorLabel, Other: o}]++
		}
		return
	}

	for _, p := range tx.ProtoPaths(ext) {
		for o := range tx {
			if o == p {
				continue
			}
			c.PairCooccurrence[PairKey{Proto: p, Other: o}]++
		}
	}
}
