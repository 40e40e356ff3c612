package assoc

import (
	"testing"

	"github.com/huangsam/protopair/schema"
	"github.com/stretchr/testify/assert"
)

func TestObserve_IgnoresIrrelevantTransactions(t *testing.T) {
	c := NewCounterSet()

	c.Observe(NewTransaction([]string{"main.go", "README.md"}), ".proto", schema.EachAnchor)

	assert.Equal(t, 0, c.Total)
	assert.Empty(t, c.FileOccurrence)
	assert.Empty(t, c.PairCooccurrence)
}

func TestObserve_EachAnchor(t *testing.T) {
	c := NewCounterSet()

	c.Observe(NewTransaction([]string{"api/user.proto", "gen/user.pb.go"}), ".proto", schema.EachAnchor)
	c.Observe(NewTransaction([]string{"api/user.proto", "gen/user.pb.go", "docs/user.md"}), ".proto", schema.EachAnchor)
	c.Observe(NewTransaction([]string{"api/user.proto"}), ".proto", schema.EachAnchor)

	assert.Equal(t, 3, c.Total)
	assert.Equal(t, 3, c.FileOccurrence["api/user.proto"])
	assert.Equal(t, 2, c.FileOccurrence["gen/user.pb.go"])
	assert.Equal(t, 1, c.FileOccurrence["docs/user.md"])

	assert.Equal(t, 2, c.PairCooccurrence[PairKey{Proto: "api/user.proto", Other: "gen/user.pb.go"}])
	assert.Equal(t, 1, c.PairCooccurrence[PairKey{Proto: "api/user.proto", Other: "docs/user.md"}])
	assert.Len(t, c.PairCooccurrence, 2)
}

func TestObserve_TwoProtosProduceDirectedPairs(t *testing.T) {
	c := NewCounterSet()

	c.Observe(NewTransaction([]string{"api/user.proto", "api/order.proto", "main.go"}), ".proto", schema.EachAnchor)

	// Each proto anchors the other proto and the plain file, never itself.
	assert.Len(t, c.PairCooccurrence, 4)
	assert.Equal(t, 1, c.PairCooccurrence[PairKey{Proto: "api/user.proto", Other: "api/order.proto"}])
	assert.Equal(t, 1, c.PairCooccurrence[PairKey{Proto: "api/order.proto", Other: "api/user.proto"}])
	assert.Equal(t, 1, c.PairCooccurrence[PairKey{Proto: "api/user.proto", Other: "main.go"}])
	assert.Equal(t, 1, c.PairCooccurrence[PairKey{Proto: "api/order.proto", Other: "main.go"}])
	assert.Zero(t, c.PairCooccurrence[PairKey{Proto: "api/user.proto", Other: "api/user.proto"}])
}

func TestObserve_MergedAnchor(t *testing.T) {
	c := NewCounterSet()

	c.Observe(NewTransaction([]string{"api/user.proto", "gen/user.pb.go"}), ".proto", schema.MergedAnchor)
	c.Observe(NewTransaction([]string{"api/order.proto", "gen/user.pb.go", "docs/order.md"}), ".proto", schema.MergedAnchor)

	// The virtual anchor occurs in every relevant transaction.
	assert.Equal(t, 2, c.Total)
	assert.Equal(t, c.Total, c.FileOccurrence[MergedAnchorLabel])

	// Proto files never appear on the other side of a merged pair.
	assert.Equal(t, 2, c.PairCooccurrence[PairKey{Proto: MergedAnchorLabel, Other: "gen/user.pb.go"}])
	assert.Equal(t, 1, c.PairCooccurrence[PairKey{Proto: MergedAnchorLabel, Other: "docs/order.md"}])
	assert.Len(t, c.PairCooccurrence, 2)
}

func TestObserve_DuplicatePathsCountOnce(t *testing.T) {
	c := NewCounterSet()

	c.Observe(NewTransaction([]string{"api/user.proto", "main.go", "main.go"}), ".proto", schema.EachAnchor)

	assert.Equal(t, 1, c.FileOccurrence["main.go"])
	assert.Equal(t, 1, c.PairCooccurrence[PairKey{Proto: "api/user.proto", Other: "main.go"}])
}
