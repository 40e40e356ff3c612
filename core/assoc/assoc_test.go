package assoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTransaction(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  int
	}{
		{"empty input", nil, 0},
		{"single path", []string{"api/user.proto"}, 1},
		{"duplicates collapse", []string{"main.go", "main.go", "main.go"}, 1},
		{"blank paths dropped", []string{"", "main.go", ""}, 1},
		{"mixed paths", []string{"api/user.proto", "gen/user.pb.go", "docs/user.md"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := NewTransaction(tt.paths)
			assert.Len(t, tx, tt.want)
		})
	}
}

func TestTransactionRelevant(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		ext   string
		want  bool
	}{
		{"has proto", []string{"api/user.proto", "main.go"}, ".proto", true},
		{"no proto", []string{"main.go", "README.md"}, ".proto", false},
		{"empty transaction", nil, ".proto", false},
		{"custom extension", []string{"schema/event.avsc"}, ".avsc", true},
		{"suffix only matches end", []string{"user.proto.bak"}, ".proto", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := NewTransaction(tt.paths)
			assert.Equal(t, tt.want, tx.Relevant(tt.ext))
		})
	}
}

func TestTransactionProtoPaths(t *testing.T) {
	tx := NewTransaction([]string{"api/user.proto", "api/order.proto", "gen/user.pb.go"})

	protos := tx.ProtoPaths(".proto")
	assert.Len(t, protos, 2)
	assert.Contains(t, protos, "api/user.proto")
	assert.Contains(t, protos, "api/order.proto")

	assert.Empty(t, NewTransaction([]string{"main.go"}).ProtoPaths(".proto"))
}
