package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name string
		lift float64
		want string
	}{
		{"strong at floor", 2.0, StrongValue},
		{"strong above floor", 5.7, StrongValue},
		{"positive below floor", 1.9999, PositiveValue},
		{"positive just above one", 1.001, PositiveValue},
		{"independent at one", 1.0, IndependentValue},
		{"independent within band", 1.0 + 1e-12, IndependentValue},
		{"independent within lower band", 1.0 - 1e-12, IndependentValue},
		{"negative below one", 0.8, NegativeValue},
		{"negative at zero", 0.0, NegativeValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetPlainLabel(tt.lift))
		})
	}
}

func TestEnrichRecords(t *testing.T) {
	records := []MetricRecord{
		{ProtoFile: "api/user.proto", OtherFile: "gen/user.pb.go", Lift: 2.5},
		{ProtoFile: "api/user.proto", OtherFile: "docs/user.md", Lift: 0.5},
	}

	enriched := EnrichRecords(records)
	assert.Len(t, enriched, 2)
	assert.Equal(t, 1, enriched[0].Rank)
	assert.Equal(t, StrongValue, enriched[0].Label)
	assert.Equal(t, "gen/user.pb.go", enriched[0].OtherFile)
	assert.Equal(t, 2, enriched[1].Rank)
	assert.Equal(t, NegativeValue, enriched[1].Label)

	assert.Empty(t, EnrichRecords(nil))
}

func TestEnrichSummaries(t *testing.T) {
	summaries := []ProtoSummary{
		{ProtoFile: "api/user.proto", MaxLift: 1.0},
	}

	enriched := EnrichSummaries(summaries)
	assert.Len(t, enriched, 1)
	assert.Equal(t, 1, enriched[0].Rank)
	assert.Equal(t, IndependentValue, enriched[0].Label)
}
