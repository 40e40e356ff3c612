package outwriter

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/huangsam/protopair/internal/contract"
	"github.com/huangsam/protopair/schema"
	"github.com/stretchr/testify/assert"
)

func sampleSummaries() []schema.ProtoSummary {
	return []schema.ProtoSummary{
		{
			Repo: "/test/repo", ProtoFile: "api/user.proto",
			PairCount: 3, Occurrence: 5, MeanConfidence: 0.6, MaxLift: 2.4,
		},
		{
			Repo: "/test/repo", ProtoFile: "api/order.proto",
			PairCount: 1, Occurrence: 2, MeanConfidence: 0.5, MaxLift: 1.0,
		},
	}
}

func TestWriteCSVResultsForProtos(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, intFmt := createFormatters(2)

	err := writeCSVWithHeader(&buf, protoCSVHeader, func(cw *csv.Writer) error {
		return writeCSVResultsForProtos(cw, sampleSummaries(), fmtFloat, intFmt)
	})
	assert.NoError(t, err)

	rows, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, protoCSVHeader, rows[0])
	assert.Equal(t, []string{"/test/repo", "api/user.proto", "3", "5", "0.60", "2.40"}, rows[1])
}

func TestWriteMarkdownResultsForProtos(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, _ := createFormatters(2)

	err := writeMarkdownResultsForProtos(&buf, sampleSummaries(), fmtFloat)
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "| 1 | api/user.proto | /test/repo | 3 | 5 | 0.60 | 2.40 | Strong |")
	assert.Contains(t, out, "| 2 | api/order.proto | /test/repo | 1 | 2 | 0.50 | 1.00 | Independent |")
}

func TestWriteProtoTable(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, intFmt := createFormatters(4)
	cfg := &contract.Config{Width: 160, Workers: 4, CacheBackend: schema.NoneBackend}

	err := writeProtoTable(sampleSummaries(), cfg, fmtFloat, intFmt, time.Second, &buf)
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "api/user.proto")
	assert.Contains(t, out, "Showing 2 proto file(s)")
	assert.Contains(t, out, "Cache backend: none")
}
