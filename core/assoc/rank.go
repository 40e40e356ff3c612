package assoc

import (
	"sort"

	"github.com/huangsam/protopair/schema"
)

// Less defines the ranking order for metric records: lift descending, then
// confidence descending, then support descending, then lexicographic
// (proto_file, other_file) ascending. The path tie-break makes the order a
// deterministic total order regardless of map iteration.
func Less(a, b schema.MetricRecord) bool {
	if a.Lift != b.Lift {
		return a.Lift > b.Lift
	}
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	if a.Support != b.Support {
		return a.Support > b.Support
	}
	if a.ProtoFile != b.ProtoFile {
		return a.ProtoFile < b.ProtoFile
	}
	return a.OtherFile < b.OtherFile
}

// RankRecords sorts records into the canonical order and returns the top
// 'limit' entries. A limit of zero or less returns all records; the ranker
// never filters or deduplicates.
func RankRecords(records []schema.MetricRecord, limit int) []schema.MetricRecord {
	sort.Slice(records, func(i, j int) bool {
		return Less(records[i], records[j])
	})
	if limit > 0 && len(records) > limit {
		return records[:limit]
	}
	return records
}

// RankSummaries orders proto summaries by max lift descending, then mean
// confidence descending, then pair count descending, with the proto path as
// the final deterministic tie-break.
func RankSummaries(summaries []schema.ProtoSummary, limit int) []schema.ProtoSummary {
	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if a.MaxLift != b.MaxLift {
			return a.MaxLift > b.MaxLift
		}
		if a.MeanConfidence != b.MeanConfidence {
			return a.MeanConfidence > b.MeanConfidence
		}
		if a.PairCount != b.PairCount {
			return a.PairCount > b.PairCount
		}
		return a.ProtoFile < b.ProtoFile
	})
	if limit > 0 && len(summaries) > limit {
		return summaries[:limit]
	}
	return summaries
}
