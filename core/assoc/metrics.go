package assoc

import "github.com/huangsam/protopair/schema"

// Thresholds filter metric records after computation, before ranking.
// Zero values keep every pair, which is the default.
type Thresholds struct {
	MinSupport    float64
	MinConfidence float64
	MinLift       float64
}

// Keep reports whether a record passes every threshold.
func (t Thresholds) Keep(r schema.MetricRecord) bool {
	return r.Support >= t.MinSupport &&
		r.Confidence >= t.MinConfidence &&
		r.Lift >= t.MinLift
}

// ComputeRecords derives support, confidence and lift for every observed
// pair. All ratios are float64 with no rounding; formatting belongs to the
// exporter. A counter set with zero relevant transactions yields nil.
//
// The invariants FileOccurrence[p] >= PairCooccurrence[(p,o)] > 0 and
// FileOccurrence[o] > 0 hold for every recorded pair, so no division by
// zero is reachable once Total > 0.
func ComputeRecords(c *CounterSet, t Thresholds) []schema.MetricRecord {
	if c == nil || c.Total == 0 {
		return nil
	}

	total := float64(c.Total)
	records := make([]schema.MetricRecord, 0, len(c.PairCooccurrence))
	for key, pairs := range c.PairCooccurrence {
		protoCount := c.FileOccurrence[key.Proto]
		otherCount := c.FileOccurrence[key.Other]

		support := float64(pairs) / total
		confidence := float64(pairs) / float64(protoCount)
		lift := float64(pairs) * total / (float64(protoCount) * float64(otherCount))

		r := schema.MetricRecord{
			ProtoFile:  key.Proto,
			OtherFile:  key.Other,
			Pairs:      pairs,
			ProtoCount: protoCount,
			OtherCount: otherCount,
			Support:    support,
			Confidence: confidence,
			Lift:       lift,
		}
		if t.Keep(r) {
			records = append(records, r)
		}
	}
	return records
}
