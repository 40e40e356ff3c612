// Package schema has configs, models and shared types for all parts of protopair.
package schema

// Commit is a single commit as reported by the transaction source.
// ChangedPaths may contain duplicates and carries no meaningful order;
// downstream stages treat it as a set.
type Commit struct {
	ID           string   `json:"id"`
	ChangedPaths []string `json:"changed_paths"`
}

// MetricRecord is one mined association between a proto file (the anchor)
// and another file that changed in the same commits. The raw counters are
// kept alongside the derived metrics so exports stay self-explanatory.
type MetricRecord struct {
	ProtoFile  string  `json:"proto_file"`  // Anchor path, or the merged-anchor label
	OtherFile  string  `json:"other_file"`  // Co-changing path (may itself be a proto)
	Pairs      int     `json:"pairs"`       // Transactions containing both files
	ProtoCount int     `json:"proto_count"` // Transactions containing the anchor
	OtherCount int     `json:"other_count"` // Transactions containing the other file
	Support    float64 `json:"support"`     // Pairs / total relevant transactions
	Confidence float64 `json:"confidence"`  // Pairs / ProtoCount
	Lift       float64 `json:"lift"`        // Confidence / (OtherCount / total)
}

// RepoResult is the ranked mining output for a single repository.
// Total is the number of proto-relevant transactions observed; a repository
// without proto activity has Total == 0 and no records, which is not an error.
type RepoResult struct {
	Repo    string         `json:"repo"`
	Total   int            `json:"total_transactions"`
	Records []MetricRecord `json:"records"`
}

// ProtoSummary aggregates all mined pairs that share one proto anchor.
type ProtoSummary struct {
	Repo           string  `json:"repo"`
	ProtoFile      string  `json:"proto_file"`
	PairCount      int     `json:"pair_count"`      // Distinct co-changing files
	Occurrence     int     `json:"occurrence"`      // Transactions containing the proto
	MeanConfidence float64 `json:"mean_confidence"` // Average over the anchor's pairs
	MaxLift        float64 `json:"max_lift"`        // Strongest association observed
}

// DetectResult is the verdict for one scanned directory.
type DetectResult struct {
	Dir          string `json:"dir"`
	UsesProtobuf bool   `json:"uses_protobuf"`
	Reason       string `json:"reason"`
}
