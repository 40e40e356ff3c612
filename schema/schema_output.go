package schema

// Association label thresholds on lift. Lift 1 means the two files change
// together exactly as often as chance predicts; the band around 1 absorbs
// floating point noise.
const (
	strongLiftFloor      = 2.0
	independenceLiftBand = 1e-9
)

// Association label values.
const (
	StrongValue      = "Strong"
	PositiveValue    = "Positive"
	IndependentValue = "Independent"
	NegativeValue    = "Negative"
)

// GetPlainLabel returns a plain text label classifying the association
// strength of a pair based on its lift. This is the core logic used for
// CSV, JSON, and table printing.
func GetPlainLabel(lift float64) string {
	switch {
	case lift >= strongLiftFloor:
		return StrongValue
	case lift > 1+independenceLiftBand:
		return PositiveValue
	case lift >= 1-independenceLiftBand:
		return IndependentValue
	default:
		return NegativeValue
	}
}

// EnrichedMetricRecord adds presentation data to a MetricRecord.
type EnrichedMetricRecord struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	MetricRecord
}

// EnrichedProtoSummary adds presentation data to a ProtoSummary.
type EnrichedProtoSummary struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	ProtoSummary
}

// EnrichRecords adds rank and label to a ranked list of metric records.
func EnrichRecords(records []MetricRecord) []EnrichedMetricRecord {
	output := make([]EnrichedMetricRecord, len(records))
	for i, r := range records {
		output[i] = EnrichedMetricRecord{
			Rank:         i + 1,
			Label:        GetPlainLabel(r.Lift),
			MetricRecord: r,
		}
	}
	return output
}

// EnrichSummaries adds rank and label to a ranked list of proto summaries.
func EnrichSummaries(summaries []ProtoSummary) []EnrichedProtoSummary {
	output := make([]EnrichedProtoSummary, len(summaries))
	for i, s := range summaries {
		output[i] = EnrichedProtoSummary{
			Rank:         i + 1,
			Label:        GetPlainLabel(s.MaxLift),
			ProtoSummary: s,
		}
	}
	return output
}
