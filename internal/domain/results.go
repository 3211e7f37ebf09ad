package domain

// ResultsReport is the aggregated view of one poll's responses.
// Labels without responses are absent from SentimentDistribution.
type ResultsReport struct {
	PollID                int64                  `json:"poll_id"`
	SentimentDistribution map[SentimentLabel]int `json:"sentiment_distribution"`
	Responses             []Response             `json:"responses"`
}

// Total returns the number of responses the report was built from.
func (r *ResultsReport) Total() int {
	return len(r.Responses)
}

// Percentages returns each present label's share of all responses, in [0, 1].
func (r *ResultsReport) Percentages() map[SentimentLabel]float64 {
	out := make(map[SentimentLabel]float64, len(r.SentimentDistribution))
	total := r.Total()
	if total == 0 {
		return out
	}
	for label, count := range r.SentimentDistribution {
		out[label] = float64(count) / float64(total)
	}
	return out
}
