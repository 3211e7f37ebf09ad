package sentiment

import "github.com/jonreiter/govader"

// VaderScorer scores text with the VADER lexicon. The lexicon is loaded once by
// NewVaderScorer and only read afterwards.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderScorer) Compound(text string) float64 {
	return v.analyzer.PolarityScores(text).Compound
}
