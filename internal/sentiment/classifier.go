package sentiment

import "github.com/pscheid92/pollpulse/internal/domain"

const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Scorer returns a compound polarity score in [-1, 1] for the given text.
type Scorer interface {
	Compound(text string) float64
}

// LabelForScore maps a compound score to a label. Both thresholds are exclusive:
// exactly 0.05 and exactly -0.05 are neutral.
func LabelForScore(score float64) domain.SentimentLabel {
	switch {
	case score > positiveThreshold:
		return domain.SentimentPositive
	case score < negativeThreshold:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

type Classifier struct {
	scorer Scorer
}

func NewClassifier(scorer Scorer) *Classifier {
	return &Classifier{scorer: scorer}
}

// Classify scores the text and maps the score to a label. Empty text takes the same path.
func (c *Classifier) Classify(text string) domain.SentimentLabel {
	return LabelForScore(c.scorer.Compound(text))
}

var _ domain.TextClassifier = (*Classifier)(nil)
