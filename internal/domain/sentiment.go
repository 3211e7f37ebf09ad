package domain

import "fmt"

// SentimentLabel is the discrete classification of a response.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// SentimentLabels lists every label in display order.
var SentimentLabels = []SentimentLabel{SentimentPositive, SentimentNeutral, SentimentNegative}

func (l SentimentLabel) String() string {
	return string(l)
}

// ParseSentimentLabel converts a stored string back into a label.
func ParseSentimentLabel(s string) (SentimentLabel, error) {
	switch SentimentLabel(s) {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return SentimentLabel(s), nil
	default:
		return "", fmt.Errorf("unknown sentiment label %q", s)
	}
}

// TextClassifier maps free text to a sentiment label.
// Implementations must be pure: the same text always yields the same label.
type TextClassifier interface {
	Classify(text string) SentimentLabel
}
