// Package sentiment classifies free-text answers into positive, neutral or negative.
//
// A Scorer produces a compound polarity score in [-1, 1]; LabelForScore maps it to a
// label with fixed thresholds. Classifier combines both and satisfies domain.TextClassifier.
// Nothing here holds mutable state after construction, so a Classifier is safe for concurrent use.
package sentiment
