package metrics

import "github.com/prometheus/client_golang/prometheus"

// PollMetrics holds Prometheus metrics for poll and response handling.
type PollMetrics struct {
	PollsCreated       prometheus.Counter
	ResponsesByLabel   *prometheus.CounterVec
	ClassifyDuration   prometheus.Histogram
	ResultsRequests    *prometheus.CounterVec
	RejectedSubmission *prometheus.CounterVec
}

// NewPollMetrics creates and registers poll metrics on the given registry.
func NewPollMetrics(reg prometheus.Registerer) *PollMetrics {
	m := &PollMetrics{
		PollsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_created_total",
			Help:      "Total number of polls created.",
		}),
		ResponsesByLabel: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_classified_total",
			Help:      "Total number of stored responses, by sentiment label.",
		}, []string{"sentiment"}),
		ClassifyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classification_duration_seconds",
			Help:      "Duration of sentiment classification in seconds.",
			Buckets:   []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
		ResultsRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_requests_total",
			Help:      "Total number of results requests, by outcome.",
		}, []string{"outcome"}),
		RejectedSubmission: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_rejected_total",
			Help:      "Total number of rejected response submissions, by reason.",
		}, []string{"reason"}),
	}

	reg.MustRegister(m.PollsCreated, m.ResponsesByLabel, m.ClassifyDuration, m.ResultsRequests, m.RejectedSubmission)
	return m
}
