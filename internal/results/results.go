// Package results aggregates a poll's stored responses into a sentiment report.
package results

import (
	"context"
	"fmt"

	"github.com/pscheid92/pollpulse/internal/domain"
)

type Aggregator struct {
	responses domain.ResponseRepository
	polls     domain.PollRepository
}

func NewAggregator(responses domain.ResponseRepository, polls domain.PollRepository) *Aggregator {
	return &Aggregator{responses: responses, polls: polls}
}

// GetResults builds the report for pollID from one snapshot of its responses.
// It returns domain.ErrPollNotFound for an unknown poll and domain.ErrNoResponses
// for a poll that has not been answered yet.
func (a *Aggregator) GetResults(ctx context.Context, pollID int64) (*domain.ResultsReport, error) {
	responses, err := a.responses.ListByPoll(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	if len(responses) == 0 {
		exists, err := a.polls.Exists(ctx, pollID)
		if err != nil {
			return nil, fmt.Errorf("failed to check poll: %w", err)
		}
		if !exists {
			return nil, domain.ErrPollNotFound
		}
		return nil, domain.ErrNoResponses
	}

	return &domain.ResultsReport{
		PollID:                pollID,
		SentimentDistribution: Tally(responses),
		Responses:             responses,
	}, nil
}

// Tally counts responses per label. Labels that never occur are left out.
func Tally(responses []domain.Response) map[domain.SentimentLabel]int {
	dist := make(map[domain.SentimentLabel]int)
	for _, r := range responses {
		dist[r.Sentiment]++
	}
	return dist
}
