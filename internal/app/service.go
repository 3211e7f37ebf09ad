package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/pollpulse/internal/adapter/metrics"
	"github.com/pscheid92/pollpulse/internal/domain"
	apperrors "github.com/pscheid92/pollpulse/internal/platform/errors"
	"github.com/pscheid92/pollpulse/internal/results"
)

// Service is the application layer. It is the only component that touches
// both repositories and the classifier.
type Service struct {
	polls      domain.PollRepository
	responses  domain.ResponseRepository
	classifier domain.TextClassifier
	results    *results.Aggregator
	metrics    *metrics.PollMetrics
	clock      clockwork.Clock
}

// NewService creates the application layer service. m may be nil.
func NewService(polls domain.PollRepository, responses domain.ResponseRepository, classifier domain.TextClassifier, m *metrics.PollMetrics, clock clockwork.Clock) *Service {
	return &Service{
		polls:      polls,
		responses:  responses,
		classifier: classifier,
		results:    results.NewAggregator(responses, polls),
		metrics:    m,
		clock:      clock,
	}
}

// CreatePoll stores a new poll. Whitespace-only questions are rejected before storage is touched.
func (s *Service) CreatePoll(ctx context.Context, question string) (*domain.Poll, error) {
	if strings.TrimSpace(question) == "" {
		return nil, apperrors.ValidationError(domain.ErrEmptyQuestion.Error()).Wrap(domain.ErrEmptyQuestion)
	}

	poll, err := s.polls.Create(ctx, question)
	if err != nil {
		return nil, apperrors.InternalError("failed to create poll", err)
	}

	if s.metrics != nil {
		s.metrics.PollsCreated.Inc()
	}
	slog.InfoContext(ctx, "Poll created", "poll_id", poll.ID)
	return poll, nil
}

// ListPolls returns every poll in ascending id order.
func (s *Service) ListPolls(ctx context.Context) ([]domain.Poll, error) {
	polls, err := s.polls.List(ctx)
	if err != nil {
		return nil, apperrors.InternalError("failed to list polls", err)
	}
	if polls == nil {
		polls = []domain.Poll{}
	}
	return polls, nil
}

// SubmitResponse classifies answer once and stores it against pollID.
func (s *Service) SubmitResponse(ctx context.Context, pollID int64, answer string) (*domain.Response, error) {
	if strings.TrimSpace(answer) == "" {
		s.rejected("empty_answer")
		return nil, apperrors.ValidationError(domain.ErrEmptyAnswer.Error()).Wrap(domain.ErrEmptyAnswer)
	}

	exists, err := s.polls.Exists(ctx, pollID)
	if err != nil {
		return nil, apperrors.InternalError("failed to look up poll", err).WithField("poll_id", pollID)
	}
	if !exists {
		s.rejected("unknown_poll")
		return nil, pollNotFound(pollID)
	}

	start := s.clock.Now()
	label := s.classifier.Classify(answer)
	if s.metrics != nil {
		s.metrics.ClassifyDuration.Observe(s.clock.Since(start).Seconds())
	}

	resp, err := s.responses.Create(ctx, domain.NewResponse{
		PollID:    pollID,
		Answer:    answer,
		Sentiment: label,
	})
	if errors.Is(err, domain.ErrPollNotFound) {
		s.rejected("unknown_poll")
		return nil, pollNotFound(pollID)
	}
	if err != nil {
		return nil, apperrors.InternalError("failed to store response", err).WithField("poll_id", pollID)
	}

	if s.metrics != nil {
		s.metrics.ResponsesByLabel.WithLabelValues(label.String()).Inc()
	}
	slog.InfoContext(ctx, "Response submitted", "poll_id", pollID, "response_id", resp.ID, "sentiment", label)
	return resp, nil
}

// GetResults returns the sentiment report for pollID.
func (s *Service) GetResults(ctx context.Context, pollID int64) (*domain.ResultsReport, error) {
	report, err := s.results.GetResults(ctx, pollID)
	switch {
	case errors.Is(err, domain.ErrPollNotFound):
		s.resultsOutcome("unknown_poll")
		return nil, pollNotFound(pollID)
	case errors.Is(err, domain.ErrNoResponses):
		s.resultsOutcome("no_responses")
		return nil, apperrors.NotFoundError(domain.ErrNoResponses.Error()).Wrap(domain.ErrNoResponses).WithField("poll_id", pollID)
	case err != nil:
		s.resultsOutcome("error")
		return nil, apperrors.InternalError("failed to build results", err).WithField("poll_id", pollID)
	}

	s.resultsOutcome("ok")
	return report, nil
}

func pollNotFound(pollID int64) *apperrors.Error {
	return apperrors.NotFoundError(domain.ErrPollNotFound.Error()).Wrap(domain.ErrPollNotFound).WithField("poll_id", pollID)
}

func (s *Service) rejected(reason string) {
	if s.metrics != nil {
		s.metrics.RejectedSubmission.WithLabelValues(reason).Inc()
	}
}

func (s *Service) resultsOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.ResultsRequests.WithLabelValues(outcome).Inc()
	}
}
