package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/pollpulse/internal/domain"
)

// ResponseRepository stores responses grouped by poll. It consults the poll
// repository while holding its own write lock so no response can reference a
// poll that was not visible at insert time. Polls are never deleted, which
// keeps that check valid after the lock is released.
type ResponseRepository struct {
	clock clockwork.Clock
	polls *PollRepository

	mu     sync.RWMutex
	lastID int64
	byPoll map[int64][]domain.Response
}

func NewResponseRepository(clock clockwork.Clock, polls *PollRepository) *ResponseRepository {
	return &ResponseRepository{
		clock:  clock,
		polls:  polls,
		byPoll: make(map[int64][]domain.Response),
	}
}

func (r *ResponseRepository) Create(ctx context.Context, in domain.NewResponse) (*domain.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exists, err := r.polls.Exists(ctx, in.PollID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrPollNotFound
	}

	r.lastID++
	resp := domain.Response{
		ID:        r.lastID,
		PollID:    in.PollID,
		Answer:    in.Answer,
		Sentiment: in.Sentiment,
		CreatedAt: r.clock.Now().UTC(),
	}
	r.byPoll[in.PollID] = append(r.byPoll[in.PollID], resp)

	return &resp, nil
}

func (r *ResponseRepository) ListByPoll(_ context.Context, pollID int64) ([]domain.Response, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.byPoll[pollID]), nil
}

var _ domain.ResponseRepository = (*ResponseRepository)(nil)
