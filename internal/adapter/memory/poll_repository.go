package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/pollpulse/internal/domain"
)

type PollRepository struct {
	clock clockwork.Clock

	mu     sync.RWMutex
	lastID int64
	polls  []domain.Poll
	index  map[int64]struct{}
}

func NewPollRepository(clock clockwork.Clock) *PollRepository {
	return &PollRepository{
		clock: clock,
		index: make(map[int64]struct{}),
	}
}

func (r *PollRepository) Create(_ context.Context, question string) (*domain.Poll, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	poll := domain.Poll{
		ID:        r.lastID,
		Question:  question,
		CreatedAt: r.clock.Now().UTC(),
	}
	r.polls = append(r.polls, poll)
	r.index[poll.ID] = struct{}{}

	return &poll, nil
}

// List returns polls in creation order. Appends only ever add higher ids.
func (r *PollRepository) List(_ context.Context) ([]domain.Poll, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.polls), nil
}

func (r *PollRepository) Exists(_ context.Context, pollID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.index[pollID]
	return ok, nil
}

// Ping satisfies the readiness check; process memory is always reachable.
func (r *PollRepository) Ping(context.Context) error {
	return nil
}

var _ domain.PollRepository = (*PollRepository)(nil)
