package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/pscheid92/pollpulse/internal/domain"
)

type PollRepo struct {
	rdb   *goredis.Client
	clock clockwork.Clock
}

func NewPollRepo(rdb *goredis.Client, clock clockwork.Clock) *PollRepo {
	return &PollRepo{rdb: rdb, clock: clock}
}

func (r *PollRepo) Create(ctx context.Context, question string) (*domain.Poll, error) {
	now := r.clock.Now().UTC().Truncate(time.Millisecond)

	id, err := createPollScript.Run(ctx, r.rdb,
		[]string{pollSeqKey, pollIndexKey},
		pollKeyPrefix, question, now.UnixMilli(),
	).Int64()
	if err != nil {
		return nil, fmt.Errorf("create poll script failed: %w", err)
	}

	return &domain.Poll{ID: id, Question: question, CreatedAt: now}, nil
}

func (r *PollRepo) List(ctx context.Context) ([]domain.Poll, error) {
	raw, err := listPollsScript.Run(ctx, r.rdb, []string{pollIndexKey}, pollKeyPrefix).Slice()
	if err != nil {
		return nil, fmt.Errorf("list polls script failed: %w", err)
	}
	return parsePolls(raw)
}

func (r *PollRepo) Exists(ctx context.Context, pollID int64) (bool, error) {
	n, err := r.rdb.Exists(ctx, pollKey(pollID)).Result()
	if err != nil {
		return false, fmt.Errorf("poll exists check failed: %w", err)
	}
	return n == 1, nil
}

func (r *PollRepo) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

var _ domain.PollRepository = (*PollRepo)(nil)
