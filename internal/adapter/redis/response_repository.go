package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/pscheid92/pollpulse/internal/domain"
)

type ResponseRepo struct {
	rdb   *goredis.Client
	clock clockwork.Clock
}

func NewResponseRepo(rdb *goredis.Client, clock clockwork.Clock) *ResponseRepo {
	return &ResponseRepo{rdb: rdb, clock: clock}
}

// Create checks the poll hash and stores the response inside one script, so a
// response can never be written for a poll that does not exist.
func (r *ResponseRepo) Create(ctx context.Context, in domain.NewResponse) (*domain.Response, error) {
	now := r.clock.Now().UTC().Truncate(time.Millisecond)

	id, err := createResponseScript.Run(ctx, r.rdb,
		[]string{pollKey(in.PollID), responseSeqKey, pollResponsesKey(in.PollID)},
		responseKeyPrefix, in.Answer, in.Sentiment.String(), now.UnixMilli(), in.PollID,
	).Int64()
	if err != nil {
		return nil, fmt.Errorf("create response script failed: %w", err)
	}
	if id == 0 {
		return nil, domain.ErrPollNotFound
	}

	return &domain.Response{
		ID:        id,
		PollID:    in.PollID,
		Answer:    in.Answer,
		Sentiment: in.Sentiment,
		CreatedAt: now,
	}, nil
}

func (r *ResponseRepo) ListByPoll(ctx context.Context, pollID int64) ([]domain.Response, error) {
	raw, err := listResponsesScript.Run(ctx, r.rdb, []string{pollResponsesKey(pollID)}, responseKeyPrefix).Slice()
	if err != nil {
		return nil, fmt.Errorf("list responses script failed: %w", err)
	}
	return parseResponses(pollID, raw)
}

var _ domain.ResponseRepository = (*ResponseRepo)(nil)
