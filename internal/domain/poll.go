package domain

import (
	"context"
	"time"
)

type Poll struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	CreatedAt time.Time `json:"created_at"`
}

// PollRepository owns the set of polls and assigns their ids.
// Create must allocate ids atomically with respect to concurrent callers.
type PollRepository interface {
	Create(ctx context.Context, question string) (*Poll, error)
	List(ctx context.Context) ([]Poll, error)
	Exists(ctx context.Context, pollID int64) (bool, error)
}
