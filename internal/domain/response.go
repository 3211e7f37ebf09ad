package domain

import (
	"context"
	"time"
)

type Response struct {
	ID        int64          `json:"id"`
	PollID    int64          `json:"poll_id"`
	Answer    string         `json:"answer"`
	Sentiment SentimentLabel `json:"sentiment"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewResponse is a classified answer that has not been stored yet.
type NewResponse struct {
	PollID    int64
	Answer    string
	Sentiment SentimentLabel
}

// ResponseRepository owns the set of responses and assigns their ids.
// Create returns ErrPollNotFound when the referenced poll does not exist.
// ListByPoll returns responses in ascending id order.
type ResponseRepository interface {
	Create(ctx context.Context, r NewResponse) (*Response, error)
	ListByPoll(ctx context.Context, pollID int64) ([]Response, error)
}
