package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pscheid92/pollpulse/internal/domain"
)

// responseColumns must match the Scan order in scanResponse.
const responseColumns = `id, poll_id, answer, sentiment, created_at`

const foreignKeyViolation = "23503"

type ResponseRepo struct {
	pool *pgxpool.Pool
}

func NewResponseRepo(pool *pgxpool.Pool) *ResponseRepo {
	return &ResponseRepo{pool: pool}
}

func scanResponse(row pgx.Row) (domain.Response, error) {
	var (
		r     domain.Response
		label string
	)
	if err := row.Scan(&r.ID, &r.PollID, &r.Answer, &label, &r.CreatedAt); err != nil {
		return r, err
	}

	sentiment, err := domain.ParseSentimentLabel(label)
	if err != nil {
		return r, err
	}
	r.Sentiment = sentiment
	return r, nil
}

// Create inserts the response in one statement. The foreign key on poll_id
// makes the existence check and the insert atomic.
func (r *ResponseRepo) Create(ctx context.Context, in domain.NewResponse) (*domain.Response, error) {
	resp, err := scanResponse(r.pool.QueryRow(ctx,
		`INSERT INTO responses (poll_id, answer, sentiment) VALUES ($1, $2, $3) RETURNING `+responseColumns,
		in.PollID, in.Answer, in.Sentiment.String()))

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return nil, domain.ErrPollNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert response: %w", err)
	}
	return &resp, nil
}

func (r *ResponseRepo) ListByPoll(ctx context.Context, pollID int64) ([]domain.Response, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+responseColumns+` FROM responses WHERE poll_id = $1 ORDER BY id`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}

	responses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Response, error) {
		return scanResponse(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan responses: %w", err)
	}
	return responses, nil
}

var _ domain.ResponseRepository = (*ResponseRepo)(nil)
