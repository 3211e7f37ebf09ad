package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pscheid92/pollpulse/internal/domain"
)

// pollColumns must match the Scan order in scanPoll.
const pollColumns = `id, question, created_at`

type PollRepo struct {
	pool *pgxpool.Pool
}

func NewPollRepo(pool *pgxpool.Pool) *PollRepo {
	return &PollRepo{pool: pool}
}

func scanPoll(row pgx.Row) (domain.Poll, error) {
	var p domain.Poll
	err := row.Scan(&p.ID, &p.Question, &p.CreatedAt)
	return p, err
}

func (r *PollRepo) Create(ctx context.Context, question string) (*domain.Poll, error) {
	poll, err := scanPoll(r.pool.QueryRow(ctx,
		`INSERT INTO polls (question) VALUES ($1) RETURNING `+pollColumns, question))
	if err != nil {
		return nil, fmt.Errorf("failed to insert poll: %w", err)
	}
	return &poll, nil
}

func (r *PollRepo) List(ctx context.Context) ([]domain.Poll, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+pollColumns+` FROM polls ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}

	polls, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Poll, error) {
		return scanPoll(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan polls: %w", err)
	}
	return polls, nil
}

func (r *PollRepo) Exists(ctx context.Context, pollID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM polls WHERE id = $1)`, pollID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check poll existence: %w", err)
	}
	return exists, nil
}

func (r *PollRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

var _ domain.PollRepository = (*PollRepo)(nil)
