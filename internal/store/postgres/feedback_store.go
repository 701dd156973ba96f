// Package postgres provides the PostgreSQL-backed feedback store.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pulseboard/pulseboard-backend/internal/store"
	"github.com/pulseboard/pulseboard-backend/types"
)

// PgxPool is the subset of pgxpool.Pool used by the store. Declared as an
// interface so tests can substitute a pgxmock pool.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// Ensure FeedbackStore implements store.FeedbackStore.
var _ store.FeedbackStore = (*FeedbackStore)(nil)

// FeedbackStore persists records in a feedback table. Identity comes from a
// BIGSERIAL column: the sequence continues across deletes and restarts, so
// ids are never reused even after a clear. A fresh database starts at 1.
type FeedbackStore struct {
	pool PgxPool
}

// NewFeedbackStore creates a PostgreSQL feedback store on the given pool.
func NewFeedbackStore(pool PgxPool) *FeedbackStore {
	return &FeedbackStore{pool: pool}
}

// CreateFeedback inserts a record and returns the canonical stored row,
// including the database-assigned id and timestamp.
func (s *FeedbackStore) CreateFeedback(ctx context.Context, name string, rating int, message string) (*types.Feedback, error) {
	query := `
		INSERT INTO feedback (name, rating, message)
		VALUES ($1, $2, $3)
		RETURNING id, name, rating, message, created_at`

	rec := &types.Feedback{}
	err := s.pool.QueryRow(ctx, query, name, rating, message).Scan(
		&rec.ID,
		&rec.Name,
		&rec.Rating,
		&rec.Message,
		&rec.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return rec, nil
}

// ListFeedback returns all records newest-first; the id tie-break keeps
// same-timestamp rows in reverse insertion order.
func (s *FeedbackStore) ListFeedback(ctx context.Context) ([]types.Feedback, error) {
	query := `
		SELECT id, name, rating, message, created_at
		FROM feedback
		ORDER BY created_at DESC, id DESC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	records := make([]types.Feedback, 0)
	for rows.Next() {
		var rec types.Feedback
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Rating, &rec.Message, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feedback rows: %w", err)
	}
	return records, nil
}

// ClearFeedback deletes all rows. The id sequence is left untouched.
func (s *FeedbackStore) ClearFeedback(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM feedback`); err != nil {
		return fmt.Errorf("failed to clear feedback: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *FeedbackStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return nil
}
