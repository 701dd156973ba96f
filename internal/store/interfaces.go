// Package store defines the persistence interfaces for feedback records.
package store

import (
	"context"

	"github.com/pulseboard/pulseboard-backend/types"
)

// FeedbackStore owns persistence and identity assignment for feedback
// records. Implementations must serialize creates and reads against the
// same state: two concurrent creates produce distinct, strictly ordered
// ids with no lost updates.
type FeedbackStore interface {
	// CreateFeedback assigns the next id and the current timestamp,
	// appends the record and returns the canonical stored form. The
	// caller is responsible for validation; the store never re-validates.
	CreateFeedback(ctx context.Context, name string, rating int, message string) (*types.Feedback, error)

	// ListFeedback returns all records newest-first by timestamp, ties
	// broken by reverse insertion order. It reflects every create that
	// completed before the call.
	ListFeedback(ctx context.Context) ([]types.Feedback, error)

	// ClearFeedback removes all records. The id counter is not reset;
	// the next create continues the sequence.
	ClearFeedback(ctx context.Context) error

	// Ping reports whether the backing medium is reachable.
	Ping(ctx context.Context) error
}
