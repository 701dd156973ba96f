// Package memory provides an in-memory implementation of the feedback store.
// It is the default backing for development and tests; records do not
// survive a process restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pulseboard/pulseboard-backend/internal/store"
	"github.com/pulseboard/pulseboard-backend/types"
)

// Ensure FeedbackStore implements store.FeedbackStore.
var _ store.FeedbackStore = (*FeedbackStore)(nil)

// FeedbackStore holds records in a mutex-guarded slice. The id counter is
// process-lifetime: ClearFeedback does not reset it, so ids are never
// reused across test resets.
type FeedbackStore struct {
	mu      sync.Mutex
	records []types.Feedback
	nextID  int64
	now     func() time.Time
}

// NewFeedbackStore creates an empty in-memory feedback store.
func NewFeedbackStore() *FeedbackStore {
	return &FeedbackStore{nextID: 1, now: time.Now}
}

// NewFeedbackStoreWithClock creates a store using the given clock for
// timestamp assignment. Used by tests to control time.
func NewFeedbackStoreWithClock(now func() time.Time) *FeedbackStore {
	return &FeedbackStore{nextID: 1, now: now}
}

// CreateFeedback appends a new record with the next id and current timestamp.
func (s *FeedbackStore) CreateFeedback(_ context.Context, name string, rating int, message string) (*types.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := types.Feedback{
		ID:        s.nextID,
		Name:      name,
		Rating:    rating,
		Message:   message,
		Timestamp: s.now().UTC(),
	}
	s.nextID++
	s.records = append(s.records, rec)

	out := rec
	return &out, nil
}

// ListFeedback returns a copy of all records, newest-first by timestamp.
// Ids increase with insertion order, so ties on timestamp are broken by
// id descending, which is reverse insertion order.
func (s *FeedbackStore) ListFeedback(_ context.Context) ([]types.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.Feedback, len(s.records))
	copy(out, s.records)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// ClearFeedback removes all records without touching the id counter.
func (s *FeedbackStore) ClearFeedback(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	return nil
}

// Ping always succeeds for the in-memory backing.
func (s *FeedbackStore) Ping(_ context.Context) error {
	return nil
}
