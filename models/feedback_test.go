package models

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	apperrors "github.com/pulseboard/pulseboard-backend/errors"
	"github.com/pulseboard/pulseboard-backend/internal/store"
	"github.com/pulseboard/pulseboard-backend/internal/store/memory"
	"github.com/pulseboard/pulseboard-backend/logger"
	"github.com/pulseboard/pulseboard-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

// faultyStore fails every operation, simulating a broken backing medium.
type faultyStore struct{}

var _ store.FeedbackStore = (*faultyStore)(nil)

func (f *faultyStore) CreateFeedback(context.Context, string, int, string) (*types.Feedback, error) {
	return nil, fmt.Errorf("disk on fire")
}
func (f *faultyStore) ListFeedback(context.Context) ([]types.Feedback, error) {
	return nil, fmt.Errorf("disk on fire")
}
func (f *faultyStore) ClearFeedback(context.Context) error { return fmt.Errorf("disk on fire") }
func (f *faultyStore) Ping(context.Context) error          { return fmt.Errorf("disk on fire") }

func TestSubmitFeedback_ValidPayload(t *testing.T) {
	fm := NewFeedbackModel(memory.NewFeedbackStore())
	ctx := context.Background()

	rec, err := fm.SubmitFeedback(ctx, &types.FeedbackCreate{
		Name:    "  John Doe  ",
		Rating:  float64(5),
		Message: "  Great!  ",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.ID)
	assert.Equal(t, "John Doe", rec.Name)
	assert.Equal(t, 5, rec.Rating)
	assert.Equal(t, "Great!", rec.Message)
	assert.False(t, rec.Timestamp.IsZero())
}

func TestSubmitFeedback_RejectionLeavesStoreUntouched(t *testing.T) {
	memStore := memory.NewFeedbackStore()
	fm := NewFeedbackModel(memStore)
	ctx := context.Background()

	_, err := fm.SubmitFeedback(ctx, &types.FeedbackCreate{Rating: float64(5), Message: "hi"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ValidationError, appErr.Type)

	list, listErr := memStore.ListFeedback(ctx)
	require.NoError(t, listErr)
	assert.Empty(t, list, "no store mutation on validation failure")
}

func TestSubmitFeedback_StoreFaultIsSanitized(t *testing.T) {
	fm := NewFeedbackModel(&faultyStore{})

	_, err := fm.SubmitFeedback(context.Background(), &types.FeedbackCreate{
		Name:    "John",
		Rating:  float64(4),
		Message: "hi",
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.DatabaseError, appErr.Type)
	assert.Equal(t, "Failed to submit feedback", appErr.Message)
	assert.NotContains(t, appErr.Message, "disk on fire")
}

func TestListFeedback_StoreFaultIsSanitized(t *testing.T) {
	fm := NewFeedbackModel(&faultyStore{})

	_, err := fm.ListFeedback(context.Background())
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Failed to fetch feedback", appErr.Message)
}

func TestListFeedback_ReflectsCompletedCreates(t *testing.T) {
	fm := NewFeedbackModel(memory.NewFeedbackStore())
	ctx := context.Background()

	_, err := fm.SubmitFeedback(ctx, &types.FeedbackCreate{Name: "A", Rating: float64(1), Message: "first"})
	require.NoError(t, err)
	_, err = fm.SubmitFeedback(ctx, &types.FeedbackCreate{Name: "B", Rating: float64(2), Message: "second"})
	require.NoError(t, err)

	list, err := fm.ListFeedback(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].Name, "newest first")
	assert.Equal(t, "A", list[1].Name)
}

func TestClearFeedback_PropagatesRawError(t *testing.T) {
	fm := NewFeedbackModel(&faultyStore{})
	err := fm.ClearFeedback(context.Background())
	require.Error(t, err)
	// raw store error: callers attach their own client-facing message
	var appErr *apperrors.AppError
	assert.False(t, stderrors.As(err, &appErr))
}
