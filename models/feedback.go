package models

import (
	"context"

	"github.com/pulseboard/pulseboard-backend/errors"
	"github.com/pulseboard/pulseboard-backend/internal/store"
	"github.com/pulseboard/pulseboard-backend/logger"
	"github.com/pulseboard/pulseboard-backend/types"
)

// FeedbackModel owns the feedback record lifecycle: validation on write,
// delegation to the store, and the generic client-facing fault messages.
// Validation always runs before any store mutation.
type FeedbackModel struct {
	store store.FeedbackStore
}

func NewFeedbackModel(store store.FeedbackStore) *FeedbackModel {
	return &FeedbackModel{store: store}
}

// SubmitFeedback validates the raw payload and persists the normalized
// record. Validation rejections are returned verbatim; store faults are
// sanitized to a generic message with the cause logged.
func (fm *FeedbackModel) SubmitFeedback(ctx context.Context, payload *types.FeedbackCreate) (*types.Feedback, error) {
	log := logger.GetLogger()

	validated, vErr := ValidateFeedback(payload)
	if vErr != nil {
		return nil, vErr
	}

	rec, err := fm.store.CreateFeedback(ctx, validated.Name, validated.Rating, validated.Message)
	if err != nil {
		log.Errorw("Failed to persist feedback",
			"rating", validated.Rating,
			"error", err,
		)
		return nil, errors.NewDatabaseError(err, "Failed to submit feedback")
	}

	return rec, nil
}

// ListFeedback returns all stored records newest-first.
func (fm *FeedbackModel) ListFeedback(ctx context.Context) ([]types.Feedback, error) {
	records, err := fm.store.ListFeedback(ctx)
	if err != nil {
		logger.GetLogger().Errorw("Failed to list feedback", "error", err)
		return nil, errors.NewDatabaseError(err, "Failed to fetch feedback")
	}
	return records, nil
}

// ClearFeedback removes all records. The raw store error is returned so
// each caller (test reset, admin purge, retention sweep) can attach its
// own client-facing message.
func (fm *FeedbackModel) ClearFeedback(ctx context.Context) error {
	return fm.store.ClearFeedback(ctx)
}

// Ping reports backing-store reachability for health checks.
func (fm *FeedbackModel) Ping(ctx context.Context) error {
	return fm.store.Ping(ctx)
}
