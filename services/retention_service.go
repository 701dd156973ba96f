package services

import (
	"context"
	"time"

	"github.com/pulseboard/pulseboard-backend/internal/store"
	"github.com/pulseboard/pulseboard-backend/logger"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const sweepTimeout = 30 * time.Second

// RetentionService periodically clears stored feedback on a cron schedule.
// Intended for shared demo deployments where submissions should not pile up
// indefinitely.
type RetentionService struct {
	feedbackStore store.FeedbackStore
	schedule      string
	cron          *cron.Cron
	log           *zap.SugaredLogger
}

// NewRetentionService creates a RetentionService. schedule is a standard
// five-field cron expression.
func NewRetentionService(feedbackStore store.FeedbackStore, schedule string) *RetentionService {
	return &RetentionService{
		feedbackStore: feedbackStore,
		schedule:      schedule,
		cron:          cron.New(),
		log:           logger.GetLogger(),
	}
}

// Start registers the sweep job and starts the scheduler.
func (s *RetentionService) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Infow("Retention sweep scheduled", "schedule", s.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (s *RetentionService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep clears all stored feedback immediately. Exposed for manual runs.
func (s *RetentionService) Sweep(ctx context.Context) error {
	return s.feedbackStore.ClearFeedback(ctx)
}

func (s *RetentionService) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if err := s.feedbackStore.ClearFeedback(ctx); err != nil {
		s.log.Errorw("Retention sweep failed", "error", err)
		return
	}
	s.log.Infow("Retention sweep completed")
}
