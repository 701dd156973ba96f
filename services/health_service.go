package services

import (
	"context"
	"time"

	"github.com/pulseboard/pulseboard-backend/internal/store"
	"github.com/pulseboard/pulseboard-backend/logger"
	"github.com/pulseboard/pulseboard-backend/types"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// HealthService aggregates the readiness state of the backing services.
type HealthService struct {
	feedbackStore store.FeedbackStore
	redisClient   *redis.Client
	version       string
	log           *zap.SugaredLogger
}

// NewHealthService creates a HealthService. redisClient may be nil when
// rate limiting is disabled.
func NewHealthService(feedbackStore store.FeedbackStore, redisClient *redis.Client, version string) *HealthService {
	return &HealthService{
		feedbackStore: feedbackStore,
		redisClient:   redisClient,
		version:       version,
		log:           logger.GetLogger(),
	}
}

func (h *HealthService) CheckHealth(ctx context.Context) types.HealthCheck {
	components := make(map[string]types.HealthComponent)
	overallStatus := types.HealthStatusUp

	storageStatus := h.checkStorage(ctx)
	components["storage"] = storageStatus
	if storageStatus.Status == types.HealthStatusDown {
		overallStatus = types.HealthStatusDown
	}

	if h.redisClient != nil {
		redisStatus := h.checkRedis(ctx)
		components["redis"] = redisStatus
		if redisStatus.Status == types.HealthStatusDown {
			overallStatus = types.HealthStatusDown
		}
	}

	return types.HealthCheck{
		Status:     overallStatus,
		Components: components,
		Version:    h.version,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}

func (h *HealthService) checkStorage(ctx context.Context) types.HealthComponent {
	if err := h.feedbackStore.Ping(ctx); err != nil {
		h.log.Errorw("Storage health check failed", "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "Storage connection failed",
		}
	}

	return types.HealthComponent{
		Status: types.HealthStatusUp,
	}
}

func (h *HealthService) checkRedis(ctx context.Context) types.HealthComponent {
	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		h.log.Errorw("Redis health check failed", "error", err)
		return types.HealthComponent{
			Status:  types.HealthStatusDown,
			Details: "Redis connection failed",
		}
	}

	return types.HealthComponent{
		Status: types.HealthStatusUp,
	}
}
