package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pulseboard/pulseboard-backend/config"
	apperrors "github.com/pulseboard/pulseboard-backend/errors"
	"github.com/pulseboard/pulseboard-backend/logger"
	"github.com/pulseboard/pulseboard-backend/models"
	"github.com/pulseboard/pulseboard-backend/types"
)

// AdminHandler handles the test-reset and admin purge endpoints.
type AdminHandler struct {
	model *models.FeedbackModel
	cfg   *config.Config
}

func NewAdminHandler(model *models.FeedbackModel, cfg *config.Config) *AdminHandler {
	return &AdminHandler{model: model, cfg: cfg}
}

// ResetFeedback clears all stored feedback. Only available outside production.
func (h *AdminHandler) ResetFeedback(c *gin.Context) {
	if !h.cfg.AllowsReset() {
		_ = c.Error(apperrors.Forbidden("This endpoint is only available in test environment", ""))
		return
	}

	if err := h.model.ClearFeedback(c.Request.Context()); err != nil {
		_ = c.Error(apperrors.NewDatabaseError(err, "Failed to reset test database"))
		return
	}

	c.JSON(http.StatusOK, types.SuccessMessageResponse("Test database reset successful", nil))
}

// PurgeFeedback clears all stored feedback. Requires the admin API key.
func (h *AdminHandler) PurgeFeedback(c *gin.Context) {
	key := c.GetHeader("X-Admin-Key")
	if h.cfg.Server.AdminAPIKey == "" ||
		subtle.ConstantTimeCompare([]byte(key), []byte(h.cfg.Server.AdminAPIKey)) != 1 {
		_ = c.Error(apperrors.Forbidden("Invalid admin credentials", ""))
		return
	}

	if err := h.model.ClearFeedback(c.Request.Context()); err != nil {
		_ = c.Error(apperrors.NewDatabaseError(err, "Failed to purge feedback"))
		return
	}

	logger.GetLogger().Infow("Feedback purged by admin", "request_id", c.GetString("request_id"))
	c.JSON(http.StatusOK, types.SuccessMessageResponse("All feedback deleted", nil))
}
