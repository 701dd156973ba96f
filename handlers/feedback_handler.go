package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pulseboard/pulseboard-backend/models"
	"github.com/pulseboard/pulseboard-backend/types"
)

// FeedbackHandler handles feedback listing and submission endpoints.
type FeedbackHandler struct {
	model *models.FeedbackModel
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(model *models.FeedbackModel) *FeedbackHandler {
	return &FeedbackHandler{model: model}
}

// ListFeedback returns all feedback entries, newest first.
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	entries, err := h.model.ListFeedback(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.SuccessResponse(entries))
}

// SubmitFeedback validates and stores a new feedback entry.
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req types.FeedbackCreate
	if !bindJSONOrError(c, &req) {
		return
	}

	entry, err := h.model.SubmitFeedback(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, types.SuccessMessageResponse("Feedback submitted successfully", entry))
}

func bindJSONOrError(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		// An empty body decodes to an empty payload and goes through
		// validation, so the missing-fields message surfaces.
		if errors.Is(err, io.EOF) {
			return true
		}
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return false
	}
	return true
}
