package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pulseboard/pulseboard-backend/config"
	"github.com/pulseboard/pulseboard-backend/internal/store"
	"github.com/pulseboard/pulseboard-backend/internal/store/memory"
	"github.com/pulseboard/pulseboard-backend/middleware"
	"github.com/pulseboard/pulseboard-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminKey = "0123456789abcdef0123456789abcdef"

func buildAdminRouter(st store.FeedbackStore, env config.Environment) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Server.Environment = env
	cfg.Server.AdminAPIKey = testAdminKey

	h := NewAdminHandler(models.NewFeedbackModel(st), cfg)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.POST("/api/test/reset", h.ResetFeedback)
	r.DELETE("/api/admin/feedback", h.PurgeFeedback)
	return r
}

func seedFeedback(t *testing.T, st store.FeedbackStore, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := st.CreateFeedback(context.Background(), "Seed", 4, "seeded entry")
		require.NoError(t, err)
	}
}

func TestResetFeedback_AllowedInTest(t *testing.T) {
	st := memory.NewFeedbackStore()
	seedFeedback(t, st, 3)
	r := buildAdminRouter(st, config.EnvTest)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/test/reset", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "Test database reset successful", resp.Message)

	entries, err := st.ListFeedback(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResetFeedback_KeepsIDCounter(t *testing.T) {
	st := memory.NewFeedbackStore()
	seedFeedback(t, st, 2)
	r := buildAdminRouter(st, config.EnvDevelopment)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/test/reset", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	rec, err := st.CreateFeedback(context.Background(), "After", 5, "post-reset entry")
	require.NoError(t, err)
	assert.Equal(t, int64(3), rec.ID, "ids must not be reused after a reset")
}

func TestResetFeedback_ForbiddenInProduction(t *testing.T) {
	st := memory.NewFeedbackStore()
	seedFeedback(t, st, 1)
	r := buildAdminRouter(st, config.EnvProduction)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/test/reset", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeEnvelope(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "This endpoint is only available in test environment", resp.Message)

	entries, err := st.ListFeedback(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "production reset must not touch stored feedback")
}

func TestResetFeedback_StoreDown(t *testing.T) {
	r := buildAdminRouter(downStore{}, config.EnvTest)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/test/reset", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, "Failed to reset test database", resp.Message)
}

func TestPurgeFeedback_RequiresKey(t *testing.T) {
	st := memory.NewFeedbackStore()
	seedFeedback(t, st, 2)
	r := buildAdminRouter(st, config.EnvProduction)

	for _, key := range []string{"", "wrong-key"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/api/admin/feedback", nil)
		if key != "" {
			req.Header.Set("X-Admin-Key", key)
		}
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	}

	entries, err := st.ListFeedback(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestPurgeFeedback_ValidKey(t *testing.T) {
	st := memory.NewFeedbackStore()
	seedFeedback(t, st, 2)
	r := buildAdminRouter(st, config.EnvProduction)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/admin/feedback", nil)
	req.Header.Set("X-Admin-Key", testAdminKey)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, "All feedback deleted", resp.Message)

	entries, err := st.ListFeedback(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPurgeFeedback_DisabledWithoutConfiguredKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := memory.NewFeedbackStore()
	cfg := &config.Config{}
	cfg.Server.Environment = config.EnvProduction

	h := NewAdminHandler(models.NewFeedbackModel(st), cfg)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.DELETE("/api/admin/feedback", h.PurgeFeedback)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/admin/feedback", nil)
	req.Header.Set("X-Admin-Key", "")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
