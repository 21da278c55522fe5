package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipe-assistant/internal/core/ai/queue"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSource struct{ closed bool }

func (f fakeSource) QueueStatus() *queue.Status {
	return &queue.Status{Workers: 2, MaxQueueSize: 10, Closed: f.closed}
}

func (f fakeSource) CacheStats() map[string]interface{} {
	return map[string]interface{}{"backend": "memory"}
}

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/health", h.HealthCheck)
	r.GET("/ready", h.ReadinessCheck)
	r.GET("/live", h.LivenessCheck)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthCheck(t *testing.T) {
	t.Parallel()

	w := serve(NewHandler("1.2.3", 7, fakeSource{}), "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, 7, resp.Recipes)
	require.NotNil(t, resp.Queue)
	assert.Equal(t, 2, resp.Queue.Workers)
	assert.Equal(t, "memory", resp.Cache["backend"])
}

func TestHealthCheck_WithoutSource(t *testing.T) {
	t.Parallel()

	w := serve(NewHandler("1.0.0", 0, nil), "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), `"queue"`)
}

func TestReadinessCheck(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusOK, serve(NewHandler("1", 1, fakeSource{}), "/ready").Code)
	assert.Equal(t, http.StatusOK, serve(NewHandler("1", 1, nil), "/ready").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(NewHandler("1", 1, fakeSource{closed: true}), "/ready").Code)
}

func TestLivenessCheck(t *testing.T) {
	t.Parallel()

	w := serve(NewHandler("1", 1, nil), "/live")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"alive"}`, w.Body.String())
}
