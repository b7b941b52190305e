package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkHealth(t *testing.T, deps map[string]Pinger) map[string]interface{} {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	NewHandler(deps).RegisterRoutes(r.Group("/api"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthAllUp(t *testing.T) {
	up := PingFunc(func(context.Context) error { return nil })
	body := checkHealth(t, map[string]Pinger{"mongo": up, "postgres": up, "redis": up})

	assert.Equal(t, "ok", body["status"])
	deps := body["dependencies"].(map[string]interface{})
	assert.Equal(t, "ok", deps["mongo"])
	assert.Equal(t, "ok", deps["postgres"])
	assert.Equal(t, "ok", deps["redis"])
}

func TestHealthDegraded(t *testing.T) {
	up := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("refused") })
	body := checkHealth(t, map[string]Pinger{"mongo": up, "postgres": down})

	assert.Equal(t, "degraded", body["status"])
	deps := body["dependencies"].(map[string]interface{})
	assert.Equal(t, "ok", deps["mongo"])
	assert.Equal(t, "down", deps["postgres"])
}
