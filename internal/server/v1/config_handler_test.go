package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/media-relay/internal/core/domain"
	"github.com/nulzo/media-relay/internal/core/services"
	"github.com/nulzo/media-relay/internal/server/middleware"
	"github.com/nulzo/media-relay/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	domain.InitValidator()
}

type brokenStore struct{}

func (brokenStore) Name() string { return "broken" }
func (brokenStore) ReadTable(ctx context.Context) (*domain.RouteTable, error) {
	return nil, store.ErrTableNotFound
}
func (brokenStore) WriteTable(ctx context.Context, table *domain.RouteTable) error {
	return errors.New("disk on fire")
}
func (brokenStore) Close() error { return nil }

func newConfigRouter(cs *services.ConfigStore) *gin.Engine {
	router := gin.New()
	router.Use(middleware.ErrorHandler(zap.NewNop()))

	handler := NewConfigHandler(cs)
	router.GET("/config", handler.Get)
	router.POST("/config", handler.Save)
	return router
}

func TestConfigSave_RejectsMissingRoutes(t *testing.T) {
	router := newConfigRouter(services.NewConfigStore(zap.NewNop()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/config", bytes.NewBufferString(`{"baseTag":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "routes")
}

func TestConfigSave_RejectsMalformedJSON(t *testing.T) {
	router := newConfigRouter(services.NewConfigStore(zap.NewNop()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/config", bytes.NewBufferString(`{"routes": [`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfigSave_ThenGetReflectsNewTable(t *testing.T) {
	router := newConfigRouter(services.NewConfigStore(zap.NewNop()))

	payload := `{"routes":{"cat":{"baseUrl":"https://cat.example","resolutionMode":"redirect"}},"baseTag":"cute"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/config", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/config", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var table domain.RouteTable
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &table))
	assert.Equal(t, "cute", table.BaseTag)
	assert.Contains(t, table.Routes, "cat")
	assert.Equal(t, "https://cat.example", table.Routes["cat"].BaseURL)
}

func TestConfigSave_PersistenceFailureIsAccepted(t *testing.T) {
	cs := services.NewConfigStore(zap.NewNop(), brokenStore{})
	router := newConfigRouter(cs)

	payload := `{"routes":{"cat":{"baseUrl":"https://cat.example","resolutionMode":"redirect"}}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/config", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	// applied in memory, nothing durable
	assert.Equal(t, http.StatusAccepted, w.Code)

	var result services.ReplaceResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, services.DurabilityFailed, result.Durability)

	// the table is still live
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/config", nil))
	assert.Contains(t, w.Body.String(), "cat.example")
}
