package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/media-relay/internal/core/domain"
	"github.com/nulzo/media-relay/internal/core/services"
	"github.com/nulzo/media-relay/internal/httpclient"
	"github.com/nulzo/media-relay/internal/server/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newResolveRouter(t *testing.T, table *domain.RouteTable) *gin.Engine {
	t.Helper()

	cs := services.NewConfigStore(zap.NewNop())
	if table != nil {
		_, err := cs.Replace(context.Background(), table)
		require.NoError(t, err)
	}

	resolver := services.NewResolver(cs, services.NewExtractor(services.DefaultSearchOrder()), httpclient.New(0), zap.NewNop())

	router := gin.New()
	router.Use(middleware.ErrorHandler(zap.NewNop()))
	router.NoRoute(NewResolveHandler(resolver).Resolve)
	return router
}

func TestResolveEndpoint_Redirects(t *testing.T) {
	router := newResolveRouter(t, &domain.RouteTable{Routes: map[string]domain.RouteDefinition{
		"cat": {BaseURL: "https://cat.example/api", ResolutionMode: domain.ModeRedirect},
	}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cat", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://cat.example/api", w.Header().Get("Location"))
}

func TestResolveEndpoint_UnknownKeyIs404(t *testing.T) {
	router := newResolveRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nothing-here", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no route configured")
}

func TestResolveEndpoint_ValidationFailureIsProblem(t *testing.T) {
	router := newResolveRouter(t, &domain.RouteTable{Routes: map[string]domain.RouteDefinition{
		"search": {
			BaseURL:         "https://api.example",
			ResolutionMode:  domain.ModeRedirect,
			ParameterSchema: []domain.ParameterSpec{{Name: "q", Required: true}},
		},
	}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing required parameter q")
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestResolveEndpoint_NonGetIs404(t *testing.T) {
	router := newResolveRouter(t, &domain.RouteTable{Routes: map[string]domain.RouteDefinition{
		"cat": {BaseURL: "https://cat.example/api", ResolutionMode: domain.ModeRedirect},
	}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cat", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResolveEndpoint_TrimsSurroundingSlashes(t *testing.T) {
	router := newResolveRouter(t, &domain.RouteTable{Routes: map[string]domain.RouteDefinition{
		"cat": {BaseURL: "https://cat.example/api", ResolutionMode: domain.ModeRedirect},
	}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cat/", nil))

	assert.Equal(t, http.StatusFound, w.Code)
}
