package v1

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/media-relay/internal/core/domain"
	"github.com/nulzo/media-relay/internal/core/services"
)

type ResolveHandler struct {
	resolver *services.Resolver
}

func NewResolveHandler(resolver *services.Resolver) *ResolveHandler {
	return &ResolveHandler{resolver: resolver}
}

// Resolve handles every path not claimed by a static endpoint.
//
// GET /{routeKey}?{params...}
func (h *ResolveHandler) Resolve(c *gin.Context) {
	if c.Request.Method != http.MethodGet {
		problem := domain.NotFoundError("no such endpoint")
		c.JSON(problem.Status, problem)
		return
	}

	key := strings.Trim(c.Request.URL.Path, "/")

	// An issued upstream call runs to its own timeout even if the client
	// disconnects, so the resolver gets a fresh context rather than the
	// request's.
	resolution := h.resolver.Resolve(
		context.Background(),
		key,
		c.Request.URL.Query(),
		c.Request.URL.RawQuery,
	)

	switch resolution.Kind {
	case services.KindRedirect:
		c.Redirect(http.StatusFound, resolution.Location)
	case services.KindBody:
		c.Data(resolution.Status, resolution.ContentType, resolution.Body)
	case services.KindProblem:
		_ = c.Error(resolution.Problem)
	default:
		// the engine declined: the key is reserved or unknown
		problem := domain.NotFoundError("no route configured for this path")
		c.JSON(problem.Status, problem)
	}
}
