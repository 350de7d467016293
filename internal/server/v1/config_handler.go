package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/media-relay/internal/core/domain"
	"github.com/nulzo/media-relay/internal/core/services"
	"github.com/nulzo/media-relay/pkg/api"
)

type ConfigHandler struct {
	store *services.ConfigStore
}

func NewConfigHandler(store *services.ConfigStore) *ConfigHandler {
	return &ConfigHandler{store: store}
}

// Get returns the current route table.
//
// GET /config
func (h *ConfigHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Get())
}

// Save replaces the route table wholesale and reports the persistence
// outcome. The new table is live in memory even if every backend fails.
//
// POST /config
func (h *ConfigHandler) Save(c *gin.Context) {
	var payload api.SaveConfigRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		_ = c.Error(domain.BindingError(domain.ParseValidationError(err)))
		return
	}

	table := &domain.RouteTable{
		Routes:  payload.Routes,
		BaseTag: payload.BaseTag,
	}

	result, err := h.store.Replace(c.Request.Context(), table)
	if err != nil {
		_ = c.Error(err)
		return
	}

	status := http.StatusOK
	if result.Durability == services.DurabilityFailed {
		// applied in memory, but nothing durable kept up
		status = http.StatusAccepted
	}

	c.JSON(status, result)
}
