package api

import "github.com/nulzo/media-relay/internal/core/domain"

// SaveConfigRequest is the admin payload that replaces the route table
// wholesale. A payload without a routes mapping is rejected.
type SaveConfigRequest struct {
	Routes  map[string]domain.RouteDefinition `json:"routes" binding:"required"`
	BaseTag string                            `json:"baseTag"`
}
