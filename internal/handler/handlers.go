// Package handler is the HTTP layer. Handlers bind and validate requests,
// read the authenticated user from the echo context and call the service
// layer.
package handler

import (
	"github.com/deppfellow/leadboard/internal/server"
	"github.com/deppfellow/leadboard/internal/service"
)

type Handlers struct {
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
	Lead       *LeadHandler
	Developer  *DeveloperHandler
	Assignment *AssignmentHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(s),
		OpenAPI:    NewOpenAPIHandler(s),
		Lead:       NewLeadHandler(s, services.Lead),
		Developer:  NewDeveloperHandler(s, services.Developer),
		Assignment: NewAssignmentHandler(s, services.Assignment),
	}
}
