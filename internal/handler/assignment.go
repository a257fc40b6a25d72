package handler

import (
	"net/http"

	"github.com/deppfellow/leadboard/internal/middleware"
	"github.com/deppfellow/leadboard/internal/model/lead"
	"github.com/deppfellow/leadboard/internal/server"
	"github.com/deppfellow/leadboard/internal/service"
	"github.com/labstack/echo/v4"
)

// AssignmentHandler serves /leads/:id/developers.
type AssignmentHandler struct {
	Handler
	assignmentService *service.AssignmentService
}

func NewAssignmentHandler(s *server.Server, assignmentService *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		Handler:           NewHandler(s),
		assignmentService: assignmentService,
	}
}

func (h *AssignmentHandler) ListAssignments() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, payload *lead.GetAssignmentsPayload) (*lead.Assignments, error) {
		return h.assignmentService.ListAssignments(c.Request().Context(), middleware.GetUserID(c), payload.LeadID)
	}, http.StatusOK)
}

func (h *AssignmentHandler) AddDeveloper() echo.HandlerFunc {
	return HandleMessage(h.Handler, func(c echo.Context, payload *lead.AssignmentPayload) (string, error) {
		return h.assignmentService.AddDeveloper(c.Request().Context(), middleware.GetUserID(c), payload)
	}, http.StatusOK)
}

func (h *AssignmentHandler) RemoveDeveloper() echo.HandlerFunc {
	return HandleMessage(h.Handler, func(c echo.Context, payload *lead.AssignmentPayload) (string, error) {
		return h.assignmentService.RemoveDeveloper(c.Request().Context(), middleware.GetUserID(c), payload)
	}, http.StatusOK)
}
