package handler

import (
	"net/http"

	"github.com/deppfellow/leadboard/internal/middleware"
	"github.com/deppfellow/leadboard/internal/model/lead"
	"github.com/deppfellow/leadboard/internal/server"
	"github.com/deppfellow/leadboard/internal/service"
	"github.com/labstack/echo/v4"
)

type LeadHandler struct {
	Handler
	leadService *service.LeadService
}

func NewLeadHandler(s *server.Server, leadService *service.LeadService) *LeadHandler {
	return &LeadHandler{
		Handler:     NewHandler(s),
		leadService: leadService,
	}
}

func (h *LeadHandler) ListLeads() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *lead.GetLeadsPayload) ([]lead.Summary, error) {
		return h.leadService.ListLeads(c.Request().Context(), middleware.GetUserID(c))
	}, http.StatusOK)
}

func (h *LeadHandler) CreateLead() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, payload *lead.CreateLeadPayload) (*lead.Summary, error) {
		return h.leadService.CreateLead(c.Request().Context(), middleware.GetUserID(c), payload)
	}, http.StatusCreated)
}

func (h *LeadHandler) GetLead() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, payload *lead.GetLeadByIDPayload) (*lead.Detail, error) {
		return h.leadService.GetLead(c.Request().Context(), middleware.GetUserID(c), payload.ID)
	}, http.StatusOK)
}

func (h *LeadHandler) UpdateLead() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, payload *lead.UpdateLeadPayload) (*lead.Detail, error) {
		return h.leadService.UpdateLead(c.Request().Context(), middleware.GetUserID(c), payload)
	}, http.StatusOK)
}

func (h *LeadHandler) DeleteLead() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, payload *lead.DeleteLeadPayload) error {
		return h.leadService.DeleteLead(c.Request().Context(), middleware.GetUserID(c), payload.ID)
	}, http.StatusNoContent)
}
