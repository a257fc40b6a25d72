package handler

import (
	"net/http"

	"github.com/deppfellow/leadboard/internal/middleware"
	"github.com/deppfellow/leadboard/internal/model/developer"
	"github.com/deppfellow/leadboard/internal/server"
	"github.com/deppfellow/leadboard/internal/service"
	"github.com/labstack/echo/v4"
)

type DeveloperHandler struct {
	Handler
	developerService *service.DeveloperService
}

func NewDeveloperHandler(s *server.Server, developerService *service.DeveloperService) *DeveloperHandler {
	return &DeveloperHandler{
		Handler:          NewHandler(s),
		developerService: developerService,
	}
}

func (h *DeveloperHandler) ListDevelopers() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, _ *developer.GetDevelopersPayload) ([]developer.Response, error) {
		return h.developerService.ListDevelopers(c.Request().Context(), middleware.GetUserID(c))
	}, http.StatusOK)
}

func (h *DeveloperHandler) CreateDeveloper() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, payload *developer.CreateDeveloperPayload) (*developer.Response, error) {
		return h.developerService.CreateDeveloper(c.Request().Context(), middleware.GetUserID(c), payload)
	}, http.StatusCreated)
}

func (h *DeveloperHandler) DeleteDeveloper() echo.HandlerFunc {
	return HandleNoContent(h.Handler, func(c echo.Context, payload *developer.DeleteDeveloperPayload) error {
		return h.developerService.DeleteDeveloper(c.Request().Context(), middleware.GetUserID(c), payload.ID)
	}, http.StatusNoContent)
}
