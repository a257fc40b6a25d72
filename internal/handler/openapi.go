package handler

import (
	_ "embed"
	"net/http"

	"github.com/deppfellow/leadboard/internal/server"
	"github.com/labstack/echo/v4"
)

var (
	//go:embed docs/openapi.html
	openAPIUI []byte

	//go:embed docs/openapi.json
	openAPIDocument []byte
)

// OpenAPIHandler serves the API reference page and the OpenAPI document it
// renders.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(http.StatusOK, openAPIUI)
}

func (h *OpenAPIHandler) ServeOpenAPIDocument(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, openAPIDocument)
}
