package router

import (
	"github.com/deppfellow/leadboard/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerLeadRoutes(g *echo.Group, h *handler.Handlers) {
	g.GET("", h.Lead.ListLeads())
	g.POST("", h.Lead.CreateLead())

	g.GET("/:id", h.Lead.GetLead())
	g.PATCH("/:id", h.Lead.UpdateLead())
	g.DELETE("/:id", h.Lead.DeleteLead())

	g.GET("/:id/developers", h.Assignment.ListAssignments())
	g.POST("/:id/developers", h.Assignment.AddDeveloper())
	g.DELETE("/:id/developers", h.Assignment.RemoveDeveloper())
}

func registerDeveloperRoutes(g *echo.Group, h *handler.Handlers) {
	g.GET("", h.Developer.ListDevelopers())
	g.POST("", h.Developer.CreateDeveloper())
	g.DELETE("/:id", h.Developer.DeleteDeveloper())
}
