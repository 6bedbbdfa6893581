package server

import (
	"github.com/rotodiag/bearingkg/internal/server/middleware"
	"github.com/rotodiag/bearingkg/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Extraction routes
	apiRoutes.POST("/documents", routes.ExtractDocumentsHandler)
	apiRoutes.POST("/urls", routes.ExtractURLHandler)

	// Supported upload formats
	apiRoutes.GET("/formats", func(c echo.Context) error {
		registry := c.(*middleware.AppContext).App.Registry
		return c.JSON(200, map[string][]string{
			"formats": registry.Extensions(),
		})
	})
}
