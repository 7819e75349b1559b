package server

import (
	"github.com/OFFIS-RIT/chatlens/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Synchronous analysis
	apiRoutes.POST("/analyze", routes.AnalyzeHandler)

	// Job routes
	apiRoutes.POST("/jobs", routes.CreateJobHandler)
	apiRoutes.GET("/jobs/:id", routes.GetJobHandler)
	apiRoutes.DELETE("/jobs/:id", routes.DeleteJobHandler)
}
