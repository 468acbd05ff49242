package server

import (
	"github.com/semagraph/cognet/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Service routes
	e.GET("/", routes.GetRootHandler)
	e.GET("/health", routes.GetHealthHandler)
	e.GET("/stats", routes.GetStatsHandler)
	e.GET("/metrics", routes.GetMetricsHandler)

	// Query routes
	e.GET("/query", routes.GetQueryHandler)
	e.GET("/relations", routes.GetRelationsHandler)
	e.GET("/uri", routes.GetURIHandler)

	// Similarity routes
	e.GET("/relatedness", routes.GetRelatednessHandler)
	e.GET("/related", routes.GetRelatedHandler)

	// URI hierarchy routes
	e.GET("/c/:language/*", routes.GetConceptHandler)
	e.GET("/r/:name", routes.GetRelationHandler)
	e.GET("/a/*", routes.GetAssertionHandler)
	e.GET("/d/*", routes.GetDatasetHandler)
}
