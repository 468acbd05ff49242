package routes

import (
	"net/http"

	"github.com/semagraph/cognet/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

// GetHealthHandler reports degraded instead of failing when only the
// embeddings side is down, since the graph endpoints still work then.
func GetHealthHandler(c echo.Context) error {
	type healthResponse struct {
		Status     string `json:"status"`
		Database   string `json:"database"`
		Embeddings string `json:"embeddings,omitempty"`
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	if err := app.Edges.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, healthResponse{
			Status:   "unhealthy",
			Database: "unreachable",
		})
	}

	if err := app.Vectors.Ping(ctx); err != nil {
		return c.JSON(http.StatusOK, healthResponse{
			Status:     "degraded",
			Database:   "connected",
			Embeddings: "unreachable",
		})
	}

	return c.JSON(http.StatusOK, healthResponse{
		Status:   "healthy",
		Database: "connected",
	})
}
