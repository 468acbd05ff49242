package routes

import (
	"net/http"

	"github.com/semagraph/cognet/internal/server/middleware"
	"github.com/semagraph/cognet/pkg/graph"

	"github.com/labstack/echo/v4"
)

func GetRelationsHandler(c echo.Context) error {
	type relationsResponse struct {
		Relations []graph.Relation `json:"relations"`
		Count     int              `json:"count"`
	}

	app := c.(*middleware.AppContext).App

	relations := app.Catalog.All()

	return c.JSON(http.StatusOK, relationsResponse{
		Relations: relations,
		Count:     len(relations),
	})
}
