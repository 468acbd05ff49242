package routes

import (
	"net/http"

	"github.com/semagraph/cognet/internal/server/middleware"
	"github.com/semagraph/cognet/pkg/apperror"
	"github.com/semagraph/cognet/pkg/graph"
	"github.com/semagraph/cognet/pkg/query"

	"github.com/labstack/echo/v4"
)

func GetDatasetHandler(c echo.Context) error {
	type datasetParams struct {
		Dataset string `param:"*" validate:"required"`
		Limit   int    `query:"limit"`
		Offset  int    `query:"offset"`
	}

	type datasetResponse struct {
		Dataset string       `json:"dataset"`
		Edges   []graph.Edge `json:"edges"`
		Count   int          `json:"count"`
		Limit   int          `json:"limit"`
		Offset  int          `json:"offset"`
	}

	params := new(datasetParams)
	if err := c.Bind(params); err != nil {
		return apperror.Validation("invalid request parameters")
	}
	if err := c.Validate(params); err != nil {
		return apperror.Validation("invalid request parameters")
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	filter, err := query.Filter{Dataset: "/d/" + params.Dataset}.Normalize()
	if err != nil {
		return err
	}

	edges, page, err := app.Query.Edges(ctx, filter, query.Page{
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		return err
	}
	app.Metrics.ObserveEdges(len(edges))

	return c.JSON(http.StatusOK, datasetResponse{
		Dataset: filter.Dataset,
		Edges:   edges,
		Count:   len(edges),
		Limit:   page.Limit,
		Offset:  page.Offset,
	})
}
