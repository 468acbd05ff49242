package routes

import (
	"net/http"

	"github.com/semagraph/cognet/internal/server/middleware"
	"github.com/semagraph/cognet/pkg/apperror"
	"github.com/semagraph/cognet/pkg/graph"
	"github.com/semagraph/cognet/pkg/query"

	"github.com/labstack/echo/v4"
)

func GetQueryHandler(c echo.Context) error {
	type queryParams struct {
		Start     string   `query:"start"`
		End       string   `query:"end"`
		Node      string   `query:"node"`
		Rel       string   `query:"rel"`
		Dataset   string   `query:"dataset"`
		MinWeight *float64 `query:"minWeight"`
		Limit     int      `query:"limit"`
		Offset    int      `query:"offset"`
	}

	type queryFilters struct {
		Start     string   `json:"start,omitempty"`
		End       string   `json:"end,omitempty"`
		Node      string   `json:"node,omitempty"`
		Rel       string   `json:"rel,omitempty"`
		Dataset   string   `json:"dataset,omitempty"`
		MinWeight *float64 `json:"minWeight,omitempty"`
	}

	type queryResponse struct {
		Edges   []graph.Edge `json:"edges"`
		Count   int          `json:"count"`
		Limit   int          `json:"limit"`
		Offset  int          `json:"offset"`
		Filters queryFilters `json:"filters"`
	}

	params := new(queryParams)
	if err := c.Bind(params); err != nil {
		return apperror.Validation("invalid request parameters")
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	filter, err := query.Filter{
		Start:     params.Start,
		End:       params.End,
		Node:      params.Node,
		Rel:       params.Rel,
		Dataset:   params.Dataset,
		MinWeight: params.MinWeight,
	}.Normalize()
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

	return c.JSON(http.StatusOK, queryResponse{
		Edges:  edges,
		Count:  len(edges),
		Limit:  page.Limit,
		Offset: page.Offset,
		Filters: queryFilters{
			Start:     filter.Start,
			End:       filter.End,
			Node:      filter.Node,
			Rel:       filter.Rel,
			Dataset:   filter.Dataset,
			MinWeight: filter.MinWeight,
		},
	})
}
