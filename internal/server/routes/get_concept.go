package routes

import (
	"net/http"

	"github.com/semagraph/cognet/internal/server/middleware"
	"github.com/semagraph/cognet/pkg/apperror"
	"github.com/semagraph/cognet/pkg/graph"
	"github.com/semagraph/cognet/pkg/query"
	"github.com/semagraph/cognet/pkg/uri"

	"github.com/labstack/echo/v4"
)

func GetConceptHandler(c echo.Context) error {
	type conceptParams struct {
		Language string `param:"language" validate:"required"`
		Term     string `param:"*" validate:"required"`
		Rel      string `query:"rel"`
		Limit    int    `query:"limit"`
		Offset   int    `query:"offset"`
	}

	type conceptResponse struct {
		Concept string       `json:"concept"`
		Edges   []graph.Edge `json:"edges"`
		Count   int          `json:"count"`
		Limit   int          `json:"limit"`
		Offset  int          `json:"offset"`
	}

	params := new(conceptParams)
	if err := c.Bind(params); err != nil {
		return apperror.Validation("invalid request parameters")
	}
	if err := c.Validate(params); err != nil {
		return apperror.Validation("invalid request parameters")
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	concept, err := uri.NormalizeConcept("/c/"+params.Language+"/"+params.Term, "")
	if err != nil {
		return err
	}

	edges, page, err := app.Query.ConceptEdges(ctx, concept, params.Rel, query.Page{
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		return err
	}
	app.Metrics.ObserveEdges(len(edges))

	return c.JSON(http.StatusOK, conceptResponse{
		Concept: concept,
		Edges:   edges,
		Count:   len(edges),
		Limit:   page.Limit,
		Offset:  page.Offset,
	})
}
