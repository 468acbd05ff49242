package routes

import (
	"net/http"

	"github.com/semagraph/cognet/internal/server/middleware"
	"github.com/semagraph/cognet/pkg/apperror"
	"github.com/semagraph/cognet/pkg/graph"

	"github.com/labstack/echo/v4"
)

func GetRelationHandler(c echo.Context) error {
	type relationParams struct {
		Name string `param:"name" validate:"required"`
	}

	type relationResponse struct {
		Relation graph.Relation `json:"relation"`
		Edges    int64          `json:"edges"`
	}

	params := new(relationParams)
	if err := c.Bind(params); err != nil {
		return apperror.Validation("invalid request parameters")
	}
	if err := c.Validate(params); err != nil {
		return apperror.Validation("invalid request parameters")
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	relURI := "/r/" + params.Name
	relation, ok := app.Catalog.Get(relURI)
	if !ok {
		return apperror.NotFoundf("relation %q not found", relURI)
	}

	count, err := app.Edges.CountEdgesByRelation(ctx, relURI)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, relationResponse{
		Relation: relation,
		Edges:    count,
	})
}
