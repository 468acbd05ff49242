package routes

import (
	"net/http"

	"github.com/semagraph/cognet/internal/server/middleware"
	"github.com/semagraph/cognet/pkg/apperror"
	"github.com/semagraph/cognet/pkg/graph"
	"github.com/semagraph/cognet/pkg/uri"

	"github.com/labstack/echo/v4"
)

func GetRelatedHandler(c echo.Context) error {
	type relatedParams struct {
		Node  string `query:"node" validate:"required"`
		Limit int    `query:"limit"`
	}

	type relatedResponse struct {
		Node    string          `json:"node"`
		Related []graph.Related `json:"related"`
		Count   int             `json:"count"`
		Limit   int             `json:"limit"`
	}

	params := new(relatedParams)
	if err := c.Bind(params); err != nil {
		return apperror.Validation("invalid request parameters")
	}
	if err := c.Validate(params); err != nil {
		return apperror.Validation("invalid request parameters")
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	node, err := uri.NormalizeConcept(params.Node, "")
	if err != nil {
		return err
	}

	related, limit, err := app.Similarity.RelatedConcepts(ctx, node, params.Limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, relatedResponse{
		Node:    node,
		Related: related,
		Count:   len(related),
		Limit:   limit,
	})
}
