package routes

import (
	"net/http"

	"github.com/semagraph/cognet/internal/server/middleware"
	"github.com/semagraph/cognet/pkg/apperror"
	"github.com/semagraph/cognet/pkg/uri"

	"github.com/labstack/echo/v4"
)

func GetRelatednessHandler(c echo.Context) error {
	type relatednessParams struct {
		Node1 string `query:"node1" validate:"required"`
		Node2 string `query:"node2" validate:"required"`
	}

	type relatednessResponse struct {
		Node1      string  `json:"node1"`
		Node2      string  `json:"node2"`
		Similarity float64 `json:"similarity"`
	}

	params := new(relatednessParams)
	if err := c.Bind(params); err != nil {
		return apperror.Validation("invalid request parameters")
	}
	if err := c.Validate(params); err != nil {
		return apperror.Validation("invalid request parameters")
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	node1, err := uri.NormalizeConcept(params.Node1, "")
	if err != nil {
		return err
	}
	node2, err := uri.NormalizeConcept(params.Node2, "")
	if err != nil {
		return err
	}

	similarity, err := app.Similarity.Relatedness(ctx, node1, node2)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, relatednessResponse{
		Node1:      node1,
		Node2:      node2,
		Similarity: similarity,
	})
}
