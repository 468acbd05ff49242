package routes

import (
	"net/http"

	"github.com/semagraph/cognet/pkg/apperror"
	"github.com/semagraph/cognet/pkg/uri"

	"github.com/labstack/echo/v4"
)

func GetURIHandler(c echo.Context) error {
	type uriParams struct {
		Text     string `query:"text" validate:"required"`
		Language string `query:"language"`
	}

	type uriResponse struct {
		URI      string `json:"uri"`
		Text     string `json:"text"`
		Language string `json:"language"`
	}

	params := new(uriParams)
	if err := c.Bind(params); err != nil {
		return apperror.Validation("invalid request parameters")
	}
	if err := c.Validate(params); err != nil {
		return apperror.Validation("invalid request parameters")
	}

	normalized, err := uri.NormalizeConcept(params.Text, params.Language)
	if err != nil {
		return err
	}

	language := uri.Language(normalized)
	if language == "" {
		language = params.Language
	}
	if language == "" {
		language = uri.DefaultLanguage
	}

	return c.JSON(http.StatusOK, uriResponse{
		URI:      normalized,
		Text:     params.Text,
		Language: language,
	})
}
