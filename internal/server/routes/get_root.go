package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const apiVersion = "5.7"

func GetRootHandler(c echo.Context) error {
	type rootResponse struct {
		Name          string   `json:"name"`
		Version       string   `json:"version"`
		Description   string   `json:"description"`
		Endpoints     []string `json:"endpoints"`
		Documentation string   `json:"documentation"`
	}

	return c.JSON(http.StatusOK, rootResponse{
		Name:        "cognet",
		Version:     apiVersion,
		Description: "knowledge graph query and concept similarity API",
		Endpoints: []string{
			"/health",
			"/stats",
			"/metrics",
			"/query",
			"/relations",
			"/relatedness",
			"/related",
			"/uri",
			"/c/{language}/{term}",
			"/r/{name}",
			"/a/{assertion}",
			"/d/{dataset}",
		},
		Documentation: "https://github.com/semagraph/cognet",
	})
}
