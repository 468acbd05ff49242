package routes

import (
	"net/http"
	"strings"

	"github.com/semagraph/cognet/internal/server/middleware"
	"github.com/semagraph/cognet/pkg/apperror"
	"github.com/semagraph/cognet/pkg/graph"
	"github.com/semagraph/cognet/pkg/query"
	"github.com/semagraph/cognet/pkg/uri"

	"github.com/labstack/echo/v4"
)

// GetAssertionHandler looks up every edge backing one assertion triple. The
// path argument is the bracketed form "[/r/IsA/,/c/en/dog/,/c/en/mammal/]":
// relation first, then start and end, each with a trailing slash.
func GetAssertionHandler(c echo.Context) error {
	type assertionResponse struct {
		Assertion string       `json:"assertion"`
		Edges     []graph.Edge `json:"edges"`
		Count     int          `json:"count"`
	}

	raw := strings.TrimSpace(c.Param("*"))
	rel, start, end, err := parseAssertion(raw)
	if err != nil {
		return err
	}

	app := c.(*middleware.AppContext).App
	ctx := c.Request().Context()

	edges, _, err := app.Query.Edges(ctx, query.Filter{Rel: rel, Start: start, End: end}, query.Page{})
	if err != nil {
		return err
	}
	app.Metrics.ObserveEdges(len(edges))

	assertion := "/a/[" + rel + "/," + start + "/," + end + "/]"
	if len(edges) == 0 {
		return apperror.NotFoundf("assertion %q not found", assertion)
	}

	return c.JSON(http.StatusOK, assertionResponse{
		Assertion: assertion,
		Edges:     edges,
		Count:     len(edges),
	})
}

// parseAssertion splits a bracketed assertion path into its canonical
// relation, start, and end URIs.
func parseAssertion(raw string) (rel, start, end string, err error) {
	if !strings.HasPrefix(raw, "[") || !strings.HasSuffix(raw, "]") {
		return "", "", "", apperror.InvalidURI("/a/" + raw)
	}
	parts := strings.Split(raw[1:len(raw)-1], ",")
	if len(parts) != 3 {
		return "", "", "", apperror.InvalidURI("/a/" + raw)
	}
	for i, part := range parts {
		parts[i] = strings.TrimSuffix(strings.TrimSpace(part), "/")
	}

	rel, err = uri.NormalizeRelation(parts[0])
	if err != nil {
		return "", "", "", err
	}
	start, err = uri.NormalizeConcept(parts[1], "")
	if err != nil {
		return "", "", "", err
	}
	end, err = uri.NormalizeConcept(parts[2], "")
	if err != nil {
		return "", "", "", err
	}
	return rel, start, end, nil
}
