package routes

import (
	"net/http"

	"github.com/semagraph/cognet/internal/server/middleware"
	"github.com/semagraph/cognet/pkg/graph"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

func GetStatsHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App

	var stats graph.Stats

	g, ctx := errgroup.WithContext(c.Request().Context())
	g.SetLimit(5)
	g.Go(func() error {
		var err error
		stats.Edges, err = app.Edges.CountEdges(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Nodes, err = app.Edges.CountNodes(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Relations, err = app.Edges.CountRelations(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Languages, err = app.Edges.CountLanguages(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats.Embeddings, err = app.Vectors.CountEmbeddings(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}
