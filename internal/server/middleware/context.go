package middleware

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/semagraph/cognet/internal/metrics"
	"github.com/semagraph/cognet/pkg/graph"
	"github.com/semagraph/cognet/pkg/query"
	"github.com/semagraph/cognet/pkg/similarity"
	"github.com/semagraph/cognet/pkg/store"
)

// App bundles the shared dependencies handlers reach through the request
// context. Built once at startup; everything here is safe for concurrent
// use.
type App struct {
	DBConn     *pgxpool.Pool
	Edges      store.GraphStore
	Vectors    store.VectorStore
	Query      *query.Engine
	Similarity *similarity.Engine
	Catalog    *graph.Catalog
	Metrics    *metrics.Metrics
}

type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware wraps every request in an AppContext and tags the
// response with a request id, reusing the caller's X-Request-ID when one
// came in.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id, _ = gonanoid.New()
			}
			if id != "" {
				c.Response().Header().Set(echo.HeaderXRequestID, id)
			}

			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
