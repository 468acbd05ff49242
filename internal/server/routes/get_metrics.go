package routes

import (
	"github.com/semagraph/cognet/internal/server/middleware"

	"github.com/labstack/echo/v4"
)

func GetMetricsHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App

	app.Metrics.Handler().ServeHTTP(c.Response(), c.Request())
	return nil
}
