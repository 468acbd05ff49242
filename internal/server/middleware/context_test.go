package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestAppContextMiddleware(t *testing.T) {
	app := &App{}
	e := echo.New()
	e.Use(AppContextMiddleware(app))
	e.GET("/probe", func(c echo.Context) error {
		cc, ok := c.(*AppContext)
		if !ok {
			t.Fatal("expected an AppContext")
		}
		if cc.App != app {
			t.Error("expected the shared App to be attached")
		}
		return c.NoContent(http.StatusOK)
	})

	t.Run("generates a request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if rec.Header().Get(echo.HeaderXRequestID) == "" {
			t.Error("expected a generated request id")
		}
	})

	t.Run("reuses the caller's request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(echo.HeaderXRequestID, "caller-id-42")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if got := rec.Header().Get(echo.HeaderXRequestID); got != "caller-id-42" {
			t.Errorf("expected caller-id-42, got %q", got)
		}
	})
}
