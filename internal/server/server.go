package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/semagraph/cognet/internal/metrics"
	mid "github.com/semagraph/cognet/internal/server/middleware"
	"github.com/semagraph/cognet/internal/util"
	"github.com/semagraph/cognet/pkg/apperror"
	"github.com/semagraph/cognet/pkg/graph"
	"github.com/semagraph/cognet/pkg/logger"
	"github.com/semagraph/cognet/pkg/query"
	"github.com/semagraph/cognet/pkg/similarity"
	storepgx "github.com/semagraph/cognet/pkg/store/pgx"

	"github.com/go-playground/validator"
	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	pgxvec "github.com/pgvector/pgvector-go/pgx"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = HTTPErrorHandler

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	databaseURL := util.GetEnv("DATABASE_URL")
	if databaseURL == "" {
		logger.Fatal("[Server] DATABASE_URL is not set")
	}

	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		logger.Fatal("[Server] Failed to parse database config", "err", err)
	}
	poolCfg.MinConns = int32(util.GetEnvInt("DB_POOL_MIN", 2))
	poolCfg.MaxConns = int32(util.GetEnvInt("DB_POOL_MAX", 10))
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}

	conn, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Fatal("[Server] Failed to connect to database", "err", err)
	}
	defer conn.Close()

	// The database may still be starting; queries never retry but the
	// boot sequence does.
	if err := util.RetryErrWithDelay(ctx, 10, time.Second, func(ctx context.Context) error {
		return conn.Ping(ctx)
	}); err != nil {
		logger.Fatal("[Server] Database is not reachable", "err", err)
	}

	if err := runMigrations(databaseURL); err != nil {
		logger.Fatal("[Server] Failed to run migrations", "err", err)
	}

	acquireTimeout := time.Duration(util.GetEnvInt("DB_ACQUIRE_TIMEOUT_MS", 5000)) * time.Millisecond
	edges := storepgx.NewEdgeStore(conn, storepgx.WithAcquireTimeout(acquireTimeout))
	vectors := storepgx.NewEmbeddingStore(conn, storepgx.WithAcquireTimeout(acquireTimeout))

	relations, err := edges.Relations(ctx)
	if err != nil {
		logger.Fatal("[Server] Failed to load relation catalog", "err", err)
	}
	catalog := graph.NewCatalog(relations)
	logger.Info("[Server] Relation catalog loaded", "relations", catalog.Len())

	m := metrics.New()

	app := &mid.App{
		DBConn:     conn,
		Edges:      edges,
		Vectors:    vectors,
		Query:      query.New(edges),
		Similarity: similarity.New(vectors),
		Catalog:    catalog,
		Metrics:    m,
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(m.Middleware())
	e.Use(corsMiddleware())
	e.Use(requestLoggerMiddleware())
	e.Use(echomw.Recover())
	e.Use(echomw.BodyLimit("1M"))

	RegisterRoutes(e)

	go func() {
		host := util.GetEnvString("API_HOST", "0.0.0.0")
		port := util.GetEnvString("API_PORT", "8084")
		logger.Info("[Server] Starting server", "host", host, "port", port)
		if err := e.Start(host + ":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("[Server] Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("[Server] Failed to shutdown server", "err", err)
	}
}

// HTTPErrorHandler renders every failure as {"error": message} with the
// status from the apperror taxonomy. Unclassified errors become opaque
// 500s; the cause is logged, never sent.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := statusFor(err, http.StatusInternalServerError)
	message := apperror.PublicMessage(err)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(he.Code)
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error("[Server] Request error",
			"method", c.Request().Method,
			"uri", c.Request().RequestURI,
			"err", err,
		)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, map[string]string{"error": message})
}

func statusFor(err error, fallback int) int {
	if err == nil {
		return fallback
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return apperror.HTTPStatus(err)
}

func runMigrations(databaseURL string) error {
	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func corsMiddleware() echo.MiddlewareFunc {
	raw := util.GetEnv("CORS_ORIGINS")
	if raw == "" {
		return echomw.CORS()
	}

	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: origins})
}

func requestLoggerMiddleware() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			status := v.Status
			if v.Error != nil {
				status = statusFor(v.Error, status)
				logger.Warn("[Server] Request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", status,
					"latency", v.Latency,
					"request_id", v.RequestID,
					"err", v.Error,
				)
				return nil
			}
			logger.Debug("[Server] Request",
				"method", v.Method,
				"uri", v.URI,
				"status", status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			)
			return nil
		},
	})
}
