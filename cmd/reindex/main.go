package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/semagraph/cognet/internal/util"
	"github.com/semagraph/cognet/pkg/leaselock"
	"github.com/semagraph/cognet/pkg/logger"
	"github.com/semagraph/cognet/pkg/logger/console"
	pgxstore "github.com/semagraph/cognet/pkg/store/pgx"
)

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consoleLogger := console.New(console.Params{
		Level: util.GetEnv("LOG_LEVEL"),
		Debug: util.GetEnvBool("DEBUG", false),
	})
	logger.Init(consoleLogger)

	databaseURL := util.GetEnv("DATABASE_URL")
	if databaseURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	conn, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Fatal("Unable to connect to database", "err", err)
	}
	defer conn.Close()
	if err := conn.Ping(ctx); err != nil {
		logger.Fatal("Unable to reach database", "err", err)
	}

	batchSize := int64(util.GetEnvInt("REINDEX_BATCH_SIZE", pgxstore.DefaultReindexBatchSize))
	parallelism := util.GetEnvInt("REINDEX_PARALLELISM", pgxstore.DefaultReindexParallelism)
	waitForLease := util.GetEnvBool("REINDEX_WAIT", false)

	reindexer := pgxstore.NewReindexer(conn,
		pgxstore.WithBatchSize(batchSize),
		pgxstore.WithParallelism(parallelism),
	)

	locks := leaselock.New(conn)
	start := time.Now()

	var rows int64
	err = locks.WithLease(ctx, "reindex", leaselock.Options{
		TTL:          2 * time.Minute,
		Wait:         waitForLease,
		HolderPrefix: "reindex-",
	}, func(ctx context.Context) error {
		logger.Info("[Reindex] Rebuilding edge features",
			"batch_size", batchSize,
			"parallelism", parallelism,
		)
		n, err := reindexer.RebuildEdgeFeatures(ctx)
		rows = n
		return err
	})
	if err != nil {
		if errors.Is(err, leaselock.ErrBusy) {
			logger.Fatal("Another reindex is already running, pass REINDEX_WAIT=true to queue behind it")
		}
		logger.Fatal("Reindex failed", "err", err)
	}

	logger.Info("[Reindex] Edge features rebuilt",
		"rows", rows,
		"duration", time.Since(start).Round(time.Millisecond).String(),
	)
}
