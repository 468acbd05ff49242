package pgx

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/semagraph/cognet/internal/util"
	"github.com/semagraph/cognet/pkg/logger"
	"github.com/semagraph/cognet/pkg/store"
)

const (
	// DefaultReindexBatchSize is the edge id window covered per insert.
	DefaultReindexBatchSize = 100_000
	// DefaultReindexParallelism bounds concurrent batch inserts.
	DefaultReindexParallelism = 4
)

// Reindexer rebuilds the edge_features derived index from edges and
// relations. The rebuild fills a staging table, indexes it, and swaps it in
// atomically, so readers always see either the old or the new index. Edges
// whose relation is missing from the catalog get no feature rows.
//
// Only one rebuild may run at a time; callers hold the reindex lease.
type Reindexer struct {
	pool        *pgxpool.Pool
	batchSize   int64
	parallelism int
}

// ReindexOption configures a Reindexer at construction.
type ReindexOption func(*Reindexer)

// WithBatchSize overrides DefaultReindexBatchSize.
func WithBatchSize(n int64) ReindexOption {
	return func(r *Reindexer) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// WithParallelism overrides DefaultReindexParallelism.
func WithParallelism(n int) ReindexOption {
	return func(r *Reindexer) {
		if n > 0 {
			r.parallelism = n
		}
	}
}

// NewReindexer creates a Reindexer on an existing pool.
func NewReindexer(pool *pgxpool.Pool, opts ...ReindexOption) *Reindexer {
	r := &Reindexer{
		pool:        pool,
		batchSize:   DefaultReindexBatchSize,
		parallelism: DefaultReindexParallelism,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// RebuildEdgeFeatures regenerates every feature row and swaps the new table
// in. Returns the number of feature rows written.
func (r *Reindexer) RebuildEdgeFeatures(ctx context.Context) (int64, error) {
	var maxID int64
	if err := r.pool.QueryRow(ctx, maxEdgeIDSQL).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("read max edge id: %w", err)
	}

	if _, err := r.pool.Exec(ctx, dropStagingSQL); err != nil {
		return 0, fmt.Errorf("drop staging table: %w", err)
	}
	if _, err := r.pool.Exec(ctx, createStagingSQL); err != nil {
		return 0, fmt.Errorf("create staging table: %w", err)
	}

	progress := util.NewProgress(maxID)
	var rows atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)
	_ = store.ChunkRange(int(maxID), int(r.batchSize), func(start, end int) error {
		lo, hi := int64(start), int64(end)
		g.Go(func() error {
			tag, err := r.pool.Exec(gctx, insertFeaturesSQL, lo, hi)
			if err != nil {
				return fmt.Errorf("feature batch (%d,%d]: %w", lo, hi, err)
			}
			rows.Add(tag.RowsAffected())
			progress.Add(hi - lo)
			logger.Debug("[Reindex] Feature batch written",
				"progress", progress.String(),
				"rows", rows.Load(),
			)
			return nil
		})
		return nil
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if _, err := r.pool.Exec(ctx, createStagingIndexSQL); err != nil {
		return 0, fmt.Errorf("index staging table: %w", err)
	}

	if err := r.swapStaging(ctx); err != nil {
		return 0, err
	}

	if _, err := r.pool.Exec(ctx, analyzeFeaturesSQL); err != nil {
		return 0, fmt.Errorf("analyze edge_features: %w", err)
	}

	return rows.Load(), nil
}

// swapStaging replaces edge_features with the staged table in one
// transaction.
func (r *Reindexer) swapStaging(ctx context.Context) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin swap: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for _, sql := range []string{dropLiveSQL, renameStagingSQL, renameStagingIndexSQL} {
		if _, err := tx.Exec(ctx, sql); err != nil {
			return fmt.Errorf("swap staging table: %w", err)
		}
	}
	return tx.Commit(ctx)
}

const maxEdgeIDSQL = `SELECT COALESCE(MAX(id), 0) FROM edges`

const dropStagingSQL = `DROP TABLE IF EXISTS edge_features_new`

const createStagingSQL = `
CREATE TABLE edge_features_new (
	relation  text NOT NULL,
	direction smallint NOT NULL,
	node      text NOT NULL,
	edge_id   bigint NOT NULL
)`

// Direction 1 marks the start endpoint, -1 the end endpoint; symmetric
// relations carry 0 for both endpoints. Symmetric self-loops get a single
// row instead of two identical ones.
const insertFeaturesSQL = `
INSERT INTO edge_features_new (relation, direction, node, edge_id)
SELECT e.relation, CASE WHEN r.is_symmetric THEN 0 ELSE 1 END, e.start_node, e.id
FROM edges e
JOIN relations r ON r.uri = e.relation
WHERE e.id > $1 AND e.id <= $2
UNION ALL
SELECT e.relation, CASE WHEN r.is_symmetric THEN 0 ELSE -1 END, e.end_node, e.id
FROM edges e
JOIN relations r ON r.uri = e.relation
WHERE e.id > $1 AND e.id <= $2
  AND NOT (r.is_symmetric AND e.start_node = e.end_node)`

const createStagingIndexSQL = `
CREATE INDEX edge_features_new_node_relation_edge_id_idx
ON edge_features_new (node, relation, edge_id)`

const dropLiveSQL = `DROP TABLE IF EXISTS edge_features`

const renameStagingSQL = `ALTER TABLE edge_features_new RENAME TO edge_features`

const renameStagingIndexSQL = `
ALTER INDEX edge_features_new_node_relation_edge_id_idx
RENAME TO edge_features_node_relation_edge_id_idx`

const analyzeFeaturesSQL = `ANALYZE edge_features`
