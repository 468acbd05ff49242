// Package pgx implements the storage contracts against PostgreSQL with the
// pgvector extension. Every operation acquires a pooled connection with a
// bounded wait; exhaustion surfaces as an unavailable error instead of
// queueing indefinitely.
package pgx

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/semagraph/cognet/pkg/apperror"
	"github.com/semagraph/cognet/pkg/store"
)

// DefaultAcquireTimeout bounds how long a request waits for a pooled
// connection before failing.
const DefaultAcquireTimeout = 5 * time.Second

var (
	_ store.GraphStore  = (*EdgeStore)(nil)
	_ store.VectorStore = (*EmbeddingStore)(nil)
)

type db struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
}

// Option configures a store at construction.
type Option func(*db)

// WithAcquireTimeout overrides DefaultAcquireTimeout.
func WithAcquireTimeout(d time.Duration) Option {
	return func(s *db) {
		if d > 0 {
			s.acquireTimeout = d
		}
	}
}

// EdgeStore is the PostgreSQL-backed graph store.
type EdgeStore struct {
	db
}

// NewEdgeStore creates an EdgeStore on an existing pool.
func NewEdgeStore(pool *pgxpool.Pool, opts ...Option) *EdgeStore {
	return &EdgeStore{db: newDB(pool, opts)}
}

// EmbeddingStore is the PostgreSQL-backed vector store.
type EmbeddingStore struct {
	db
}

// NewEmbeddingStore creates an EmbeddingStore on an existing pool.
func NewEmbeddingStore(pool *pgxpool.Pool, opts ...Option) *EmbeddingStore {
	return &EmbeddingStore{db: newDB(pool, opts)}
}

func newDB(pool *pgxpool.Pool, opts []Option) db {
	d := db{
		pool:           pool,
		acquireTimeout: DefaultAcquireTimeout,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&d)
	}
	return d
}

// acquire checks out a pooled connection, waiting at most acquireTimeout.
// The caller's context still governs the query that follows.
func (d *db) acquire(ctx context.Context) (*pgxpool.Conn, error) {
	acquireCtx, cancel := context.WithTimeout(ctx, d.acquireTimeout)
	defer cancel()

	conn, err := d.pool.Acquire(acquireCtx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperror.Unavailable("connection pool exhausted", err)
		}
		return nil, apperror.Unavailable("database unavailable", err)
	}
	return conn, nil
}

func (d *db) count(ctx context.Context, sql string, args ...any) (int64, error) {
	conn, err := d.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	var n int64
	if err := conn.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, apperror.Internal(err)
	}
	return n, nil
}
