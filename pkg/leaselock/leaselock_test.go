package leaselock

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeRow struct {
	key string
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) > 0 {
		if p, ok := dest[0].(*string); ok {
			*p = r.key
		}
	}
	return nil
}

// fakeDB mimics the lease table semantics: an upsert succeeds when the
// row is free or already ours, renew and delete require ownership.
type fakeDB struct {
	mu        sync.Mutex
	holder    string
	attempts  int
	freeAfter int
}

func (db *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	db.mu.Lock()
	defer db.mu.Unlock()
	switch {
	case strings.Contains(sql, "INSERT INTO graph_leases"):
		db.attempts++
		holder := args[1].(string)
		if db.freeAfter > 0 && db.attempts > db.freeAfter {
			db.holder = ""
			db.freeAfter = 0
		}
		if db.holder == "" || db.holder == holder {
			db.holder = holder
			return fakeRow{key: args[0].(string)}
		}
		return fakeRow{err: pgx.ErrNoRows}
	case strings.Contains(sql, "UPDATE graph_leases"):
		if db.holder == args[1].(string) {
			return fakeRow{key: args[0].(string)}
		}
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{err: errors.New("unexpected query")}
}

func (db *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if !strings.Contains(sql, "DELETE FROM graph_leases") {
		return pgconn.CommandTag{}, errors.New("unexpected exec")
	}
	if db.holder == args[1].(string) {
		db.holder = ""
	}
	return pgconn.CommandTag{}, nil
}

func (db *fakeDB) currentHolder() string {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.holder
}

func TestAcquire_EmptyKey(t *testing.T) {
	c := &Client{db: &fakeDB{}}

	if _, err := c.Acquire(context.Background(), "", Options{}); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestAcquire_BusyWithoutWait(t *testing.T) {
	c := &Client{db: &fakeDB{holder: "someone-else"}}

	_, err := c.Acquire(context.Background(), "reindex", Options{})
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
}

func TestAcquire_WaitsUntilFree(t *testing.T) {
	db := &fakeDB{holder: "someone-else", freeAfter: 2}
	c := &Client{db: db}

	lease, err := c.Acquire(context.Background(), "reindex", Options{
		Wait:         true,
		WaitInterval: time.Millisecond,
		HolderPrefix: "reindex-",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer func() {
		_ = lease.Release(context.Background())
	}()

	if !strings.HasPrefix(lease.Holder, "reindex-") {
		t.Fatalf("expected holder prefix reindex-, got %q", lease.Holder)
	}
	if db.currentHolder() != lease.Holder {
		t.Fatalf("expected lease row held by %q, got %q", lease.Holder, db.currentHolder())
	}
}

func TestRelease_FreesTheRow(t *testing.T) {
	db := &fakeDB{}
	c := &Client{db: db}

	lease, err := c.Acquire(context.Background(), "reindex", Options{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := lease.Release(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if db.currentHolder() != "" {
		t.Fatalf("expected row freed, still held by %q", db.currentHolder())
	}

	// Release is idempotent.
	if err := lease.Release(context.Background()); err != nil {
		t.Fatalf("expected no error on second release, got %v", err)
	}
}

func TestWithLease_RunsAndReleases(t *testing.T) {
	db := &fakeDB{}
	c := &Client{db: db}

	ran := false
	err := c.WithLease(context.Background(), "reindex", Options{}, func(ctx context.Context) error {
		ran = true
		if ctx.Err() != nil {
			t.Fatalf("expected live lease context, got %v", ctx.Err())
		}
		if db.currentHolder() == "" {
			t.Fatal("expected lease held while fn runs")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !ran {
		t.Fatal("expected fn to run")
	}
	if db.currentHolder() != "" {
		t.Fatalf("expected row freed, still held by %q", db.currentHolder())
	}
}

func TestWithLease_PropagatesFnError(t *testing.T) {
	c := &Client{db: &fakeDB{}}

	wantErr := errors.New("rebuild failed")
	err := c.WithLease(context.Background(), "reindex", Options{}, func(context.Context) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}
