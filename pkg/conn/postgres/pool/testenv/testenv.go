package testenv

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"

	kpool "github.com/foodgram-dev/foodgram/pkg/conn/postgres/pool"
)

// EnvTestDatabase is the environment variable which holds the DSN of
// the database used in tests.
//
// Tests needing a database are skipped when it is not set.
const EnvTestDatabase = "FOODGRAM_TEST_DB"

// EnvTestBlankDatabase is the environment variable which holds the DSN
// of a database which tests may create and drop tables in freely.
//
// Used by tests exercising schema management.
// Tests needing it are skipped when it is not set.
const EnvTestBlankDatabase = "FOODGRAM_TEST_BLANK_DB"

// PoolBroaker hands out database pools to tests.
type PoolBroaker interface {
	// GetPool returns a pool.
	//
	// Tables are cleaned up before returning and after t.
	GetPool(ctx context.Context, t *testing.T) kpool.Pool
}

type pg struct {
	pool    *pgxpool.Pool
	noClean bool
}

func (p *pg) GetPool(ctx context.Context, t *testing.T) kpool.Pool {
	if !p.noClean {
		t.Cleanup(func() {
			t.Helper()
			ClearTables(ctx, p.pool, t)
		})
		ClearTables(ctx, p.pool, t)
	}
	return kpool.Wrap(p.pool)
}

type pgConnOptions struct {
	DoNotCleanup bool
}

type PgConnOption func(*pgConnOptions) *pgConnOptions

// WithDoNotCleanup leaves table contents alone.
// The caller owns whatever rows are in the database.
func WithDoNotCleanup() PgConnOption {
	return func(o *pgConnOptions) *pgConnOptions {
		o.DoNotCleanup = true
		return o
	}
}

// NewPoolBroaker returns a PoolBroaker for the database named by the
// environment variable FOODGRAM_TEST_DB. The schema is assumed to be
// installed already.
//
// When FOODGRAM_TEST_DB is not set, the calling test is skipped.
//
// # Args
//
// - ctx: When this context is canceled, the database connection behind
// the pool will be lost.
//
// - t: scope of the PoolBroaker.
// When this test is finished, the broaker will be shutdown.
func NewPoolBroaker(ctx context.Context, t *testing.T, options ...PgConnOption) PoolBroaker {
	t.Helper()

	opts := &pgConnOptions{}
	for _, o := range options {
		opts = o(opts)
	}

	pool := connect(ctx, t, EnvTestDatabase)
	return &pg{pool: pool, noClean: opts.DoNotCleanup}
}

// NewBlankPoolBroaker returns a PoolBroaker for the database named by
// the environment variable FOODGRAM_TEST_BLANK_DB.
//
// No tables are cleaned up. Callers own the content of the database.
//
// When FOODGRAM_TEST_BLANK_DB is not set, the calling test is skipped.
func NewBlankPoolBroaker(ctx context.Context, t *testing.T) PoolBroaker {
	t.Helper()

	pool := connect(ctx, t, EnvTestBlankDatabase)
	return &pg{pool: pool, noClean: true}
}

func connect(ctx context.Context, t *testing.T, envname string) *pgxpool.Pool {
	t.Helper()

	dsn, ok := os.LookupEnv(envname)
	if !ok || dsn == "" {
		t.Skipf("skipped: environment variable %s is not set", envname)
	}

	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// ClearTables truncates the root tables.
// Rows in the other tables go away by cascade.
func ClearTables(ctx context.Context, p *pgxpool.Pool, t *testing.T) {
	t.Helper()

	conn, err := p.Acquire(ctx)
	if err != nil {
		t.Fatalf("fail to clean-up tables.: %v", err)
	}
	defer conn.Release()

	for _, command := range []string{
		`truncate "users" RESTART IDENTITY cascade`,
		`truncate "ingredient" RESTART IDENTITY cascade`,
	} {
		if _, err := conn.Exec(ctx, command); err != nil {
			t.Errorf("fail to clean-up tables.: %v", err)
		}
	}
}
