// Package pool narrows pgx connection pools to the small interface
// the rest of this project needs.
//
// Types here are subsets of their pgx counterparts. Code taking these
// interfaces can be tested against fakes and proxies, not only against
// a live PostgreSQL. When a method of pgx is missing, declare it on the
// matching interface and forward it in the adapters below.
package pool

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Begin starts a SQL transaction.
type Begin interface {
	Begin(ctx context.Context) (Tx, error)
}

// BeginTx starts a SQL transaction with pgx options.
type BeginTx interface {
	Begin
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (Tx, error)
}

// Queryer sends SQL statements. Both connections and transactions
// satisfy it, so query code does not need to care which one it got.
type Queryer interface {
	// Exec sends a statement having no result rows.
	Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error)

	// Query sends a statement and returns its result rows.
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)

	// QueryRow sends a statement expected to have one result row.
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Tx is a subset of pgx.Tx.
//
// pgx.Tx itself does not satisfy Tx since Go interfaces are not
// covariant over method results. Obtain a Tx via Begin on a Pool or
// Conn from this package.
type Tx interface {
	Queryer
	Begin

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Conn is a subset of *pgxpool.Conn.
type Conn interface {
	BeginTx
	Queryer

	Release()
	Ping(ctx context.Context) error
}

// Pool is a subset of *pgxpool.Pool. Wrap adapts a *pgxpool.Pool into it.
type Pool interface {
	BeginTx

	Acquire(ctx context.Context) (Conn, error)

	Config() *pgxpool.Config
	Ping(ctx context.Context) error
}

// Wrap adapts a raw pgx pool into a Pool.
func Wrap(p *pgxpool.Pool) Pool {
	return &poolAdapter{base: p}
}

type txAdapter struct {
	base pgx.Tx
}

var _ Tx = &txAdapter{}

func (t *txAdapter) Begin(ctx context.Context) (Tx, error) {
	inner, err := t.base.Begin(ctx)
	if inner == nil {
		return nil, err
	}
	return &txAdapter{base: inner}, err
}

func (t *txAdapter) Commit(ctx context.Context) error {
	return t.base.Commit(ctx)
}

func (t *txAdapter) Rollback(ctx context.Context) error {
	return t.base.Rollback(ctx)
}

func (t *txAdapter) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return t.base.Exec(ctx, sql, arguments...)
}

func (t *txAdapter) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.base.Query(ctx, sql, args...)
}

func (t *txAdapter) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.base.QueryRow(ctx, sql, args...)
}

type connAdapter struct {
	base *pgxpool.Conn
}

var _ Conn = &connAdapter{}

func (c *connAdapter) Begin(ctx context.Context) (Tx, error) {
	inner, err := c.base.Begin(ctx)
	if inner == nil {
		return nil, err
	}
	return &txAdapter{base: inner}, err
}

func (c *connAdapter) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (Tx, error) {
	inner, err := c.base.BeginTx(ctx, txOptions)
	if inner == nil {
		return nil, err
	}
	return &txAdapter{base: inner}, err
}

func (c *connAdapter) Release() {
	c.base.Release()
}

func (c *connAdapter) Ping(ctx context.Context) error {
	return c.base.Ping(ctx)
}

func (c *connAdapter) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return c.base.Exec(ctx, sql, arguments...)
}

func (c *connAdapter) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return c.base.Query(ctx, sql, args...)
}

func (c *connAdapter) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return c.base.QueryRow(ctx, sql, args...)
}

type poolAdapter struct {
	base *pgxpool.Pool
}

var _ Pool = &poolAdapter{}

func (p *poolAdapter) Begin(ctx context.Context) (Tx, error) {
	inner, err := p.base.Begin(ctx)
	if inner == nil {
		return nil, err
	}
	return &txAdapter{base: inner}, err
}

func (p *poolAdapter) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (Tx, error) {
	inner, err := p.base.BeginTx(ctx, txOptions)
	if inner == nil {
		return nil, err
	}
	return &txAdapter{base: inner}, err
}

func (p *poolAdapter) Acquire(ctx context.Context) (Conn, error) {
	inner, err := p.base.Acquire(ctx)
	if inner == nil {
		return nil, err
	}
	return &connAdapter{base: inner}, err
}

func (p *poolAdapter) Config() *pgxpool.Config {
	return p.base.Config()
}

func (p *poolAdapter) Ping(ctx context.Context) error {
	return p.base.Ping(ctx)
}
