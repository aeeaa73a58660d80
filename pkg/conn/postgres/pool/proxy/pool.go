// Package proxy wraps a pool so tests can watch the SQL activity
// going through it.
//
// Four events are observable:
//
//   - query: Exec, Query and QueryRow send a statement
//   - commit: Commit sends `COMMIT;`
//   - rollback: Rollback sends `ROLLBACK;`
//   - exitTx: the transaction ends, by commit or by rollback
//
// Callbacks registered with Before (or After) on an event run before
// (or after) it. On commit, the order is: before exitTx, before commit,
// after commit, after exitTx. Likewise for rollback.
//
// Callbacks registered on a Pool are inherited by every Conn and Tx
// derived from it, so registering once is enough to observe the whole
// pool.
package proxy

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	kpool "github.com/foodgram-dev/foodgram/pkg/conn/postgres/pool"
)

// Callback is invoked around an observed SQL event.
type Callback func()

// hook is a registration point for callbacks around one event.
//
// A hook may link to an outer hook. Before-callbacks of the outer hook
// run first, after-callbacks of it run last.
type hook struct {
	before []Callback
	after  []Callback
	outer  *hook
}

// Before registers callbacks to run ahead of the event.
func (h *hook) Before(cb ...Callback) *hook {
	h.before = append(h.before, cb...)
	return h
}

// After registers callbacks to run following the event.
func (h *hook) After(cb ...Callback) *hook {
	h.after = append(h.after, cb...)
	return h
}

func (h *hook) invoke(f func()) {
	h.fireBefore()
	defer h.fireAfter()
	f()
}

func (h *hook) fireBefore() {
	if h == nil {
		return
	}
	for _, cb := range h.before {
		cb()
	}
	h.outer.fireBefore()
}

func (h *hook) fireAfter() {
	if h == nil {
		return
	}
	h.outer.fireAfter()
	for _, cb := range h.after {
		cb()
	}
}

// SQLEvents is the set of hooks of one proxied pool.
type SQLEvents struct {
	Query    *hook
	Commit   *hook
	Rollback *hook
	ExitTx   *hook
}

func (ev *SQLEvents) Events() *SQLEvents {
	return ev
}

// NewSQLEvents returns an empty set of hooks.
//
// Commit and Rollback are nested in ExitTx, so exitTx callbacks fire
// whenever a transaction ends.
func NewSQLEvents() *SQLEvents {
	exitTx := new(hook)

	return &SQLEvents{
		Query:    new(hook),
		Commit:   &hook{outer: exitTx},
		Rollback: &hook{outer: exitTx},
		ExitTx:   exitTx,
	}
}

type eventHolder interface {
	Events() *SQLEvents
}

// Wrap proxies a pool with a fresh set of hooks.
func Wrap(p kpool.Pool) *Pool {
	return &Pool{Base: p, events: NewSQLEvents()}
}

// WrapTx proxies a transaction, sharing the hooks of ev.
func WrapTx(tx kpool.Tx, ev eventHolder) *Tx {
	if tx == nil {
		return nil
	}
	return &Tx{Base: tx, events: ev.Events()}
}

// WrapConn proxies a connection, sharing the hooks of ev.
func WrapConn(conn kpool.Conn, ev eventHolder) *ConnProxy {
	if conn == nil {
		return nil
	}
	return &ConnProxy{Base: conn, events: ev.Events()}
}

// Pool proxies a kpool.Pool.
type Pool struct {
	Base   kpool.Pool
	events *SQLEvents
}

var _ kpool.Pool = &Pool{}

func (p *Pool) Events() *SQLEvents {
	return p.events
}

func (p *Pool) Acquire(ctx context.Context) (kpool.Conn, error) {
	conn, err := p.Base.Acquire(ctx)
	if w := WrapConn(conn, p); w != nil {
		return w, err
	}
	return nil, err
}

func (p *Pool) Begin(ctx context.Context) (kpool.Tx, error) {
	tx, err := p.Base.Begin(ctx)
	if w := WrapTx(tx, p); w != nil {
		return w, err
	}
	return nil, err
}

func (p *Pool) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (kpool.Tx, error) {
	tx, err := p.Base.BeginTx(ctx, txOptions)
	if w := WrapTx(tx, p); w != nil {
		return w, err
	}
	return nil, err
}

func (p *Pool) Config() *pgxpool.Config {
	return p.Base.Config()
}

func (p *Pool) Ping(ctx context.Context) error {
	return p.Base.Ping(ctx)
}

// Tx proxies a kpool.Tx.
type Tx struct {
	Base   kpool.Tx
	events *SQLEvents
}

var _ kpool.Tx = &Tx{}

func (tx *Tx) Events() *SQLEvents {
	return tx.events
}

func (tx *Tx) Begin(ctx context.Context) (kpool.Tx, error) {
	inner, err := tx.Base.Begin(ctx)
	if w := WrapTx(inner, tx); w != nil {
		return w, err
	}
	return nil, err
}

func (tx *Tx) Commit(ctx context.Context) (err error) {
	tx.events.Commit.invoke(func() {
		err = tx.Base.Commit(ctx)
	})
	return
}

func (tx *Tx) Rollback(ctx context.Context) (err error) {
	tx.events.Rollback.invoke(func() {
		err = tx.Base.Rollback(ctx)
	})
	return
}

func (tx *Tx) Exec(ctx context.Context, sql string, arguments ...any) (ctag pgconn.CommandTag, err error) {
	tx.events.Query.invoke(func() {
		ctag, err = tx.Base.Exec(ctx, sql, arguments...)
	})
	return
}

func (tx *Tx) Query(ctx context.Context, sql string, args ...any) (r pgx.Rows, err error) {
	tx.events.Query.invoke(func() {
		r, err = tx.Base.Query(ctx, sql, args...)
	})
	return
}

func (tx *Tx) QueryRow(ctx context.Context, sql string, args ...any) (r pgx.Row) {
	tx.events.Query.invoke(func() {
		r = tx.Base.QueryRow(ctx, sql, args...)
	})
	return
}

// ConnProxy proxies a kpool.Conn.
type ConnProxy struct {
	Base   kpool.Conn
	events *SQLEvents
}

var _ kpool.Conn = &ConnProxy{}

func (c *ConnProxy) Events() *SQLEvents {
	return c.events
}

func (c *ConnProxy) Begin(ctx context.Context) (kpool.Tx, error) {
	tx, err := c.Base.Begin(ctx)
	if w := WrapTx(tx, c); w != nil {
		return w, err
	}
	return nil, err
}

func (c *ConnProxy) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (kpool.Tx, error) {
	tx, err := c.Base.BeginTx(ctx, txOptions)
	if w := WrapTx(tx, c); w != nil {
		return w, err
	}
	return nil, err
}

func (c *ConnProxy) Release() {
	c.Base.Release()
}

func (c *ConnProxy) Ping(ctx context.Context) error {
	return c.Base.Ping(ctx)
}

func (c *ConnProxy) Exec(ctx context.Context, sql string, arguments ...any) (ctag pgconn.CommandTag, err error) {
	c.events.Query.invoke(func() {
		ctag, err = c.Base.Exec(ctx, sql, arguments...)
	})
	return
}

func (c *ConnProxy) Query(ctx context.Context, sql string, args ...any) (rs pgx.Rows, err error) {
	c.events.Query.invoke(func() {
		rs, err = c.Base.Query(ctx, sql, args...)
	})
	return
}

func (c *ConnProxy) QueryRow(ctx context.Context, sql string, args ...any) (r pgx.Row) {
	c.events.Query.invoke(func() {
		r = c.Base.QueryRow(ctx, sql, args...)
	})
	return
}
