// Package internal has hand-rolled fakes of the pool interfaces.
//
// Each Next* field holds what the next call of the matching method
// returns. After the call the field is reset, Tx/Conn-valued ones to a
// fresh fake, so a stale return value cannot leak into a later call.
package internal

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	kpool "github.com/foodgram-dev/foodgram/pkg/conn/postgres/pool"
)

type BeginResult struct {
	Tx  kpool.Tx
	Err error
}

type AcquireResult struct {
	Conn kpool.Conn
	Err  error
}

type ExecResult struct {
	CommandTag pgconn.CommandTag
	Err        error
}

type QueryResult struct {
	Rows pgx.Rows
	Err  error
}

type FakePool struct {
	NextBegin   BeginResult
	NextBeginTx BeginResult
	NextAcquire AcquireResult
	NextConfig  *pgxpool.Config
	NextPing    error
}

var _ kpool.Pool = &FakePool{}

func (p *FakePool) Begin(ctx context.Context) (kpool.Tx, error) {
	r := p.NextBegin
	p.NextBegin = BeginResult{Tx: &FakeTx{}}
	return r.Tx, r.Err
}

func (p *FakePool) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (kpool.Tx, error) {
	r := p.NextBeginTx
	p.NextBeginTx = BeginResult{Tx: &FakeTx{}}
	return r.Tx, r.Err
}

func (p *FakePool) Acquire(ctx context.Context) (kpool.Conn, error) {
	r := p.NextAcquire
	p.NextAcquire = AcquireResult{Conn: &FakeConn{}}
	return r.Conn, r.Err
}

func (p *FakePool) Config() *pgxpool.Config {
	c := p.NextConfig
	p.NextConfig = nil
	return c
}

func (p *FakePool) Ping(ctx context.Context) error {
	err := p.NextPing
	p.NextPing = nil
	return err
}

type FakeTx struct {
	NextBegin    BeginResult
	NextCommit   error
	NextRollback error
	NextExec     ExecResult
	NextQuery    QueryResult
	NextQueryRow pgx.Row
}

var _ kpool.Tx = &FakeTx{}

func (tx *FakeTx) Begin(ctx context.Context) (kpool.Tx, error) {
	r := tx.NextBegin
	tx.NextBegin = BeginResult{Tx: &FakeTx{}}
	return r.Tx, r.Err
}

func (tx *FakeTx) Commit(ctx context.Context) error {
	err := tx.NextCommit
	tx.NextCommit = nil
	return err
}

func (tx *FakeTx) Rollback(ctx context.Context) error {
	err := tx.NextRollback
	tx.NextRollback = nil
	return err
}

func (tx *FakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	r := tx.NextExec
	tx.NextExec = ExecResult{}
	return r.CommandTag, r.Err
}

func (tx *FakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	r := tx.NextQuery
	tx.NextQuery = QueryResult{}
	return r.Rows, r.Err
}

func (tx *FakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	r := tx.NextQueryRow
	tx.NextQueryRow = nil
	return r
}

type FakeConn struct {
	NextBegin    BeginResult
	NextBeginTx  BeginResult
	NextExec     ExecResult
	NextQuery    QueryResult
	NextQueryRow pgx.Row
	NextPing     error
}

var _ kpool.Conn = &FakeConn{}

func (c *FakeConn) Begin(ctx context.Context) (kpool.Tx, error) {
	r := c.NextBegin
	c.NextBegin = BeginResult{Tx: &FakeTx{}}
	return r.Tx, r.Err
}

func (c *FakeConn) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (kpool.Tx, error) {
	r := c.NextBeginTx
	c.NextBeginTx = BeginResult{Tx: &FakeTx{}}
	return r.Tx, r.Err
}

func (c *FakeConn) Release() {}

func (c *FakeConn) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	r := c.NextExec
	c.NextExec = ExecResult{}
	return r.CommandTag, r.Err
}

func (c *FakeConn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	r := c.NextQuery
	c.NextQuery = QueryResult{}
	return r.Rows, r.Err
}

func (c *FakeConn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	r := c.NextQueryRow
	c.NextQueryRow = nil
	return r
}

func (c *FakeConn) Ping(ctx context.Context) error {
	err := c.NextPing
	c.NextPing = nil
	return err
}
