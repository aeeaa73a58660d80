package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"

	kpool "github.com/foodgram-dev/foodgram/pkg/conn/postgres/pool"
	"github.com/foodgram-dev/foodgram/pkg/domain"
	kpgerr "github.com/foodgram-dev/foodgram/pkg/domain/errors/dberrors/postgres"
	ktokendb "github.com/foodgram-dev/foodgram/pkg/domain/token/db"
)

type tokenPG struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) ktokendb.Interface {
	return &tokenPG{pool: pool}
}

func (t *tokenPG) New(ctx context.Context, token domain.Token) error {
	conn, err := t.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(
		ctx,
		`
		insert into "auth_token" ("id", "user_id", "issued_at", "expires_at")
		values ($1, $2, $3, $4)
		`,
		token.Id, token.UserId, token.IssuedAt, token.ExpiresAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) {
			return err
		}

		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return kpgerr.Conflict{
				Table: "auth_token", Identity: fmt.Sprintf("id='%s'", token.Id),
			}
		case pgerrcode.ForeignKeyViolation:
			return kpgerr.Missing{
				Table: "users", Identity: fmt.Sprintf("id=%d", token.UserId),
			}
		}
		return err
	}

	return nil
}

func (t *tokenPG) Get(ctx context.Context, id string) (domain.Token, error) {
	conn, err := t.pool.Acquire(ctx)
	if err != nil {
		return domain.Token{}, err
	}
	defer conn.Release()

	token := domain.Token{}
	if err := conn.QueryRow(
		ctx,
		`
		select "id", "user_id", "issued_at", "expires_at" from "auth_token"
		where "id" = $1
		`,
		id,
	).Scan(&token.Id, &token.UserId, &token.IssuedAt, &token.ExpiresAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Token{}, kpgerr.Missing{
				Table: "auth_token", Identity: fmt.Sprintf("id='%s'", id),
			}
		}
		return domain.Token{}, err
	}

	return token, nil
}

func (t *tokenPG) Delete(ctx context.Context, id string) error {
	conn, err := t.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `delete from "auth_token" where "id" = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kpgerr.Missing{
			Table: "auth_token", Identity: fmt.Sprintf("id='%s'", id),
		}
	}
	return nil
}

func (t *tokenPG) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	conn, err := t.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx, `delete from "auth_token" where "expires_at" <= $1`, now,
	)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
