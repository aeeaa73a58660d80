package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"

	kpool "github.com/foodgram-dev/foodgram/pkg/conn/postgres/pool"
	"github.com/foodgram-dev/foodgram/pkg/domain"
	kpgerr "github.com/foodgram-dev/foodgram/pkg/domain/errors/dberrors/postgres"
	kpgintr "github.com/foodgram-dev/foodgram/pkg/domain/internal/db/postgres"
	kuserdb "github.com/foodgram-dev/foodgram/pkg/domain/user/db"
	"github.com/foodgram-dev/foodgram/pkg/utils/slices"
)

type userPG struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kuserdb.Interface {
	return &userPG{pool: pool}
}

func (u *userPG) New(ctx context.Context, spec domain.UserSpec) (int, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	var id int
	if err := conn.QueryRow(
		ctx,
		`
		insert into "users" (
			"email", "username", "first_name", "last_name",
			"password_hash", "is_staff", "is_superuser"
		)
		values ($1, $2, $3, $4, $5, $6, $7)
		returning "id"
		`,
		spec.Email, spec.Username, spec.FirstName, spec.LastName,
		spec.HashedPassword, spec.IsStaff, spec.IsSuperuser,
	).Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
			return 0, err
		}

		if strings.Contains(pgErr.ConstraintName, "email") {
			return 0, kpgerr.Conflict{
				Table: "users", Identity: fmt.Sprintf("email='%s'", spec.Email),
			}
		}
		return 0, kpgerr.Conflict{
			Table: "users", Identity: fmt.Sprintf("username='%s'", spec.Username),
		}
	}

	return id, nil
}

func (u *userPG) Get(ctx context.Context, ids []int) (map[int]domain.User, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return kpgintr.GetUsers(ctx, conn, ids)
}

func (u *userPG) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return domain.User{}, err
	}
	defer conn.Release()

	var id int
	if err := conn.QueryRow(
		ctx,
		`select "id" from "users" where lower("email") = lower($1)`,
		email,
	).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, kpgerr.Missing{
				Table: "users", Identity: fmt.Sprintf("email='%s'", email),
			}
		}
		return domain.User{}, err
	}

	users, err := kpgintr.GetUsers(ctx, conn, []int{id})
	if err != nil {
		return domain.User{}, err
	}
	return users[id], nil
}

func (u *userPG) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return domain.User{}, err
	}
	defer conn.Release()

	var id int
	if err := conn.QueryRow(
		ctx,
		`select "id" from "users" where "username" = $1`,
		username,
	).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, kpgerr.Missing{
				Table: "users", Identity: fmt.Sprintf("username='%s'", username),
			}
		}
		return domain.User{}, err
	}

	users, err := kpgintr.GetUsers(ctx, conn, []int{id})
	if err != nil {
		return domain.User{}, err
	}
	return users[id], nil
}

func (u *userPG) Find(
	ctx context.Context, filter domain.UserFilter, window domain.Window,
) (domain.Page[domain.User], error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return domain.Page[domain.User]{}, err
	}
	defer conn.Release()

	page := domain.Page[domain.User]{}
	if err := conn.QueryRow(
		ctx,
		`
		select count(*) from "users"
		where $1 = ''
			or "username" ilike '%' || $1 || '%'
			or "email" ilike '%' || $1 || '%'
		`,
		filter.Search,
	).Scan(&page.Count); err != nil {
		return domain.Page[domain.User]{}, err
	}

	rows, err := conn.Query(
		ctx,
		`
		select "id" from "users"
		where $1 = ''
			or "username" ilike '%' || $1 || '%'
			or "email" ilike '%' || $1 || '%'
		order by "id"
		offset $2
		limit (case when $3 <= 0 then null else $3 end)
		`,
		filter.Search, window.Offset, window.Limit,
	)
	if err != nil {
		return domain.Page[domain.User]{}, err
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return domain.Page[domain.User]{}, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[domain.User]{}, err
	}

	users, err := kpgintr.GetUsers(ctx, conn, ids)
	if err != nil {
		return domain.Page[domain.User]{}, err
	}

	page.Items = slices.Map(ids, func(id int) domain.User { return users[id] })
	return page, nil
}

func (u *userPG) UpdatePassword(ctx context.Context, userId int, hashedPassword string) error {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`update "users" set "password_hash" = $2 where "id" = $1`,
		userId, hashedPassword,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kpgerr.Missing{
			Table: "users", Identity: fmt.Sprintf("id=%d", userId),
		}
	}
	return nil
}

func (u *userPG) UpdateAvatar(ctx context.Context, userId int, avatar string) (string, error) {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	var prev string
	if err := tx.QueryRow(
		ctx,
		`
		with "old" as (
			select "id", coalesce("avatar", '') as "avatar" from "users"
			where "id" = $1 for update
		)
		update "users" set "avatar" = nullif($2, '')
		from "old" where "users"."id" = "old"."id"
		returning "old"."avatar"
		`,
		userId, avatar,
	).Scan(&prev); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", kpgerr.Missing{
				Table: "users", Identity: fmt.Sprintf("id=%d", userId),
			}
		}
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return prev, nil
}

func (u *userPG) Subscribe(ctx context.Context, userId int, authorId int) error {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(
		ctx,
		`insert into "follow" ("user_id", "author_id") values ($1, $2)`,
		userId, authorId,
	); err != nil {
		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) {
			return err
		}

		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return kpgerr.Conflict{
				Table:    "follow",
				Identity: fmt.Sprintf("user_id=%d, author_id=%d", userId, authorId),
			}
		case pgerrcode.ForeignKeyViolation:
			return kpgerr.Missing{
				Table: "users", Identity: fmt.Sprintf("id=%d", authorId),
			}
		case pgerrcode.CheckViolation:
			return fmt.Errorf("%w: user %d cannot follow itself", domain.ErrInvalid, userId)
		}
		return err
	}

	return nil
}

func (u *userPG) Unsubscribe(ctx context.Context, userId int, authorId int) error {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`delete from "follow" where "user_id" = $1 and "author_id" = $2`,
		userId, authorId,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kpgerr.Missing{
			Table:    "follow",
			Identity: fmt.Sprintf("user_id=%d, author_id=%d", userId, authorId),
		}
	}
	return nil
}

func (u *userPG) Following(ctx context.Context, userId int, authorIds []int) (map[int]bool, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	following := map[int]bool{}
	for _, id := range authorIds {
		following[id] = false
	}

	rows, err := conn.Query(
		ctx,
		`
		select "author_id" from "follow"
		where "user_id" = $1 and "author_id" = any($2::bigint[])
		`,
		userId, authorIds,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var authorId int
		if err := rows.Scan(&authorId); err != nil {
			return nil, err
		}
		following[authorId] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return following, nil
}

func (u *userPG) Subscriptions(
	ctx context.Context, userId int, recipesLimit int, window domain.Window,
) (domain.Page[domain.Subscription], error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return domain.Page[domain.Subscription]{}, err
	}
	defer conn.Release()

	page := domain.Page[domain.Subscription]{}
	if err := conn.QueryRow(
		ctx, `select count(*) from "follow" where "user_id" = $1`, userId,
	).Scan(&page.Count); err != nil {
		return domain.Page[domain.Subscription]{}, err
	}

	rows, err := conn.Query(
		ctx,
		`
		select "author_id" from "follow"
		where "user_id" = $1
		order by "id"
		offset $2
		limit (case when $3 <= 0 then null else $3 end)
		`,
		userId, window.Offset, window.Limit,
	)
	if err != nil {
		return domain.Page[domain.Subscription]{}, err
	}
	defer rows.Close()

	authorIds := []int{}
	for rows.Next() {
		var authorId int
		if err := rows.Scan(&authorId); err != nil {
			return domain.Page[domain.Subscription]{}, err
		}
		authorIds = append(authorIds, authorId)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[domain.Subscription]{}, err
	}

	authors, err := kpgintr.GetUsers(ctx, conn, authorIds)
	if err != nil {
		return domain.Page[domain.Subscription]{}, err
	}
	recipes, err := kpgintr.RecipeBodiesByAuthor(ctx, conn, authorIds, recipesLimit)
	if err != nil {
		return domain.Page[domain.Subscription]{}, err
	}
	counts, err := kpgintr.RecipeCountsByAuthor(ctx, conn, authorIds)
	if err != nil {
		return domain.Page[domain.Subscription]{}, err
	}

	page.Items = slices.Map(authorIds, func(id int) domain.Subscription {
		return domain.Subscription{
			Author:       authors[id],
			Recipes:      recipes[id],
			RecipesCount: counts[id],
		}
	})
	return page, nil
}

func (u *userPG) FindFollows(ctx context.Context, search string) ([]domain.Follow, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select "f"."user_id", "f"."author_id"
		from "follow" as "f"
		inner join "users" as "u" on "f"."user_id" = "u"."id"
		inner join "users" as "a" on "f"."author_id" = "a"."id"
		where $1 = ''
			or "u"."username" ilike '%' || $1 || '%'
			or "a"."username" ilike '%' || $1 || '%'
		order by "f"."id" desc
		`,
		search,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	follows := []domain.Follow{}
	for rows.Next() {
		f := domain.Follow{}
		if err := rows.Scan(&f.UserId, &f.AuthorId); err != nil {
			return nil, err
		}
		follows = append(follows, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return follows, nil
}
