// manipulate records of the PostgreSQL tables, for tests.
package tables

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/jackc/pgconn"

	kpool "github.com/foodgram-dev/foodgram/pkg/conn/postgres/pool"
)

func withCause(v any, reason error) error {
	return fmt.Errorf("error caused inserting record %+v: %w", v, reason)
}

// table-level operations for PostgreSQL.
//
// Note: this package DOES NOT verify/guarantee consistencies of records.
type Tables struct {
	ctx  context.Context
	pool kpool.Pool
}

func New(ctx context.Context, pool kpool.Pool) *Tables {
	return &Tables{
		ctx: ctx, pool: pool,
	}
}

func (f *Tables) acquire() (kpool.Conn, error) {
	return f.pool.Acquire(f.ctx)
}

func shouldEffect(ctag pgconn.CommandTag, require int) error {
	aff := ctag.RowsAffected()
	if int64(require) <= aff {
		return nil
	}
	_, file, line, ok := runtime.Caller(1)
	if ok {
		return fmt.Errorf("added rows are not enough @ %s:%d", file, line)
	} else {
		return errors.New("added rows are not enough")
	}
}

func (f *Tables) InsertUser(u *User) error {
	conn, err := f.acquire()
	if err != nil {
		return err
	}
	defer conn.Release()

	ctag, err := conn.Exec(
		f.ctx,
		`
		insert into "users" (
			"id", "email", "username", "first_name", "last_name",
			"password_hash", "avatar",
			"is_staff", "is_superuser", "is_active", "date_joined"
		)
		values ($1, $2, $3, $4, $5, $6, nullif($7, ''), $8, $9, $10, $11)
		`,
		u.Id, u.Email, u.Username, u.FirstName, u.LastName,
		u.PasswordHash, u.Avatar,
		u.IsStaff, u.IsSuperuser, u.IsActive, u.DateJoined,
	)
	if err != nil {
		return withCause(u, err)
	}
	return shouldEffect(ctag, 1)
}

func (f *Tables) InsertFollow(fl *Follow) error {
	conn, err := f.acquire()
	if err != nil {
		return err
	}
	defer conn.Release()

	ctag, err := conn.Exec(
		f.ctx,
		`insert into "follow" ("user_id", "author_id") values ($1, $2)`,
		fl.UserId, fl.AuthorId,
	)
	if err != nil {
		return withCause(fl, err)
	}
	return shouldEffect(ctag, 1)
}

func (f *Tables) InsertIngredient(i *Ingredient) error {
	conn, err := f.acquire()
	if err != nil {
		return err
	}
	defer conn.Release()

	ctag, err := conn.Exec(
		f.ctx,
		`
		insert into "ingredient" ("id", "name", "measurement_unit")
		values ($1, $2, $3)
		`,
		i.Id, i.Name, i.MeasurementUnit,
	)
	if err != nil {
		return withCause(i, err)
	}
	return shouldEffect(ctag, 1)
}

func (f *Tables) InsertRecipe(r *Recipe) error {
	conn, err := f.acquire()
	if err != nil {
		return err
	}
	defer conn.Release()

	ctag, err := conn.Exec(
		f.ctx,
		`
		insert into "recipe" (
			"id", "author_id", "name", "image", "text",
			"cooking_time", "short_link", "pub_date"
		)
		values ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
		r.Id, r.AuthorId, r.Name, r.Image, r.Text,
		r.CookingTime, r.ShortLink, r.PubDate,
	)
	if err != nil {
		return withCause(r, err)
	}
	return shouldEffect(ctag, 1)
}

func (f *Tables) InsertRecipeIngredient(ri *RecipeIngredient) error {
	conn, err := f.acquire()
	if err != nil {
		return err
	}
	defer conn.Release()

	ctag, err := conn.Exec(
		f.ctx,
		`
		insert into "recipe_ingredient" ("recipe_id", "ingredient_id", "amount")
		values ($1, $2, $3)
		`,
		ri.RecipeId, ri.IngredientId, ri.Amount,
	)
	if err != nil {
		return withCause(ri, err)
	}
	return shouldEffect(ctag, 1)
}

func (f *Tables) InsertFavorite(fav *Favorite) error {
	conn, err := f.acquire()
	if err != nil {
		return err
	}
	defer conn.Release()

	ctag, err := conn.Exec(
		f.ctx,
		`insert into "favorite" ("user_id", "recipe_id") values ($1, $2)`,
		fav.UserId, fav.RecipeId,
	)
	if err != nil {
		return withCause(fav, err)
	}
	return shouldEffect(ctag, 1)
}

func (f *Tables) InsertShoppingCart(sc *ShoppingCart) error {
	conn, err := f.acquire()
	if err != nil {
		return err
	}
	defer conn.Release()

	ctag, err := conn.Exec(
		f.ctx,
		`insert into "shopping_cart" ("user_id", "recipe_id") values ($1, $2)`,
		sc.UserId, sc.RecipeId,
	)
	if err != nil {
		return withCause(sc, err)
	}
	return shouldEffect(ctag, 1)
}

func (f *Tables) InsertAuthToken(tk *AuthToken) error {
	conn, err := f.acquire()
	if err != nil {
		return err
	}
	defer conn.Release()

	ctag, err := conn.Exec(
		f.ctx,
		`
		insert into "auth_token" ("id", "user_id", "issued_at", "expires_at")
		values ($1, $2, $3, $4)
		`,
		tk.Id, tk.UserId, tk.IssuedAt, tk.ExpiresAt,
	)
	if err != nil {
		return withCause(tk, err)
	}
	return shouldEffect(ctag, 1)
}

// SyncSerials moves the serial sequences past the ids inserted with
// explicit values, so that records inserted afterwards do not collide.
func (f *Tables) SyncSerials() error {
	conn, err := f.acquire()
	if err != nil {
		return err
	}
	defer conn.Release()

	for _, table := range []string{"users", "ingredient", "recipe"} {
		if _, err := conn.Exec(
			f.ctx,
			fmt.Sprintf(
				`
				select setval(
					pg_get_serial_sequence('"%s"', 'id'),
					coalesce(max("id"), 0) + 1,
					false
				)
				from "%s"
				`,
				table, table,
			),
		); err != nil {
			return fmt.Errorf("error syncing serial of %s: %w", table, err)
		}
	}
	return nil
}
