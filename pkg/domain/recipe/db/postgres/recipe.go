package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"

	kpool "github.com/foodgram-dev/foodgram/pkg/conn/postgres/pool"
	"github.com/foodgram-dev/foodgram/pkg/domain"
	kpgerr "github.com/foodgram-dev/foodgram/pkg/domain/errors/dberrors/postgres"
	kpgintr "github.com/foodgram-dev/foodgram/pkg/domain/internal/db/postgres"
	krecipedb "github.com/foodgram-dev/foodgram/pkg/domain/recipe/db"
	"github.com/foodgram-dev/foodgram/pkg/utils/slices"
)

type recipePG struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) krecipedb.Interface {
	return &recipePG{pool: pool}
}

func (r *recipePG) New(
	ctx context.Context, authorId int, spec domain.RecipeSpec, shortLink string,
) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var id int
	if err := tx.QueryRow(
		ctx,
		`
		insert into "recipe" (
			"author_id", "name", "image", "text", "cooking_time", "short_link"
		)
		values ($1, $2, $3, $4, $5, $6)
		returning "id"
		`,
		authorId, spec.Name, spec.Image, spec.Text, spec.CookingTime, shortLink,
	).Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) {
			return 0, err
		}

		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return 0, kpgerr.Conflict{
				Table: "recipe", Identity: fmt.Sprintf("short_link='%s'", shortLink),
			}
		case pgerrcode.ForeignKeyViolation:
			return 0, kpgerr.Missing{
				Table: "users", Identity: fmt.Sprintf("id=%d", authorId),
			}
		case pgerrcode.CheckViolation:
			return 0, fmt.Errorf(
				"%w: cooking_time=%d (constraint: %s)",
				domain.ErrInvalid, spec.CookingTime, pgErr.ConstraintName,
			)
		}
		return 0, err
	}

	if err := insertIngredientLines(ctx, tx, id, spec.Ingredients); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func insertIngredientLines(
	ctx context.Context, conn kpool.Queryer, recipeId int, lines []domain.IngredientAmount,
) error {
	_, err := conn.Exec(
		ctx,
		`
		insert into "recipe_ingredient" ("recipe_id", "ingredient_id", "amount")
		select
			$1,
			unnest($2::bigint[]) as "ingredient_id",
			unnest($3::smallint[]) as "amount"
		`,
		recipeId,
		slices.Map(lines, func(l domain.IngredientAmount) int { return l.IngredientId }),
		slices.Map(lines, func(l domain.IngredientAmount) int { return l.Amount }),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) {
			return err
		}

		switch pgErr.Code {
		case pgerrcode.ForeignKeyViolation:
			return kpgerr.Missing{
				Table: "ingredient",
				Identity: fmt.Sprintf(
					"recipe_id=%d (constraint: %s)", recipeId, pgErr.ConstraintName,
				),
			}
		case pgerrcode.CheckViolation:
			return fmt.Errorf(
				"%w: ingredient amount (constraint: %s)",
				domain.ErrInvalid, pgErr.ConstraintName,
			)
		case pgerrcode.UniqueViolation:
			return kpgerr.Conflict{
				Table:    "recipe_ingredient",
				Identity: fmt.Sprintf("recipe_id=%d", recipeId),
			}
		}
		return err
	}

	return nil
}

func (r *recipePG) Get(ctx context.Context, ids []int) (map[int]domain.Recipe, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return getRecipes(ctx, conn, ids)
}

func getRecipes(ctx context.Context, conn kpool.Queryer, ids []int) (map[int]domain.Recipe, error) {
	rows, err := conn.Query(
		ctx,
		`
		select
			"id", "name", "image", "cooking_time",
			"author_id", "text", "pub_date", "short_link"
		from "recipe"
		where "id" = any($1::bigint[])
		`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := map[int]domain.Recipe{}
	authorIds := []int{}
	for rows.Next() {
		rec := domain.Recipe{}
		var authorId int
		if err := rows.Scan(
			&rec.Id, &rec.Name, &rec.Image, &rec.CookingTime,
			&authorId, &rec.Text, &rec.PubDate, &rec.ShortLink,
		); err != nil {
			return nil, err
		}
		rec.Author.Id = authorId
		recipes[rec.Id] = rec
		authorIds = append(authorIds, authorId)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(recipes) == 0 {
		return recipes, nil
	}

	authors, err := kpgintr.GetUsers(ctx, conn, authorIds)
	if err != nil {
		return nil, err
	}
	lines, err := kpgintr.IngredientLines(ctx, conn, slices.KeysOf(recipes))
	if err != nil {
		return nil, err
	}

	for id, rec := range recipes {
		rec.Author = authors[rec.Author.Id]
		rec.Ingredients = lines[id]
		recipes[id] = rec
	}

	return recipes, nil
}

func (r *recipePG) GetByShortLink(ctx context.Context, code string) (int, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Release()

	var id int
	if err := conn.QueryRow(
		ctx, `select "id" from "recipe" where "short_link" = $1`, code,
	).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, kpgerr.Missing{
				Table: "recipe", Identity: fmt.Sprintf("short_link='%s'", code),
			}
		}
		return 0, err
	}

	return id, nil
}

func (r *recipePG) Find(
	ctx context.Context, filter domain.RecipeFilter, window domain.Window,
) (domain.Page[domain.Recipe], error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return domain.Page[domain.Recipe]{}, err
	}
	defer conn.Release()

	page := domain.Page[domain.Recipe]{}
	if err := conn.QueryRow(
		ctx,
		`
		select count(*) from "recipe"
		where ($1::bigint is null or "author_id" = $1)
			and ($2::bigint is null or exists (
				select 1 from "favorite"
				where "user_id" = $2 and "recipe_id" = "recipe"."id"
			))
			and ($3::bigint is null or exists (
				select 1 from "shopping_cart"
				where "user_id" = $3 and "recipe_id" = "recipe"."id"
			))
			and ($4 = '' or "name" ilike '%' || $4 || '%')
		`,
		filter.Author, filter.FavoritedBy, filter.InCartOf, filter.NameContains,
	).Scan(&page.Count); err != nil {
		return domain.Page[domain.Recipe]{}, err
	}

	rows, err := conn.Query(
		ctx,
		`
		select "id" from "recipe"
		where ($1::bigint is null or "author_id" = $1)
			and ($2::bigint is null or exists (
				select 1 from "favorite"
				where "user_id" = $2 and "recipe_id" = "recipe"."id"
			))
			and ($3::bigint is null or exists (
				select 1 from "shopping_cart"
				where "user_id" = $3 and "recipe_id" = "recipe"."id"
			))
			and ($4 = '' or "name" ilike '%' || $4 || '%')
		order by "pub_date" desc, "id" desc
		offset $5
		limit (case when $6 <= 0 then null else $6 end)
		`,
		filter.Author, filter.FavoritedBy, filter.InCartOf, filter.NameContains,
		window.Offset, window.Limit,
	)
	if err != nil {
		return domain.Page[domain.Recipe]{}, err
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return domain.Page[domain.Recipe]{}, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[domain.Recipe]{}, err
	}

	recipes, err := getRecipes(ctx, conn, ids)
	if err != nil {
		return domain.Page[domain.Recipe]{}, err
	}

	page.Items = slices.Map(ids, func(id int) domain.Recipe { return recipes[id] })
	return page, nil
}

func (r *recipePG) Update(ctx context.Context, recipeId int, spec domain.RecipeSpec) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(
		ctx,
		`
		update "recipe"
		set "name" = $2, "image" = $3, "text" = $4, "cooking_time" = $5
		where "id" = $1
		`,
		recipeId, spec.Name, spec.Image, spec.Text, spec.CookingTime,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
			return fmt.Errorf(
				"%w: cooking_time=%d (constraint: %s)",
				domain.ErrInvalid, spec.CookingTime, pgErr.ConstraintName,
			)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return kpgerr.Missing{
			Table: "recipe", Identity: fmt.Sprintf("id=%d", recipeId),
		}
	}

	if _, err := tx.Exec(
		ctx, `delete from "recipe_ingredient" where "recipe_id" = $1`, recipeId,
	); err != nil {
		return err
	}
	if err := insertIngredientLines(ctx, tx, recipeId, spec.Ingredients); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	return nil
}

func (r *recipePG) Delete(ctx context.Context, recipeId int) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx, `delete from "recipe" where "id" = $1`, recipeId,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kpgerr.Missing{
			Table: "recipe", Identity: fmt.Sprintf("id=%d", recipeId),
		}
	}
	return nil
}

// mark adds a (user, recipe) row to table, which is "favorite" or
// "shopping_cart". Both tables have the same shape.
func (r *recipePG) mark(ctx context.Context, table string, userId int, recipeId int) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(
		ctx,
		fmt.Sprintf(
			`insert into "%s" ("user_id", "recipe_id") values ($1, $2)`, table,
		),
		userId, recipeId,
	); err != nil {
		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) {
			return err
		}

		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return kpgerr.Conflict{
				Table:    table,
				Identity: fmt.Sprintf("user_id=%d, recipe_id=%d", userId, recipeId),
			}
		case pgerrcode.ForeignKeyViolation:
			return kpgerr.Missing{
				Table: "recipe", Identity: fmt.Sprintf("id=%d", recipeId),
			}
		}
		return err
	}

	return nil
}

func (r *recipePG) unmark(ctx context.Context, table string, userId int, recipeId int) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		fmt.Sprintf(
			`delete from "%s" where "user_id" = $1 and "recipe_id" = $2`, table,
		),
		userId, recipeId,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return kpgerr.Missing{
			Table:    table,
			Identity: fmt.Sprintf("user_id=%d, recipe_id=%d", userId, recipeId),
		}
	}
	return nil
}

func (r *recipePG) AddFavorite(ctx context.Context, userId int, recipeId int) error {
	return r.mark(ctx, "favorite", userId, recipeId)
}

func (r *recipePG) RemoveFavorite(ctx context.Context, userId int, recipeId int) error {
	return r.unmark(ctx, "favorite", userId, recipeId)
}

func (r *recipePG) AddToCart(ctx context.Context, userId int, recipeId int) error {
	return r.mark(ctx, "shopping_cart", userId, recipeId)
}

func (r *recipePG) RemoveFromCart(ctx context.Context, userId int, recipeId int) error {
	return r.unmark(ctx, "shopping_cart", userId, recipeId)
}

func (r *recipePG) marked(
	ctx context.Context, table string, userId int, recipeIds []int,
) (map[int]bool, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	marked := map[int]bool{}
	for _, id := range recipeIds {
		marked[id] = false
	}

	rows, err := conn.Query(
		ctx,
		fmt.Sprintf(
			`
			select "recipe_id" from "%s"
			where "user_id" = $1 and "recipe_id" = any($2::bigint[])
			`,
			table,
		),
		userId, recipeIds,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var recipeId int
		if err := rows.Scan(&recipeId); err != nil {
			return nil, err
		}
		marked[recipeId] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return marked, nil
}

func (r *recipePG) Favorited(ctx context.Context, userId int, recipeIds []int) (map[int]bool, error) {
	return r.marked(ctx, "favorite", userId, recipeIds)
}

func (r *recipePG) InCart(ctx context.Context, userId int, recipeIds []int) (map[int]bool, error) {
	return r.marked(ctx, "shopping_cart", userId, recipeIds)
}

func (r *recipePG) ShoppingList(ctx context.Context, userId int) ([]domain.ShoppingItem, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select "i"."name", "i"."measurement_unit", sum("ri"."amount")
		from "shopping_cart" as "sc"
		inner join "recipe_ingredient" as "ri" on "sc"."recipe_id" = "ri"."recipe_id"
		inner join "ingredient" as "i" on "ri"."ingredient_id" = "i"."id"
		where "sc"."user_id" = $1
		group by "i"."name", "i"."measurement_unit"
		order by "i"."name", "i"."measurement_unit"
		`,
		userId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.ShoppingItem{}
	for rows.Next() {
		item := domain.ShoppingItem{}
		if err := rows.Scan(&item.Name, &item.MeasurementUnit, &item.Amount); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *recipePG) FavoriteCounts(ctx context.Context, recipeIds []int) (map[int]int, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	counts := map[int]int{}
	for _, id := range recipeIds {
		counts[id] = 0
	}

	rows, err := conn.Query(
		ctx,
		`
		select "recipe_id", count(*) from "favorite"
		where "recipe_id" = any($1::bigint[])
		group by "recipe_id"
		`,
		recipeIds,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var recipeId, count int
		if err := rows.Scan(&recipeId, &count); err != nil {
			return nil, err
		}
		counts[recipeId] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

func (r *recipePG) findMarks(
	ctx context.Context, table string, search string,
) ([]domain.CartItem, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		fmt.Sprintf(
			`
			select "m"."user_id", "m"."recipe_id"
			from "%s" as "m"
			inner join "users" as "u" on "m"."user_id" = "u"."id"
			inner join "recipe" as "r" on "m"."recipe_id" = "r"."id"
			where $1 = ''
				or "u"."username" ilike '%%' || $1 || '%%'
				or "r"."name" ilike '%%' || $1 || '%%'
			order by "m"."id" desc
			`,
			table,
		),
		search,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	marks := []domain.CartItem{}
	for rows.Next() {
		m := domain.CartItem{}
		if err := rows.Scan(&m.UserId, &m.RecipeId); err != nil {
			return nil, err
		}
		marks = append(marks, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return marks, nil
}

func (r *recipePG) FindFavorites(ctx context.Context, search string) ([]domain.Favorite, error) {
	marks, err := r.findMarks(ctx, "favorite", search)
	if err != nil {
		return nil, err
	}
	return slices.Map(marks, func(m domain.CartItem) domain.Favorite {
		return domain.Favorite{UserId: m.UserId, RecipeId: m.RecipeId}
	}), nil
}

func (r *recipePG) FindCartItems(ctx context.Context, search string) ([]domain.CartItem, error) {
	return r.findMarks(ctx, "shopping_cart", search)
}
