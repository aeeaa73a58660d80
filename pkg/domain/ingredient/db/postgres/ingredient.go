package postgres

import (
	"context"

	kpool "github.com/foodgram-dev/foodgram/pkg/conn/postgres/pool"
	"github.com/foodgram-dev/foodgram/pkg/domain"
	kingrdb "github.com/foodgram-dev/foodgram/pkg/domain/ingredient/db"
	"github.com/foodgram-dev/foodgram/pkg/utils/slices"
)

type ingredientPG struct {
	pool kpool.Pool
}

func New(pool kpool.Pool) kingrdb.Interface {
	return &ingredientPG{pool: pool}
}

func (i *ingredientPG) Get(ctx context.Context, ids []int) (map[int]domain.Ingredient, error) {
	conn, err := i.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select "id", "name", "measurement_unit" from "ingredient"
		where "id" = any($1::bigint[])
		`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ingredients := map[int]domain.Ingredient{}
	for rows.Next() {
		ing := domain.Ingredient{}
		if err := rows.Scan(&ing.Id, &ing.Name, &ing.MeasurementUnit); err != nil {
			return nil, err
		}
		ingredients[ing.Id] = ing
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ingredients, nil
}

func (i *ingredientPG) Find(
	ctx context.Context, filter domain.IngredientFilter,
) ([]domain.Ingredient, error) {
	conn, err := i.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select "id", "name", "measurement_unit" from "ingredient"
		where ($1 = '' or "name" ilike $1 || '%')
			and ($2 = '' or "name" ilike '%' || $2 || '%')
		order by "name", "measurement_unit"
		`,
		filter.NamePrefix, filter.NameContains,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ingredients := []domain.Ingredient{}
	for rows.Next() {
		ing := domain.Ingredient{}
		if err := rows.Scan(&ing.Id, &ing.Name, &ing.MeasurementUnit); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ingredients, nil
}

func (i *ingredientPG) Load(ctx context.Context, specs []domain.IngredientSpec) (int, error) {
	tx, err := i.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(
		ctx,
		`
		insert into "ingredient" ("name", "measurement_unit")
		select
			unnest($1::varchar[]) as "name",
			unnest($2::varchar[]) as "measurement_unit"
		on conflict ("name", "measurement_unit") do nothing
		`,
		slices.Map(specs, func(s domain.IngredientSpec) string { return s.Name }),
		slices.Map(specs, func(s domain.IngredientSpec) string { return s.MeasurementUnit }),
	)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
