package postgres

import (
	"context"

	kpool "github.com/foodgram-dev/foodgram/pkg/conn/postgres/pool"
	"github.com/foodgram-dev/foodgram/pkg/domain"
)

// RecipeBodiesByAuthor retrieves recipe bodies per author, newest
// first within each author.
//
// # Args
//
// - limit: max bodies per author. Negative means all.
func RecipeBodiesByAuthor(
	ctx context.Context, conn kpool.Queryer, authorIds []int, limit int,
) (map[int][]domain.RecipeBody, error) {
	rows, err := conn.Query(
		ctx,
		`
		with "numbered" as (
			select
				"id", "name", "image", "cooking_time", "author_id",
				row_number() over (
					partition by "author_id"
					order by "pub_date" desc, "id" desc
				) as "rank"
			from "recipe"
			where "author_id" = any($1::bigint[])
		)
		select "author_id", "id", "name", "image", "cooking_time"
		from "numbered"
		where ($2 < 0) or ("rank" <= $2)
		order by "author_id", "rank"
		`,
		authorIds, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bodies := map[int][]domain.RecipeBody{}
	for rows.Next() {
		var authorId int
		b := domain.RecipeBody{}
		if err := rows.Scan(
			&authorId, &b.Id, &b.Name, &b.Image, &b.CookingTime,
		); err != nil {
			return nil, err
		}
		bodies[authorId] = append(bodies[authorId], b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bodies, nil
}

// RecipeCountsByAuthor counts recipes per author.
//
// The returned map has a key per author id, zero included.
func RecipeCountsByAuthor(
	ctx context.Context, conn kpool.Queryer, authorIds []int,
) (map[int]int, error) {
	rows, err := conn.Query(
		ctx,
		`
		select "author_id", count(*) from "recipe"
		where "author_id" = any($1::bigint[])
		group by "author_id"
		`,
		authorIds,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[int]int{}
	for _, id := range authorIds {
		counts[id] = 0
	}
	for rows.Next() {
		var authorId, count int
		if err := rows.Scan(&authorId, &count); err != nil {
			return nil, err
		}
		counts[authorId] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// IngredientLines retrieves the ingredient lines of recipes, in line
// insertion order.
func IngredientLines(
	ctx context.Context, conn kpool.Queryer, recipeIds []int,
) (map[int][]domain.IngredientLine, error) {
	rows, err := conn.Query(
		ctx,
		`
		select
			"ri"."recipe_id",
			"i"."id", "i"."name", "i"."measurement_unit",
			"ri"."amount"
		from "recipe_ingredient" as "ri"
		inner join "ingredient" as "i" on "ri"."ingredient_id" = "i"."id"
		where "ri"."recipe_id" = any($1::bigint[])
		order by "ri"."id"
		`,
		recipeIds,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := map[int][]domain.IngredientLine{}
	for rows.Next() {
		var recipeId int
		l := domain.IngredientLine{}
		if err := rows.Scan(
			&recipeId, &l.Id, &l.Name, &l.MeasurementUnit, &l.Amount,
		); err != nil {
			return nil, err
		}
		lines[recipeId] = append(lines[recipeId], l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
