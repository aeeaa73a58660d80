package db

import (
	"context"

	"github.com/foodgram-dev/foodgram/pkg/domain"
)

type Interface interface {
	// Retrieve ingredients.
	//
	// Args
	//
	// - context.Context
	//
	// - []int: ingredient ids
	//
	// Returns
	//
	// - map[int]Ingredient: mapping id->Ingredient. Unknown ids are left out.
	//
	// - error
	Get(ctx context.Context, ids []int) (map[int]domain.Ingredient, error)

	// find ingredients matching filter, in name order.
	//
	// Not paginated; ingredient listings are served whole.
	Find(ctx context.Context, filter domain.IngredientFilter) ([]domain.Ingredient, error)

	// load ingredients in bulk.
	//
	// Specs colliding with existing (name, measurement unit) pairs are
	// skipped silently.
	//
	// Args
	//
	// - context.Context
	//
	// - []IngredientSpec: validated specs.
	//
	// Returns
	//
	// - int: number of rows inserted (conflicts do not count)
	//
	// - error
	Load(ctx context.Context, specs []domain.IngredientSpec) (int, error)
}
