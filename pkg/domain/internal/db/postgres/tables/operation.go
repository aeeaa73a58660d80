package tables

import (
	"context"

	kpool "github.com/foodgram-dev/foodgram/pkg/conn/postgres/pool"
)

// Declare premise of test.
type Operation struct {
	Users             []User
	Follows           []Follow
	Ingredients       []Ingredient
	Recipes           []Recipe
	RecipeIngredients []RecipeIngredient
	Favorites         []Favorite
	ShoppingCarts     []ShoppingCart
	AuthTokens        []AuthToken
}

// Apply inserts the records in dependency order and syncs serials.
func (prem *Operation) Apply(ctx context.Context, pool kpool.Pool) error {
	tbls := New(ctx, pool)

	for i := range prem.Users {
		if err := tbls.InsertUser(&prem.Users[i]); err != nil {
			return err
		}
	}
	for i := range prem.Ingredients {
		if err := tbls.InsertIngredient(&prem.Ingredients[i]); err != nil {
			return err
		}
	}
	for i := range prem.Recipes {
		if err := tbls.InsertRecipe(&prem.Recipes[i]); err != nil {
			return err
		}
	}
	for i := range prem.RecipeIngredients {
		if err := tbls.InsertRecipeIngredient(&prem.RecipeIngredients[i]); err != nil {
			return err
		}
	}
	for i := range prem.Follows {
		if err := tbls.InsertFollow(&prem.Follows[i]); err != nil {
			return err
		}
	}
	for i := range prem.Favorites {
		if err := tbls.InsertFavorite(&prem.Favorites[i]); err != nil {
			return err
		}
	}
	for i := range prem.ShoppingCarts {
		if err := tbls.InsertShoppingCart(&prem.ShoppingCarts[i]); err != nil {
			return err
		}
	}
	for i := range prem.AuthTokens {
		if err := tbls.InsertAuthToken(&prem.AuthTokens[i]); err != nil {
			return err
		}
	}

	return tbls.SyncSerials()
}
