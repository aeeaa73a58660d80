package db

import (
	"context"

	"github.com/foodgram-dev/foodgram/pkg/domain"
)

type Interface interface {
	// create a new recipe with its ingredient lines.
	//
	// Args
	//
	// - context.Context
	//
	// - authorId: the author.
	//
	// - RecipeSpec: validated spec. Image is a stored media path.
	//
	// - shortLink: code for the recipe under /s/.
	//
	// Returns
	//
	// - int: id of the created recipe
	//
	// - error: ErrMissing when an ingredient id or the author is unknown,
	// ErrConflict when shortLink is taken.
	New(ctx context.Context, authorId int, spec domain.RecipeSpec, shortLink string) (int, error)

	// Retrieve recipes with author and ingredient lines.
	//
	// Args
	//
	// - context.Context
	//
	// - []int: recipe ids
	//
	// Returns
	//
	// - map[int]Recipe: mapping id->Recipe. Unknown ids are left out.
	//
	// - error
	Get(ctx context.Context, ids []int) (map[int]domain.Recipe, error)

	// resolve a short link code to a recipe id.
	//
	// Returns
	//
	// - int: recipe id
	//
	// - error: ErrMissing when the code is unknown.
	GetByShortLink(ctx context.Context, code string) (int, error)

	// find recipes matching filter, newest first (pub date, then id).
	Find(ctx context.Context, filter domain.RecipeFilter, window domain.Window) (domain.Page[domain.Recipe], error)

	// rewrite a recipe and its ingredient lines atomically.
	//
	// Returns
	//
	// - error: ErrMissing when the recipe or an ingredient id is unknown.
	Update(ctx context.Context, recipeId int, spec domain.RecipeSpec) error

	// delete a recipe.
	//
	// Returns
	//
	// - error: ErrMissing when the recipe does not exist.
	Delete(ctx context.Context, recipeId int) error

	// mark a recipe as favorite of a user.
	//
	// Returns
	//
	// - error: ErrConflict when already favorited,
	// ErrMissing when the recipe does not exist.
	AddFavorite(ctx context.Context, userId int, recipeId int) error

	// remove a favorite mark.
	//
	// Returns
	//
	// - error: ErrMissing when not favorited.
	RemoveFavorite(ctx context.Context, userId int, recipeId int) error

	// put a recipe into the shopping cart of a user.
	//
	// Returns
	//
	// - error: ErrConflict when already in the cart,
	// ErrMissing when the recipe does not exist.
	AddToCart(ctx context.Context, userId int, recipeId int) error

	// take a recipe out of the shopping cart of a user.
	//
	// Returns
	//
	// - error: ErrMissing when not in the cart.
	RemoveFromCart(ctx context.Context, userId int, recipeId int) error

	// test which of recipes the user has favorited.
	//
	// Args
	//
	// - userId: non-positive ids have favorited nothing.
	//
	// Returns
	//
	// - map[int]bool: mapping recipeId->favorited?. Has a key per recipeId.
	Favorited(ctx context.Context, userId int, recipeIds []int) (map[int]bool, error)

	// test which of recipes are in the shopping cart of the user.
	//
	// Args
	//
	// - userId: non-positive ids have empty carts.
	//
	// Returns
	//
	// - map[int]bool: mapping recipeId->in cart?. Has a key per recipeId.
	InCart(ctx context.Context, userId int, recipeIds []int) (map[int]bool, error)

	// aggregate the shopping cart of a user into a shopping list:
	// sum of amounts per (ingredient name, measurement unit) over all
	// recipes in the cart, in name order.
	//
	// Returns
	//
	// - []ShoppingItem: empty when the cart is empty.
	ShoppingList(ctx context.Context, userId int) ([]domain.ShoppingItem, error)

	// count favorite marks per recipe.
	//
	// Returns
	//
	// - map[int]int: mapping recipeId->count. Has a key per recipeId.
	FavoriteCounts(ctx context.Context, recipeIds []int) (map[int]int, error)

	// list favorite marks, newest first.
	//
	// Args
	//
	// - search: keep marks where the username or the recipe name
	// contains this, case-insensitively. Empty does not narrow.
	FindFavorites(ctx context.Context, search string) ([]domain.Favorite, error)

	// list shopping cart items, newest first.
	//
	// Args
	//
	// - search: as in FindFavorites.
	FindCartItems(ctx context.Context, search string) ([]domain.CartItem, error)
}
