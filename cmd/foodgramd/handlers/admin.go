package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	bindadmin "github.com/foodgram-dev/foodgram/pkg/api/bind/admin"
	apierr "github.com/foodgram-dev/foodgram/pkg/api/bind/errors"
	apiadmin "github.com/foodgram-dev/foodgram/pkg/api/types/admin"
	"github.com/foodgram-dev/foodgram/pkg/domain"
	kingdb "github.com/foodgram-dev/foodgram/pkg/domain/ingredient/db"
	krcpdb "github.com/foodgram-dev/foodgram/pkg/domain/recipe/db"
	kusrdb "github.com/foodgram-dev/foodgram/pkg/domain/user/db"
	"github.com/foodgram-dev/foodgram/pkg/utils/slices"
)

// Operator listings. All of them sit behind RequireStaff and answer
// flat JSON arrays, one row per record, with related records spelled
// out by name.

// AdminUsersHandler lists accounts, searchable by email and username.
func AdminUsersHandler(dbUser kusrdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := dbUser.Find(
			c.Request().Context(),
			domain.UserFilter{Search: c.QueryParam("search")},
			domain.Window{},
		)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, slices.Map(page.Items, bindadmin.ComposeUser))
	}
}

// AdminRecipesHandler lists recipes with how often each is favorited,
// searchable by name.
func AdminRecipesHandler(dbRecipe krcpdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		page, err := dbRecipe.Find(
			ctx,
			domain.RecipeFilter{NameContains: c.QueryParam("search")},
			domain.Window{},
		)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		recipeIds := slices.Map(page.Items, func(r domain.Recipe) int { return r.Id })
		favorited, err := dbRecipe.FavoriteCounts(ctx, recipeIds)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		rows := slices.Map(page.Items, func(r domain.Recipe) apiadmin.Recipe {
			return bindadmin.ComposeRecipe(r, favorited[r.Id])
		})
		return c.JSON(http.StatusOK, rows)
	}
}

// AdminIngredientsHandler lists ingredients. Search is by name
// prefix, like the public listing.
func AdminIngredientsHandler(dbIngredient kingdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		found, err := dbIngredient.Find(
			c.Request().Context(),
			domain.IngredientFilter{NamePrefix: c.QueryParam("search")},
		)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, slices.Map(found, bindadmin.ComposeIngredient))
	}
}

// AdminFollowsHandler lists who follows whom, searchable by the
// usernames on either side.
func AdminFollowsHandler(dbUser kusrdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		follows, err := dbUser.FindFollows(ctx, c.QueryParam("search"))
		if err != nil {
			return apierr.InternalServerError(err)
		}

		referenced := map[int]bool{}
		for _, f := range follows {
			referenced[f.UserId] = true
			referenced[f.AuthorId] = true
		}
		users, err := dbUser.Get(ctx, slices.KeysOf(referenced))
		if err != nil {
			return apierr.InternalServerError(err)
		}

		rows := slices.Map(follows, func(f domain.Follow) apiadmin.Follow {
			return bindadmin.ComposeFollow(f, users)
		})
		return c.JSON(http.StatusOK, rows)
	}
}

// names fetches the users and recipes referenced by mark rows.
func names(
	ctx context.Context,
	dbUser kusrdb.Interface,
	dbRecipe krcpdb.Interface,
	userIds []int,
	recipeIds []int,
) (map[int]domain.User, map[int]domain.Recipe, error) {
	users, err := dbUser.Get(ctx, userIds)
	if err != nil {
		return nil, nil, err
	}
	recipes, err := dbRecipe.Get(ctx, recipeIds)
	if err != nil {
		return nil, nil, err
	}
	return users, recipes, nil
}

// AdminFavoritesHandler lists favorite marks, searchable by username
// and recipe name.
func AdminFavoritesHandler(dbUser kusrdb.Interface, dbRecipe krcpdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		marks, err := dbRecipe.FindFavorites(ctx, c.QueryParam("search"))
		if err != nil {
			return apierr.InternalServerError(err)
		}

		users, recipes, err := names(ctx, dbUser, dbRecipe,
			slices.Map(marks, func(m domain.Favorite) int { return m.UserId }),
			slices.Map(marks, func(m domain.Favorite) int { return m.RecipeId }),
		)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		rows := slices.Map(marks, func(m domain.Favorite) apiadmin.Mark {
			return bindadmin.ComposeMark(m.UserId, m.RecipeId, users, recipes)
		})
		return c.JSON(http.StatusOK, rows)
	}
}

// AdminCartsHandler lists shopping cart items, searchable by username
// and recipe name.
func AdminCartsHandler(dbUser kusrdb.Interface, dbRecipe krcpdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		items, err := dbRecipe.FindCartItems(ctx, c.QueryParam("search"))
		if err != nil {
			return apierr.InternalServerError(err)
		}

		users, recipes, err := names(ctx, dbUser, dbRecipe,
			slices.Map(items, func(i domain.CartItem) int { return i.UserId }),
			slices.Map(items, func(i domain.CartItem) int { return i.RecipeId }),
		)
		if err != nil {
			return apierr.InternalServerError(err)
		}

		rows := slices.Map(items, func(i domain.CartItem) apiadmin.Mark {
			return bindadmin.ComposeMark(i.UserId, i.RecipeId, users, recipes)
		})
		return c.JSON(http.StatusOK, rows)
	}
}
