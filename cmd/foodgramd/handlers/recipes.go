package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/segmentio/ksuid"

	apierr "github.com/foodgram-dev/foodgram/pkg/api/bind/errors"
	bindpaging "github.com/foodgram-dev/foodgram/pkg/api/bind/paging"
	bindrecipes "github.com/foodgram-dev/foodgram/pkg/api/bind/recipes"
	apirecipe "github.com/foodgram-dev/foodgram/pkg/api/types/recipes"
	"github.com/foodgram-dev/foodgram/pkg/domain"
	domerr "github.com/foodgram-dev/foodgram/pkg/domain/errors"
	kingdb "github.com/foodgram-dev/foodgram/pkg/domain/ingredient/db"
	krcpdb "github.com/foodgram-dev/foodgram/pkg/domain/recipe/db"
	kusrdb "github.com/foodgram-dev/foodgram/pkg/domain/user/db"
	"github.com/foodgram-dev/foodgram/pkg/media"
	"github.com/foodgram-dev/foodgram/pkg/utils/slices"
)

// viewers resolves how each recipe relates to the requesting user,
// with one query per relation. Anonymous requesters relate to
// nothing, so no queries run for them.
func viewers(
	c echo.Context,
	dbUser kusrdb.Interface,
	dbRecipe krcpdb.Interface,
	recipes []domain.Recipe,
) (map[int]bindrecipes.Viewer, error) {
	vs := map[int]bindrecipes.Viewer{}
	me, ok := CurrentIdentity(c)
	if !ok || len(recipes) == 0 {
		return vs, nil
	}

	ctx := c.Request().Context()
	recipeIds := slices.Map(recipes, func(r domain.Recipe) int { return r.Id })
	authorIds := slices.Map(recipes, func(r domain.Recipe) int { return r.Author.Id })

	favorited, err := dbRecipe.Favorited(ctx, me.User.Id, recipeIds)
	if err != nil {
		return nil, err
	}
	inCart, err := dbRecipe.InCart(ctx, me.User.Id, recipeIds)
	if err != nil {
		return nil, err
	}
	following, err := dbUser.Following(ctx, me.User.Id, authorIds)
	if err != nil {
		return nil, err
	}

	for _, r := range recipes {
		vs[r.Id] = bindrecipes.Viewer{
			SubscribedToAuthor: following[r.Author.Id],
			Favorited:          favorited[r.Id],
			InShoppingCart:     inCart[r.Id],
		}
	}
	return vs, nil
}

// truthy reads boolean query flags the way clients send them.
func truthy(v string) bool {
	return v == "1" || v == "true" || v == "True"
}

// FindRecipesHandler lists recipes, newest first, filtered and
// paginated.
//
// The is_favorited and is_in_shopping_cart filters need a requester
// to relate to; anonymous requests just ignore them.
func FindRecipesHandler(dbRecipe krcpdb.Interface, dbUser kusrdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		params, err := bindpaging.ParseParams(c.QueryParams())
		if err != nil {
			return apierr.InvalidPage()
		}

		filter := domain.RecipeFilter{}
		if v := c.QueryParam("author"); v != "" {
			authorId, err := strconv.Atoi(v)
			if err != nil {
				return apierr.ValidationError(apierr.Fields{"author": {apierr.MsgNotANumber}})
			}
			filter.Author = &authorId
		}
		if me, ok := CurrentIdentity(c); ok {
			meId := me.User.Id
			if truthy(c.QueryParam("is_favorited")) {
				filter.FavoritedBy = &meId
			}
			if truthy(c.QueryParam("is_in_shopping_cart")) {
				filter.InCartOf = &meId
			}
		}

		ctx := c.Request().Context()
		page, err := dbRecipe.Find(ctx, filter, params.Window())
		if err != nil {
			return apierr.InternalServerError(err)
		}
		if params.OutOfRange(page.Count) {
			return apierr.InvalidPage()
		}

		vs, err := viewers(c, dbUser, dbRecipe, page.Items)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		href := mediaHref(c)
		results := slices.Map(page.Items, func(r domain.Recipe) apirecipe.Detail {
			return bindrecipes.ComposeDetail(href, r, vs[r.Id])
		})
		return c.JSON(
			http.StatusOK,
			bindpaging.Compose(requestURL(c), params, page.Count, results),
		)
	}
}

const (
	msgNoIngredients      = "Необходимо указать хотя бы один ингредиент."
	msgRepeatedIngredient = "Один и тот же ингредиент не должен повторяться."
	msgDupIngredients     = "Ингредиенты должны быть уникальными."
	msgUnknownIngredients = "Один или несколько ингредиентов не существуют"
)

func msgUnknownIngredient(id int) string {
	return fmt.Sprintf("Ингредиент с ID %d не существует", id)
}

// ingredientMessages is the wording of ingredient list rejections.
// Creation and update reject with different texts.
type ingredientMessages struct {
	dup     string
	unknown func(id int) string
}

var onCreate = ingredientMessages{
	dup:     msgRepeatedIngredient,
	unknown: msgUnknownIngredient,
}

var onUpdate = ingredientMessages{
	dup:     msgDupIngredients,
	unknown: func(int) string { return msgUnknownIngredients },
}

// checkIngredients validates the ingredient list of a recipe payload
// and files failures under "ingredients" in fields. The returned
// error is a storage failure, not a validation outcome.
func checkIngredients(
	ctx context.Context,
	dbIngredient kingdb.Interface,
	refs []apirecipe.IngredientRef,
	msgs ingredientMessages,
	fields apierr.Fields,
) error {
	switch {
	case refs == nil:
		fields["ingredients"] = append(fields["ingredients"], apierr.MsgRequired)
		return nil
	case len(refs) == 0:
		fields["ingredients"] = append(fields["ingredients"], msgNoIngredients)
		return nil
	}

	seen := map[int]bool{}
	for _, ref := range refs {
		if seen[ref.Id] {
			fields["ingredients"] = append(fields["ingredients"], msgs.dup)
			break
		}
		seen[ref.Id] = true
	}
	for _, ref := range refs {
		if ref.Amount < domain.MinIngredientAmount {
			fields["ingredients"] = append(
				fields["ingredients"], apierr.MsgAtLeast(domain.MinIngredientAmount),
			)
			break
		}
		if domain.MaxIngredientAmount < ref.Amount {
			fields["ingredients"] = append(
				fields["ingredients"], apierr.MsgAtMost(domain.MaxIngredientAmount),
			)
			break
		}
	}

	ids := slices.Map(refs, func(ref apirecipe.IngredientRef) int { return ref.Id })
	known, err := dbIngredient.Get(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			fields["ingredients"] = append(fields["ingredients"], msgs.unknown(id))
			break
		}
	}
	return nil
}

func refsToAmounts(refs []apirecipe.IngredientRef) []domain.IngredientAmount {
	return slices.Map(refs, func(ref apirecipe.IngredientRef) domain.IngredientAmount {
		return domain.IngredientAmount{IngredientId: ref.Id, Amount: ref.Amount}
	})
}

// newShortLink mints a short link code. KSUIDs are URL-safe and fit
// the column.
func newShortLink() string {
	return ksuid.New().String()
}

// RecipeRegisterHandler publishes a recipe authored by the requester.
//
// Field failures are collected into a single response. The image
// arrives as a base64 data URI and lands in the media store.
func RecipeRegisterHandler(
	dbRecipe krcpdb.Interface,
	dbIngredient kingdb.Interface,
	store *media.Store,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := RequireIdentity(c)
		if err != nil {
			return err
		}

		req := apirecipe.Spec{}
		if err := bindJSON(c, &req); err != nil {
			return err
		}

		ctx := c.Request().Context()
		fields := apierr.Fields{}

		switch {
		case req.Name == "":
			fields["name"] = []string{apierr.MsgRequired}
		case domain.MaxRecipeNameLength < utf8.RuneCountInString(req.Name):
			fields["name"] = []string{apierr.MsgTooLong(domain.MaxRecipeNameLength)}
		}
		if req.Text == "" {
			fields["text"] = []string{apierr.MsgRequired}
		}
		switch {
		case req.CookingTime < domain.MinCookingTime:
			fields["cooking_time"] = []string{apierr.MsgAtLeast(domain.MinCookingTime)}
		case domain.MaxCookingTime < req.CookingTime:
			fields["cooking_time"] = []string{apierr.MsgAtMost(domain.MaxCookingTime)}
		}
		if req.Image == "" {
			fields["image"] = []string{apierr.MsgRequired}
		}
		if err := checkIngredients(ctx, dbIngredient, req.Ingredients, onCreate, fields); err != nil {
			return apierr.InternalServerError(err)
		}
		if 0 < len(fields) {
			return apierr.ValidationError(fields)
		}

		relpath, err := store.SaveDataURI(req.Image, media.RecipeImages)
		if err != nil {
			if errors.Is(err, media.ErrBadImage) {
				return apierr.ValidationError(apierr.Fields{"image": {apierr.MsgInvalidImage}})
			}
			return apierr.InternalServerError(err)
		}

		spec := domain.RecipeSpec{
			Name:        req.Name,
			Image:       relpath,
			Text:        req.Text,
			CookingTime: req.CookingTime,
			Ingredients: refsToAmounts(req.Ingredients),
		}

		recipeId := 0
		for attempt := 0; ; attempt++ {
			id, err := dbRecipe.New(ctx, identity.User.Id, spec, newShortLink())
			if err == nil {
				recipeId = id
				break
			}
			if errors.Is(err, domerr.ErrConflict) && attempt < 2 {
				continue // short link collision, mint another
			}
			if rmErr := store.Remove(relpath); rmErr != nil {
				c.Logger().Warnf("orphaned recipe image %s: %s", relpath, rmErr)
			}
			if errors.Is(err, domerr.ErrMissing) {
				// an ingredient vanished since the check above
				return apierr.ValidationError(
					apierr.Fields{"ingredients": {msgUnknownIngredients}},
				)
			}
			return apierr.InternalServerError(err)
		}

		created, err := dbRecipe.Get(ctx, []int{recipeId})
		if err != nil {
			return apierr.InternalServerError(err)
		}
		r, ok := created[recipeId]
		if !ok {
			return apierr.InternalServerError(
				fmt.Errorf("recipe %d is gone right after creation", recipeId),
			)
		}
		return c.JSON(
			http.StatusCreated,
			bindrecipes.ComposeDetail(mediaHref(c), r, bindrecipes.Viewer{}),
		)
	}
}

// GetRecipeHandler shows the recipe at :id.
func GetRecipeHandler(dbRecipe krcpdb.Interface, dbUser kusrdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		recipeId, err := paramId(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		recipes, err := dbRecipe.Get(ctx, []int{recipeId})
		if err != nil {
			return apierr.InternalServerError(err)
		}
		r, ok := recipes[recipeId]
		if !ok {
			return apierr.NotFound()
		}

		vs, err := viewers(c, dbUser, dbRecipe, []domain.Recipe{r})
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, bindrecipes.ComposeDetail(mediaHref(c), r, vs[r.Id]))
	}
}

// UpdateRecipeHandler rewrites the recipe at :id, owned by the
// requester. Fields left out of the payload stay as they are, except
// ingredients which each update has to spell out.
func UpdateRecipeHandler(
	dbRecipe krcpdb.Interface,
	dbIngredient kingdb.Interface,
	dbUser kusrdb.Interface,
	store *media.Store,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := RequireIdentity(c)
		if err != nil {
			return err
		}
		recipeId, err := paramId(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		recipes, err := dbRecipe.Get(ctx, []int{recipeId})
		if err != nil {
			return apierr.InternalServerError(err)
		}
		current, ok := recipes[recipeId]
		if !ok {
			return apierr.NotFound()
		}
		if current.Author.Id != identity.User.Id {
			return apierr.PermissionDenied()
		}

		req := apirecipe.Patch{}
		if err := bindJSON(c, &req); err != nil {
			return err
		}

		fields := apierr.Fields{}
		if err := checkIngredients(ctx, dbIngredient, req.Ingredients, onUpdate, fields); err != nil {
			return apierr.InternalServerError(err)
		}
		if req.Name != nil {
			switch {
			case *req.Name == "":
				fields["name"] = []string{apierr.MsgRequired}
			case domain.MaxRecipeNameLength < utf8.RuneCountInString(*req.Name):
				fields["name"] = []string{apierr.MsgTooLong(domain.MaxRecipeNameLength)}
			}
		}
		if req.Text != nil && *req.Text == "" {
			fields["text"] = []string{apierr.MsgRequired}
		}
		if req.CookingTime != nil {
			switch {
			case *req.CookingTime < domain.MinCookingTime:
				fields["cooking_time"] = []string{apierr.MsgAtLeast(domain.MinCookingTime)}
			case domain.MaxCookingTime < *req.CookingTime:
				fields["cooking_time"] = []string{apierr.MsgAtMost(domain.MaxCookingTime)}
			}
		}
		if req.Image != nil && *req.Image == "" {
			fields["image"] = []string{apierr.MsgRequired}
		}
		if 0 < len(fields) {
			return apierr.ValidationError(fields)
		}

		spec := domain.RecipeSpec{
			Name:        current.Name,
			Image:       current.Image,
			Text:        current.Text,
			CookingTime: current.CookingTime,
			Ingredients: refsToAmounts(req.Ingredients),
		}
		if req.Name != nil {
			spec.Name = *req.Name
		}
		if req.Text != nil {
			spec.Text = *req.Text
		}
		if req.CookingTime != nil {
			spec.CookingTime = *req.CookingTime
		}

		newImage := ""
		if req.Image != nil {
			relpath, err := store.SaveDataURI(*req.Image, media.RecipeImages)
			if err != nil {
				if errors.Is(err, media.ErrBadImage) {
					return apierr.ValidationError(apierr.Fields{"image": {apierr.MsgInvalidImage}})
				}
				return apierr.InternalServerError(err)
			}
			newImage = relpath
			spec.Image = relpath
		}

		if err := dbRecipe.Update(ctx, recipeId, spec); err != nil {
			if rmErr := store.Remove(newImage); rmErr != nil {
				c.Logger().Warnf("orphaned recipe image %s: %s", newImage, rmErr)
			}
			if errors.Is(err, domerr.ErrMissing) {
				return apierr.ValidationError(
					apierr.Fields{"ingredients": {msgUnknownIngredients}},
				)
			}
			return apierr.InternalServerError(err)
		}
		if newImage != "" {
			if err := store.Remove(current.Image); err != nil {
				c.Logger().Warnf("stale recipe image %s: %s", current.Image, err)
			}
		}

		updated, err := dbRecipe.Get(ctx, []int{recipeId})
		if err != nil {
			return apierr.InternalServerError(err)
		}
		r, ok := updated[recipeId]
		if !ok {
			return apierr.NotFound()
		}
		vs, err := viewers(c, dbUser, dbRecipe, []domain.Recipe{r})
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, bindrecipes.ComposeDetail(mediaHref(c), r, vs[r.Id]))
	}
}

// DeleteRecipeHandler unpublishes the recipe at :id, owned by the
// requester, with its stored image.
func DeleteRecipeHandler(dbRecipe krcpdb.Interface, store *media.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := RequireIdentity(c)
		if err != nil {
			return err
		}
		recipeId, err := paramId(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		recipes, err := dbRecipe.Get(ctx, []int{recipeId})
		if err != nil {
			return apierr.InternalServerError(err)
		}
		current, ok := recipes[recipeId]
		if !ok {
			return apierr.NotFound()
		}
		if current.Author.Id != identity.User.Id {
			return apierr.PermissionDenied()
		}

		if err := dbRecipe.Delete(ctx, recipeId); err != nil {
			if errors.Is(err, domerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		if err := store.Remove(current.Image); err != nil {
			c.Logger().Warnf("stale recipe image %s: %s", current.Image, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// addMarkHandler puts the recipe at :id into a per-user collection.
// Marking twice is rejected with dupMsg.
func addMarkHandler(
	dbRecipe krcpdb.Interface,
	add func(ctx context.Context, userId int, recipeId int) error,
	dupMsg string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := RequireIdentity(c)
		if err != nil {
			return err
		}
		recipeId, err := paramId(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		recipes, err := dbRecipe.Get(ctx, []int{recipeId})
		if err != nil {
			return apierr.InternalServerError(err)
		}
		r, ok := recipes[recipeId]
		if !ok {
			return apierr.NotFound()
		}

		if err := add(ctx, identity.User.Id, recipeId); err != nil {
			switch {
			case errors.Is(err, domerr.ErrConflict):
				return apierr.BadRequestErrors(dupMsg)
			case errors.Is(err, domerr.ErrMissing):
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		return c.JSON(
			http.StatusCreated, bindrecipes.ComposeMinified(mediaHref(c), r.RecipeBody),
		)
	}
}

// dropMarkHandler takes the recipe at :id out of a per-user
// collection. Unmarked recipes are rejected with absentMsg.
func dropMarkHandler(
	dbRecipe krcpdb.Interface,
	remove func(ctx context.Context, userId int, recipeId int) error,
	absentMsg string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := RequireIdentity(c)
		if err != nil {
			return err
		}
		recipeId, err := paramId(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		recipes, err := dbRecipe.Get(ctx, []int{recipeId})
		if err != nil {
			return apierr.InternalServerError(err)
		}
		if _, ok := recipes[recipeId]; !ok {
			return apierr.NotFound()
		}

		if err := remove(ctx, identity.User.Id, recipeId); err != nil {
			if errors.Is(err, domerr.ErrMissing) {
				return apierr.BadRequestErrors(absentMsg)
			}
			return apierr.InternalServerError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// AddFavoriteHandler puts the recipe at :id into the favorites of the
// requester.
func AddFavoriteHandler(dbRecipe krcpdb.Interface) echo.HandlerFunc {
	return addMarkHandler(dbRecipe, dbRecipe.AddFavorite, "Рецепт уже в избранном")
}

// RemoveFavoriteHandler takes the recipe at :id out of the favorites
// of the requester.
func RemoveFavoriteHandler(dbRecipe krcpdb.Interface) echo.HandlerFunc {
	return dropMarkHandler(
		dbRecipe, dbRecipe.RemoveFavorite, "Рецепт не находится в избранном.",
	)
}

// AddToCartHandler puts the recipe at :id into the shopping cart of
// the requester.
func AddToCartHandler(dbRecipe krcpdb.Interface) echo.HandlerFunc {
	return addMarkHandler(dbRecipe, dbRecipe.AddToCart, "Рецепт уже в списке покупок")
}

// RemoveFromCartHandler takes the recipe at :id out of the shopping
// cart of the requester.
func RemoveFromCartHandler(dbRecipe krcpdb.Interface) echo.HandlerFunc {
	return dropMarkHandler(
		dbRecipe, dbRecipe.RemoveFromCart, "Рецепт не находится в корзине покупок.",
	)
}

// DownloadShoppingCartHandler sends the shopping cart of the
// requester as a plain text file, ingredients summed over recipes.
func DownloadShoppingCartHandler(dbRecipe krcpdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := RequireIdentity(c)
		if err != nil {
			return err
		}

		items, err := dbRecipe.ShoppingList(c.Request().Context(), identity.User.Id)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		if len(items) == 0 {
			return apierr.BadRequestError("Корзина покупок пуста")
		}

		list := strings.Builder{}
		list.WriteString("Список покупок:\n\n")
		for _, item := range items {
			fmt.Fprintf(&list, "%s (%s): %d\n", item.Name, item.MeasurementUnit, item.Amount)
		}

		c.Response().Header().Set(
			echo.HeaderContentDisposition, `attachment; filename="shopping_list.txt"`,
		)
		return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(list.String()))
	}
}

// GetShortLinkHandler shows the absolute short link of the recipe at
// :id.
func GetShortLinkHandler(dbRecipe krcpdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		recipeId, err := paramId(c, "id")
		if err != nil {
			return err
		}

		recipes, err := dbRecipe.Get(c.Request().Context(), []int{recipeId})
		if err != nil {
			return apierr.InternalServerError(err)
		}
		r, ok := recipes[recipeId]
		if !ok {
			return apierr.NotFound()
		}

		link := c.Scheme() + "://" + c.Request().Host + "/s/" + r.ShortLink
		return c.JSON(http.StatusOK, apirecipe.ShortLink{ShortLink: link})
	}
}

// ResolveShortLinkHandler redirects /s/:code to the recipe page.
func ResolveShortLinkHandler(dbRecipe krcpdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		recipeId, err := dbRecipe.GetByShortLink(c.Request().Context(), c.Param("code"))
		if err != nil {
			if errors.Is(err, domerr.ErrMissing) {
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}
		return c.Redirect(http.StatusFound, fmt.Sprintf("/recipes/%d", recipeId))
	}
}
