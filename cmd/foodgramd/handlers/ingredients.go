package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apierr "github.com/foodgram-dev/foodgram/pkg/api/bind/errors"
	bindingr "github.com/foodgram-dev/foodgram/pkg/api/bind/ingredients"
	"github.com/foodgram-dev/foodgram/pkg/domain"
	kingdb "github.com/foodgram-dev/foodgram/pkg/domain/ingredient/db"
	"github.com/foodgram-dev/foodgram/pkg/utils/slices"
)

// FindIngredientsHandler lists ingredients whose name starts with the
// "name" query parameter. The listing is flat, not paginated: clients
// feed it to typeahead and need it whole.
func FindIngredientsHandler(dbIngredient kingdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		found, err := dbIngredient.Find(
			c.Request().Context(),
			domain.IngredientFilter{NamePrefix: c.QueryParam("name")},
		)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return c.JSON(http.StatusOK, slices.Map(found, bindingr.Compose))
	}
}

// GetIngredientHandler shows the ingredient at :id.
func GetIngredientHandler(dbIngredient kingdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ingredientId, err := paramId(c, "id")
		if err != nil {
			return err
		}

		ingredients, err := dbIngredient.Get(c.Request().Context(), []int{ingredientId})
		if err != nil {
			return apierr.InternalServerError(err)
		}
		i, ok := ingredients[ingredientId]
		if !ok {
			return apierr.NotFound()
		}
		return c.JSON(http.StatusOK, bindingr.Compose(i))
	}
}
