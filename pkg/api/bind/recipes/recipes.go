package recipes

import (
	bindusers "github.com/foodgram-dev/foodgram/pkg/api/bind/users"
	apirecipe "github.com/foodgram-dev/foodgram/pkg/api/types/recipes"
	"github.com/foodgram-dev/foodgram/pkg/domain"
	"github.com/foodgram-dev/foodgram/pkg/utils/slices"
)

// Viewer is how the recipe relates to the requesting user. All false
// for anonymous requesters.
type Viewer struct {
	SubscribedToAuthor bool
	Favorited          bool
	InShoppingCart     bool
}

func ComposeLine(l domain.IngredientLine) apirecipe.IngredientLine {
	return apirecipe.IngredientLine{
		Id:              l.Id,
		Name:            l.Name,
		MeasurementUnit: l.MeasurementUnit,
		Amount:          l.Amount,
	}
}

func ComposeMinified(href bindusers.Href, b domain.RecipeBody) apirecipe.Minified {
	return apirecipe.Minified{
		Id:          b.Id,
		Name:        b.Name,
		Image:       href(b.Image),
		CookingTime: b.CookingTime,
	}
}

func ComposeDetail(href bindusers.Href, r domain.Recipe, viewer Viewer) apirecipe.Detail {
	return apirecipe.Detail{
		Id:               r.Id,
		Author:           bindusers.ComposeProfile(href, r.Author, viewer.SubscribedToAuthor),
		Name:             r.Name,
		Image:            href(r.Image),
		Text:             r.Text,
		Ingredients:      slices.Map(r.Ingredients, ComposeLine),
		CookingTime:      r.CookingTime,
		IsFavorited:      viewer.Favorited,
		IsInShoppingCart: viewer.InShoppingCart,
	}
}
