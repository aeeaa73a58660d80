package subscriptions

import (
	bindrecipes "github.com/foodgram-dev/foodgram/pkg/api/bind/recipes"
	bindusers "github.com/foodgram-dev/foodgram/pkg/api/bind/users"
	apirecipe "github.com/foodgram-dev/foodgram/pkg/api/types/recipes"
	apisubsc "github.com/foodgram-dev/foodgram/pkg/api/types/subscriptions"
	"github.com/foodgram-dev/foodgram/pkg/domain"
	"github.com/foodgram-dev/foodgram/pkg/utils/slices"
)

func ComposeWithRecipes(href bindusers.Href, s domain.Subscription) apisubsc.WithRecipes {
	return apisubsc.WithRecipes{
		Profile: bindusers.ComposeProfile(href, s.Author, true),
		Recipes: slices.Map(s.Recipes, func(b domain.RecipeBody) apirecipe.Minified {
			return bindrecipes.ComposeMinified(href, b)
		}),
		RecipesCount: s.RecipesCount,
	}
}
