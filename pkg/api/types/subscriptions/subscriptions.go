package subscriptions

import (
	"github.com/foodgram-dev/foodgram/pkg/api/types/recipes"
	"github.com/foodgram-dev/foodgram/pkg/api/types/users"
	"github.com/foodgram-dev/foodgram/pkg/utils/cmp"
)

// WithRecipes is a followed author with a slice of their recipes.
//
// IsSubscribed is always true here; these are responses about authors
// the requesting user follows.
type WithRecipes struct {
	users.Profile

	// Recipes of the author, newest first, possibly trimmed by the
	// recipes_limit query parameter.
	Recipes []recipes.Minified `json:"recipes"`

	// RecipesCount counts all recipes of the author, trimmed or not.
	RecipesCount int `json:"recipes_count"`
}

func (w *WithRecipes) Equal(o *WithRecipes) bool {
	return w.Profile.Equal(&o.Profile) &&
		cmp.SliceEqWith(
			w.Recipes, o.Recipes,
			func(a, b recipes.Minified) bool { return a.Equal(&b) },
		) &&
		w.RecipesCount == o.RecipesCount
}
