package subscriptions_test

import (
	"testing"
	"time"

	bindsubsc "github.com/foodgram-dev/foodgram/pkg/api/bind/subscriptions"
	apirecipe "github.com/foodgram-dev/foodgram/pkg/api/types/recipes"
	apisubsc "github.com/foodgram-dev/foodgram/pkg/api/types/subscriptions"
	apiuser "github.com/foodgram-dev/foodgram/pkg/api/types/users"
	"github.com/foodgram-dev/foodgram/pkg/domain"
)

func href(relpath string) string {
	return "http://foodgram.example/media/" + relpath
}

func TestComposeWithRecipes(t *testing.T) {
	for name, testcase := range map[string]struct {
		when domain.Subscription
		then apisubsc.WithRecipes
	}{
		"When an author with recipes is passed, it should compose them with is_subscribed = true.": {
			when: domain.Subscription{
				Author: domain.User{
					Id: 101, Email: "bob@example.com", Username: "bob",
					FirstName: "Bob", LastName: "Builder",
					Avatar:     "users/avatars/b.png",
					IsActive:   true,
					DateJoined: time.Date(2024, 4, 2, 12, 0, 0, 0, time.UTC),
				},
				Recipes: []domain.RecipeBody{
					{Id: 302, Name: "pelmeni", Image: "recipes/images/p.png", CookingTime: 40},
					{Id: 301, Name: "okroshka", Image: "recipes/images/o.png", CookingTime: 20},
				},
				RecipesCount: 5,
			},
			then: apisubsc.WithRecipes{
				Profile: apiuser.Profile{
					Email: "bob@example.com", Id: 101, Username: "bob",
					FirstName: "Bob", LastName: "Builder",
					IsSubscribed: true,
					Avatar:       "http://foodgram.example/media/users/avatars/b.png",
				},
				Recipes: []apirecipe.Minified{
					{
						Id: 302, Name: "pelmeni",
						Image:       "http://foodgram.example/media/recipes/images/p.png",
						CookingTime: 40,
					},
					{
						Id: 301, Name: "okroshka",
						Image:       "http://foodgram.example/media/recipes/images/o.png",
						CookingTime: 20,
					},
				},
				RecipesCount: 5,
			},
		},
		"When the author has no recipes, it should compose an empty slice, not null.": {
			when: domain.Subscription{
				Author: domain.User{
					Id: 102, Email: "carol@example.com", Username: "carol",
					FirstName: "Carol", LastName: "Singer",
					IsActive: true,
				},
				Recipes:      nil,
				RecipesCount: 0,
			},
			then: apisubsc.WithRecipes{
				Profile: apiuser.Profile{
					Email: "carol@example.com", Id: 102, Username: "carol",
					FirstName: "Carol", LastName: "Singer",
					IsSubscribed: true,
					Avatar:       "",
				},
				Recipes:      []apirecipe.Minified{},
				RecipesCount: 0,
			},
		},
	} {
		t.Run(name, func(t *testing.T) {
			actual := bindsubsc.ComposeWithRecipes(href, testcase.when)
			if !actual.Equal(&testcase.then) {
				t.Errorf(
					"unexpected author:\n===actual===\n%+v\n===expected===\n%+v",
					actual, testcase.then,
				)
			}
			if actual.Recipes == nil {
				t.Error("recipes must not be null")
			}
		})
	}
}
