package recipes

import (
	"github.com/foodgram-dev/foodgram/pkg/api/types/users"
	"github.com/foodgram-dev/foodgram/pkg/utils/cmp"
)

// IngredientLine is one ingredient of a recipe, with its amount.
type IngredientLine struct {
	Id              int    `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// Detail is the full JSON representation of a recipe.
type Detail struct {
	Id          int              `json:"id"`
	Author      users.Profile    `json:"author"`
	Name        string           `json:"name"`
	Image       string           `json:"image"`
	Text        string           `json:"text"`
	Ingredients []IngredientLine `json:"ingredients"`
	CookingTime int              `json:"cooking_time"`

	// IsFavorited and IsInShoppingCart are about the requesting user;
	// false for anonymous requesters.
	IsFavorited      bool `json:"is_favorited"`
	IsInShoppingCart bool `json:"is_in_shopping_cart"`
}

func (d *Detail) Equal(o *Detail) bool {
	return d.Id == o.Id &&
		d.Author.Equal(&o.Author) &&
		d.Name == o.Name &&
		d.Image == o.Image &&
		d.Text == o.Text &&
		cmp.SliceEq(d.Ingredients, o.Ingredients) &&
		d.CookingTime == o.CookingTime &&
		d.IsFavorited == o.IsFavorited &&
		d.IsInShoppingCart == o.IsInShoppingCart
}

// Minified is the short representation used by favorites, shopping
// carts and subscription listings.
type Minified struct {
	Id          int    `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

func (m *Minified) Equal(o *Minified) bool {
	return *m == *o
}

// IngredientRef points at an ingredient with an amount, in requests.
type IngredientRef struct {
	Id     int `json:"id"`
	Amount int `json:"amount"`
}

// Spec is the creation request.
type Spec struct {
	Ingredients []IngredientRef `json:"ingredients"`

	// Image is a base64 data URI.
	Image string `json:"image"`

	Name        string `json:"name"`
	Text        string `json:"text"`
	CookingTime int    `json:"cooking_time"`
}

// Patch is the update request. Absent fields keep their stored values,
// except Ingredients, which must always be sent.
type Patch struct {
	Ingredients []IngredientRef `json:"ingredients"`
	Image       *string         `json:"image"`
	Name        *string         `json:"name"`
	Text        *string         `json:"text"`
	CookingTime *int            `json:"cooking_time"`
}

// ShortLink is the response of GET /api/recipes/:id/get-link/.
type ShortLink struct {
	ShortLink string `json:"short-link"`
}
