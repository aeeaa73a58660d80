package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/foodgram-dev/foodgram/pkg/utils/cmp"
)

const (
	MaxRecipeNameLength = 256
	MaxShortLinkLength  = 32

	MinCookingTime = 1
	MaxCookingTime = 32000

	MinIngredientAmount = 1
	MaxIngredientAmount = 32000
)

// RecipeBody is the identifying part of a Recipe,
// enough to render it in listings.
type RecipeBody struct {
	Id   int
	Name string

	// Image is the media-relative path of the dish photo.
	Image string

	// CookingTime in minutes.
	CookingTime int
}

func (rb *RecipeBody) Equal(o *RecipeBody) bool {
	if (rb == nil) || (o == nil) {
		return (rb == nil) && (o == nil)
	}

	return rb.Id == o.Id &&
		rb.Name == o.Name &&
		rb.Image == o.Image &&
		rb.CookingTime == o.CookingTime
}

// IngredientLine is one ingredient of a recipe with its amount.
type IngredientLine struct {
	Ingredient
	Amount int
}

func (il IngredientLine) Equal(o IngredientLine) bool {
	return il.Ingredient.Equal(o.Ingredient) && il.Amount == o.Amount
}

// Recipe is a published recipe.
type Recipe struct {
	RecipeBody
	Author      User
	Text        string
	Ingredients []IngredientLine
	PubDate     time.Time

	// ShortLink is the code under /s/ which redirects to this recipe.
	ShortLink string
}

func (r *Recipe) Equal(o *Recipe) bool {
	if (r == nil) || (o == nil) {
		return (r == nil) && (o == nil)
	}

	return r.RecipeBody.Equal(&o.RecipeBody) &&
		r.Author.Equal(&o.Author) &&
		r.Text == o.Text &&
		cmp.SliceContentEqWith(
			r.Ingredients, o.Ingredients,
			func(a, b IngredientLine) bool { return a.Equal(b) },
		) &&
		r.PubDate.Equal(o.PubDate) &&
		r.ShortLink == o.ShortLink
}

// IngredientAmount names an ingredient by id with an amount,
// as recipes are written with.
type IngredientAmount struct {
	IngredientId int
	Amount       int
}

// RecipeSpec is the intent creating or rewriting a Recipe.
type RecipeSpec struct {
	Name        string
	Image       string
	Text        string
	CookingTime int
	Ingredients []IngredientAmount
}

func ValidateCookingTime(minutes int) error {
	if minutes < MinCookingTime || MaxCookingTime < minutes {
		return fmt.Errorf(
			"%w: cooking time is out of range %d..%d",
			ErrInvalid, MinCookingTime, MaxCookingTime,
		)
	}
	return nil
}

func ValidateIngredientAmount(amount int) error {
	if amount < MinIngredientAmount || MaxIngredientAmount < amount {
		return fmt.Errorf(
			"%w: ingredient amount is out of range %d..%d",
			ErrInvalid, MinIngredientAmount, MaxIngredientAmount,
		)
	}
	return nil
}

// Validate checks the fields of a recipe to be written.
//
// Existence of the ingredients is left to storage;
// emptiness, duplication and ranges are rejected here.
func (s RecipeSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: recipe name is required", ErrInvalid)
	}
	if MaxRecipeNameLength < utf8.RuneCountInString(s.Name) {
		return fmt.Errorf(
			"%w: recipe name is longer than %d characters",
			ErrInvalid, MaxRecipeNameLength,
		)
	}
	if s.Text == "" {
		return fmt.Errorf("%w: recipe text is required", ErrInvalid)
	}
	if s.Image == "" {
		return fmt.Errorf("%w: recipe image is required", ErrInvalid)
	}
	if err := ValidateCookingTime(s.CookingTime); err != nil {
		return err
	}

	if len(s.Ingredients) == 0 {
		return fmt.Errorf("%w: recipe needs at least one ingredient", ErrInvalid)
	}
	seen := map[int]struct{}{}
	for _, ing := range s.Ingredients {
		if _, ok := seen[ing.IngredientId]; ok {
			return fmt.Errorf(
				"%w: ingredient %d is listed twice", ErrInvalid, ing.IngredientId,
			)
		}
		seen[ing.IngredientId] = struct{}{}

		if err := ValidateIngredientAmount(ing.Amount); err != nil {
			return err
		}
	}
	return nil
}

// RecipeFilter narrows recipe listings.
//
// Empty (or nil) fields do not narrow.
type RecipeFilter struct {
	// Author keeps recipes of this author.
	Author *int

	// FavoritedBy keeps recipes favorited by this user.
	FavoritedBy *int

	// InCartOf keeps recipes in the shopping cart of this user.
	InCartOf *int

	// NameContains keeps recipes whose name contains this,
	// case-insensitively.
	NameContains string
}

// Favorite marks recipe RecipeId as a favorite of user UserId.
type Favorite struct {
	UserId   int
	RecipeId int
}

// CartItem puts recipe RecipeId into the shopping cart of user UserId.
type CartItem struct {
	UserId   int
	RecipeId int
}

// ShoppingItem is one line of an aggregated shopping list:
// the total amount of an ingredient over all recipes in a cart.
type ShoppingItem struct {
	Name            string
	MeasurementUnit string
	Amount          int
}
