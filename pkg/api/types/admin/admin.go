// Package admin has the row shapes of the staff inspection listings.
//
// Rows carry what the operators look at: related records appear by
// their human-readable names, not by id.
package admin

import (
	"github.com/foodgram-dev/foodgram/pkg/utils/rfctime"
)

// User is a row of the user listing.
type User struct {
	Id        int    `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsStaff   bool   `json:"is_staff"`
}

// Recipe is a row of the recipe listing.
type Recipe struct {
	Id     int    `json:"id"`
	Name   string `json:"name"`
	Author string `json:"author"`

	// Favorited is how many users have marked the recipe as favorite.
	Favorited int `json:"favorited"`

	CookingTime int             `json:"cooking_time"`
	PubDate     rfctime.RFC3339 `json:"pub_date"`
}

func (r *Recipe) Equal(o *Recipe) bool {
	return r.Id == o.Id &&
		r.Name == o.Name &&
		r.Author == o.Author &&
		r.Favorited == o.Favorited &&
		r.CookingTime == o.CookingTime &&
		r.PubDate.Equal(&o.PubDate)
}

// Ingredient is a row of the ingredient listing.
type Ingredient struct {
	Id              int    `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// Follow is a row of the follow listing.
type Follow struct {
	User   string `json:"user"`
	Author string `json:"author"`
}

// Mark is a row of the favorite and shopping cart listings.
type Mark struct {
	User   string `json:"user"`
	Recipe string `json:"recipe"`
}
