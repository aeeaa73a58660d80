package tables

import (
	"time"
)

// golang representation of records of the PostgreSQL tables.
//
// Join tables with nothing but foreign keys carry no Id field; their
// serial is left to the database.

type User struct {
	Id           int
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string

	// empty means null
	Avatar string

	IsStaff     bool
	IsSuperuser bool
	IsActive    bool
	DateJoined  time.Time
}

func (a *User) Equal(b *User) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Id == b.Id &&
		a.Email == b.Email &&
		a.Username == b.Username &&
		a.FirstName == b.FirstName &&
		a.LastName == b.LastName &&
		a.PasswordHash == b.PasswordHash &&
		a.Avatar == b.Avatar &&
		a.IsStaff == b.IsStaff &&
		a.IsSuperuser == b.IsSuperuser &&
		a.IsActive == b.IsActive &&
		a.DateJoined.Equal(b.DateJoined)
}

type Follow struct {
	UserId   int
	AuthorId int
}

type Ingredient struct {
	Id              int
	Name            string
	MeasurementUnit string
}

func (a *Ingredient) Equal(b *Ingredient) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

type Recipe struct {
	Id          int
	AuthorId    int
	Name        string
	Image       string
	Text        string
	CookingTime int
	ShortLink   string
	PubDate     time.Time
}

func (a *Recipe) Equal(b *Recipe) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Id == b.Id &&
		a.AuthorId == b.AuthorId &&
		a.Name == b.Name &&
		a.Image == b.Image &&
		a.Text == b.Text &&
		a.CookingTime == b.CookingTime &&
		a.ShortLink == b.ShortLink &&
		a.PubDate.Equal(b.PubDate)
}

type RecipeIngredient struct {
	RecipeId     int
	IngredientId int
	Amount       int
}

type Favorite struct {
	UserId   int
	RecipeId int
}

type ShoppingCart struct {
	UserId   int
	RecipeId int
}

type AuthToken struct {
	Id        string
	UserId    int
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (a *AuthToken) Equal(b *AuthToken) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Id == b.Id &&
		a.UserId == b.UserId &&
		a.IssuedAt.Equal(b.IssuedAt) &&
		a.ExpiresAt.Equal(b.ExpiresAt)
}
