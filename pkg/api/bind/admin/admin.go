// Package admin composes domain records into staff listing rows.
package admin

import (
	apiadmin "github.com/foodgram-dev/foodgram/pkg/api/types/admin"
	"github.com/foodgram-dev/foodgram/pkg/domain"
	"github.com/foodgram-dev/foodgram/pkg/utils/rfctime"
)

func ComposeUser(u domain.User) apiadmin.User {
	return apiadmin.User{
		Id:        u.Id,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsStaff:   u.IsStaff,
	}
}

// ComposeRecipe builds a recipe row.
//
// Args
//
// - r: the recipe.
//
// - favorited: how many users have marked it as favorite.
func ComposeRecipe(r domain.Recipe, favorited int) apiadmin.Recipe {
	return apiadmin.Recipe{
		Id:          r.Id,
		Name:        r.Name,
		Author:      r.Author.Username,
		Favorited:   favorited,
		CookingTime: r.CookingTime,
		PubDate:     rfctime.RFC3339(r.PubDate),
	}
}

func ComposeIngredient(i domain.Ingredient) apiadmin.Ingredient {
	return apiadmin.Ingredient{
		Id:              i.Id,
		Name:            i.Name,
		MeasurementUnit: i.MeasurementUnit,
	}
}

// ComposeFollow builds a follow row, naming both sides by username.
func ComposeFollow(f domain.Follow, users map[int]domain.User) apiadmin.Follow {
	return apiadmin.Follow{
		User:   users[f.UserId].Username,
		Author: users[f.AuthorId].Username,
	}
}

// ComposeMark builds a favorite or shopping cart row.
func ComposeMark(
	userId int, recipeId int,
	users map[int]domain.User, recipes map[int]domain.Recipe,
) apiadmin.Mark {
	return apiadmin.Mark{
		User:   users[userId].Username,
		Recipe: recipes[recipeId].Name,
	}
}
