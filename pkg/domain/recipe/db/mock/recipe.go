package mock

import (
	"context"
	"errors"

	"github.com/foodgram-dev/foodgram/pkg/domain"
	dbmock "github.com/foodgram-dev/foodgram/pkg/domain/internal/db/mock"
	kdb "github.com/foodgram-dev/foodgram/pkg/domain/recipe/db"
)

type RecipeInterface struct {
	Impl struct {
		New            func(ctx context.Context, authorId int, spec domain.RecipeSpec, shortLink string) (int, error)
		Get            func(ctx context.Context, ids []int) (map[int]domain.Recipe, error)
		GetByShortLink func(ctx context.Context, code string) (int, error)
		Find           func(ctx context.Context, filter domain.RecipeFilter, window domain.Window) (domain.Page[domain.Recipe], error)
		Update         func(ctx context.Context, recipeId int, spec domain.RecipeSpec) error
		Delete         func(ctx context.Context, recipeId int) error
		AddFavorite    func(ctx context.Context, userId int, recipeId int) error
		RemoveFavorite func(ctx context.Context, userId int, recipeId int) error
		AddToCart      func(ctx context.Context, userId int, recipeId int) error
		RemoveFromCart func(ctx context.Context, userId int, recipeId int) error
		Favorited      func(ctx context.Context, userId int, recipeIds []int) (map[int]bool, error)
		InCart         func(ctx context.Context, userId int, recipeIds []int) (map[int]bool, error)
		ShoppingList   func(ctx context.Context, userId int) ([]domain.ShoppingItem, error)
		FavoriteCounts func(ctx context.Context, recipeIds []int) (map[int]int, error)
		FindFavorites  func(ctx context.Context, search string) ([]domain.Favorite, error)
		FindCartItems  func(ctx context.Context, search string) ([]domain.CartItem, error)
	}

	Calls struct {
		New dbmock.CallLog[struct {
			AuthorId  int
			Spec      domain.RecipeSpec
			ShortLink string
		}]
		Get            dbmock.CallLog[[]int]
		GetByShortLink dbmock.CallLog[string]
		Find           dbmock.CallLog[struct {
			Filter domain.RecipeFilter
			Window domain.Window
		}]
		Update dbmock.CallLog[struct {
			RecipeId int
			Spec     domain.RecipeSpec
		}]
		Delete         dbmock.CallLog[int]
		AddFavorite    dbmock.CallLog[domain.Favorite]
		RemoveFavorite dbmock.CallLog[domain.Favorite]
		AddToCart      dbmock.CallLog[domain.CartItem]
		RemoveFromCart dbmock.CallLog[domain.CartItem]
		Favorited      dbmock.CallLog[struct {
			UserId    int
			RecipeIds []int
		}]
		InCart dbmock.CallLog[struct {
			UserId    int
			RecipeIds []int
		}]
		ShoppingList   dbmock.CallLog[int]
		FavoriteCounts dbmock.CallLog[[]int]
		FindFavorites  dbmock.CallLog[string]
		FindCartItems  dbmock.CallLog[string]
	}
}

func NewRecipeInterface() *RecipeInterface {
	return &RecipeInterface{}
}

var _ kdb.Interface = &RecipeInterface{}

func (m *RecipeInterface) New(
	ctx context.Context, authorId int, spec domain.RecipeSpec, shortLink string,
) (int, error) {
	m.Calls.New = append(m.Calls.New, struct {
		AuthorId  int
		Spec      domain.RecipeSpec
		ShortLink string
	}{AuthorId: authorId, Spec: spec, ShortLink: shortLink})
	if m.Impl.New != nil {
		return m.Impl.New(ctx, authorId, spec, shortLink)
	}

	panic(errors.New("it should not be called"))
}

func (m *RecipeInterface) Get(ctx context.Context, ids []int) (map[int]domain.Recipe, error) {
	m.Calls.Get = append(m.Calls.Get, ids)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, ids)
	}

	panic(errors.New("it should not be called"))
}

func (m *RecipeInterface) GetByShortLink(ctx context.Context, code string) (int, error) {
	m.Calls.GetByShortLink = append(m.Calls.GetByShortLink, code)
	if m.Impl.GetByShortLink != nil {
		return m.Impl.GetByShortLink(ctx, code)
	}

	panic(errors.New("it should not be called"))
}

func (m *RecipeInterface) Find(
	ctx context.Context, filter domain.RecipeFilter, window domain.Window,
) (domain.Page[domain.Recipe], error) {
	m.Calls.Find = append(m.Calls.Find, struct {
		Filter domain.RecipeFilter
		Window domain.Window
	}{Filter: filter, Window: window})
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, filter, window)
	}

	panic(errors.New("it should not be called"))
}

func (m *RecipeInterface) Update(ctx context.Context, recipeId int, spec domain.RecipeSpec) error {
	m.Calls.Update = append(m.Calls.Update, struct {
		RecipeId int
		Spec     domain.RecipeSpec
	}{RecipeId: recipeId, Spec: spec})
	if m.Impl.Update != nil {
		return m.Impl.Update(ctx, recipeId, spec)
	}

	panic(errors.New("it should not be called"))
}

func (m *RecipeInterface) Delete(ctx context.Context, recipeId int) error {
	m.Calls.Delete = append(m.Calls.Delete, recipeId)
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, recipeId)
	}

	panic(errors.New("it should not be called"))
}

func (m *RecipeInterface) AddFavorite(ctx context.Context, userId int, recipeId int) error {
	m.Calls.AddFavorite = append(m.Calls.AddFavorite, domain.Favorite{UserId: userId, RecipeId: recipeId})
	if m.Impl.AddFavorite != nil {
		return m.Impl.AddFavorite(ctx, userId, recipeId)
	}

	panic(errors.New("it should not be called"))
}

func (m *RecipeInterface) RemoveFavorite(ctx context.Context, userId int, recipeId int) error {
	m.Calls.RemoveFavorite = append(m.Calls.RemoveFavorite, domain.Favorite{UserId: userId, RecipeId: recipeId})
	if m.Impl.RemoveFavorite != nil {
		return m.Impl.RemoveFavorite(ctx, userId, recipeId)
	}

	panic(errors.New("it should not be called"))
}

func (m *RecipeInterface) AddToCart(ctx context.Context, userId int, recipeId int) error {
	m.Calls.AddToCart = append(m.Calls.AddToCart, domain.CartItem{UserId: userId, RecipeId: recipeId})
	if m.Impl.AddToCart != nil {
		return m.Impl.AddToCart(ctx, userId, recipeId)
	}

	panic(errors.New("it should not be called"))
}

func (m *RecipeInterface) RemoveFromCart(ctx context.Context, userId int, recipeId int) error {
	m.Calls.RemoveFromCart = append(m.Calls.RemoveFromCart, domain.CartItem{UserId: userId, RecipeId: recipeId})
	if m.Impl.RemoveFromCart != nil {
		return m.Impl.RemoveFromCart(ctx, userId, recipeId)
	}

	panic(errors.New("it should not be called"))
}

func (m *RecipeInterface) Favorited(
	ctx context.Context, userId int, recipeIds []int,
) (map[int]bool, error) {
	m.Calls.Favorited = append(m.Calls.Favorited, struct {
		UserId    int
		RecipeIds []int
	}{UserId: userId, RecipeIds: recipeIds})
	if m.Impl.Favorited != nil {
		return m.Impl.Favorited(ctx, userId, recipeIds)
	}

	panic(errors.New("it should not be called"))
}

func (m *RecipeInterface) InCart(
	ctx context.Context, userId int, recipeIds []int,
) (map[int]bool, error) {
	m.Calls.InCart = append(m.Calls.InCart, struct {
		UserId    int
		RecipeIds []int
	}{UserId: userId, RecipeIds: recipeIds})
	if m.Impl.InCart != nil {
		return m.Impl.InCart(ctx, userId, recipeIds)
	}

	panic(errors.New("it should not be called"))
}

func (m *RecipeInterface) ShoppingList(ctx context.Context, userId int) ([]domain.ShoppingItem, error) {
	m.Calls.ShoppingList = append(m.Calls.ShoppingList, userId)
	if m.Impl.ShoppingList != nil {
		return m.Impl.ShoppingList(ctx, userId)
	}

	panic(errors.New("it should not be called"))
}

func (m *RecipeInterface) FavoriteCounts(ctx context.Context, recipeIds []int) (map[int]int, error) {
	m.Calls.FavoriteCounts = append(m.Calls.FavoriteCounts, recipeIds)
	if m.Impl.FavoriteCounts != nil {
		return m.Impl.FavoriteCounts(ctx, recipeIds)
	}

	panic(errors.New("it should not be called"))
}

func (m *RecipeInterface) FindFavorites(ctx context.Context, search string) ([]domain.Favorite, error) {
	m.Calls.FindFavorites = append(m.Calls.FindFavorites, search)
	if m.Impl.FindFavorites != nil {
		return m.Impl.FindFavorites(ctx, search)
	}

	panic(errors.New("it should not be called"))
}

func (m *RecipeInterface) FindCartItems(ctx context.Context, search string) ([]domain.CartItem, error) {
	m.Calls.FindCartItems = append(m.Calls.FindCartItems, search)
	if m.Impl.FindCartItems != nil {
		return m.Impl.FindCartItems(ctx, search)
	}

	panic(errors.New("it should not be called"))
}
