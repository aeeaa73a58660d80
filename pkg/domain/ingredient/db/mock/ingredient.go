package mock

import (
	"context"
	"errors"

	"github.com/foodgram-dev/foodgram/pkg/domain"
	kdb "github.com/foodgram-dev/foodgram/pkg/domain/ingredient/db"
	dbmock "github.com/foodgram-dev/foodgram/pkg/domain/internal/db/mock"
)

type IngredientInterface struct {
	Impl struct {
		Get  func(ctx context.Context, ids []int) (map[int]domain.Ingredient, error)
		Find func(ctx context.Context, filter domain.IngredientFilter) ([]domain.Ingredient, error)
		Load func(ctx context.Context, specs []domain.IngredientSpec) (int, error)
	}

	Calls struct {
		Get  dbmock.CallLog[[]int]
		Find dbmock.CallLog[domain.IngredientFilter]
		Load dbmock.CallLog[[]domain.IngredientSpec]
	}
}

func NewIngredientInterface() *IngredientInterface {
	return &IngredientInterface{}
}

var _ kdb.Interface = &IngredientInterface{}

func (m *IngredientInterface) Get(ctx context.Context, ids []int) (map[int]domain.Ingredient, error) {
	m.Calls.Get = append(m.Calls.Get, ids)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, ids)
	}

	panic(errors.New("it should not be called"))
}

func (m *IngredientInterface) Find(
	ctx context.Context, filter domain.IngredientFilter,
) ([]domain.Ingredient, error) {
	m.Calls.Find = append(m.Calls.Find, filter)
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, filter)
	}

	panic(errors.New("it should not be called"))
}

func (m *IngredientInterface) Load(ctx context.Context, specs []domain.IngredientSpec) (int, error) {
	m.Calls.Load = append(m.Calls.Load, specs)
	if m.Impl.Load != nil {
		return m.Impl.Load(ctx, specs)
	}

	panic(errors.New("it should not be called"))
}
