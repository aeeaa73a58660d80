package mock

import (
	kschema "github.com/foodgram-dev/foodgram/pkg/conn/postgres/schema"
	schmock "github.com/foodgram-dev/foodgram/pkg/conn/postgres/schema/mock"
	dbInterface "github.com/foodgram-dev/foodgram/pkg/domain/foodgram/db"
	kingredient "github.com/foodgram-dev/foodgram/pkg/domain/ingredient/db"
	ingmock "github.com/foodgram-dev/foodgram/pkg/domain/ingredient/db/mock"
	krecipe "github.com/foodgram-dev/foodgram/pkg/domain/recipe/db"
	rcpmock "github.com/foodgram-dev/foodgram/pkg/domain/recipe/db/mock"
	ktoken "github.com/foodgram-dev/foodgram/pkg/domain/token/db"
	tokmock "github.com/foodgram-dev/foodgram/pkg/domain/token/db/mock"
	kuser "github.com/foodgram-dev/foodgram/pkg/domain/user/db"
	usrmock "github.com/foodgram-dev/foodgram/pkg/domain/user/db/mock"
)

// Database bundles the per-store mocks behind the Database interface.
type Database struct {
	UsersMock       *usrmock.UserInterface
	IngredientsMock *ingmock.IngredientInterface
	RecipesMock     *rcpmock.RecipeInterface
	TokensMock      *tokmock.TokenInterface
	SchemaMock      *schmock.SchemaInterface

	CloseCalls int
}

func NewDatabase() *Database {
	return &Database{
		UsersMock:       usrmock.NewUserInterface(),
		IngredientsMock: ingmock.NewIngredientInterface(),
		RecipesMock:     rcpmock.NewRecipeInterface(),
		TokensMock:      tokmock.NewTokenInterface(),
		SchemaMock:      schmock.NewSchemaInterface(),
	}
}

var _ dbInterface.Database = &Database{}

func (m *Database) Users() kuser.Interface {
	return m.UsersMock
}

func (m *Database) Ingredients() kingredient.Interface {
	return m.IngredientsMock
}

func (m *Database) Recipes() krecipe.Interface {
	return m.RecipesMock
}

func (m *Database) Tokens() ktoken.Interface {
	return m.TokensMock
}

func (m *Database) Schema() kschema.Interface {
	return m.SchemaMock
}

func (m *Database) Close() error {
	m.CloseCalls += 1
	return nil
}
