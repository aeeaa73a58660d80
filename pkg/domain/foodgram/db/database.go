package db

import (
	kschema "github.com/foodgram-dev/foodgram/pkg/conn/postgres/schema"
	kingredient "github.com/foodgram-dev/foodgram/pkg/domain/ingredient/db"
	krecipe "github.com/foodgram-dev/foodgram/pkg/domain/recipe/db"
	ktoken "github.com/foodgram-dev/foodgram/pkg/domain/token/db"
	kuser "github.com/foodgram-dev/foodgram/pkg/domain/user/db"
)

type Database interface {
	Users() kuser.Interface
	Ingredients() kingredient.Interface
	Recipes() krecipe.Interface
	Tokens() ktoken.Interface
	Schema() kschema.Interface
	Close() error
}
