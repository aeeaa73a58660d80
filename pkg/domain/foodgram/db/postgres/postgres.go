package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	kpool "github.com/foodgram-dev/foodgram/pkg/conn/postgres/pool"
	kschema "github.com/foodgram-dev/foodgram/pkg/conn/postgres/schema"
	dbInterface "github.com/foodgram-dev/foodgram/pkg/domain/foodgram/db"
	kingredient "github.com/foodgram-dev/foodgram/pkg/domain/ingredient/db"
	kpgingredient "github.com/foodgram-dev/foodgram/pkg/domain/ingredient/db/postgres"
	krecipe "github.com/foodgram-dev/foodgram/pkg/domain/recipe/db"
	kpgrecipe "github.com/foodgram-dev/foodgram/pkg/domain/recipe/db/postgres"
	ktoken "github.com/foodgram-dev/foodgram/pkg/domain/token/db"
	kpgtoken "github.com/foodgram-dev/foodgram/pkg/domain/token/db/postgres"
	kuser "github.com/foodgram-dev/foodgram/pkg/domain/user/db"
	kpguser "github.com/foodgram-dev/foodgram/pkg/domain/user/db/postgres"
	xe "github.com/foodgram-dev/foodgram/pkg/errors"
	"github.com/foodgram-dev/foodgram/pkg/utils/retry"
)

type foodgramDBPostgres struct {
	pool        *pgxpool.Pool
	users       kuser.Interface
	ingredients kingredient.Interface
	recipes     krecipe.Interface
	tokens      ktoken.Interface
	schema      kschema.Interface
}

type Config struct {
	SchemaRepository string

	// ConnectTimeout bounds the whole wait for the first connection,
	// retries included.
	ConnectTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{ConnectTimeout: time.Minute}
}

type Option func(*Config) *Config

func WithSchemaRepository(repository string) Option {
	return func(c *Config) *Config {
		c.SchemaRepository = repository
		return c
	}
}

func WithConnectTimeout(timeout time.Duration) Option {
	return func(c *Config) *Config {
		c.ConnectTimeout = timeout
		return c
	}
}

func New(
	ctx context.Context,
	url string,
	options ...Option,
) (dbInterface.Database, error) {
	pconf, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	c := DefaultConfig()
	for _, option := range options {
		c = *option(&c)
	}

	// the database container may still be booting when this process
	// starts. keep knocking until it answers or the timeout runs out.
	cctx, cancel := context.WithTimeout(ctx, c.ConnectTimeout)
	defer cancel()
	pool, err := retry.Blocking(
		cctx, retry.Exponential(200*time.Millisecond, 2),
		func() (*pgxpool.Pool, error) {
			p, err := pgxpool.ConnectConfig(cctx, pconf)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", retry.ErrRetry, err)
			}
			return p, nil
		},
	)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	p := kpool.Wrap(pool)
	var schema kschema.Interface = kschema.Null()
	if c.SchemaRepository != "" {
		schema = kschema.New(p, c.SchemaRepository)
	}

	return &foodgramDBPostgres{
		pool:        pool,
		users:       kpguser.New(p),
		ingredients: kpgingredient.New(p),
		recipes:     kpgrecipe.New(p),
		tokens:      kpgtoken.New(p),
		schema:      schema,
	}, nil
}

func (f *foodgramDBPostgres) Users() kuser.Interface {
	return f.users
}

func (f *foodgramDBPostgres) Ingredients() kingredient.Interface {
	return f.ingredients
}

func (f *foodgramDBPostgres) Recipes() krecipe.Interface {
	return f.recipes
}

func (f *foodgramDBPostgres) Tokens() ktoken.Interface {
	return f.tokens
}

func (f *foodgramDBPostgres) Schema() kschema.Interface {
	return f.schema
}

func (f *foodgramDBPostgres) Close() error {
	f.pool.Close()
	return nil
}
