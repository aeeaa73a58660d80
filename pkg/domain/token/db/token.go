package db

import (
	"context"
	"time"

	"github.com/foodgram-dev/foodgram/pkg/domain"
)

type Interface interface {
	// record an issued token.
	//
	// Returns
	//
	// - error: ErrConflict when the token id is taken,
	// ErrMissing when the user does not exist.
	New(ctx context.Context, token domain.Token) error

	// Retrieve a token record.
	//
	// Expiry is not checked here; callers compare ExpiresAt themselves.
	//
	// Returns
	//
	// - Token
	//
	// - error: ErrMissing when no record has the id (= token is revoked
	// or was never issued).
	Get(ctx context.Context, id string) (domain.Token, error)

	// revoke a token.
	//
	// Returns
	//
	// - error: ErrMissing when no record has the id.
	Delete(ctx context.Context, id string) error

	// drop records expired at now.
	//
	// Returns
	//
	// - int: number of records dropped
	//
	// - error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
