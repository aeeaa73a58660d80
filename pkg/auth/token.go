// Package auth issues and verifies the API tokens and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/foodgram-dev/foodgram/pkg/domain"

	jwt "github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken error = errors.New("invalid token")

// Claims carried by a verified token.
type Claims struct {
	// UserId is the subject of the token.
	UserId int

	// TokenId is the jti claim. A token is honored only while the
	// auth_token record with this id exists.
	TokenId string

	ExpiresAt time.Time
}

// Issuer signs and verifies API tokens with a single HS256 secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// New returns an Issuer.
//
// # Args
//
// - secret: key to sign and verify tokens
//
// - ttl: how long issued tokens live
func New(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{secret: secret, ttl: ttl}
}

// Issue signs a JWS (JSON Web Signature) token for the user.
//
// # Args
//
// - userId: the subject
//
// - now: issue time
//
// # Returns
//
// - string: JWS token string
//
// - domain.Token: server-side record to be stored while the token is honored
//
// - error: from [jwt.Token.SignedString]
func (iss *Issuer) Issue(userId int, now time.Time) (string, domain.Token, error) {
	record := domain.Token{
		Id:        uuid.NewString(),
		UserId:    userId,
		IssuedAt:  now.Truncate(time.Second),
		ExpiresAt: now.Add(iss.ttl).Truncate(time.Second),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		// jti
		ID: record.Id,

		// sub
		Subject: strconv.Itoa(userId),

		IssuedAt:  jwt.NewNumericDate(record.IssuedAt),
		ExpiresAt: jwt.NewNumericDate(record.ExpiresAt),
	})
	signed, err := tok.SignedString(iss.secret)
	if err != nil {
		return "", domain.Token{}, err
	}
	return signed, record, nil
}

// Verify parses a JWS token and returns its claims.
//
// Only the signature and the exp claim are checked here; whether the
// jti is still honored is for the caller to look up.
//
// # Returns
//
// - Claims
//
// - error: [ErrInvalidToken] when the token is malformed, signed with
// another key or algorithm, expired, or lacks claims;
// or any other errors from [jwt.ParseWithClaims]
func (iss *Issuer) Verify(token string) (Claims, error) {
	registered := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, registered, func(t *jwt.Token) (interface{}, error) {
		if alg := t.Method.Alg(); alg != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("%w: unexpected algorithm: %s", ErrInvalidToken, alg)
		}
		return iss.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return Claims{}, errors.Join(ErrInvalidToken, err)
		}
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return Claims{}, errors.Join(ErrInvalidToken, err)
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, errors.Join(ErrInvalidToken, err)
		}
		return Claims{}, err
	}

	userId, err := strconv.Atoi(registered.Subject)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: sub is not a user id: %q", ErrInvalidToken, registered.Subject)
	}
	if registered.ID == "" {
		return Claims{}, fmt.Errorf("%w: no jti", ErrInvalidToken)
	}
	if registered.ExpiresAt == nil {
		return Claims{}, fmt.Errorf("%w: no exp", ErrInvalidToken)
	}

	return Claims{
		UserId:    userId,
		TokenId:   registered.ID,
		ExpiresAt: registered.ExpiresAt.Time,
	}, nil
}
