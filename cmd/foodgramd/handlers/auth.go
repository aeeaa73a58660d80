package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	apierr "github.com/foodgram-dev/foodgram/pkg/api/bind/errors"
	apiuser "github.com/foodgram-dev/foodgram/pkg/api/types/users"
	"github.com/foodgram-dev/foodgram/pkg/auth"
	"github.com/foodgram-dev/foodgram/pkg/domain"
	domerr "github.com/foodgram-dev/foodgram/pkg/domain/errors"
	ktokdb "github.com/foodgram-dev/foodgram/pkg/domain/token/db"
	kusrdb "github.com/foodgram-dev/foodgram/pkg/domain/user/db"
)

// Identity is the authenticated requester.
type Identity struct {
	User domain.User

	// TokenId is the id ("jti") of the token the request presented.
	TokenId string
}

const identityKey = "foodgram/identity"

// authScheme is the Authorization scheme carrying API tokens.
const authScheme = "Token"

// TokenAuth resolves "Authorization: Token <credentials>" headers into
// an Identity stored in the request context.
//
// Requests without the header, or with a foreign scheme, pass through
// anonymously; handlers which are not public demand the identity with
// RequireIdentity. A presented token which does not hold (bad
// signature, expired, revoked, or of a gone or deactivated user) is
// rejected here with 401.
func TokenAuth(
	issuer *auth.Issuer,
	dbToken ktokdb.Interface,
	dbUser kusrdb.Interface,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}
			scheme, credentials, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, authScheme) {
				return next(c)
			}

			claims, err := issuer.Verify(strings.TrimSpace(credentials))
			if err != nil {
				return apierr.InvalidToken(err)
			}

			ctx := c.Request().Context()
			if _, err := dbToken.Get(ctx, claims.TokenId); err != nil {
				if errors.Is(err, domerr.ErrMissing) {
					return apierr.InvalidToken(
						fmt.Errorf("token %s is revoked: %w", claims.TokenId, err),
					)
				}
				return apierr.InternalServerError(err)
			}

			users, err := dbUser.Get(ctx, []int{claims.UserId})
			if err != nil {
				return apierr.InternalServerError(err)
			}
			me, ok := users[claims.UserId]
			if !ok || !me.IsActive {
				return apierr.InvalidToken(
					fmt.Errorf("user %d is gone or deactivated", claims.UserId),
				)
			}

			SetIdentity(c, Identity{User: me, TokenId: claims.TokenId})
			return next(c)
		}
	}
}

// SetIdentity binds an identity to the request.
func SetIdentity(c echo.Context, identity Identity) {
	c.Set(identityKey, identity)
}

// CurrentIdentity is the identity TokenAuth resolved, if any.
func CurrentIdentity(c echo.Context) (Identity, bool) {
	identity, ok := c.Get(identityKey).(Identity)
	return identity, ok
}

// RequireIdentity is CurrentIdentity for handlers closed to anonymous
// requests. The error, if any, is ready to be returned as is.
func RequireIdentity(c echo.Context) (Identity, error) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		return Identity{}, apierr.NotAuthenticated()
	}
	return identity, nil
}

// RequireStaff lets only staff users through to next.
func RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := RequireIdentity(c)
		if err != nil {
			return err
		}
		if !identity.User.IsStaff {
			return apierr.PermissionDenied()
		}
		return next(c)
	}
}

// LoginHandler exchanges email + password for a fresh API token.
//
// Attempts are drawn from limiter, so that the endpoint cannot be used
// to brute-force passwords. Over-limit requests are rejected before
// any credentials are looked at.
func LoginHandler(
	dbUser kusrdb.Interface,
	dbToken ktokdb.Interface,
	issuer *auth.Issuer,
	limiter *rate.Limiter,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !limiter.Allow() {
			return apierr.Throttled()
		}

		login := apiuser.Login{}
		if err := bindJSON(c, &login); err != nil {
			return err
		}

		fields := apierr.Fields{}
		if login.Email == "" {
			fields["email"] = []string{apierr.MsgRequired}
		}
		if login.Password == "" {
			fields["password"] = []string{apierr.MsgRequired}
		}
		if 0 < len(fields) {
			return apierr.ValidationError(fields)
		}

		ctx := c.Request().Context()
		me, err := dbUser.GetByEmail(ctx, login.Email)
		if err != nil {
			if errors.Is(err, domerr.ErrMissing) {
				return apierr.NonFieldError(apierr.MsgInvalidCredentials)
			}
			return apierr.InternalServerError(err)
		}
		if !me.IsActive || !auth.VerifyPassword(me.HashedPassword, login.Password) {
			return apierr.NonFieldError(apierr.MsgInvalidCredentials)
		}

		signed, token, err := issuer.Issue(me.Id, time.Now())
		if err != nil {
			return apierr.InternalServerError(err)
		}
		if err := dbToken.New(ctx, token); err != nil {
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusOK, apiuser.TokenResponse{AuthToken: signed})
	}
}

// LogoutHandler revokes the token the request is authenticated with.
func LogoutHandler(dbToken ktokdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := RequireIdentity(c)
		if err != nil {
			return err
		}

		err = dbToken.Delete(c.Request().Context(), identity.TokenId)
		if err != nil && !errors.Is(err, domerr.ErrMissing) {
			return apierr.InternalServerError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
