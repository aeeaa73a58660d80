package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	apierr "github.com/foodgram-dev/foodgram/pkg/api/bind/errors"
	bindpaging "github.com/foodgram-dev/foodgram/pkg/api/bind/paging"
	bindsubsc "github.com/foodgram-dev/foodgram/pkg/api/bind/subscriptions"
	bindusers "github.com/foodgram-dev/foodgram/pkg/api/bind/users"
	apisubsc "github.com/foodgram-dev/foodgram/pkg/api/types/subscriptions"
	apiuser "github.com/foodgram-dev/foodgram/pkg/api/types/users"
	"github.com/foodgram-dev/foodgram/pkg/auth"
	"github.com/foodgram-dev/foodgram/pkg/domain"
	domerr "github.com/foodgram-dev/foodgram/pkg/domain/errors"
	krcpdb "github.com/foodgram-dev/foodgram/pkg/domain/recipe/db"
	kusrdb "github.com/foodgram-dev/foodgram/pkg/domain/user/db"
	"github.com/foodgram-dev/foodgram/pkg/media"
	"github.com/foodgram-dev/foodgram/pkg/utils/slices"
)

// UserRegisterHandler creates an account.
//
// Field failures are collected into a single response, so a client
// fixing its form sees all of them at once.
func UserRegisterHandler(dbUser kusrdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := apiuser.Register{}
		if err := bindJSON(c, &req); err != nil {
			return err
		}

		ctx := c.Request().Context()
		fields := apierr.Fields{}

		switch {
		case req.Email == "":
			fields["email"] = []string{apierr.MsgRequired}
		case domain.MaxEmailLength < utf8.RuneCountInString(req.Email):
			fields["email"] = []string{apierr.MsgTooLong(domain.MaxEmailLength)}
		case !domain.ValidEmail(req.Email):
			fields["email"] = []string{apierr.MsgInvalidEmail}
		}

		switch {
		case req.Username == "":
			fields["username"] = []string{apierr.MsgRequired}
		case domain.MaxUsernameLength < utf8.RuneCountInString(req.Username):
			fields["username"] = []string{apierr.MsgTooLong(domain.MaxUsernameLength)}
		case !domain.ValidUsername(req.Username):
			fields["username"] = []string{apierr.MsgInvalidValue}
		}

		switch {
		case req.FirstName == "":
			fields["first_name"] = []string{apierr.MsgRequired}
		case domain.MaxNameLength < utf8.RuneCountInString(req.FirstName):
			fields["first_name"] = []string{apierr.MsgTooLong(domain.MaxNameLength)}
		}

		switch {
		case req.LastName == "":
			fields["last_name"] = []string{apierr.MsgRequired}
		case domain.MaxNameLength < utf8.RuneCountInString(req.LastName):
			fields["last_name"] = []string{apierr.MsgTooLong(domain.MaxNameLength)}
		}

		switch {
		case req.Password == "":
			fields["password"] = []string{apierr.MsgRequired}
		case utf8.RuneCountInString(req.Password) < domain.MinPasswordLength:
			fields["password"] = []string{apierr.MsgPasswordTooShort(domain.MinPasswordLength)}
		case domain.MaxPasswordLength < utf8.RuneCountInString(req.Password):
			fields["password"] = []string{apierr.MsgTooLong(domain.MaxPasswordLength)}
		}

		if _, rejected := fields["email"]; !rejected {
			if _, err := dbUser.GetByEmail(ctx, req.Email); err == nil {
				fields["email"] = []string{apierr.MsgUnique}
			} else if !errors.Is(err, domerr.ErrMissing) {
				return apierr.InternalServerError(err)
			}
		}
		if _, rejected := fields["username"]; !rejected {
			if _, err := dbUser.GetByUsername(ctx, req.Username); err == nil {
				fields["username"] = []string{apierr.MsgUnique}
			} else if !errors.Is(err, domerr.ErrMissing) {
				return apierr.InternalServerError(err)
			}
		}

		if 0 < len(fields) {
			return apierr.ValidationError(fields)
		}

		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		id, err := dbUser.New(ctx, domain.UserSpec{
			Email:          req.Email,
			Username:       req.Username,
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			HashedPassword: hashed,
		})
		if err != nil {
			// uniqueness passed above, so this is a lost race or worse
			return apierr.InternalServerError(err)
		}

		return c.JSON(http.StatusCreated, bindusers.ComposeRegistered(domain.User{
			Id:        id,
			Email:     req.Email,
			Username:  req.Username,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		}))
	}
}

// FindUsersHandler lists accounts, page by page.
func FindUsersHandler(dbUser kusrdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		params, err := bindpaging.ParseParams(c.QueryParams())
		if err != nil {
			return apierr.InvalidPage()
		}

		ctx := c.Request().Context()
		page, err := dbUser.Find(ctx, domain.UserFilter{}, params.Window())
		if err != nil {
			return apierr.InternalServerError(err)
		}
		if params.OutOfRange(page.Count) {
			return apierr.InvalidPage()
		}

		following := map[int]bool{}
		if me, ok := CurrentIdentity(c); ok {
			authorIds := slices.Map(page.Items, func(u domain.User) int { return u.Id })
			if following, err = dbUser.Following(ctx, me.User.Id, authorIds); err != nil {
				return apierr.InternalServerError(err)
			}
		}

		href := mediaHref(c)
		profiles := slices.Map(page.Items, func(u domain.User) apiuser.Profile {
			return bindusers.ComposeProfile(href, u, following[u.Id])
		})
		return c.JSON(
			http.StatusOK,
			bindpaging.Compose(requestURL(c), params, page.Count, profiles),
		)
	}
}

// GetUserHandler shows the profile of the user at :id.
func GetUserHandler(dbUser kusrdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		userId, err := paramId(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		users, err := dbUser.Get(ctx, []int{userId})
		if err != nil {
			return apierr.InternalServerError(err)
		}
		u, ok := users[userId]
		if !ok {
			return apierr.NotFound()
		}

		subscribed := false
		if me, ok := CurrentIdentity(c); ok {
			following, err := dbUser.Following(ctx, me.User.Id, []int{userId})
			if err != nil {
				return apierr.InternalServerError(err)
			}
			subscribed = following[userId]
		}

		return c.JSON(http.StatusOK, bindusers.ComposeProfile(mediaHref(c), u, subscribed))
	}
}

// GetMeHandler shows the profile of the requester.
func GetMeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := RequireIdentity(c)
		if err != nil {
			return err
		}
		return c.JSON(
			http.StatusOK,
			bindusers.ComposeProfile(mediaHref(c), identity.User, false),
		)
	}
}

// PutAvatarHandler stores a new avatar, sent as a base64 data URI, and
// discards the previous one.
func PutAvatarHandler(dbUser kusrdb.Interface, store *media.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := RequireIdentity(c)
		if err != nil {
			return err
		}

		req := apiuser.SetAvatar{}
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		if req.Avatar == "" {
			return apierr.ValidationError(apierr.Fields{"avatar": {apierr.MsgRequired}})
		}

		relpath, err := store.SaveDataURI(req.Avatar, media.UserAvatars)
		if err != nil {
			if errors.Is(err, media.ErrBadImage) {
				return apierr.ValidationError(apierr.Fields{"avatar": {apierr.MsgInvalidImage}})
			}
			return apierr.InternalServerError(err)
		}

		prev, err := dbUser.UpdateAvatar(c.Request().Context(), identity.User.Id, relpath)
		if err != nil {
			if rmErr := store.Remove(relpath); rmErr != nil {
				c.Logger().Warnf("orphaned avatar file %s: %s", relpath, rmErr)
			}
			return apierr.InternalServerError(err)
		}
		if err := store.Remove(prev); err != nil {
			c.Logger().Warnf("stale avatar file %s: %s", prev, err)
		}

		return c.JSON(http.StatusOK, apiuser.AvatarResponse{Avatar: mediaHref(c)(relpath)})
	}
}

// DeleteAvatarHandler drops the avatar of the requester.
func DeleteAvatarHandler(dbUser kusrdb.Interface, store *media.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := RequireIdentity(c)
		if err != nil {
			return err
		}

		prev, err := dbUser.UpdateAvatar(c.Request().Context(), identity.User.Id, "")
		if err != nil {
			return apierr.InternalServerError(err)
		}
		if prev == "" {
			return apierr.BadRequestError("Аватар не установлен")
		}
		if err := store.Remove(prev); err != nil {
			c.Logger().Warnf("stale avatar file %s: %s", prev, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// SetPasswordHandler replaces the password of the requester, given
// their current one.
func SetPasswordHandler(dbUser kusrdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := RequireIdentity(c)
		if err != nil {
			return err
		}

		req := apiuser.SetPassword{}
		if err := bindJSON(c, &req); err != nil {
			return err
		}

		fields := apierr.Fields{}
		if req.CurrentPassword == "" {
			fields["current_password"] = []string{apierr.MsgRequired}
		}
		if req.NewPassword == "" {
			fields["new_password"] = []string{apierr.MsgRequired}
		}
		if 0 < len(fields) {
			return apierr.ValidationError(fields)
		}

		if !auth.VerifyPassword(identity.User.HashedPassword, req.CurrentPassword) {
			return apierr.ValidationError(apierr.Fields{
				"current_password": {"Текущий пароль неверен"},
			})
		}
		if utf8.RuneCountInString(req.NewPassword) < domain.MinPasswordLength {
			return apierr.ValidationError(apierr.Fields{
				"new_password": {apierr.MsgPasswordTooShort(domain.MinPasswordLength)},
			})
		}
		if domain.MaxPasswordLength < utf8.RuneCountInString(req.NewPassword) {
			return apierr.ValidationError(apierr.Fields{
				"new_password": {apierr.MsgTooLong(domain.MaxPasswordLength)},
			})
		}

		hashed, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		if err := dbUser.UpdatePassword(c.Request().Context(), identity.User.Id, hashed); err != nil {
			return apierr.InternalServerError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// recipesLimitParam caps how many recipes each subscription entry
// embeds. Absent or unparsable values mean no cap.
func recipesLimitParam(c echo.Context) int {
	v := c.QueryParam("recipes_limit")
	if v == "" {
		return -1
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// FindSubscriptionsHandler lists the authors the requester follows,
// each with a digest of their recipes.
func FindSubscriptionsHandler(dbUser kusrdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := RequireIdentity(c)
		if err != nil {
			return err
		}
		params, err := bindpaging.ParseParams(c.QueryParams())
		if err != nil {
			return apierr.InvalidPage()
		}

		ctx := c.Request().Context()
		page, err := dbUser.Subscriptions(
			ctx, identity.User.Id, recipesLimitParam(c), params.Window(),
		)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		if params.OutOfRange(page.Count) {
			return apierr.InvalidPage()
		}

		href := mediaHref(c)
		results := slices.Map(page.Items, func(s domain.Subscription) apisubsc.WithRecipes {
			return bindsubsc.ComposeWithRecipes(href, s)
		})
		return c.JSON(
			http.StatusOK,
			bindpaging.Compose(requestURL(c), params, page.Count, results),
		)
	}
}

// SubscribeHandler makes the requester follow the user at :id. The
// response carries the followed author as a subscription entry.
func SubscribeHandler(dbUser kusrdb.Interface, dbRecipe krcpdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := RequireIdentity(c)
		if err != nil {
			return err
		}
		authorId, err := paramId(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		users, err := dbUser.Get(ctx, []int{authorId})
		if err != nil {
			return apierr.InternalServerError(err)
		}
		author, ok := users[authorId]
		if !ok {
			return apierr.NotFound()
		}

		if err := dbUser.Subscribe(ctx, identity.User.Id, authorId); err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalid):
				return apierr.BadRequestErrors("Нельзя подписаться на самого себя")
			case errors.Is(err, domerr.ErrConflict):
				return apierr.BadRequestErrors("Вы уже подписаны на этого пользователя")
			case errors.Is(err, domerr.ErrMissing):
				return apierr.NotFound()
			}
			return apierr.InternalServerError(err)
		}

		recipes, err := dbRecipe.Find(
			ctx, domain.RecipeFilter{Author: &authorId}, domain.Window{},
		)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		bodies := slices.Map(recipes.Items, func(r domain.Recipe) domain.RecipeBody {
			return r.RecipeBody
		})
		if limit := recipesLimitParam(c); 0 <= limit && limit < len(bodies) {
			bodies = bodies[:limit]
		}

		return c.JSON(http.StatusCreated, bindsubsc.ComposeWithRecipes(
			mediaHref(c),
			domain.Subscription{
				Author:       author,
				Recipes:      bodies,
				RecipesCount: recipes.Count,
			},
		))
	}
}

// UnsubscribeHandler makes the requester not follow the user at :id.
func UnsubscribeHandler(dbUser kusrdb.Interface) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := RequireIdentity(c)
		if err != nil {
			return err
		}
		authorId, err := paramId(c, "id")
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		users, err := dbUser.Get(ctx, []int{authorId})
		if err != nil {
			return apierr.InternalServerError(err)
		}
		if _, ok := users[authorId]; !ok {
			return apierr.NotFound()
		}

		if err := dbUser.Unsubscribe(ctx, identity.User.Id, authorId); err != nil {
			if errors.Is(err, domerr.ErrMissing) {
				return apierr.BadRequestDetail("Подписка не существует.")
			}
			return apierr.InternalServerError(err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
