package main

import (
	"fmt"
	"net"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/foodgram-dev/foodgram/cmd/foodgramd/handlers"
	apierr "github.com/foodgram-dev/foodgram/pkg/api/bind/errors"
	"github.com/foodgram-dev/foodgram/pkg/auth"
	"github.com/foodgram-dev/foodgram/pkg/configs"
	kdb "github.com/foodgram-dev/foodgram/pkg/domain/foodgram/db"
	"github.com/foodgram-dev/foodgram/pkg/media"
	"github.com/foodgram-dev/foodgram/pkg/utils/echoutil"
	"github.com/foodgram-dev/foodgram/web"
)

var API_ROOT = "/api"

func api(subpath string) string {
	if !strings.HasSuffix(subpath, "/") {
		subpath += "/"
	}
	return fmt.Sprintf("%s/%s", API_ROOT, subpath)
}

// Login throttling. The bucket refills once a second and holds a
// small burst.
const (
	loginRatePerSec = 1
	loginBurst      = 10
)

// hostAllowed matches host against patterns: exact, ".domain" for the
// domain and its subdomains, or "*" for anything.
func hostAllowed(host string, patterns []string) bool {
	for _, pattern := range patterns {
		switch {
		case pattern == "*":
			return true
		case strings.HasPrefix(pattern, "."):
			if host == pattern[1:] || strings.HasSuffix(host, pattern) {
				return true
			}
		case host == pattern:
			return true
		}
	}
	return false
}

// checkHost rejects requests addressed to a host not served here.
func checkHost(patterns []string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			host := c.Request().Host
			if h, _, err := net.SplitHostPort(host); err == nil {
				host = h
			}
			if !hostAllowed(host, patterns) {
				return apierr.BadRequestDetail(
					fmt.Sprintf("Invalid HTTP_HOST header: '%s'.", c.Request().Host),
				)
			}
			return next(c)
		}
	}
}

func BuildServer(
	conf *configs.Config,
	db kdb.Database,
	store *media.Store,
	issuer *auth.Issuer,
	loglevel string,
) *echo.Echo {

	e := echo.New()

	echoutil.SetLevel(e, loglevel)

	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(apierr.Normalize(err, ctx), ctx)
		e.Logger.Error(err)
	}

	e.Pre(middleware.AddTrailingSlash())

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(checkHost(conf.AllowedHosts()))

	// logging for server-side latency.
	e.Use(echoutil.LogHandlerFunc)

	e.Use(handlers.TokenAuth(issuer, db.Tokens(), db.Users()))

	e.GET("/", handlers.RootHandler())
	e.GET("/s/:code/", handlers.ResolveShortLinkHandler(db.Recipes()))

	e.StaticFS(api("docs"), echo.MustSubFS(web.Static, "static/docs"))
	e.Static("/media", conf.MediaRoot())
	e.Static("/static", conf.StaticRoot())

	{ // accounts
		e.POST(api("users"), handlers.UserRegisterHandler(db.Users()))
		e.GET(api("users"), handlers.FindUsersHandler(db.Users()))
		e.GET(api("users/me"), handlers.GetMeHandler())
		e.PUT(api("users/me/avatar"), handlers.PutAvatarHandler(db.Users(), store))
		e.DELETE(api("users/me/avatar"), handlers.DeleteAvatarHandler(db.Users(), store))
		e.POST(api("users/set_password"), handlers.SetPasswordHandler(db.Users()))
		e.GET(api("users/subscriptions"), handlers.FindSubscriptionsHandler(db.Users()))
		e.GET(api("users/:id"), handlers.GetUserHandler(db.Users()))
		e.POST(api("users/:id/subscribe"), handlers.SubscribeHandler(db.Users(), db.Recipes()))
		e.DELETE(api("users/:id/subscribe"), handlers.UnsubscribeHandler(db.Users()))
	}

	{ // tokens
		limiter := rate.NewLimiter(rate.Limit(loginRatePerSec), loginBurst)
		e.POST(api("auth/token/login"), handlers.LoginHandler(
			db.Users(), db.Tokens(), issuer, limiter,
		))
		e.POST(api("auth/token/logout"), handlers.LogoutHandler(db.Tokens()))
	}

	{ // ingredients
		e.GET(api("ingredients"), handlers.FindIngredientsHandler(db.Ingredients()))
		e.GET(api("ingredients/:id"), handlers.GetIngredientHandler(db.Ingredients()))
	}

	{ // recipes
		e.GET(api("recipes"), handlers.FindRecipesHandler(db.Recipes(), db.Users()))
		e.POST(api("recipes"), handlers.RecipeRegisterHandler(
			db.Recipes(), db.Ingredients(), store,
		))
		e.GET(api("recipes/download_shopping_cart"), handlers.DownloadShoppingCartHandler(db.Recipes()))
		e.GET(api("recipes/:id"), handlers.GetRecipeHandler(db.Recipes(), db.Users()))
		e.PATCH(api("recipes/:id"), handlers.UpdateRecipeHandler(
			db.Recipes(), db.Ingredients(), db.Users(), store,
		))
		e.DELETE(api("recipes/:id"), handlers.DeleteRecipeHandler(db.Recipes(), store))
		e.POST(api("recipes/:id/favorite"), handlers.AddFavoriteHandler(db.Recipes()))
		e.DELETE(api("recipes/:id/favorite"), handlers.RemoveFavoriteHandler(db.Recipes()))
		e.POST(api("recipes/:id/shopping_cart"), handlers.AddToCartHandler(db.Recipes()))
		e.DELETE(api("recipes/:id/shopping_cart"), handlers.RemoveFromCartHandler(db.Recipes()))
		e.GET(api("recipes/:id/get-link"), handlers.GetShortLinkHandler(db.Recipes()))
	}

	{ // operator listings
		admin := e.Group("/admin", handlers.RequireStaff)
		admin.GET("/users/", handlers.AdminUsersHandler(db.Users()))
		admin.GET("/recipes/", handlers.AdminRecipesHandler(db.Recipes()))
		admin.GET("/ingredients/", handlers.AdminIngredientsHandler(db.Ingredients()))
		admin.GET("/follows/", handlers.AdminFollowsHandler(db.Users()))
		admin.GET("/favorites/", handlers.AdminFavoritesHandler(db.Users(), db.Recipes()))
		admin.GET("/shopping-carts/", handlers.AdminCartsHandler(db.Users(), db.Recipes()))
	}

	return e
}
