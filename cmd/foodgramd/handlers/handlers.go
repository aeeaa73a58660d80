// Package handlers is the HTTP surface of the foodgram API server.
//
// Each handler is built by a constructor taking the storages (and
// other dependencies) it works on and returning an echo.HandlerFunc.
// Routing is left to the server which registers them.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	apierr "github.com/foodgram-dev/foodgram/pkg/api/bind/errors"
	bindusers "github.com/foodgram-dev/foodgram/pkg/api/bind/users"
	"github.com/foodgram-dev/foodgram/pkg/buildtime"
)

// RootHandler describes the service. A web frontend shadows this path
// in production deployments; it answers health checks elsewhere.
func RootHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "foodgram",
			"version": buildtime.VersionString(),
			"docs":    "/api/docs/",
		})
	}
}

// bindJSON decodes the request body into dto.
// Malformed bodies are rejected with 400, naming the decoder error.
func bindJSON(c echo.Context, dto any) error {
	if err := json.NewDecoder(c.Request().Body).Decode(dto); err != nil {
		return apierr.BadRequestDetail(fmt.Sprintf("Ошибка парсинга JSON - %s", err))
	}
	return nil
}

// requestURL reconstructs the absolute URL the request came to.
func requestURL(c echo.Context) *url.URL {
	u := *c.Request().URL
	u.Scheme = c.Scheme()
	u.Host = c.Request().Host
	return &u
}

// mediaHref builds absolute URLs of stored media paths, rooted at the
// host the request came to.
func mediaHref(c echo.Context) bindusers.Href {
	origin := c.Scheme() + "://" + c.Request().Host
	return func(relpath string) string {
		return origin + "/media/" + relpath
	}
}

// paramId reads an integer path parameter. Anything else identifies
// no resource, so the rejection is 404.
func paramId(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, apierr.NotFound()
	}
	return id, nil
}
