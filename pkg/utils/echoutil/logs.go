// Package echoutil has helpers for the echo web framework.
package echoutil

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// LogHandlerFunc is a middleware logging each request and its response.
//
// The response line repeats the request method and path, so lines of
// interleaving requests can be paired in the log.
func LogHandlerFunc(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		meth := c.Request().Method
		path := c.Request().URL
		begin := time.Now()
		c.Logger().Infof("< request @[%s] %s %s", begin, meth, path)

		var err error

		defer func() {
			end := time.Now()
			c.Logger().Infof(
				"> response @[%s] status = %d (for request @[%s] %s %s) in %v / error = %+v",
				end, c.Response().Status, begin, meth, path, end.Sub(begin), err,
			)
		}()

		err = next(c)
		return err
	}
}

// SetLevel sets the log level of e by name.
//
// Known names are "debug", "info", "warn", "error" and "off"
// (case insensitive). Empty or unknown names fall back to "warn".
func SetLevel(e *echo.Echo, loglevel string) {
	switch strings.ToLower(loglevel) {
	case "debug":
		e.Logger.SetLevel(log.DEBUG)
	case "info":
		e.Logger.SetLevel(log.INFO)
	case "warn", "":
		e.Logger.SetLevel(log.WARN)
	case "error":
		e.Logger.SetLevel(log.ERROR)
	case "off":
		e.Logger.SetLevel(log.OFF)
	default:
		e.Logger.SetLevel(log.WARN)
		e.Logger.Warnf("unknown loglevel: %s . fall-backed to warn", loglevel)
	}
}
