package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/l3montree-dev/partchain/monitoring"
	"github.com/labstack/echo/v4"
)

// custom echo middleware used for request logging
func logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			now := time.Now()

			err := next(ctx)

			// scraping and probing happen every few seconds
			path := ctx.Request().URL.Path
			if err == nil && path != "/health" && path != "/metrics" {
				slog.Info("handled request", "method", ctx.Request().Method, "url", ctx.Request().URL, "status", ctx.Response().Status, "duration", time.Since(now))
			}
			return err
		}
	}
}

func recoverer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					monitoring.RecoverAndAlert("request handler panicked", r)
					err = echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
				}
			}()
			return next(ctx)
		}
	}
}

func errorHandler(err error, ctx echo.Context) {
	slog.Error(err.Error(), "method", ctx.Request().Method, "path", ctx.Request().URL)

	if ctx.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var message any = echo.Map{"message": http.StatusText(code)}
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		message = echo.Map{"message": he.Message}
	}

	if ctx.Request().Method == http.MethodHead {
		err = ctx.NoContent(code)
	} else {
		err = ctx.JSON(code, message)
	}
	if err != nil {
		slog.Error("could not send error response", "error", err)
	}
}

func registerMiddlewares(e *echo.Echo) {
	e.Use(logger())
	e.Use(recoverer())
	e.HTTPErrorHandler = errorHandler
}
