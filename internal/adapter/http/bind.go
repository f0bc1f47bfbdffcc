package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// bindAndRun decodes the request into In, runs fn and writes its result with
// status. Decoding failures are 400, everything fn returns goes to the
// error handler.
func bindAndRun[In, Out any](c echo.Context, status int, fn func(ctx context.Context, in In) (Out, error)) error {
	var in In
	if err := c.Bind(&in); err != nil {
		msg := "invalid body"
		if c.Request().Method == http.MethodGet {
			msg = "invalid query"
		}
		return echo.NewHTTPError(http.StatusBadRequest, msg)
	}
	out, err := fn(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(status, out)
}
