package http

import (
	"errors"
	"fmt"
	"net/http"

	"rental-backend/internal/apperr"
	"rental-backend/internal/infrastructure/logging"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Status  int                 `json:"status"`
	Error   string              `json:"error"`
	Detail  string              `json:"detail,omitempty"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// NewHTTPErrorHandler maps the apperr taxonomy onto HTTP. In production the
// detail of internal failures is replaced by a generic message.
func NewHTTPErrorHandler(production bool, log *zap.Logger) echo.HTTPErrorHandler {
	log = logging.OrNop(log)
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		resp := toErrorResponse(err, production)
		if resp.Status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(resp.Status)
		} else {
			werr = c.JSON(resp.Status, resp)
		}
		if werr != nil {
			log.Warn("write error response", zap.Error(werr))
		}
	}
}

func toErrorResponse(err error, production bool) ErrorResponse {
	var (
		ve *apperr.ValidationError
		nf *apperr.NotFoundError
		ce *apperr.ConflictError
		he *echo.HTTPError
	)
	switch {
	case errors.As(err, &ve):
		return ErrorResponse{
			Status:  http.StatusUnprocessableEntity,
			Error:   "validation failed",
			Detail:  ve.Error(),
			Details: ve.Fields,
		}
	case errors.As(err, &nf):
		return ErrorResponse{Status: http.StatusNotFound, Error: "not found", Detail: nf.Error()}
	case errors.As(err, &ce):
		return ErrorResponse{Status: http.StatusConflict, Error: "conflict", Detail: ce.Error()}
	case errors.As(err, &he):
		resp := ErrorResponse{Status: he.Code, Error: http.StatusText(he.Code)}
		if msg, ok := he.Message.(string); ok && msg != resp.Error {
			resp.Detail = msg
		} else if he.Message != nil && !ok {
			resp.Detail = fmt.Sprint(he.Message)
		}
		if he.Code >= http.StatusInternalServerError && production {
			resp.Detail = ""
		}
		return resp
	}

	resp := ErrorResponse{Status: http.StatusInternalServerError, Error: "internal server error"}
	if !production {
		resp.Detail = err.Error()
	}
	return resp
}
