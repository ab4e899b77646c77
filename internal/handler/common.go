package handler // handler defines http handlers

import (
	"errors"   // errors maps service sentinels to status codes
	"net/http" // HTTP status codes
	"strconv"  // strconv parses path ids

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/lecture-hall-booking/internal/middleware"
	"github.com/iliyamo/lecture-hall-booking/internal/model"
	"github.com/iliyamo/lecture-hall-booking/internal/service"
)

var validate = validator.New()

// errorResponse is the JSON body of every failed request.  echo's error
// handler writes it as is when it is the message of an *echo.HTTPError.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func httpError(status int, msg, code string) *echo.HTTPError {
	return echo.NewHTTPError(status, errorResponse{Error: msg, Code: code})
}

// serviceError maps a service error to its status code and stable error
// code.  Store failures are logged and reported without their details.
func serviceError(c echo.Context, logger *zap.Logger, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return httpError(http.StatusBadRequest, err.Error(), "validation_failed")
	case errors.Is(err, service.ErrAccessDenied):
		return httpError(http.StatusForbidden, err.Error(), "access_denied")
	case errors.Is(err, service.ErrNotFound):
		return httpError(http.StatusNotFound, err.Error(), "not_found")
	case errors.Is(err, service.ErrInvalidTransition):
		return httpError(http.StatusConflict, err.Error(), "invalid_transition")
	case errors.Is(err, service.ErrConflict):
		return httpError(http.StatusConflict, err.Error(), "conflict")
	case errors.Is(err, service.ErrInvalidCredentials):
		return httpError(http.StatusUnauthorized, "invalid username or password", "invalid_credentials")
	default:
		logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		return httpError(http.StatusInternalServerError, "internal error", "internal")
	}
}

// bindValid decodes the JSON body into dst and runs its validate tags.
func bindValid(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return httpError(http.StatusBadRequest, "invalid JSON body", "bad_request")
	}
	if err := validate.Struct(dst); err != nil {
		return httpError(http.StatusBadRequest, err.Error(), "validation_failed")
	}
	return nil
}

// currentActor returns the caller installed by the JWT middleware.
func currentActor(c echo.Context) (model.Actor, error) {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		return model.Actor{}, httpError(http.StatusUnauthorized, "unauthorized", "unauthorized")
	}
	return a, nil
}

func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, httpError(http.StatusBadRequest, "invalid "+name, "bad_request")
	}
	return id, nil
}
