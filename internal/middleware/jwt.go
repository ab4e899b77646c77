package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/lecture-hall-booking/internal/model"
	"github.com/iliyamo/lecture-hall-booking/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// stores the caller as a model.Actor on the request context.  The provided
// secret must match the one used when issuing tokens.  Tokens whose role
// claim is not a known role are rejected.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, errorBody("missing bearer token", "unauthorized"))
			}
			raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorBody("invalid token", "unauthorized"))
			}
			role, ok := model.ParseRole(claims.Role)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorBody("invalid claims", "unauthorized"))
			}

			SetActor(c, model.Actor{ID: claims.AccountID, Role: role})
			return next(c)
		}
	}
}
