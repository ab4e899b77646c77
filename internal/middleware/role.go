package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context

	"github.com/iliyamo/lecture-hall-booking/internal/model"
)

// RequireRole returns a middleware function that enforces that the
// authenticated caller has one of the specified roles.  It must run after
// JWTAuth.  A missing actor or a role outside the set aborts the request
// with 403 Forbidden.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			a, ok := ActorFrom(c)
			if !ok || !allowed[a.Role] {
				return c.JSON(http.StatusForbidden, errorBody("forbidden", "access_denied"))
			}
			return next(c)
		}
	}
}
