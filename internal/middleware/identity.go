package middleware

// identity.go holds the context keys shared by the auth, role and rate
// limit middleware and the handlers.  JWTAuth stores the verified caller as
// a model.Actor; everything downstream reads it back through ActorFrom.

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/lecture-hall-booking/internal/model"
)

const actorKey = "actor"

// SetActor stores the authenticated caller on the request context.
func SetActor(c echo.Context, a model.Actor) {
	c.Set(actorKey, a)
}

// ActorFrom returns the caller stored by JWTAuth.  ok is false on routes
// that are not behind JWTAuth.
func ActorFrom(c echo.Context) (model.Actor, bool) {
	a, ok := c.Get(actorKey).(model.Actor)
	return a, ok && a.ID != 0
}

// actorID renders the caller id for keys and logs, or "anon".
func actorID(c echo.Context) string {
	if a, ok := ActorFrom(c); ok {
		return strconv.FormatUint(a.ID, 10)
	}
	return "anon"
}

// errorBody is the JSON error shape shared with the handlers.
func errorBody(msg, code string) echo.Map {
	return echo.Map{"error": msg, "code": code}
}
