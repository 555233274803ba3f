package middleware

import "github.com/labstack/echo/v4"

// Context keys set by JWTAuth.
const (
    ctxSubject = "user_id"
    ctxRole    = "role"
)

// RoleOwner may manage movies and showtimes.
const RoleOwner = "OWNER"

// subject returns the authenticated subject, or "anon" when the request
// carries no token.
func subject(c echo.Context) string {
    if s, ok := c.Get(ctxSubject).(string); ok && s != "" {
        return s
    }
    return "anon"
}
