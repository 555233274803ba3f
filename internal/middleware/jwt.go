package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/cinema-booking/internal/utils" // utils defines the access token claims
)

// bearerToken returns the raw token of an "Authorization: Bearer" header.
func bearerToken(c echo.Context) (string, bool) {
    raw, found := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
    return raw, found && raw != ""
}

// parseAccessToken verifies raw against key.  Only HS256 is accepted;
// anything else is rejected before the key is used.
func parseAccessToken(key []byte, raw string) (*utils.AccessClaims, bool) {
    var claims utils.AccessClaims
    tok, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
        return key, nil
    }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
    if err != nil || !tok.Valid {
        return nil, false
    }
    return &claims, true
}

func setIdentity(c echo.Context, claims *utils.AccessClaims) {
    c.Set(ctxSubject, claims.Subject) // subject identifies the caller
    c.Set(ctxRole, claims.Role)       // role is checked by RequireRole
}

// Identify stores the subject and role of a valid bearer token in the
// context and never rejects a request.  It runs ahead of the rate limiter
// so per-user keys see the caller; JWTAuth still guards protected routes.
func Identify(secret string) echo.MiddlewareFunc {
    key := []byte(secret)
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if raw, ok := bearerToken(c); ok {
                if claims, ok := parseAccessToken(key, raw); ok {
                    setIdentity(c, claims)
                }
            }
            return next(c)
        }
    }
}

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// injects the token's subject and role claims into the request context.  The
// provided secret must match the one used when issuing tokens.
func JWTAuth(secret string) echo.MiddlewareFunc {
    key := []byte(secret)
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw, ok := bearerToken(c)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            claims, ok := parseAccessToken(key, raw)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            setIdentity(c, claims)
            return next(c)
        }
    }
}
