package handler // declare the package name; contains HTTP handlers

import (
    "context"  // context bounds the ping
    "net/http" // net/http provides status codes and response helpers
    "time"     // time sets the ping deadline

    "github.com/hashicorp/go-hclog" // hclog records failed pings
    "github.com/labstack/echo/v4"  // echo is the web framework used for this project
)

// Pinger reports whether the backing store is reachable.  *sql.DB and
// *memstore.Store both satisfy it.
type Pinger interface {
    PingContext(ctx context.Context) error
}

// Health returns a health-check endpoint used by load balancers and
// monitoring systems.  It writes a plain text "ok" with 200 when the store
// answers a ping within two seconds and 503 otherwise.
func Health(store Pinger, log hclog.Logger) echo.HandlerFunc {
    return func(c echo.Context) error {
        ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
        defer cancel()
        if err := store.PingContext(ctx); err != nil {
            if log != nil {
                log.Warn("health check failed", "error", err)
            }
            return c.String(http.StatusServiceUnavailable, "unavailable")
        }
        return c.String(http.StatusOK, "ok") // String writes plain text
    }
}
