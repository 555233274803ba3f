package router // package router defines how HTTP routes are registered for the API

import (
	"errors"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/cinema-booking/internal/handler"    // handlers implementing each endpoint
	"github.com/iliyamo/cinema-booking/internal/middleware" // request ids, logging, cache, rate limiting and auth
)

// Handlers groups the endpoint implementations the router mounts.
type Handlers struct {
	Movies    *handler.MovieHandler
	Showtimes *handler.ShowtimeHandler
	Tickets   *handler.TicketHandler
	Health    echo.HandlerFunc
}

// Options tunes the middleware stack.  Zero values disable the optional
// pieces: no JWTSecret leaves writes open, a nil Cache or RateLimit skips
// them and a zero RequestTimeout sets no deadline.
type Options struct {
	Log            hclog.Logger
	JWTSecret      string
	Cache          *middleware.Cache
	RateLimit      echo.MiddlewareFunc
	RequestTimeout time.Duration
}

// New builds the Echo instance with the middleware stack and every route
// registered.
func New(h Handlers, opts Options) *echo.Echo {
	log := opts.Log
	if log == nil {
		log = hclog.NewNullLogger()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = errorHandler(log)

	// Order matters: ids first so every log line and error carries one.
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(log.Named("http")))
	e.Use(echomw.Recover())
	if opts.RequestTimeout > 0 {
		e.Use(echomw.ContextTimeout(opts.RequestTimeout))
	}
	if opts.JWTSecret != "" {
		// identity first so per-user rate limit keys see the caller
		e.Use(middleware.Identify(opts.JWTSecret))
	}
	if opts.RateLimit != nil {
		e.Use(opts.RateLimit)
	}
	if opts.Cache != nil {
		e.Use(opts.Cache.Middleware())
	}

	RegisterRoutes(e, h.Health)
	RegisterCatalog(e, h.Movies, h.Showtimes, opts.JWTSecret)
	RegisterBooking(e, h.Tickets)
	return e
}

// RegisterRoutes registers routes that do not belong to a resource.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo, health echo.HandlerFunc) {
	// Load balancers and monitoring systems poll this endpoint.
	e.GET("/healthz", health)
}

// errorHandler renders errors that escape handlers (unknown routes, wrong
// methods, panics) with the same {"error": ...} body the handlers use.
func errorHandler(log hclog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status := http.StatusInternalServerError
		msg := "internal error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(status)
			}
		}
		if status >= http.StatusInternalServerError {
			log.Error("unhandled error", "path", c.Request().URL.Path, "error", err)
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, map[string]string{"error": msg})
	}
}
