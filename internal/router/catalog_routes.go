package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking/internal/handler"    // movie and showtime handlers
	"github.com/iliyamo/cinema-booking/internal/middleware" // JWT + role middlewares
)

// RegisterCatalog registers the movie and showtime endpoints.  Reads are
// public.  When jwtSecret is set, writes require a valid JWT with the
// OWNER role.
func RegisterCatalog(e *echo.Echo, movies *handler.MovieHandler, showtimes *handler.ShowtimeHandler, jwtSecret string) {
	var owner []echo.MiddlewareFunc
	if jwtSecret != "" {
		owner = []echo.MiddlewareFunc{
			middleware.JWTAuth(jwtSecret),
			middleware.RequireRole(middleware.RoleOwner),
		}
	}

	// ---- Movies ----
	e.GET("/movies", movies.List)
	e.GET("/movies/:id", movies.Get)
	e.POST("/movies", movies.Create, owner...)
	e.PUT("/movies/:id", movies.Update, owner...)
	e.DELETE("/movies/:id", movies.Delete, owner...)

	// ---- Showtimes ----
	e.GET("/showtimes", showtimes.List)
	e.GET("/showtimes/:id", showtimes.Get)
	e.POST("/showtimes", showtimes.Create, owner...)
	e.PUT("/showtimes/:id", showtimes.Update, owner...)
	e.DELETE("/showtimes/:id", showtimes.Delete, owner...)
}
