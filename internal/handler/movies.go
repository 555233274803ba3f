package handler // handler package contains the HTTP handlers for the booking API

import (
    "net/http" // http defines status codes

    "github.com/hashicorp/go-hclog" // hclog is the structured logger
    "github.com/labstack/echo/v4"  // echo provides the web context and JSON helpers

    "github.com/iliyamo/cinema-booking/internal/model"   // model defines the entities
    "github.com/iliyamo/cinema-booking/internal/service" // service holds the booking rules
)

// MovieHandler serves the /movies routes.
type MovieHandler struct {
    Movies *service.MovieService // Movies implements the catalogue operations
    Log    hclog.Logger          // Log receives unexpected failures
}

// NewMovieHandler constructs a MovieHandler and panics if the service is nil.
func NewMovieHandler(movies *service.MovieService, log hclog.Logger) *MovieHandler {
    if movies == nil {
        panic("nil service passed to NewMovieHandler")
    }
    if log == nil {
        log = hclog.NewNullLogger()
    }
    return &MovieHandler{Movies: movies, Log: log}
}

// createMovieRequest is the body of POST /movies.  Every field is required.
type createMovieRequest struct {
    Title       *string  `json:"title" validate:"required,min=1"`
    Genre       *string  `json:"genre" validate:"required,min=1"`
    Duration    *int     `json:"duration" validate:"required,min=1"`
    Rating      *float64 `json:"rating" validate:"required,min=0,max=10"`
    ReleaseYear *int     `json:"releaseYear" validate:"required,min=1800"`
}

// updateMovieRequest is the body of PUT /movies/:id.  Absent fields keep
// their stored values.
type updateMovieRequest struct {
    Title       *string  `json:"title" validate:"omitempty,min=1"`
    Genre       *string  `json:"genre" validate:"omitempty,min=1"`
    Duration    *int     `json:"duration" validate:"omitempty,min=1"`
    Rating      *float64 `json:"rating" validate:"omitempty,min=0,max=10"`
    ReleaseYear *int     `json:"releaseYear" validate:"omitempty,min=1800"`
}

// List handles GET /movies.
func (h *MovieHandler) List(c echo.Context) error {
    movies, err := h.Movies.List(c.Request().Context())
    if err != nil {
        return fail(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, movies)
}

// Get handles GET /movies/:id.
func (h *MovieHandler) Get(c echo.Context) error {
    id, ok := pathID(c) // parse movie id
    if !ok {
        return badRequest(c, "invalid movie id")
    }
    m, err := h.Movies.Get(c.Request().Context(), id)
    if err != nil {
        return fail(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, m)
}

// Create handles POST /movies.
func (h *MovieHandler) Create(c echo.Context) error {
    var req createMovieRequest
    if ok, err := bind(c, &req); !ok { // decode and validate the body
        return err
    }
    m, err := h.Movies.Create(c.Request().Context(), model.Movie{
        Title:       *req.Title,
        Genre:       *req.Genre,
        Duration:    *req.Duration,
        Rating:      *req.Rating,
        ReleaseYear: *req.ReleaseYear,
    })
    if err != nil {
        return fail(c, h.Log, err)
    }
    return c.JSON(http.StatusCreated, m)
}

// Update handles PUT /movies/:id and applies only the supplied fields.
func (h *MovieHandler) Update(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return badRequest(c, "invalid movie id")
    }
    var req updateMovieRequest
    if ok, err := bind(c, &req); !ok {
        return err
    }
    m, err := h.Movies.Update(c.Request().Context(), id, model.MoviePatch{
        Title:       req.Title,
        Genre:       req.Genre,
        Duration:    req.Duration,
        Rating:      req.Rating,
        ReleaseYear: req.ReleaseYear,
    })
    if err != nil {
        return fail(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /movies/:id.
func (h *MovieHandler) Delete(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return badRequest(c, "invalid movie id")
    }
    if err := h.Movies.Delete(c.Request().Context(), id); err != nil {
        return fail(c, h.Log, err)
    }
    return c.NoContent(http.StatusNoContent) // nothing to return after delete
}
