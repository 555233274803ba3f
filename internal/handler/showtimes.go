package handler

import (
    "net/http"
    "time"

    "github.com/hashicorp/go-hclog"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinema-booking/internal/service"
)

// ShowtimeHandler serves the /showtimes routes.
type ShowtimeHandler struct {
    Showtimes *service.ShowtimeService
    Log       hclog.Logger
}

// NewShowtimeHandler constructs a ShowtimeHandler and panics if the
// service is nil.
func NewShowtimeHandler(showtimes *service.ShowtimeService, log hclog.Logger) *ShowtimeHandler {
    if showtimes == nil {
        panic("nil service passed to NewShowtimeHandler")
    }
    if log == nil {
        log = hclog.NewNullLogger()
    }
    return &ShowtimeHandler{Showtimes: showtimes, Log: log}
}

// createShowtimeRequest is the body of POST /showtimes.  movie is either
// the movie id or an object carrying it.
type createShowtimeRequest struct {
    Movie     *service.MovieRef `json:"movie" validate:"required"`
    Theater   *string           `json:"theater" validate:"required,min=1"`
    StartTime *string           `json:"start_time" validate:"required,isodatetime"`
    EndTime   *string           `json:"end_time" validate:"required,isodatetime"`
    Price     *float64          `json:"price" validate:"required,min=1"`
}

type updateShowtimeRequest struct {
    Movie     *service.MovieRef `json:"movie"`
    Theater   *string           `json:"theater" validate:"omitempty,min=1"`
    StartTime *string           `json:"start_time" validate:"omitempty,isodatetime"`
    EndTime   *string           `json:"end_time" validate:"omitempty,isodatetime"`
    Price     *float64          `json:"price" validate:"omitempty,min=1"`
}

// optionalTime parses s when present.  The validator has already checked
// the format.
func optionalTime(s *string) *time.Time {
    if s == nil {
        return nil
    }
    t, err := ParseDateTime(*s)
    if err != nil {
        return nil
    }
    return &t
}

// List handles GET /showtimes.
func (h *ShowtimeHandler) List(c echo.Context) error {
    list, err := h.Showtimes.List(c.Request().Context())
    if err != nil {
        return fail(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, list)
}

// Get handles GET /showtimes/:id.
func (h *ShowtimeHandler) Get(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return badRequest(c, "invalid showtime id")
    }
    st, err := h.Showtimes.Get(c.Request().Context(), id)
    if err != nil {
        return fail(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, st)
}

// Create handles POST /showtimes.
func (h *ShowtimeHandler) Create(c echo.Context) error {
    var req createShowtimeRequest
    if ok, err := bind(c, &req); !ok {
        return err
    }
    st, err := h.Showtimes.Create(c.Request().Context(), service.ShowtimeInput{
        Movie:     *req.Movie,
        Theater:   *req.Theater,
        StartTime: *optionalTime(req.StartTime),
        EndTime:   *optionalTime(req.EndTime),
        Price:     *req.Price,
    })
    if err != nil {
        return fail(c, h.Log, err)
    }
    return c.JSON(http.StatusCreated, st)
}

// Update handles PUT /showtimes/:id.  Omitted fields keep their stored
// values; the overlap check runs on the merged result.
func (h *ShowtimeHandler) Update(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return badRequest(c, "invalid showtime id")
    }
    var req updateShowtimeRequest
    if ok, err := bind(c, &req); !ok {
        return err
    }
    st, err := h.Showtimes.Update(c.Request().Context(), id, service.ShowtimePatch{
        Movie:     req.Movie,
        Theater:   req.Theater,
        StartTime: optionalTime(req.StartTime),
        EndTime:   optionalTime(req.EndTime),
        Price:     req.Price,
    })
    if err != nil {
        return fail(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, st)
}

// Delete handles DELETE /showtimes/:id.
func (h *ShowtimeHandler) Delete(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return badRequest(c, "invalid showtime id")
    }
    if err := h.Showtimes.Delete(c.Request().Context(), id); err != nil {
        return fail(c, h.Log, err)
    }
    return c.NoContent(http.StatusNoContent)
}
