package handler

import (
    "net/http"
    "strconv"

    "github.com/hashicorp/go-hclog"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/cinema-booking/internal/service"
)

// TicketHandler serves the /tickets routes.
type TicketHandler struct {
    Tickets *service.TicketService
    Log     hclog.Logger
}

// NewTicketHandler constructs a TicketHandler and panics if the service is
// nil.
func NewTicketHandler(tickets *service.TicketService, log hclog.Logger) *TicketHandler {
    if tickets == nil {
        panic("nil service passed to NewTicketHandler")
    }
    if log == nil {
        log = hclog.NewNullLogger()
    }
    return &TicketHandler{Tickets: tickets, Log: log}
}

type createTicketRequest struct {
    SeatNumber   *string `json:"seat_number" validate:"required,min=1"`
    CustomerName *string `json:"customer_name" validate:"required,min=1"`
    ShowtimeID   *uint64 `json:"showtime_id" validate:"required,min=1"`
}

// Create handles POST /tickets and books one seat.
func (h *TicketHandler) Create(c echo.Context) error {
    var req createTicketRequest
    if ok, err := bind(c, &req); !ok {
        return err
    }
    t, err := h.Tickets.Create(c.Request().Context(), service.TicketInput{
        SeatNumber:   *req.SeatNumber,
        CustomerName: *req.CustomerName,
        ShowtimeID:   *req.ShowtimeID,
    })
    if err != nil {
        return fail(c, h.Log, err)
    }
    return c.JSON(http.StatusCreated, t)
}

// List handles GET /tickets.  Showtimes are attached unless
// include_showtime=false.
func (h *TicketHandler) List(c echo.Context) error {
    include := true
    if raw := c.QueryParam("include_showtime"); raw != "" {
        v, err := strconv.ParseBool(raw)
        if err != nil {
            return badRequest(c, "include_showtime must be a boolean")
        }
        include = v
    }
    list, err := h.Tickets.List(c.Request().Context(), include)
    if err != nil {
        return fail(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, list)
}
