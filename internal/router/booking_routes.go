package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking/internal/handler"
)

// RegisterBooking registers the ticket endpoints.  Booking needs no
// account; the customer name travels in the request body.
func RegisterBooking(e *echo.Echo, tickets *handler.TicketHandler) {
	e.POST("/tickets", tickets.Create)
	e.GET("/tickets", tickets.List)
}
