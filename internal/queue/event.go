// Package queue defines message payloads exchanged over the message broker
// together with the publisher used by the API and the consumer run by
// cmd/ticket-log.
package queue

// TicketBookedQueue is the durable queue ticket events are routed to.
const TicketBookedQueue = "ticket.booked"

// TicketBookedEvent is published after a ticket has been stored.  It
// contains enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type TicketBookedEvent struct {
    TicketID     uint64  `json:"ticket_id"`
    ShowtimeID   uint64  `json:"showtime_id"`
    SeatNumber   string  `json:"seat_number"`
    CustomerName string  `json:"customer_name"`
    MovieTitle   string  `json:"movie_title"`
    Theater      string  `json:"theater"`
    StartsAt     string  `json:"starts_at"`
    Price        float64 `json:"price"`
    BookedAt     string  `json:"booked_at"`
}
