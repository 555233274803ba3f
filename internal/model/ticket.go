package model

// Ticket books one seat of a showtime for a customer.  A seat can be
// booked at most once per showtime.
//
// Fields:
//  ID           – primary key identifier.
//  SeatNumber   – seat label such as "A5".
//  CustomerName – name of the person who booked.
//  ShowtimeID   – showtime the seat belongs to.
//  Showtime     – the referenced showtime, populated when requested.
type Ticket struct {
    ID           uint64    `json:"id"`                 // tickets.id
    SeatNumber   string    `json:"seat_number"`        // tickets.seat_number
    CustomerName string    `json:"customer_name"`      // tickets.customer_name
    ShowtimeID   uint64    `json:"showtime_id"`        // tickets.showtime_id
    Showtime     *Showtime `json:"showtime,omitempty"` // joined from showtimes
}
