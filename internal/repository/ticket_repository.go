package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-booking/internal/model"
)

// TicketRepo provides create and list operations for tickets.  The
// tickets table carries a unique index on (showtime_id, seat_number) so a
// seat can be booked only once per showtime even under concurrent writes.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a new TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// Create inserts a ticket and assigns the generated ID.  A duplicate seat
// yields ErrSeatTaken; a missing showtime yields ErrShowtimeNotFound.
func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	const q = `INSERT INTO tickets (seat_number, customer_name, showtime_id) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.SeatNumber, t.CustomerName, t.ShowtimeID)
	if err != nil {
		switch {
		case isMySQLError(err, errDupEntry):
			return ErrSeatTaken
		case isMySQLError(err, errNoReferencedRow):
			return ErrShowtimeNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// FindBySeat returns the ticket holding seat for the showtime, or
// ErrTicketNotFound when the seat is free.
func (r *TicketRepo) FindBySeat(ctx context.Context, showtimeID uint64, seat string) (*model.Ticket, error) {
	const q = `SELECT id, seat_number, customer_name, showtime_id FROM tickets WHERE showtime_id = ? AND seat_number = ? LIMIT 1`
	var t model.Ticket
	if err := r.db.QueryRowContext(ctx, q, showtimeID, seat).Scan(&t.ID, &t.SeatNumber, &t.CustomerName, &t.ShowtimeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListAll returns all tickets ordered by id.  When includeShowtime is true
// each ticket carries its showtime (without the movie).
func (r *TicketRepo) ListAll(ctx context.Context, includeShowtime bool) ([]model.Ticket, error) {
	if !includeShowtime {
		return r.listPlain(ctx)
	}
	const q = `SELECT t.id, t.seat_number, t.customer_name, t.showtime_id,
                      s.id, s.movie_id, s.theater, s.start_time, s.end_time, s.price
               FROM tickets t
               JOIN showtimes s ON s.id = t.showtime_id
               ORDER BY t.id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tickets := []model.Ticket{}
	for rows.Next() {
		var t model.Ticket
		var s model.Showtime
		if err := rows.Scan(
			&t.ID, &t.SeatNumber, &t.CustomerName, &t.ShowtimeID,
			&s.ID, &s.MovieID, &s.Theater, &s.StartTime, &s.EndTime, &s.Price,
		); err != nil {
			return nil, err
		}
		s.StartTime = s.StartTime.UTC()
		s.EndTime = s.EndTime.UTC()
		t.Showtime = &s
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *TicketRepo) listPlain(ctx context.Context) ([]model.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, seat_number, customer_name, showtime_id FROM tickets ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tickets := []model.Ticket{}
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(&t.ID, &t.SeatNumber, &t.CustomerName, &t.ShowtimeID); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tickets, nil
}
