package service

import (
    "context"
    "errors"
    "fmt"
    "time"

    "github.com/hashicorp/go-hclog"

    "github.com/iliyamo/cinema-booking/internal/model"
    "github.com/iliyamo/cinema-booking/internal/queue"
    "github.com/iliyamo/cinema-booking/internal/repository"
)

const msgSeatTaken = "Seat already booked for this showtime"

// TicketInput is a booking request.
type TicketInput struct {
    SeatNumber   string
    CustomerName string
    ShowtimeID   uint64
}

// TicketService books seats.  A seat is sold at most once per showtime.
type TicketService struct {
    tickets   TicketStore
    showtimes ShowtimeStore
    events    TicketEvents
    log       hclog.Logger
    now       func() time.Time
}

// NewTicketService panics when a store is nil.  events may be nil, in
// which case no notifications are sent.
func NewTicketService(tickets TicketStore, showtimes ShowtimeStore, events TicketEvents, log hclog.Logger) *TicketService {
    if tickets == nil || showtimes == nil {
        panic("nil store passed to NewTicketService")
    }
    if log == nil {
        log = hclog.NewNullLogger()
    }
    return &TicketService{tickets: tickets, showtimes: showtimes, events: events, log: log, now: time.Now}
}

// Create books in.SeatNumber for in.ShowtimeID and returns the ticket with
// its showtime.
func (s *TicketService) Create(ctx context.Context, in TicketInput) (*model.Ticket, error) {
    st, err := s.showtimes.GetByID(ctx, in.ShowtimeID)
    if err != nil {
        if errors.Is(err, repository.ErrShowtimeNotFound) {
            return nil, showtimeNotFound(in.ShowtimeID)
        }
        return nil, fmt.Errorf("get showtime %d: %w", in.ShowtimeID, err)
    }
    if _, err := s.tickets.FindBySeat(ctx, in.ShowtimeID, in.SeatNumber); err == nil {
        return nil, conflict(msgSeatTaken)
    } else if !errors.Is(err, repository.ErrTicketNotFound) {
        return nil, fmt.Errorf("find seat: %w", err)
    }

    t := model.Ticket{SeatNumber: in.SeatNumber, CustomerName: in.CustomerName, ShowtimeID: in.ShowtimeID}
    if err := s.tickets.Create(ctx, &t); err != nil {
        switch {
        case errors.Is(err, repository.ErrSeatTaken):
            return nil, conflict(msgSeatTaken)
        case errors.Is(err, repository.ErrShowtimeNotFound):
            return nil, showtimeNotFound(in.ShowtimeID)
        }
        return nil, fmt.Errorf("create ticket: %w", err)
    }
    movie := st.Movie
    st.Movie = nil
    t.Showtime = st
    s.log.Info("ticket booked", "ticket_id", t.ID, "showtime_id", t.ShowtimeID, "seat", t.SeatNumber)
    s.publish(ctx, t, movie)
    return &t, nil
}

// publish sends the booking notification.  Failures are logged only; the
// ticket is already stored.
func (s *TicketService) publish(ctx context.Context, t model.Ticket, movie *model.Movie) {
    if s.events == nil {
        return
    }
    ev := queue.TicketBookedEvent{
        TicketID:     t.ID,
        ShowtimeID:   t.ShowtimeID,
        SeatNumber:   t.SeatNumber,
        CustomerName: t.CustomerName,
        Theater:      t.Showtime.Theater,
        StartsAt:     t.Showtime.StartTime.UTC().Format(time.RFC3339),
        Price:        t.Showtime.Price,
        BookedAt:     s.now().UTC().Format(time.RFC3339),
    }
    if movie != nil {
        ev.MovieTitle = movie.Title
    }
    if err := s.events.PublishTicketBooked(ctx, ev); err != nil {
        s.log.Warn("ticket event not published", "ticket_id", t.ID, "error", err)
    }
}

// List returns all tickets; includeShowtime attaches each ticket's
// showtime.
func (s *TicketService) List(ctx context.Context, includeShowtime bool) ([]model.Ticket, error) {
    list, err := s.tickets.ListAll(ctx, includeShowtime)
    if err != nil {
        return nil, fmt.Errorf("list tickets: %w", err)
    }
    return list, nil
}
