package service

import (
    "context"

    "github.com/iliyamo/cinema-booking/internal/model"
    "github.com/iliyamo/cinema-booking/internal/queue"
)

// MovieStore persists movies.  Implementations return
// repository.ErrMovieNotFound for unknown ids and repository.ErrConflict
// when a movie that still has showtimes is deleted.
type MovieStore interface {
    ListAll(ctx context.Context) ([]model.Movie, error)
    GetByID(ctx context.Context, id uint64) (*model.Movie, error)
    Create(ctx context.Context, m *model.Movie) error
    Update(ctx context.Context, m *model.Movie) error
    Delete(ctx context.Context, id uint64) error
}

// ShowtimeStore persists showtimes.  CreateIfFree and UpdateIfFree run the
// per-theater overlap check and the write atomically and return
// repository.ErrShowtimeOverlap when the interval is taken.
type ShowtimeStore interface {
    ListAll(ctx context.Context) ([]model.Showtime, error)
    GetByID(ctx context.Context, id uint64) (*model.Showtime, error)
    CreateIfFree(ctx context.Context, s *model.Showtime) error
    UpdateIfFree(ctx context.Context, s *model.Showtime) error
    Delete(ctx context.Context, id uint64) error
}

// TicketStore persists tickets.  Create returns repository.ErrSeatTaken
// when the seat is already booked for the showtime.
type TicketStore interface {
    Create(ctx context.Context, t *model.Ticket) error
    FindBySeat(ctx context.Context, showtimeID uint64, seat string) (*model.Ticket, error)
    ListAll(ctx context.Context, includeShowtime bool) ([]model.Ticket, error)
}

// TicketEvents receives a notification for every booked ticket.
type TicketEvents interface {
    PublishTicketBooked(ctx context.Context, ev queue.TicketBookedEvent) error
}
