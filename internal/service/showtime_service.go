package service

import (
    "context"
    "errors"
    "fmt"
    "time"

    "github.com/hashicorp/go-hclog"

    "github.com/iliyamo/cinema-booking/internal/model"
    "github.com/iliyamo/cinema-booking/internal/repository"
)

const (
    msgOverlapCreate  = "Showtime overlaps with an existing showtime in this theater."
    msgOverlapUpdate  = "Updated showtime would overlap with an existing showtime in this theater."
    msgInvalidMovie   = "Invalid movie ID provided"
    msgEndBeforeStart = "end_time must be after start_time"
)

// ShowtimeInput is a complete showtime as submitted by a client.
type ShowtimeInput struct {
    Movie     MovieRef
    Theater   string
    StartTime time.Time
    EndTime   time.Time
    Price     float64
}

// ShowtimePatch carries a partial showtime update; nil fields keep the
// stored value.
type ShowtimePatch struct {
    Movie     *MovieRef
    Theater   *string
    StartTime *time.Time
    EndTime   *time.Time
    Price     *float64
}

// ShowtimeService schedules showtimes and keeps each theater free of
// overlapping screenings.
type ShowtimeService struct {
    showtimes ShowtimeStore
    movies    MovieStore
    log       hclog.Logger
}

// NewShowtimeService panics when a store is nil.  A nil logger discards
// output.
func NewShowtimeService(showtimes ShowtimeStore, movies MovieStore, log hclog.Logger) *ShowtimeService {
    if showtimes == nil || movies == nil {
        panic("nil store passed to NewShowtimeService")
    }
    if log == nil {
        log = hclog.NewNullLogger()
    }
    return &ShowtimeService{showtimes: showtimes, movies: movies, log: log}
}

// showtimeNotFound is shared by get, update, delete and booking.
func showtimeNotFound(id uint64) *Error {
    return notFound("Showtime %d not found", id)
}

// resolveMovie checks that ref names an existing movie and returns its id.
func (s *ShowtimeService) resolveMovie(ctx context.Context, ref MovieRef) (uint64, error) {
    if ref.ID == 0 {
        return 0, notFound(msgInvalidMovie)
    }
    if _, err := s.movies.GetByID(ctx, ref.ID); err != nil {
        if errors.Is(err, repository.ErrMovieNotFound) {
            return 0, movieNotFound(ref.ID)
        }
        return 0, fmt.Errorf("get movie %d: %w", ref.ID, err)
    }
    return ref.ID, nil
}

// List returns all showtimes with their movies, ordered by id.
func (s *ShowtimeService) List(ctx context.Context) ([]model.Showtime, error) {
    list, err := s.showtimes.ListAll(ctx)
    if err != nil {
        return nil, fmt.Errorf("list showtimes: %w", err)
    }
    return list, nil
}

// Get returns showtime id with its movie.
func (s *ShowtimeService) Get(ctx context.Context, id uint64) (*model.Showtime, error) {
    st, err := s.showtimes.GetByID(ctx, id)
    if errors.Is(err, repository.ErrShowtimeNotFound) {
        return nil, showtimeNotFound(id)
    }
    if err != nil {
        return nil, fmt.Errorf("get showtime %d: %w", id, err)
    }
    return st, nil
}

// Create schedules a showtime unless its theater is already busy during
// [StartTime, EndTime).
func (s *ShowtimeService) Create(ctx context.Context, in ShowtimeInput) (*model.Showtime, error) {
    movieID, err := s.resolveMovie(ctx, in.Movie)
    if err != nil {
        return nil, err
    }
    if !in.EndTime.After(in.StartTime) {
        return nil, invalid(msgEndBeforeStart)
    }
    st := model.Showtime{
        MovieID:   movieID,
        Theater:   in.Theater,
        StartTime: in.StartTime.UTC(),
        EndTime:   in.EndTime.UTC(),
        Price:     in.Price,
    }
    if err := s.showtimes.CreateIfFree(ctx, &st); err != nil {
        switch {
        case errors.Is(err, repository.ErrShowtimeOverlap):
            s.log.Info("showtime rejected, theater busy", "theater", st.Theater, "start", st.StartTime, "end", st.EndTime)
            return nil, conflict(msgOverlapCreate)
        case errors.Is(err, repository.ErrMovieNotFound):
            return nil, movieNotFound(movieID)
        }
        return nil, fmt.Errorf("create showtime: %w", err)
    }
    s.log.Debug("showtime created", "showtime_id", st.ID, "theater", st.Theater)
    return s.Get(ctx, st.ID)
}

// Update merges patch into showtime id.  The overlap check runs on the
// merged theater and interval and ignores the showtime itself.
func (s *ShowtimeService) Update(ctx context.Context, id uint64, patch ShowtimePatch) (*model.Showtime, error) {
    cur, err := s.Get(ctx, id)
    if err != nil {
        return nil, err
    }
    if patch.Movie != nil {
        movieID, err := s.resolveMovie(ctx, *patch.Movie)
        if err != nil {
            return nil, err
        }
        cur.MovieID = movieID
    }
    if patch.Theater != nil {
        cur.Theater = *patch.Theater
    }
    if patch.StartTime != nil {
        cur.StartTime = patch.StartTime.UTC()
    }
    if patch.EndTime != nil {
        cur.EndTime = patch.EndTime.UTC()
    }
    if patch.Price != nil {
        cur.Price = *patch.Price
    }
    if !cur.EndTime.After(cur.StartTime) {
        return nil, invalid(msgEndBeforeStart)
    }
    cur.Movie = nil
    if err := s.showtimes.UpdateIfFree(ctx, cur); err != nil {
        switch {
        case errors.Is(err, repository.ErrShowtimeOverlap):
            s.log.Info("showtime update rejected, theater busy", "showtime_id", id, "theater", cur.Theater)
            return nil, conflict(msgOverlapUpdate)
        case errors.Is(err, repository.ErrShowtimeNotFound):
            return nil, showtimeNotFound(id)
        case errors.Is(err, repository.ErrMovieNotFound):
            return nil, movieNotFound(cur.MovieID)
        }
        return nil, fmt.Errorf("update showtime %d: %w", id, err)
    }
    return s.Get(ctx, id)
}

// Delete removes showtime id.  Showtimes with booked tickets are kept.
func (s *ShowtimeService) Delete(ctx context.Context, id uint64) error {
    err := s.showtimes.Delete(ctx, id)
    switch {
    case err == nil:
        s.log.Debug("showtime deleted", "showtime_id", id)
        return nil
    case errors.Is(err, repository.ErrShowtimeNotFound):
        return showtimeNotFound(id)
    case errors.Is(err, repository.ErrConflict):
        return conflict("Showtime %d has booked tickets", id)
    }
    return fmt.Errorf("delete showtime %d: %w", id, err)
}
