package service

import (
    "context"
    "errors"
    "fmt"

    "github.com/hashicorp/go-hclog"

    "github.com/iliyamo/cinema-booking/internal/model"
    "github.com/iliyamo/cinema-booking/internal/repository"
)

// MovieService manages the movie catalogue.
type MovieService struct {
    movies MovieStore
    log    hclog.Logger
}

// NewMovieService panics when movies is nil.  A nil logger discards output.
func NewMovieService(movies MovieStore, log hclog.Logger) *MovieService {
    if movies == nil {
        panic("nil store passed to NewMovieService")
    }
    if log == nil {
        log = hclog.NewNullLogger()
    }
    return &MovieService{movies: movies, log: log}
}

// movieNotFound is the one message for a missing movie, whichever
// operation looked it up.
func movieNotFound(id uint64) *Error {
    return notFound("Movie with ID %d not found", id)
}

// List returns all movies ordered by id.
func (s *MovieService) List(ctx context.Context) ([]model.Movie, error) {
    movies, err := s.movies.ListAll(ctx)
    if err != nil {
        return nil, fmt.Errorf("list movies: %w", err)
    }
    return movies, nil
}

// Get returns the movie with the given id.
func (s *MovieService) Get(ctx context.Context, id uint64) (*model.Movie, error) {
    m, err := s.movies.GetByID(ctx, id)
    if errors.Is(err, repository.ErrMovieNotFound) {
        return nil, movieNotFound(id)
    }
    if err != nil {
        return nil, fmt.Errorf("get movie %d: %w", id, err)
    }
    return m, nil
}

// Create stores a new movie and returns it with its id assigned.
func (s *MovieService) Create(ctx context.Context, m model.Movie) (*model.Movie, error) {
    m.ID = 0
    if err := s.movies.Create(ctx, &m); err != nil {
        return nil, fmt.Errorf("create movie: %w", err)
    }
    s.log.Debug("movie created", "movie_id", m.ID, "title", m.Title)
    return &m, nil
}

// Update applies the supplied fields of patch to movie id and returns the
// stored result.
func (s *MovieService) Update(ctx context.Context, id uint64, patch model.MoviePatch) (*model.Movie, error) {
    cur, err := s.Get(ctx, id)
    if err != nil {
        return nil, err
    }
    patch.Apply(cur)
    if err := s.movies.Update(ctx, cur); err != nil {
        if errors.Is(err, repository.ErrMovieNotFound) {
            return nil, movieNotFound(id)
        }
        return nil, fmt.Errorf("update movie %d: %w", id, err)
    }
    return s.Get(ctx, id)
}

// Delete removes movie id.  Movies that still have showtimes are kept.
func (s *MovieService) Delete(ctx context.Context, id uint64) error {
    err := s.movies.Delete(ctx, id)
    switch {
    case err == nil:
        s.log.Debug("movie deleted", "movie_id", id)
        return nil
    case errors.Is(err, repository.ErrMovieNotFound):
        return movieNotFound(id)
    case errors.Is(err, repository.ErrConflict):
        return conflict("Movie with ID %d still has showtimes", id)
    }
    return fmt.Errorf("delete movie %d: %w", id, err)
}
