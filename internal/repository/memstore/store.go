// Package memstore keeps movies, showtimes and tickets in process memory.
// It mirrors the MySQL repositories, including their sentinel errors and
// the referential rules the schema enforces, and is meant for local runs
// and tests.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/iliyamo/cinema-booking/internal/model"
	"github.com/iliyamo/cinema-booking/internal/repository"
)

// Store holds all three tables behind one mutex so check-and-write
// sequences are atomic.
type Store struct {
	mu        sync.Mutex
	nextID    map[string]uint64
	movies    map[uint64]model.Movie
	showtimes map[uint64]model.Showtime
	tickets   map[uint64]model.Ticket
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		nextID:    map[string]uint64{},
		movies:    map[uint64]model.Movie{},
		showtimes: map[uint64]model.Showtime{},
		tickets:   map[uint64]model.Ticket{},
	}
}

// Movies returns the movie table view.
func (s *Store) Movies() *Movies { return &Movies{s: s} }

// Showtimes returns the showtime table view.
func (s *Store) Showtimes() *Showtimes { return &Showtimes{s: s} }

// Tickets returns the ticket table view.
func (s *Store) Tickets() *Tickets { return &Tickets{s: s} }

// PingContext reports only context cancellation; it lets the health check
// treat both backends alike.
func (s *Store) PingContext(ctx context.Context) error { return ctx.Err() }

func (s *Store) id(table string) uint64 {
	s.nextID[table]++
	return s.nextID[table]
}

func sortedKeys[V any](m map[uint64]V) []uint64 {
	keys := make([]uint64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Movies implements the movie store over Store.
type Movies struct{ s *Store }

func (r *Movies) ListAll(ctx context.Context) ([]model.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Movie, 0, len(r.s.movies))
	for _, id := range sortedKeys(r.s.movies) {
		out = append(out, r.s.movies[id])
	}
	return out, nil
}

func (r *Movies) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movies[id]
	if !ok {
		return nil, repository.ErrMovieNotFound
	}
	return &m, nil
}

func (r *Movies) Create(ctx context.Context, m *model.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.ID = r.s.id("movies")
	r.s.movies[m.ID] = *m
	return nil
}

func (r *Movies) Update(ctx context.Context, m *model.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movies[m.ID]; !ok {
		return repository.ErrMovieNotFound
	}
	r.s.movies[m.ID] = *m
	return nil
}

func (r *Movies) Delete(ctx context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movies[id]; !ok {
		return repository.ErrMovieNotFound
	}
	for _, st := range r.s.showtimes {
		if st.MovieID == id {
			return repository.ErrConflict
		}
	}
	delete(r.s.movies, id)
	return nil
}

// Showtimes implements the showtime store over Store.
type Showtimes struct{ s *Store }

// withMovie returns a copy of st with its movie attached; callers hold mu.
func (r *Showtimes) withMovie(st model.Showtime) model.Showtime {
	if m, ok := r.s.movies[st.MovieID]; ok {
		st.Movie = &m
	}
	return st
}

func (r *Showtimes) ListAll(ctx context.Context) ([]model.Showtime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Showtime, 0, len(r.s.showtimes))
	for _, id := range sortedKeys(r.s.showtimes) {
		out = append(out, r.withMovie(r.s.showtimes[id]))
	}
	return out, nil
}

func (r *Showtimes) GetByID(ctx context.Context, id uint64) (*model.Showtime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.showtimes[id]
	if !ok {
		return nil, repository.ErrShowtimeNotFound
	}
	st = r.withMovie(st)
	return &st, nil
}

// overlaps reports whether any stored showtime matches q; callers hold mu.
func (r *Showtimes) overlaps(q model.OverlapQuery) bool {
	for _, st := range r.s.showtimes {
		if q.Matches(st) {
			return true
		}
	}
	return false
}

func (r *Showtimes) CreateIfFree(ctx context.Context, st *model.Showtime) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.overlaps(model.OverlapQuery{Theater: st.Theater, Start: st.StartTime, End: st.EndTime}) {
		return repository.ErrShowtimeOverlap
	}
	if _, ok := r.s.movies[st.MovieID]; !ok {
		return repository.ErrMovieNotFound
	}
	st.ID = r.s.id("showtimes")
	stored := *st
	stored.Movie = nil
	r.s.showtimes[st.ID] = stored
	return nil
}

func (r *Showtimes) UpdateIfFree(ctx context.Context, st *model.Showtime) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.showtimes[st.ID]; !ok {
		return repository.ErrShowtimeNotFound
	}
	if r.overlaps(model.OverlapQuery{Theater: st.Theater, Start: st.StartTime, End: st.EndTime, ExcludeID: st.ID}) {
		return repository.ErrShowtimeOverlap
	}
	if _, ok := r.s.movies[st.MovieID]; !ok {
		return repository.ErrMovieNotFound
	}
	stored := *st
	stored.Movie = nil
	r.s.showtimes[st.ID] = stored
	return nil
}

func (r *Showtimes) Delete(ctx context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.showtimes[id]; !ok {
		return repository.ErrShowtimeNotFound
	}
	for _, t := range r.s.tickets {
		if t.ShowtimeID == id {
			return repository.ErrConflict
		}
	}
	delete(r.s.showtimes, id)
	return nil
}

// Tickets implements the ticket store over Store.
type Tickets struct{ s *Store }

func (r *Tickets) Create(ctx context.Context, t *model.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.showtimes[t.ShowtimeID]; !ok {
		return repository.ErrShowtimeNotFound
	}
	for _, existing := range r.s.tickets {
		if existing.ShowtimeID == t.ShowtimeID && existing.SeatNumber == t.SeatNumber {
			return repository.ErrSeatTaken
		}
	}
	t.ID = r.s.id("tickets")
	stored := *t
	stored.Showtime = nil
	r.s.tickets[t.ID] = stored
	return nil
}

func (r *Tickets) FindBySeat(ctx context.Context, showtimeID uint64, seat string) (*model.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range sortedKeys(r.s.tickets) {
		t := r.s.tickets[id]
		if t.ShowtimeID == showtimeID && t.SeatNumber == seat {
			return &t, nil
		}
	}
	return nil, repository.ErrTicketNotFound
}

func (r *Tickets) ListAll(ctx context.Context, includeShowtime bool) ([]model.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Ticket, 0, len(r.s.tickets))
	for _, id := range sortedKeys(r.s.tickets) {
		t := r.s.tickets[id]
		if includeShowtime {
			if st, ok := r.s.showtimes[t.ShowtimeID]; ok {
				t.Showtime = &st
			}
		}
		out = append(out, t)
	}
	return out, nil
}
