// Package repository contains data access logic for showtimes.  A
// showtime is a screening of one movie in one theater; no two showtimes of
// a theater may overlap.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-booking/internal/model"
)

// ShowtimeRepo manages persistence for showtimes.
type ShowtimeRepo struct {
	db *sql.DB
}

// NewShowtimeRepo constructs a ShowtimeRepo with the given DB handle.
func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo {
	return &ShowtimeRepo{db: db}
}

const selectShowtimeWithMovie = `SELECT s.id, s.movie_id, s.theater, s.start_time, s.end_time, s.price,
                      m.id, m.title, m.genre, m.duration, m.rating, m.release_year
               FROM showtimes s
               JOIN movies m ON m.id = s.movie_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShowtimeWithMovie(row rowScanner) (model.Showtime, error) {
	var s model.Showtime
	var m model.Movie
	err := row.Scan(
		&s.ID, &s.MovieID, &s.Theater, &s.StartTime, &s.EndTime, &s.Price,
		&m.ID, &m.Title, &m.Genre, &m.Duration, &m.Rating, &m.ReleaseYear,
	)
	if err != nil {
		return s, err
	}
	s.StartTime = s.StartTime.UTC()
	s.EndTime = s.EndTime.UTC()
	s.Movie = &m
	return s, nil
}

// ListAll returns every showtime with its movie populated, ordered by id.
func (r *ShowtimeRepo) ListAll(ctx context.Context) ([]model.Showtime, error) {
	rows, err := r.db.QueryContext(ctx, selectShowtimeWithMovie+` ORDER BY s.id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := []model.Showtime{}
	for rows.Next() {
		s, err := scanShowtimeWithMovie(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a showtime and its movie.  It returns
// ErrShowtimeNotFound if there is no matching row.
func (r *ShowtimeRepo) GetByID(ctx context.Context, id uint64) (*model.Showtime, error) {
	s, err := scanShowtimeWithMovie(r.db.QueryRowContext(ctx, selectShowtimeWithMovie+` WHERE s.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return &s, nil
}

// overlapSQL builds the overlap query: showtimes of q.Theater that start
// before q.End and end after q.Start, skipping q.ExcludeID when set.
func overlapSQL(q model.OverlapQuery) (string, []any) {
	query := `SELECT id FROM showtimes
               WHERE theater = ? AND start_time < ? AND end_time > ?`
	args := []any{q.Theater, q.End, q.Start}
	if q.ExcludeID != 0 {
		query += ` AND id <> ?`
		args = append(args, q.ExcludeID)
	}
	// Next-key locks on (theater, start_time) keep a concurrent writer
	// from slipping an overlapping row in before this tx commits.
	query += ` FOR UPDATE`
	return query, args
}

// hasOverlapTx runs the overlap query inside tx with row locks held until
// the transaction ends.
func (r *ShowtimeRepo) hasOverlapTx(ctx context.Context, tx *sql.Tx, q model.OverlapQuery) (bool, error) {
	query, args := overlapSQL(q)
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	found := rows.Next()
	if err := rows.Err(); err != nil {
		return false, err
	}
	return found, nil
}

// CreateIfFree inserts a new showtime unless it overlaps another showtime
// of the same theater, in which case ErrShowtimeOverlap is returned and
// nothing is written.  The check and the insert share one transaction.  On
// success the generated ID is assigned back to s.
func (r *ShowtimeRepo) CreateIfFree(ctx context.Context, s *model.Showtime) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		overlap, err := r.hasOverlapTx(ctx, tx, model.OverlapQuery{Theater: s.Theater, Start: s.StartTime, End: s.EndTime})
		if err != nil {
			return err
		}
		if overlap {
			return ErrShowtimeOverlap
		}
		const q = `INSERT INTO showtimes (movie_id, theater, start_time, end_time, price) VALUES (?, ?, ?, ?, ?)`
		res, err := tx.ExecContext(ctx, q, s.MovieID, s.Theater, s.StartTime, s.EndTime, s.Price)
		if err != nil {
			if isMySQLError(err, errNoReferencedRow) {
				return ErrMovieNotFound
			}
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		s.ID = uint64(id)
		return nil
	})
}

// UpdateIfFree overwrites the showtime identified by s.ID unless the new
// interval overlaps a different showtime of the same theater.  It returns
// ErrShowtimeNotFound when the row is gone and ErrShowtimeOverlap on a
// schedule conflict.
func (r *ShowtimeRepo) UpdateIfFree(ctx context.Context, s *model.Showtime) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var one int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM showtimes WHERE id = ? FOR UPDATE`, s.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrShowtimeNotFound
			}
			return err
		}
		overlap, err := r.hasOverlapTx(ctx, tx, model.OverlapQuery{
			Theater:   s.Theater,
			Start:     s.StartTime,
			End:       s.EndTime,
			ExcludeID: s.ID,
		})
		if err != nil {
			return err
		}
		if overlap {
			return ErrShowtimeOverlap
		}
		const q = `UPDATE showtimes SET movie_id = ?, theater = ?, start_time = ?, end_time = ?, price = ? WHERE id = ?`
		if _, err := tx.ExecContext(ctx, q, s.MovieID, s.Theater, s.StartTime, s.EndTime, s.Price, s.ID); err != nil {
			if isMySQLError(err, errNoReferencedRow) {
				return ErrMovieNotFound
			}
			return err
		}
		return nil
	})
}

// Delete removes a showtime.  It returns ErrShowtimeNotFound when nothing
// was deleted and ErrConflict when tickets still reference the showtime.
func (r *ShowtimeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM showtimes WHERE id = ?`, id)
	if err != nil {
		if isMySQLError(err, errRowIsReferenced) {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrShowtimeNotFound
	}
	return nil
}
