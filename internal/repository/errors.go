// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// services to distinguish between different failure scenarios without
// depending on the storage driver.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrMovieNotFound indicates that a movie was not located in the DB.
	ErrMovieNotFound = errors.New("movie not found")
	// ErrShowtimeNotFound indicates that a showtime was not located in the DB.
	ErrShowtimeNotFound = errors.New("showtime not found")
	// ErrTicketNotFound indicates that no ticket matched the lookup.
	ErrTicketNotFound = errors.New("ticket not found")
	// ErrShowtimeOverlap is returned when a showtime would intersect
	// another showtime of the same theater.
	ErrShowtimeOverlap = errors.New("showtime overlaps an existing showtime")
	// ErrSeatTaken is returned when the seat is already booked for the
	// showtime.
	ErrSeatTaken = errors.New("seat already booked")
)

// ErrConflict is returned when a delete cannot be performed because
// dependent records still reference the row (e.g. deleting a movie that
// still has showtimes).
var ErrConflict = errors.New("conflict")

// MySQL server error numbers the repositories translate.
const (
	errDupEntry        = 1062 // ER_DUP_ENTRY
	errRowIsReferenced = 1451 // ER_ROW_IS_REFERENCED_2
	errNoReferencedRow = 1452 // ER_NO_REFERENCED_ROW_2
)

func isMySQLError(err error, number uint16) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == number
}

// withTx runs fn inside a transaction, committing when fn returns nil and
// rolling back otherwise.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()
	return fn(tx)
}
