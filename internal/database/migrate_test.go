package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateAppliesSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS movies")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateWrapsError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("boom")
	mock.ExpectExec("CREATE TABLE").WillReturnError(boom)

	err = Migrate(context.Background(), db)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "apply schema")
}

func TestSchemaDeclaresSeatUniqueness(t *testing.T) {
	assert.Contains(t, schema, "UNIQUE KEY uq_tickets_showtime_seat (showtime_id, seat_number)")
	assert.Contains(t, schema, "KEY idx_showtimes_theater_start (theater, start_time)")
	// theater and seat compare byte for byte, so "A5" and "a5" are different seats
	assert.Regexp(t, `theater\s+VARCHAR\(255\)\s+COLLATE utf8mb4_bin NOT NULL`, schema)
	assert.Regexp(t, `seat_number\s+VARCHAR\(32\)\s+COLLATE utf8mb4_bin NOT NULL`, schema)
}
