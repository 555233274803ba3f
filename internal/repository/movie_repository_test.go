package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-booking/internal/model"
)

func TestMovieRepoListAll(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM movies ORDER BY id ASC")).
		WillReturnRows(sqlmock.NewRows(movieCols).
			AddRow(1, "Heat", "Crime", 170, 8.3, 1995).
			AddRow(2, "Alien", "Horror", 117, 8.5, 1979))

	movies, err := NewMovieRepo(db).ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Movie{
		{ID: 1, Title: "Heat", Genre: "Crime", Duration: 170, Rating: 8.3, ReleaseYear: 1995},
		{ID: 2, Title: "Alien", Genre: "Horror", Duration: 117, Rating: 8.5, ReleaseYear: 1979},
	}, movies)
}

func TestMovieRepoListAllEmpty(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM movies").WillReturnRows(sqlmock.NewRows(movieCols))

	movies, err := NewMovieRepo(db).ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, movies)
	assert.Empty(t, movies)
}

func TestMovieRepoGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM movies WHERE id = ?")).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows(movieCols))

	_, err := NewMovieRepo(db).GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestMovieRepoCreateAssignsID(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO movies (title, genre, duration, rating, release_year)")).
		WithArgs("Heat", "Crime", 170, 8.3, 1995).
		WillReturnResult(sqlmock.NewResult(9, 1))

	m := &model.Movie{Title: "Heat", Genre: "Crime", Duration: 170, Rating: 8.3, ReleaseYear: 1995}
	require.NoError(t, NewMovieRepo(db).Create(context.Background(), m))
	assert.Equal(t, uint64(9), m.ID)
}

func TestMovieRepoUpdate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMovieRepo(db)
	m := &model.Movie{ID: 3, Title: "Heat", Genre: "Crime", Duration: 170, Rating: 8.3, ReleaseYear: 1995}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE movies SET")).
		WithArgs("Heat", "Crime", 170, 8.3, 1995, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), m))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE movies SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Update(context.Background(), m), ErrMovieNotFound)
}

func TestMovieRepoDelete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMovieRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM movies WHERE id = ?")).WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), 1))

	mock.ExpectExec("DELETE FROM movies").WithArgs(2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 2), ErrMovieNotFound)

	mock.ExpectExec("DELETE FROM movies").WithArgs(3).
		WillReturnError(mysqlErr(errRowIsReferenced))
	assert.ErrorIs(t, repo.Delete(context.Background(), 3), ErrConflict)
}
