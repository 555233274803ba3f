package handler

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
    want := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
    for _, in := range []string{
        "2025-06-01T14:00:00Z",
        "2025-06-01T14:00:00.000Z",
        "2025-06-01T16:00:00+02:00",
        "2025-06-01T14:00:00",
    } {
        got, err := ParseDateTime(in)
        require.NoError(t, err, in)
        assert.True(t, want.Equal(got), in)
        assert.Equal(t, time.UTC, got.Location(), in)
    }
    for _, in := range []string{"", "2025-06-01", "14:00", "yesterday"} {
        _, err := ParseDateTime(in)
        assert.Error(t, err, in)
    }
}

func TestBindReportsFieldDetails(t *testing.T) {
    e := echo.New()
    e.Validator = NewValidator()
    e.POST("/movies", func(c echo.Context) error {
        var req createMovieRequest
        if ok, err := bind(c, &req); !ok {
            return err
        }
        return c.NoContent(http.StatusNoContent)
    })

    req := httptest.NewRequest(http.MethodPost, "/movies", strings.NewReader(`{"title":"","genre":"Crime","rating":11,"releaseYear":1995}`))
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)

    assert.Equal(t, http.StatusBadRequest, rec.Code)
    body := rec.Body.String()
    assert.Contains(t, body, `"error":"validation failed"`)
    assert.Contains(t, body, "title must not be empty")
    assert.Contains(t, body, "duration is required")
    assert.Contains(t, body, "rating must be at most 10")
}

func TestBindRejectsUnknownFields(t *testing.T) {
    e := echo.New()
    e.Validator = NewValidator()
    e.POST("/tickets", func(c echo.Context) error {
        var req createTicketRequest
        if ok, err := bind(c, &req); !ok {
            return err
        }
        return c.NoContent(http.StatusNoContent)
    })

    req := httptest.NewRequest(http.MethodPost, "/tickets", strings.NewReader(`{"seat_number":"A1","customer_name":"Dana","showtime_id":1,"vip":true}`))
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.Contains(t, rec.Body.String(), "vip")
}
