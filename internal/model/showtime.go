package model

import "time"

// Showtime represents a scheduled screening of a movie in a theater.
// Two showtimes in the same theater must never overlap.
//
// Fields:
//  ID        – primary key identifier.
//  MovieID   – movie being screened.
//  Movie     – the referenced movie, populated on reads.
//  Theater   – screen or room name.
//  StartTime – when the showtime begins (UTC).
//  EndTime   – when the showtime ends (UTC).
//  Price     – ticket price, at least 1.
type Showtime struct {
    ID        uint64    `json:"id"`              // showtimes.id
    MovieID   uint64    `json:"movie_id"`        // showtimes.movie_id
    Movie     *Movie    `json:"movie,omitempty"` // joined from movies
    Theater   string    `json:"theater"`         // showtimes.theater
    StartTime time.Time `json:"start_time"`      // showtimes.start_time
    EndTime   time.Time `json:"end_time"`        // showtimes.end_time
    Price     float64   `json:"price"`           // showtimes.price
}

// Overlaps reports whether the showtime's [StartTime, EndTime) interval
// intersects [start, end).  Intervals that only touch at an endpoint do
// not overlap.
func (s Showtime) Overlaps(start, end time.Time) bool {
    return s.StartTime.Before(end) && s.EndTime.After(start)
}

// OverlapQuery selects showtimes of one theater that intersect the
// half-open interval [Start, End).  ExcludeID, when non-zero, skips the
// showtime with that id so an update does not conflict with itself.
type OverlapQuery struct {
    Theater   string
    Start     time.Time
    End       time.Time
    ExcludeID uint64
}

// Matches reports whether s would be returned by the query.
func (q OverlapQuery) Matches(s Showtime) bool {
    if s.Theater != q.Theater {
        return false
    }
    if q.ExcludeID != 0 && s.ID == q.ExcludeID {
        return false
    }
    return s.Overlaps(q.Start, q.End)
}
