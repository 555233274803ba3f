package model

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
    return time.Date(2025, 6, 1, hour, min, 0, 0, time.UTC)
}

func TestShowtimeOverlaps(t *testing.T) {
    s := Showtime{Theater: "Hall 1", StartTime: at(14, 0), EndTime: at(16, 0)}

    cases := []struct {
        name       string
        start, end time.Time
        want       bool
    }{
        {"inside", at(14, 30), at(15, 30), true},
        {"straddles start", at(13, 0), at(14, 1), true},
        {"straddles end", at(15, 59), at(17, 0), true},
        {"covers", at(13, 0), at(17, 0), true},
        {"identical", at(14, 0), at(16, 0), true},
        {"abuts before", at(12, 0), at(14, 0), false},
        {"abuts after", at(16, 0), at(18, 0), false},
        {"disjoint", at(18, 0), at(20, 0), false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.want, s.Overlaps(tc.start, tc.end))
        })
    }
}

func TestOverlapQueryMatches(t *testing.T) {
    s := Showtime{ID: 7, Theater: "Hall 1", StartTime: at(14, 0), EndTime: at(16, 0)}

    assert.True(t, OverlapQuery{Theater: "Hall 1", Start: at(15, 0), End: at(17, 0)}.Matches(s))
    assert.False(t, OverlapQuery{Theater: "Hall 2", Start: at(15, 0), End: at(17, 0)}.Matches(s), "other theater")
    assert.False(t, OverlapQuery{Theater: "Hall 1", Start: at(15, 0), End: at(17, 0), ExcludeID: 7}.Matches(s), "self excluded")
    assert.True(t, OverlapQuery{Theater: "Hall 1", Start: at(15, 0), End: at(17, 0), ExcludeID: 8}.Matches(s))
}
