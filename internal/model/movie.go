package model

// Movie is a film that can be scheduled in showtimes.  This struct
// corresponds to a row in the `movies` table.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – display title.
//  Genre       – free-form genre label (e.g. Drama, Action).
//  Duration    – running time in minutes, at least 1.
//  Rating      – score between 0 and 10 inclusive.
//  ReleaseYear – year of release, 1800 or later.
type Movie struct {
    ID          uint64  `json:"id"`          // movies.id
    Title       string  `json:"title"`       // movies.title
    Genre       string  `json:"genre"`       // movies.genre
    Duration    int     `json:"duration"`    // movies.duration
    Rating      float64 `json:"rating"`      // movies.rating
    ReleaseYear int     `json:"releaseYear"` // movies.release_year
}

// MoviePatch carries the fields of a partial movie update.  A nil field
// keeps the stored value.
type MoviePatch struct {
    Title       *string
    Genre       *string
    Duration    *int
    Rating      *float64
    ReleaseYear *int
}

// Apply copies every non-nil field of p onto m.
func (p MoviePatch) Apply(m *Movie) {
    if p.Title != nil {
        m.Title = *p.Title
    }
    if p.Genre != nil {
        m.Genre = *p.Genre
    }
    if p.Duration != nil {
        m.Duration = *p.Duration
    }
    if p.Rating != nil {
        m.Rating = *p.Rating
    }
    if p.ReleaseYear != nil {
        m.ReleaseYear = *p.ReleaseYear
    }
}
