package service

import (
    "bytes"
    "encoding/json"
    "errors"
)

// MovieRef is the movie reference a client sends for a showtime.  Clients
// send either the bare id (`"movie": 3`) or an object carrying it
// (`"movie": {"id": 3}`); both decode to the same ID.  A null value or an
// object without an id decodes to ID 0, which services reject.
type MovieRef struct {
    ID uint64
}

var errMovieRef = errors.New("movie must be an id or an object with an id")

// UnmarshalJSON accepts a JSON integer, an object with an "id" member or null.
func (r *MovieRef) UnmarshalJSON(b []byte) error {
    b = bytes.TrimSpace(b)
    if len(b) == 0 {
        return errMovieRef
    }
    switch b[0] {
    case 'n':
        r.ID = 0
        return nil
    case '{':
        var obj struct {
            ID *uint64 `json:"id"`
        }
        if err := json.Unmarshal(b, &obj); err != nil {
            return errMovieRef
        }
        r.ID = 0
        if obj.ID != nil {
            r.ID = *obj.ID
        }
        return nil
    }
    var id uint64
    if err := json.Unmarshal(b, &id); err != nil {
        return errMovieRef
    }
    r.ID = id
    return nil
}

// MarshalJSON writes the reference as a bare id.
func (r MovieRef) MarshalJSON() ([]byte, error) {
    return json.Marshal(r.ID)
}
