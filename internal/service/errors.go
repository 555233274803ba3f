// Package service holds the booking rules for movies, showtimes and
// tickets.  Services depend only on the store interfaces declared here and
// report rule violations as *Error values that handlers map to HTTP
// statuses.
package service

import (
    "errors"
    "fmt"
)

// Kind classifies an Error.
type Kind int

const (
    // KindNotFound means a referenced record does not exist.
    KindNotFound Kind = iota + 1
    // KindConflict means the request collides with existing state.
    KindConflict
    // KindValidation means the input is well formed but not acceptable.
    KindValidation
)

func (k Kind) String() string {
    switch k {
    case KindNotFound:
        return "not found"
    case KindConflict:
        return "conflict"
    case KindValidation:
        return "validation"
    }
    return "unknown"
}

// Error is a rule violation with a client-facing message.
type Error struct {
    Kind    Kind
    Message string
}

func (e *Error) Error() string { return e.Message }

func notFound(format string, args ...any) *Error {
    return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) *Error {
    return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...any) *Error {
    return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0 when
// there is none.
func KindOf(err error) Kind {
    var se *Error
    if errors.As(err, &se) {
        return se.Kind
    }
    return 0
}
