package domain

import "errors"

// ErrNotFound is returned when a referenced guest, dorm or user does not
// exist. Store lookups report absence with a bool; services turn that into
// this error so callers decide how to treat it.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing name, unknown status, capacity below occupancy).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrForbidden is returned when the acting user's role does not permit the
// requested change. Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthenticated is returned when an operation needs an acting user and
// none is signed in. Handlers should map this to HTTP 401.
var ErrUnauthenticated = errors.New("not signed in")

// ErrInvalidCredentials is returned by login when the email is unknown or the
// passphrase does not match. Handlers should map this to HTTP 401.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrDormFull is returned when a guest would be assigned to a dorm with no
// free bed. Handlers should map this to HTTP 409.
var ErrDormFull = errors.New("dorm full")

// ErrConflict is returned when an add operation supplies an ID that is
// already taken. Handlers should map this to HTTP 409.
var ErrConflict = errors.New("already exists")
