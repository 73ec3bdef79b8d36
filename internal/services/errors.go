package services

import "errors"

// ErrUnauthorized is returned when the caller lacks the role or the managed
// establishment required for an operation. Handlers translate it into an
// HTTP 403 response.
var ErrUnauthorized = errors.New("unauthorized")

// ErrEmailTaken is returned by registration when the email is already in use
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials is returned by login on a bad email/password pair
var ErrInvalidCredentials = errors.New("invalid credentials")
