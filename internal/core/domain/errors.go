package domain

import "errors"

// Error taxonomy for failures surfaced to pages. Upstream HTTP failures are
// normalized into these sentinels so handlers can branch without inspecting
// status codes.
var (
	// ErrInvalidCredentials: 401 on login. No token is written.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthenticated: missing/expired token on an authenticated call,
	// after the single silent-refresh attempt has failed.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden: the upstream rejected the caller's role.
	ErrForbidden = errors.New("access forbidden")

	// ErrEmailTaken: signup conflict on email or phone.
	ErrEmailTaken = errors.New("email already registered")

	// ErrNotFound: the addressed resource does not exist upstream.
	ErrNotFound = errors.New("not found")

	ErrSessionNotFound = errors.New("session not found")
)
