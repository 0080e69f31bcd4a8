package upstream

import (
	"errors"
	"fmt"
	"strings"

	"github.com/societyhub/dashboard/internal/core/domain"
)

// APIError is the normalized shape of every upstream failure: the HTTP
// status plus the backend's human-readable detail string. It wraps the
// matching domain sentinel so callers can branch with errors.Is without
// looking at status codes.
type APIError struct {
	Status   int
	Detail   string
	sentinel error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream: %d: %s", e.Status, e.Detail)
}

func (e *APIError) Unwrap() error {
	return e.sentinel
}

// newAPIError classifies a failed response. The 400-conflict case matches on
// the backend's wording ("User with this email or phone already exists",
// "Email already registered").
func newAPIError(status int, detail string) *APIError {
	err := &APIError{Status: status, Detail: detail}

	switch {
	case status == 401:
		err.sentinel = domain.ErrUnauthenticated
	case status == 403:
		err.sentinel = domain.ErrForbidden
	case status == 404:
		err.sentinel = domain.ErrNotFound
	case status == 400 && strings.Contains(strings.ToLower(detail), "already"):
		err.sentinel = domain.ErrEmailTaken
	}

	return err
}

// asCredentialFailure rebinds a 401 to ErrInvalidCredentials. Only the login
// endpoint uses it: a 401 there means wrong credentials, not a dead session.
func asCredentialFailure(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == 401 {
		apiErr.sentinel = domain.ErrInvalidCredentials
		return apiErr
	}
	return err
}
