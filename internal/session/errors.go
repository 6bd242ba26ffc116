package session

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned by user actions that need a session when
// there is none. No request is sent in that case.
var ErrNotAuthenticated = errors.New("not signed in")

// AuthError reports that the backend rejected a login or registration.
// The existing session, if any, is left untouched.
type AuthError struct {
	Op  string // "login" or "register"
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsAuthError reports whether err is, or wraps, an *AuthError.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
