package errors

import (
	"errors"
	"fmt"
)

// Common error types for the query gateway
var (
	// Authentication errors
	ErrCredentialsRequired = errors.New("username and password required")
	ErrInvalidCredentials  = errors.New("invalid credentials")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")

	// Query errors
	ErrInvalidSearchColumn = errors.New("invalid search column")

	// General errors
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
