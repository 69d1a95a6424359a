package auth

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned by the gate when no usable token was
// presented. Callers collapse every gate failure to the same client-visible
// outcome so that token validity information is never leaked.
var ErrNotAuthenticated = errors.New("not authenticated")

// ValidationError reports malformed or out-of-bounds credential input.
// Always client-caused, never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TokenErrorKind tags the two structurally distinct token failures.
type TokenErrorKind int

const (
	// TokenMalformed covers signature mismatch and structural damage.
	// Treated as hostile or corrupted input; never triggers a refresh.
	TokenMalformed TokenErrorKind = iota
	// TokenExpired marks a structurally valid token past its expiry.
	// For access tokens this drives the refresh protocol.
	TokenExpired
)

func (k TokenErrorKind) String() string {
	switch k {
	case TokenMalformed:
		return "malformed"
	case TokenExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// TokenError reports a token verification failure. The kind is inspected
// structurally by callers; never match on the message text.
type TokenError struct {
	Kind TokenErrorKind
	Err  error
}

func (e *TokenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("token %s", e.Kind)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// IsTokenExpired reports whether err is a TokenError of kind TokenExpired.
func IsTokenExpired(err error) bool {
	var te *TokenError
	return errors.As(err, &te) && te.Kind == TokenExpired
}
