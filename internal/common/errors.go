// Package common defines shared constants and sentinel errors used across
// client and server layers of gophaccounts. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Token errors returned by the JWT layer.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Login failures. The messages are returned to the caller as is.
	ErrInvalidCredentials   = errors.New("Invalid username and password")
	ErrAccountNotActivated  = errors.New("This account is not activated yet")
	ErrInvalidClient        = errors.New("invalid_client")
	ErrUnsupportedGrantType = errors.New("unsupported_grant_type")

	// Bearer-authenticated request failures.
	ErrUnauthorizedAccess = errors.New("Unauthorized access")
	ErrInvalidAccessToken = errors.New("Invalid access token")
	ErrUserDoesNotExist   = errors.New("User does not exist")
	ErrUserInactive       = errors.New("User is inactive")
	ErrInvalidPassword    = errors.New("Invalid password")
)

// authFailures lists every error reported to callers as an authentication
// failure (HTTP 401 / gRPC Unauthenticated).
var authFailures = []error{
	ErrorUnauthorized,
	ErrInvalidCredentials,
	ErrAccountNotActivated,
	ErrInvalidClient,
	ErrUnauthorizedAccess,
	ErrInvalidAccessToken,
	ErrUserDoesNotExist,
	ErrUserInactive,
	ErrInvalidPassword,
}

// AuthFailure returns the authentication sentinel err wraps, or nil.
func AuthFailure(err error) error {
	for _, e := range authFailures {
		if errors.Is(err, e) {
			return e
		}
	}
	return nil
}

// IsAuthFailure reports whether err belongs to the authentication failure family.
func IsAuthFailure(err error) bool {
	return AuthFailure(err) != nil
}
