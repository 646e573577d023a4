// Package auth provides JWT token issuance/validation and password
// hashing for the API's authentication flows.
package auth

import "errors"

// Common authentication errors.
var (
	// ErrInvalidToken is returned when a token fails signature or claim
	// validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token is past its expiry.
	ErrExpiredToken = errors.New("token expired")

	// ErrWrongTokenType is returned when an access token is presented
	// where a refresh token is required, or vice versa.
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrInvalidCredentials is returned when an email/password pair does
	// not match a stored user.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
