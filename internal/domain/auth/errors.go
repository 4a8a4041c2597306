package auth

import "errors"

var (
	ErrInvalidAccessCode = errors.New("invalid access code")
	ErrTooManyAttempts   = errors.New("too many login attempts, try again later")
)
