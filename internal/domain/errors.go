package domain

import "errors"

// Registration conflicts
var (
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
)

// Credential and reset-flow errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)
