package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists      = errors.New("email already exists")
	ErrUserDoesNotExist        = errors.New("user does not exist")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrInvalidResetToken       = errors.New("invalid password reset token")
	ErrResetTokenExpired       = errors.New("password reset token expired")
	ErrResetTokenAlreadyExists = errors.New("reset token already exists")
	ErrNotificationNotSent     = errors.New("could not send notification")
)
