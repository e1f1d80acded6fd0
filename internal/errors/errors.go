package errors

import (
	"errors"
)

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrSessionNotFound      = errors.New("user session does not exist")
	ErrRefreshTokenNotFound = errors.New("invalid refresh token")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
	ErrResetTokenNotFound   = errors.New("invalid reset password token")
	ErrResetTokenExpired    = errors.New("reset password token expired")
)
