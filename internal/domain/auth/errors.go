package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid login or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrRefreshTokenExpired = errors.New("refresh token has expired")
	ErrRefreshTokenUnknown = errors.New("refresh token not found")
	ErrAccountInactive     = errors.New("account is inactive")
)
