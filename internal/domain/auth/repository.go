package auth

import (
	"context"
	"time"
)

type RefreshTokenRepository interface {
	// Store persists a freshly issued refresh token.
	Store(ctx context.Context, employeeCode string, token string, expiresAt time.Time) error

	// GetByToken returns the stored row, or ErrRefreshTokenUnknown.
	GetByToken(ctx context.Context, token string) (RefreshToken, error)

	// Revoke stamps the row's revoked_at. Revoking an already-revoked token
	// returns ErrRefreshTokenRevoked.
	Revoke(ctx context.Context, token string) error
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (TokenResponse, error)
	Logout(ctx context.Context, req LogoutRequest) error
}
