package auth

import "time"

// RefreshToken is a persisted long-lived token. Logout sets RevokedAt; a
// revoked or expired token can no longer be exchanged for a new access token.
type RefreshToken struct {
	ID           int64
	EmployeeCode string
	Token        string
	ExpiresAt    time.Time
	RevokedAt    *time.Time
	CreatedAt    time.Time
}
