package qrcode

import "errors"

// QR code domain errors
var (
	ErrInvalidOrExpiredCode = errors.New("QR code is invalid or expired")
	ErrTokenGeneration      = errors.New("failed to generate a unique QR token")
)
