package qrcode

import (
	"context"

	"github.com/attend-hq/attendance-backend-go/internal/domain/attendance"
)

type QRCodeRepository interface {
	// AcquireIssueLock serializes issuance for one usage kind until the
	// surrounding transaction ends. Without it two concurrent issuers can
	// each miss the other's insert and leave two valid codes of the kind.
	AcquireIssueLock(ctx context.Context, usage attendance.Kind) error

	// Create inserts a new valid code.
	Create(ctx context.Context, code QRCode) (QRCode, error)

	// InvalidateAllByUsage marks every currently-valid code of the usage
	// kind as invalid. Called inside the issuance transaction so the old and
	// new codes never coexist as valid.
	InvalidateAllByUsage(ctx context.Context, usage attendance.Kind) error

	// ConsumeValid atomically flips a matching valid code to invalid.
	// It reports false when no valid code matched, which makes consumption
	// at-most-once under concurrency.
	ConsumeValid(ctx context.Context, token string, usage attendance.Kind) (bool, error)

	// TokenExists reports whether any code (valid or not) uses the token.
	TokenExists(ctx context.Context, token string) (bool, error)

	// List returns codes newest first.
	List(ctx context.Context, filter ListFilter) ([]QRCode, int64, error)
}

type QRCodeService interface {
	// Issue invalidates the kind's current code and creates a fresh one.
	Issue(ctx context.Context, usage attendance.Kind) (QRCodeResponse, error)

	// Consume validates and single-use-invalidates a scanned token.
	Consume(ctx context.Context, token string, usage attendance.Kind) error

	List(ctx context.Context, filter ListFilter) (ListQRCodesResponse, error)
}
