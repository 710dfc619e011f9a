package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/attend-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/attend-hq/attendance-backend-go/internal/domain/qrcode"
	"github.com/attend-hq/attendance-backend-go/internal/pkg/database"
)

type qrCodeRepository struct {
	db *database.DB
}

func NewQRCodeRepository(db *database.DB) qrcode.QRCodeRepository {
	return &qrCodeRepository{db: db}
}

// AcquireIssueLock implements qrcode.QRCodeRepository. Under READ COMMITTED
// the invalidate-then-insert pair alone is not enough: with no valid row both
// issuers invalidate nothing, and with one valid row the blocked issuer
// re-checks only that row and never sees the winner's insert.
func (r *qrCodeRepository) AcquireIssueLock(ctx context.Context, usage attendance.Kind) error {
	return acquireTxLock(ctx, GetQuerier(ctx, r.db), lockClassQRCodeIssue, string(usage))
}

// Create implements qrcode.QRCodeRepository.
func (r *qrCodeRepository) Create(ctx context.Context, code qrcode.QRCode) (qrcode.QRCode, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO qr_codes (token, usage_kind, is_valid)
		VALUES ($1, $2, true)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, code.Token, code.Usage).Scan(&code.ID, &code.CreatedAt)
	if err != nil {
		return qrcode.QRCode{}, fmt.Errorf("failed to create QR code: %w", err)
	}
	code.IsValid = true

	return code, nil
}

// InvalidateAllByUsage implements qrcode.QRCodeRepository.
func (r *qrCodeRepository) InvalidateAllByUsage(ctx context.Context, usage attendance.Kind) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE qr_codes
		SET is_valid = false
		WHERE usage_kind = $1 AND is_valid = true
	`

	if _, err := q.Exec(ctx, query, usage); err != nil {
		return fmt.Errorf("failed to invalidate QR codes: %w", err)
	}

	return nil
}

// ConsumeValid implements qrcode.QRCodeRepository. The conditional UPDATE is
// what makes consumption at-most-once: of two concurrent scans only one can
// flip is_valid.
func (r *qrCodeRepository) ConsumeValid(ctx context.Context, token string, usage attendance.Kind) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE qr_codes
		SET is_valid = false
		WHERE token = $1 AND usage_kind = $2 AND is_valid = true
	`

	tag, err := q.Exec(ctx, query, token, usage)
	if err != nil {
		return false, fmt.Errorf("failed to consume QR code: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// TokenExists implements qrcode.QRCodeRepository.
func (r *qrCodeRepository) TokenExists(ctx context.Context, token string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM qr_codes WHERE token = $1)`, token).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check QR token existence: %w", err)
	}

	return exists, nil
}

// List implements qrcode.QRCodeRepository.
func (r *qrCodeRepository) List(ctx context.Context, filter qrcode.ListFilter) ([]qrcode.QRCode, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.Usage != nil {
		conditions = append(conditions, fmt.Sprintf("usage_kind = $%d", argPos))
		args = append(args, *filter.Usage)
		argPos++
	}

	if filter.ValidOnly {
		conditions = append(conditions, "is_valid = true")
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM qr_codes WHERE %s", where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count QR codes: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, token, usage_kind, is_valid, created_at
		FROM qr_codes
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list QR codes: %w", err)
	}
	defer rows.Close()

	var codes []qrcode.QRCode
	for rows.Next() {
		var code qrcode.QRCode
		if err := rows.Scan(&code.ID, &code.Token, &code.Usage, &code.IsValid, &code.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan QR code: %w", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate QR codes: %w", err)
	}

	return codes, total, nil
}
