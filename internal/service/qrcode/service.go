package qrcode

import (
	"context"
	"fmt"

	"github.com/attend-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/attend-hq/attendance-backend-go/internal/domain/qrcode"
	"github.com/attend-hq/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type QRCodeServiceImpl struct {
	tx database.TxManager
	qrcode.QRCodeRepository
}

func NewQRCodeService(tx database.TxManager, qrCodeRepo qrcode.QRCodeRepository) qrcode.QRCodeService {
	return &QRCodeServiceImpl{
		tx:               tx,
		QRCodeRepository: qrCodeRepo,
	}
}

const timestampFormat = "2006-01-02 15:04:05"

// tokenAttempts bounds the collision-check loop. UUID collisions are
// effectively impossible, so more than a few retries means something is
// broken rather than unlucky.
const tokenAttempts = 5

// Issue implements qrcode.QRCodeService. Invalidating the old code and
// inserting the new one happen in one transaction, and the issue lock
// serializes concurrent issuers of the same kind, so there is never a window
// with two valid codes of the kind.
func (s *QRCodeServiceImpl) Issue(ctx context.Context, usage attendance.Kind) (qrcode.QRCodeResponse, error) {
	if !usage.IsValid() {
		return qrcode.QRCodeResponse{}, attendance.ErrUnknownKind
	}

	var created qrcode.QRCode

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.QRCodeRepository.AcquireIssueLock(ctx, usage); err != nil {
			return err
		}

		if err := s.QRCodeRepository.InvalidateAllByUsage(ctx, usage); err != nil {
			return err
		}

		token, err := s.generateToken(ctx)
		if err != nil {
			return err
		}

		created, err = s.QRCodeRepository.Create(ctx, qrcode.QRCode{
			Token: token,
			Usage: usage,
		})
		if err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return qrcode.QRCodeResponse{}, err
	}

	return mapQRCodeToResponse(created), nil
}

func (s *QRCodeServiceImpl) generateToken(ctx context.Context) (string, error) {
	for i := 0; i < tokenAttempts; i++ {
		token := uuid.NewString()

		exists, err := s.QRCodeRepository.TokenExists(ctx, token)
		if err != nil {
			return "", fmt.Errorf("failed to check token uniqueness: %w", err)
		}
		if !exists {
			return token, nil
		}
	}

	return "", qrcode.ErrTokenGeneration
}

// Consume implements qrcode.QRCodeService.
func (s *QRCodeServiceImpl) Consume(ctx context.Context, token string, usage attendance.Kind) error {
	consumed, err := s.QRCodeRepository.ConsumeValid(ctx, token, usage)
	if err != nil {
		return err
	}
	if !consumed {
		return qrcode.ErrInvalidOrExpiredCode
	}

	return nil
}

// List implements qrcode.QRCodeService.
func (s *QRCodeServiceImpl) List(ctx context.Context, filter qrcode.ListFilter) (qrcode.ListQRCodesResponse, error) {
	codes, total, err := s.QRCodeRepository.List(ctx, filter)
	if err != nil {
		return qrcode.ListQRCodesResponse{}, fmt.Errorf("failed to list QR codes: %w", err)
	}

	responses := make([]qrcode.QRCodeResponse, 0, len(codes))
	for _, code := range codes {
		responses = append(responses, mapQRCodeToResponse(code))
	}

	return qrcode.ListQRCodesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		QRCodes:    responses,
	}, nil
}

func mapQRCodeToResponse(code qrcode.QRCode) qrcode.QRCodeResponse {
	return qrcode.QRCodeResponse{
		ID:        code.ID,
		Token:     code.Token,
		Usage:     code.Usage,
		IsValid:   code.IsValid,
		CreatedAt: code.CreatedAt.Format(timestampFormat),
	}
}
