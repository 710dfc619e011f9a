package qrcode

import (
	"context"
	"testing"

	"github.com/attend-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/attend-hq/attendance-backend-go/internal/domain/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct{}

func (fakeTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeQRCodeRepo struct {
	codes  []qrcode.QRCode
	nextID int64
	events []string
}

func (f *fakeQRCodeRepo) AcquireIssueLock(_ context.Context, usage attendance.Kind) error {
	f.events = append(f.events, "lock:"+string(usage))
	return nil
}

func (f *fakeQRCodeRepo) Create(_ context.Context, code qrcode.QRCode) (qrcode.QRCode, error) {
	f.nextID++
	code.ID = f.nextID
	code.IsValid = true
	f.codes = append(f.codes, code)
	f.events = append(f.events, "create:"+string(code.Usage))
	return code, nil
}

func (f *fakeQRCodeRepo) InvalidateAllByUsage(_ context.Context, usage attendance.Kind) error {
	for i := range f.codes {
		if f.codes[i].Usage == usage {
			f.codes[i].IsValid = false
		}
	}
	f.events = append(f.events, "invalidate:"+string(usage))
	return nil
}

func (f *fakeQRCodeRepo) ConsumeValid(_ context.Context, token string, usage attendance.Kind) (bool, error) {
	for i := range f.codes {
		if f.codes[i].Token == token && f.codes[i].Usage == usage && f.codes[i].IsValid {
			f.codes[i].IsValid = false
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeQRCodeRepo) TokenExists(_ context.Context, token string) (bool, error) {
	for i := range f.codes {
		if f.codes[i].Token == token {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeQRCodeRepo) List(_ context.Context, filter qrcode.ListFilter) ([]qrcode.QRCode, int64, error) {
	var out []qrcode.QRCode
	for i := len(f.codes) - 1; i >= 0; i-- {
		c := f.codes[i]
		if filter.Usage != nil && c.Usage != *filter.Usage {
			continue
		}
		if filter.ValidOnly && !c.IsValid {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func TestIssueInvalidatesPreviousCode(t *testing.T) {
	ctx := context.Background()
	repo := &fakeQRCodeRepo{}
	svc := NewQRCodeService(fakeTx{}, repo)

	first, err := svc.Issue(ctx, attendance.KindCheckIn)
	require.NoError(t, err)
	second, err := svc.Issue(ctx, attendance.KindCheckIn)
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)

	// Only the most recent check-in code is valid.
	validCount := 0
	for _, c := range repo.codes {
		if c.IsValid {
			validCount++
			assert.Equal(t, second.Token, c.Token)
		}
	}
	assert.Equal(t, 1, validCount)
}

func TestIssueLocksKindBeforeWriting(t *testing.T) {
	ctx := context.Background()
	repo := &fakeQRCodeRepo{}
	svc := NewQRCodeService(fakeTx{}, repo)

	_, err := svc.Issue(ctx, attendance.KindCheckIn)
	require.NoError(t, err)

	// The kind lock is taken before anything is written, so a concurrent
	// issuer cannot interleave between the invalidate and the insert.
	require.NotEmpty(t, repo.events)
	assert.Equal(t, "lock:check-in", repo.events[0])
	assert.Equal(t, "invalidate:check-in", repo.events[1])
	assert.Equal(t, "create:check-in", repo.events[len(repo.events)-1])
}

func TestIssueKindsAreIndependent(t *testing.T) {
	ctx := context.Background()
	repo := &fakeQRCodeRepo{}
	svc := NewQRCodeService(fakeTx{}, repo)

	in, err := svc.Issue(ctx, attendance.KindCheckIn)
	require.NoError(t, err)
	_, err = svc.Issue(ctx, attendance.KindCheckOut)
	require.NoError(t, err)

	// Issuing a check-out code does not touch the check-in code.
	consumed, err := repo.ConsumeValid(ctx, in.Token, attendance.KindCheckIn)
	require.NoError(t, err)
	assert.True(t, consumed)
}

func TestIssueRejectsUnknownKind(t *testing.T) {
	ctx := context.Background()
	svc := NewQRCodeService(fakeTx{}, &fakeQRCodeRepo{})

	_, err := svc.Issue(ctx, attendance.Kind("lunch"))
	assert.ErrorIs(t, err, attendance.ErrUnknownKind)
}

func TestConsumeIsAtMostOnce(t *testing.T) {
	ctx := context.Background()
	repo := &fakeQRCodeRepo{}
	svc := NewQRCodeService(fakeTx{}, repo)

	issued, err := svc.Issue(ctx, attendance.KindCheckOut)
	require.NoError(t, err)

	require.NoError(t, svc.Consume(ctx, issued.Token, attendance.KindCheckOut))
	assert.ErrorIs(t, svc.Consume(ctx, issued.Token, attendance.KindCheckOut), qrcode.ErrInvalidOrExpiredCode)
}

func TestConsumeRejectsWrongKind(t *testing.T) {
	ctx := context.Background()
	repo := &fakeQRCodeRepo{}
	svc := NewQRCodeService(fakeTx{}, repo)

	issued, err := svc.Issue(ctx, attendance.KindCheckIn)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Consume(ctx, issued.Token, attendance.KindCheckOut), qrcode.ErrInvalidOrExpiredCode)

	// The mismatched attempt must not burn the code.
	require.NoError(t, svc.Consume(ctx, issued.Token, attendance.KindCheckIn))
}
