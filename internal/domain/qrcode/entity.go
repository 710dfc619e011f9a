package qrcode

import (
	"time"

	"github.com/attend-hq/attendance-backend-go/internal/domain/attendance"
)

// QRCode is a scannable attendance token. At most one code per usage kind is
// valid at any time: issuing a new one invalidates its predecessor, and a
// successful scan invalidates the code it consumed.
type QRCode struct {
	ID        int64
	Token     string
	Usage     attendance.Kind
	IsValid   bool
	CreatedAt time.Time
}
