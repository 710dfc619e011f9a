package postgresql

import (
	"context"
	"fmt"

	"github.com/attend-hq/attendance-backend-go/internal/pkg/database"
)

// GetQuerier returns the transaction carried by ctx when the caller is inside
// database.DB.InTx, and the pool otherwise. Repositories use it so the same
// methods work transactionally and standalone.
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := database.TxFromContext(ctx); ok {
		return tx
	}
	return db.Pool
}

// Advisory lock classes. Each write path that must be serialized gets its own
// class so locks on different aggregates never contend.
const (
	lockClassQRCodeIssue    = 1
	lockClassOfficeLocation = 2
	lockClassActivityStream = 3
)

// acquireTxLock blocks until the (class, key) advisory lock is granted. The
// lock is released automatically when the surrounding transaction commits or
// rolls back, so it must only be called inside database.DB.InTx.
func acquireTxLock(ctx context.Context, q database.Querier, class int32, key string) error {
	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock($1, hashtext($2))`, class, key); err != nil {
		return fmt.Errorf("failed to acquire advisory lock: %w", err)
	}
	return nil
}
