package main

import (
	"context"
	"database/sql"
	"time"

	claimservice "reclaim/internal/claim/service"
	dErrors "reclaim/pkg/domain-errors"
	txcontext "reclaim/pkg/platform/tx"
)

const defaultClaimTxTimeout = 5 * time.Second

// claimPostgresTx runs a claim inside one database transaction. The stores
// pick the transaction up from the context, so the same store instances
// serve transactional and plain calls.
type claimPostgresTx struct {
	db      *sql.DB
	stores  claimservice.Stores
	timeout time.Duration
}

func newClaimPostgresTx(db *sql.DB, stores claimservice.Stores) *claimPostgresTx {
	return &claimPostgresTx{db: db, stores: stores}
}

func (t *claimPostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context, stores claimservice.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultClaimTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx), t.stores); err != nil {
		return err
	}
	return tx.Commit()
}
