package sqlite

import (
	"context"
	"database/sql"

	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/store"
)

// txTransaction is the tx-scoped implementation of store.Transaction, handed
// to the caller's fn by RunInTransaction so get_migration_status (T5) can
// append a Storage Snapshot and upsert Daily Progress atomically.
type txTransaction struct {
	ctx context.Context
	tx  *sql.Tx
}

var _ store.Transaction = (*txTransaction)(nil)

func (t *txTransaction) AppendStorageSnapshot(ctx context.Context, s store.StorageSnapshot) (string, error) {
	return appendStorageSnapshotExec(ctx, t.tx, s)
}

func (t *txTransaction) UpsertDailyProgress(ctx context.Context, p store.DailyProgress) error {
	return upsertDailyProgressExec(ctx, t.tx, p)
}

func (t *txTransaction) UpdateMediaTransferStatus(ctx context.Context, migrationID string, photo, video store.MediaKindStatus) error {
	return updateMediaTransferStatusTx(ctx, t.tx, migrationID, photo, video)
}

// RunInTransaction implements store.Store.RunInTransaction via withTx.
func (s *Storage) RunInTransaction(ctx context.Context, fn func(tx store.Transaction) error) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return fn(&txTransaction{ctx: ctx, tx: tx})
	})
}
