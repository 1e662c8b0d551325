package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/idgen"
	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/store"
)

// AppendStorageSnapshot inserts one E5 row outside a caller-managed
// transaction; RunInTransaction's Transaction wrapper exposes the tx-scoped
// twin used by get_migration_status (T5).
func (s *Storage) AppendStorageSnapshot(ctx context.Context, snap store.StorageSnapshot) (string, error) {
	return appendStorageSnapshotExec(ctx, s.db, snap)
}

func appendStorageSnapshotExec(ctx context.Context, exec execer, snap store.StorageSnapshot) (string, error) {
	id := idgen.New("snp")
	_, err := exec.ExecContext(ctx, `
		INSERT INTO storage_snapshots
			(id, migration_id, day_number, photos_gb, drive_gb, mail_gb, device_backup_gb,
			 total_used_gb, growth_from_baseline_gb, estimated_photos, estimated_videos,
			 percent_complete, is_baseline)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, snap.MigrationID, snap.Day, snap.PhotosGB, snap.DriveGB, snap.MailGB, snap.DeviceBackupGB,
		snap.TotalUsedGB, snap.GrowthFromBaselineGB, snap.EstimatedPhotos, snap.EstimatedVideos,
		snap.PercentComplete, boolToInt(snap.IsBaseline))
	if err != nil {
		return "", fmt.Errorf("insert storage snapshot: %w", err)
	}
	return id, nil
}

// execer is satisfied by both *sql.DB and *sql.Tx, letting the append helper
// run identically inside or outside a transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

const snapshotColumns = `id, migration_id, day_number, captured_at, photos_gb, drive_gb, mail_gb,
	device_backup_gb, total_used_gb, growth_from_baseline_gb, estimated_photos, estimated_videos,
	percent_complete, is_baseline`

func scanSnapshot(row *sql.Row) (*store.StorageSnapshot, error) {
	var snap store.StorageSnapshot
	var isBaseline int
	err := row.Scan(&snap.ID, &snap.MigrationID, &snap.Day, &snap.CapturedAt, &snap.PhotosGB, &snap.DriveGB,
		&snap.MailGB, &snap.DeviceBackupGB, &snap.TotalUsedGB, &snap.GrowthFromBaselineGB,
		&snap.EstimatedPhotos, &snap.EstimatedVideos, &snap.PercentComplete, &isBaseline)
	if err != nil {
		return nil, err
	}
	snap.IsBaseline = isBaseline != 0
	return &snap, nil
}

// GetBaselineSnapshot returns the day-1 baseline reading for migrationID.
func (s *Storage) GetBaselineSnapshot(ctx context.Context, migrationID string) (*store.StorageSnapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+snapshotColumns+` FROM storage_snapshots
		WHERE migration_id = ? AND is_baseline = 1 ORDER BY id ASC LIMIT 1
	`, migrationID)
	snap, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query baseline snapshot: %w", err)
	}
	return snap, nil
}

// GetLatestSnapshot returns the most recently appended E5 row.
func (s *Storage) GetLatestSnapshot(ctx context.Context, migrationID string) (*store.StorageSnapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+snapshotColumns+` FROM storage_snapshots
		WHERE migration_id = ? ORDER BY id DESC LIMIT 1
	`, migrationID)
	snap, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	return snap, nil
}

// GetSnapshotForDay returns the most recently appended snapshot for the given
// day_number, since a day may accumulate more than one reading.
func (s *Storage) GetSnapshotForDay(ctx context.Context, migrationID string, day int) (*store.StorageSnapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+snapshotColumns+` FROM storage_snapshots
		WHERE migration_id = ? AND day_number = ? ORDER BY id DESC LIMIT 1
	`, migrationID, day)
	snap, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot for day %d: %w", day, err)
	}
	return snap, nil
}

// UpsertDailyProgress writes or replaces the E6 row for (migration, day).
func (s *Storage) UpsertDailyProgress(ctx context.Context, p store.DailyProgress) error {
	return upsertDailyProgressExec(ctx, s.db, p)
}

func upsertDailyProgressExec(ctx context.Context, exec execer, p store.DailyProgress) error {
	counts, err := json.Marshal(adoptionCountsJSON(p.AdoptionCounts))
	if err != nil {
		return fmt.Errorf("marshal adoption counts: %w", err)
	}
	_, err = exec.ExecContext(ctx, `
		INSERT INTO daily_progress
			(migration_id, day_number, date, photos_transferred, videos_transferred,
			 size_transferred_gb, storage_percent_complete, adoption_counts, key_milestone, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (migration_id, day_number) DO UPDATE SET
			date = excluded.date,
			photos_transferred = excluded.photos_transferred,
			videos_transferred = excluded.videos_transferred,
			size_transferred_gb = excluded.size_transferred_gb,
			storage_percent_complete = excluded.storage_percent_complete,
			adoption_counts = excluded.adoption_counts,
			key_milestone = excluded.key_milestone,
			notes = excluded.notes
	`, p.MigrationID, p.Day, p.Date, p.PhotosTransferred, p.VideosTransferred,
		p.SizeTransferredGB, p.StoragePercentComplete, string(counts), p.KeyMilestone, p.Notes)
	if err != nil {
		return fmt.Errorf("upsert daily progress: %w", err)
	}
	return nil
}

func adoptionCountsJSON(m map[store.Service]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return out
}
