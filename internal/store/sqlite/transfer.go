package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/idgen"
	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/store"
)

// InitiateTransfer creates E4 for migrationID, recording the source counts and
// the destination baseline captured by the Browser Collaborator (spec.md §6)
// before the external copy begins. Re-initiating an already-active transfer
// is rejected: the Tool Surface (T3, on the phase change to media_transfer)
// is the only caller and it must not be allowed to double-start a transfer.
func (s *Storage) InitiateTransfer(ctx context.Context, migrationID string, photoCount, videoCount int, sourceStorageGB float64, baseline store.BaselineReading) (string, error) {
	existing, err := s.GetActiveTransfer(ctx, migrationID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", store.NewError(store.ErrAlreadyActive,
			"media transfer %s already initiated for migration %s", existing.ID, migrationID)
	}

	id := idgen.New("xfr")
	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO media_transfers
			(id, migration_id, source_photo_count, source_video_count, source_storage_gb,
			 baseline_photos_gb, baseline_drive_gb, baseline_mail_gb, photo_status, video_status, initiated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, migrationID, photoCount, videoCount, sourceStorageGB,
		baseline.PhotosGB, baseline.DriveGB, baseline.MailGB,
		store.MediaInitiated, store.MediaInitiated, now)
	if err != nil {
		return "", fmt.Errorf("insert media transfer: %w", err)
	}
	s.logWrite(ctx, migrationID, "initiate_transfer", id)
	return id, nil
}

// GetActiveTransfer returns the single Media Transfer for migrationID, or nil
// if none has been initiated yet. Spec.md §3 models exactly one E4 row per
// migration, so "active" here means "exists".
func (s *Storage) GetActiveTransfer(ctx context.Context, migrationID string) (*store.MediaTransfer, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+transferColumns+` FROM media_transfers WHERE migration_id = ?`, migrationID)
	t, err := scanTransfer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query media transfer: %w", err)
	}
	return t, nil
}

// UpdateMediaTransferStatus advances the per-kind status machine of E4,
// stamping the relevant started/completed timestamps the first time each
// status is reached. Implements both the Store.Store method (used outside a
// transaction) and the store.Transaction method (used inside
// RunInTransaction) by delegating to updateMediaTransferStatusTx.
func (s *Storage) UpdateMediaTransferStatus(ctx context.Context, migrationID string, photo, video store.MediaKindStatus) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return updateMediaTransferStatusTx(ctx, tx, migrationID, photo, video)
	})
}

func updateMediaTransferStatusTx(ctx context.Context, tx *sql.Tx, migrationID string, photo, video store.MediaKindStatus) error {
	row := tx.QueryRowContext(ctx, `SELECT `+transferColumns+` FROM media_transfers WHERE migration_id = ?`, migrationID)
	current, err := scanTransfer(row)
	if err == sql.ErrNoRows {
		return store.NewError(store.ErrNotFound, "no media transfer for migration %s", migrationID)
	}
	if err != nil {
		return fmt.Errorf("query media transfer: %w", err)
	}

	now := time.Now().UTC()
	photoStarted, photoCompleted := current.PhotoStartedAt, current.PhotoCompletedAt
	videoStarted, videoCompleted := current.VideoStartedAt, current.VideoCompletedAt

	if photo != "" {
		if photoStarted == nil && (photo == store.MediaInProgress || photo == store.MediaCompleted) {
			photoStarted = &now
		}
		if photoCompleted == nil && photo == store.MediaCompleted {
			photoCompleted = &now
		}
	} else {
		photo = current.PhotoStatus
	}
	if video != "" {
		if videoStarted == nil && (video == store.MediaInProgress || video == store.MediaCompleted) {
			videoStarted = &now
		}
		if videoCompleted == nil && video == store.MediaCompleted {
			videoCompleted = &now
		}
	} else {
		video = current.VideoStatus
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE media_transfers SET photo_status = ?, video_status = ?,
			photo_started_at = ?, photo_completed_at = ?, video_started_at = ?, video_completed_at = ?
		WHERE migration_id = ?
	`, photo, video, photoStarted, photoCompleted, videoStarted, videoCompleted, migrationID)
	if err != nil {
		return fmt.Errorf("update media transfer status: %w", err)
	}
	return nil
}

// SetTransferVisibility records the day a transfer first became visible at
// the destination (first_visibility_day) and/or its projected completion
// day. first_visibility_day is write-once; expected_completion_day is
// replaced by every non-nil value passed in.
func (s *Storage) SetTransferVisibility(ctx context.Context, migrationID string, firstVisibilityDay, expectedCompletionDay *int) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE media_transfers SET
			first_visibility_day = COALESCE(first_visibility_day, ?),
			expected_completion_day = COALESCE(?, expected_completion_day)
		WHERE migration_id = ?
	`, firstVisibilityDay, expectedCompletionDay, migrationID)
	if err != nil {
		return fmt.Errorf("update transfer visibility: %w", err)
	}
	return nil
}

const transferColumns = `id, migration_id, source_photo_count, source_video_count, source_storage_gb,
	baseline_photos_gb, baseline_drive_gb, baseline_mail_gb, photo_status, video_status,
	initiated_at, photo_started_at, photo_completed_at, video_started_at, video_completed_at,
	first_visibility_day, expected_completion_day`

func scanTransfer(row *sql.Row) (*store.MediaTransfer, error) {
	var t store.MediaTransfer
	var photoCount, videoCount, firstVisibility, expectedCompletion sql.NullInt64
	var storageGB, photosGB, driveGB, mailGB sql.NullFloat64
	var initiatedAt, photoStarted, photoCompleted, videoStarted, videoCompleted sql.NullTime

	err := row.Scan(&t.ID, &t.MigrationID, &photoCount, &videoCount, &storageGB,
		&photosGB, &driveGB, &mailGB, &t.PhotoStatus, &t.VideoStatus,
		&initiatedAt, &photoStarted, &photoCompleted, &videoStarted, &videoCompleted,
		&firstVisibility, &expectedCompletion)
	if err != nil {
		return nil, err
	}
	if photoCount.Valid {
		v := int(photoCount.Int64)
		t.SourcePhotoCount = &v
	}
	if videoCount.Valid {
		v := int(videoCount.Int64)
		t.SourceVideoCount = &v
	}
	if storageGB.Valid {
		v := storageGB.Float64
		t.SourceStorageGB = &v
	}
	if photosGB.Valid {
		v := photosGB.Float64
		t.BaselinePhotosGB = &v
	}
	if driveGB.Valid {
		v := driveGB.Float64
		t.BaselineDriveGB = &v
	}
	if mailGB.Valid {
		v := mailGB.Float64
		t.BaselineMailGB = &v
	}
	if initiatedAt.Valid {
		t.InitiatedAt = &initiatedAt.Time
	}
	if photoStarted.Valid {
		t.PhotoStartedAt = &photoStarted.Time
	}
	if photoCompleted.Valid {
		t.PhotoCompletedAt = &photoCompleted.Time
	}
	if videoStarted.Valid {
		t.VideoStartedAt = &videoStarted.Time
	}
	if videoCompleted.Valid {
		t.VideoCompletedAt = &videoCompleted.Time
	}
	if firstVisibility.Valid {
		v := int(firstVisibility.Int64)
		t.FirstVisibilityDay = &v
	}
	if expectedCompletion.Valid {
		v := int(expectedCompletion.Int64)
		t.ExpectedCompletionDay = &v
	}
	return &t, nil
}
