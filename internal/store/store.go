// Package store defines the interface for the migration state engine (C1 in spec.md §4.1)
// and the error taxonomy it shares with the Tool Surface (C3, spec.md §7).
//
// Grounded on the teacher's internal/storage package: a narrow Storage interface
// in front of a single SQLite implementation, with a Transaction sub-interface
// for atomic multi-write operations.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrKind is the taxonomy of spec.md §7. The Tool Surface maps these to the
// "error" field of every non-success response.
type ErrKind string

const (
	ErrInvalidArgument        ErrKind = "invalid_argument"
	ErrNotFound                ErrKind = "not_found"
	ErrInvariantViolation      ErrKind = "invariant_violation"
	ErrAlreadyActive           ErrKind = "already_active"
	ErrCollaboratorUnavailable ErrKind = "collaborator_unavailable"
	ErrUnknown                 ErrKind = "unknown"
)

// Error is a store-level error tagged with its taxonomy kind so the Tool
// Surface boundary (C3) never has to guess at an error's category.
type Error struct {
	Kind    ErrKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// NewError constructs a tagged store Error.
func NewError(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the ErrKind from err, defaulting to ErrUnknown for errors
// that did not originate in this package.
func KindOf(err error) ErrKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ErrUnknown
}

// Transaction exposes the subset of Store methods that must commit atomically
// together. Only get_migration_status (T5) uses this today: it appends a
// Storage Snapshot (E5) and upserts a Daily Progress row (E6) in one
// transaction, per the atomicity requirement of spec.md §5/§7.
type Transaction interface {
	AppendStorageSnapshot(ctx context.Context, s StorageSnapshot) (string, error)
	UpsertDailyProgress(ctx context.Context, p DailyProgress) error
	UpdateMediaTransferStatus(ctx context.Context, migrationID string, photo, video MediaKindStatus) error
}

// Store is the full state-engine interface (spec.md §4.1).
type Store interface {
	// Migration (E1)
	CreateMigration(ctx context.Context, userName string, yearsOnSource int) (string, error)
	UpdateMigration(ctx context.Context, migrationID string, fields map[string]any) error
	GetActiveMigration(ctx context.Context) (*Migration, error)
	GetMigration(ctx context.Context, migrationID string) (*Migration, error)

	// Family Members (E2) and Adoptions (E3)
	AddFamilyMember(ctx context.Context, migrationID, name string, role Role, age *int) (string, error)
	GetFamilyMembers(ctx context.Context, migrationID string, filter Filter) ([]FamilyMemberWithAdoptions, error)
	UpsertFamilyAppAdoption(ctx context.Context, migrationID, memberName string, service Service, status AdoptionStatus, details *AdoptionDetails) error

	// Media Transfer (E4)
	InitiateTransfer(ctx context.Context, migrationID string, photoCount, videoCount int, sourceStorageGB float64, baseline BaselineReading) (string, error)
	GetActiveTransfer(ctx context.Context, migrationID string) (*MediaTransfer, error)
	SetTransferVisibility(ctx context.Context, migrationID string, firstVisibilityDay, expectedCompletionDay *int) error

	// Storage Snapshots (E5) / Daily Progress (E6)
	AppendStorageSnapshot(ctx context.Context, s StorageSnapshot) (string, error)
	UpsertDailyProgress(ctx context.Context, p DailyProgress) error
	UpdateMediaTransferStatus(ctx context.Context, migrationID string, photo, video MediaKindStatus) error
	GetBaselineSnapshot(ctx context.Context, migrationID string) (*StorageSnapshot, error)
	GetLatestSnapshot(ctx context.Context, migrationID string) (*StorageSnapshot, error)
	GetSnapshotForDay(ctx context.Context, migrationID string, day int) (*StorageSnapshot, error)

	// Composite reads
	GetOverview(ctx context.Context, migrationID string) (*Overview, error)
	GetDailySummary(ctx context.Context, migrationID string, day int) (*DailySummary, error)
	GetFamilyServiceSummary(ctx context.Context, migrationID string) ([]FamilyServiceSummary, error)

	// RunInTransaction executes fn within a single SQLite transaction (BEGIN
	// IMMEDIATE), committing on nil return and rolling back otherwise or on
	// panic. Grounded on the teacher's storage.go Transaction doc comment.
	RunInTransaction(ctx context.Context, fn func(tx Transaction) error) error

	Close() error
}

// BaselineReading is the destination-side reading captured by initiate_transfer
// (Browser Collaborator, §6) before the external copy begins.
type BaselineReading struct {
	PhotosGB  float64
	DriveGB   float64
	MailGB    float64
	CapturedAt string // RFC3339, as reported by the collaborator
}
