// Package migrator is a minimal public API for embedding the migration
// assistant's Tool Surface directly into a Go program, the way the
// teacher's root beads package lets an external project use its storage
// layer programmatically instead of spawning cmd/bd as a subprocess.
//
// Most callers should go through the seven methods on Migrator rather than
// reaching into internal/store directly: Migrator is the same contract an
// agent runtime calls, just without the process boundary.
package migrator

import (
	"context"
	"fmt"

	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/collab"
	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/store"
	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/store/sqlite"
	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/toolsurface"
)

// Re-exported domain types, so callers need only import this package for
// the common case.
type (
	Role                 = store.Role
	Service              = store.Service
	AdoptionStatus       = store.AdoptionStatus
	AdoptionDetails      = store.AdoptionDetails
	Filter               = store.Filter
	FamilyMemberWithAdoptions = store.FamilyMemberWithAdoptions
)

const (
	RoleSpouse = store.RoleSpouse
	RoleChild  = store.RoleChild
	RoleOther  = store.RoleOther

	ServiceMessaging = store.ServiceMessaging
	ServiceLocation  = store.ServiceLocation
	ServicePayments  = store.ServicePayments

	AdoptionNotStarted = store.AdoptionNotStarted
	AdoptionInvited    = store.AdoptionInvited
	AdoptionInstalled  = store.AdoptionInstalled
	AdoptionConfigured = store.AdoptionConfigured

	FilterAll                = store.FilterAll
	FilterNotInMessagingGrp  = store.FilterNotInMessagingGrp
	FilterNotSharingLocation = store.FilterNotSharingLocation
	FilterTeen               = store.FilterTeen
	FilterNoContactHandle    = store.FilterNoContactHandle
)

type (
	InitializeMigrationResult   = toolsurface.InitializeMigrationResult
	AddFamilyMemberResult       = toolsurface.AddFamilyMemberResult
	UpdateMigrationStatusResult = toolsurface.UpdateMigrationStatusResult
	UpdateFamilyMemberAppsResult = toolsurface.UpdateFamilyMemberAppsResult
	MigrationStatusResult       = toolsurface.MigrationStatusResult
	FamilyMembersResult         = toolsurface.FamilyMembersResult
	MigrationReportResult       = toolsurface.MigrationReportResult
	ReportFormat                = toolsurface.ReportFormat
)

const (
	ReportMarkdown = toolsurface.ReportMarkdown
	ReportTOML     = toolsurface.ReportTOML
)

// Migrator pairs the on-disk state store with the two simulated
// collaborators and exposes the Tool Surface as Go methods.
type Migrator struct {
	surface *toolsurface.Surface
	store   *sqlite.Storage
}

// Open creates (if needed) the migration database at dbPath and wires it
// with simulated Browser and Device collaborators.
func Open(ctx context.Context, dbPath string) (*Migrator, error) {
	st, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open migration store: %w", err)
	}
	return &Migrator{
		store: st,
		surface: &toolsurface.Surface{
			Store:   st,
			Browser: &collab.SimulatedBrowser{},
			Device:  &collab.SimulatedDevice{},
		},
	}, nil
}

// Close releases the underlying database handle and file lock.
func (m *Migrator) Close() error { return m.store.Close() }

// Surface exposes the underlying Tool Surface for callers that need direct
// access to collaborator wiring (e.g. swapping in a non-simulated Browser).
func (m *Migrator) Surface() *toolsurface.Surface { return m.surface }

func (m *Migrator) InitializeMigration(ctx context.Context, userName string, yearsOnSource int) InitializeMigrationResult {
	return m.surface.InitializeMigration(ctx, userName, yearsOnSource)
}

func (m *Migrator) AddFamilyMember(ctx context.Context, migrationID, name string, role Role, age *int) AddFamilyMemberResult {
	return m.surface.AddFamilyMember(ctx, migrationID, name, role, age)
}

func (m *Migrator) UpdateMigrationStatus(ctx context.Context, migrationID string, fields map[string]any) UpdateMigrationStatusResult {
	return m.surface.UpdateMigrationStatus(ctx, migrationID, fields)
}

func (m *Migrator) UpdateFamilyMemberApps(ctx context.Context, migrationID, memberName string, service Service, status AdoptionStatus, details *AdoptionDetails) UpdateFamilyMemberAppsResult {
	return m.surface.UpdateFamilyMemberApps(ctx, migrationID, memberName, service, status, details)
}

func (m *Migrator) GetMigrationStatus(ctx context.Context, migrationID string, dayNumber int) MigrationStatusResult {
	return m.surface.GetMigrationStatus(ctx, migrationID, dayNumber)
}

func (m *Migrator) GetFamilyMembers(ctx context.Context, migrationID string, filter Filter) FamilyMembersResult {
	return m.surface.GetFamilyMembers(ctx, migrationID, filter)
}

func (m *Migrator) GenerateMigrationReport(ctx context.Context, migrationID string, format ReportFormat) MigrationReportResult {
	return m.surface.GenerateMigrationReport(ctx, migrationID, format)
}
