package toolsurface

import (
	"context"

	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/store"
)

// GetFamilyMembers is T6: query family members with a closed set of filters.
func (s *Surface) GetFamilyMembers(ctx context.Context, migrationID string, filter store.Filter) FamilyMembersResult {
	if filter == "" {
		filter = store.FilterAll
	}
	if err := Chain(
		required("migration_id", migrationID),
		oneOf("filter", filter, store.FilterAll, store.FilterNotInMessagingGrp,
			store.FilterNotSharingLocation, store.FilterTeen, store.FilterNoContactHandle),
	); err != nil {
		return FamilyMembersResult{Status: fail(err)}
	}

	members, err := s.Store.GetFamilyMembers(ctx, migrationID, filter)
	if err != nil {
		return FamilyMembersResult{Status: fail(asStoreError(err))}
	}
	return FamilyMembersResult{Status: ok(), Members: members}
}

// GenerateMigrationReport is T7: the final report, gated on day 7 having
// been reached (spec.md §4.3 precondition "migration exists; day = 7
// reached").
func (s *Surface) GenerateMigrationReport(ctx context.Context, migrationID string, format ReportFormat) MigrationReportResult {
	if format == "" {
		format = ReportMarkdown
	}
	if err := Chain(
		required("migration_id", migrationID),
		oneOf("format", format, ReportMarkdown, ReportTOML),
	); err != nil {
		return MigrationReportResult{Status: fail(err)}
	}

	migration, err := s.Store.GetMigration(ctx, migrationID)
	if err != nil {
		return MigrationReportResult{Status: fail(asStoreError(err))}
	}
	if migration.Phase != store.PhaseCompleted {
		snap, dErr := s.Store.GetSnapshotForDay(ctx, migrationID, 7)
		if dErr != nil {
			return MigrationReportResult{Status: fail(asStoreError(dErr))}
		}
		if snap == nil {
			return MigrationReportResult{Status: fail(store.NewError(store.ErrInvariantViolation,
				"migration %s has not reached day 7", migrationID))}
		}
	}

	overview, err := s.Store.GetOverview(ctx, migrationID)
	if err != nil {
		return MigrationReportResult{Status: fail(asStoreError(err))}
	}
	services, err := s.Store.GetFamilyServiceSummary(ctx, migrationID)
	if err != nil {
		return MigrationReportResult{Status: fail(asStoreError(err))}
	}

	data := buildReportData(overview, services)

	var report string
	switch format {
	case ReportTOML:
		report, err = renderTOML(data)
		if err != nil {
			return MigrationReportResult{Status: fail(store.NewError(store.ErrUnknown, "%s", err.Error()))}
		}
	default:
		report = renderMarkdown(data)
	}

	return MigrationReportResult{Status: ok(), Format: format, Report: report}
}
