package toolsurface

import "github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/store"

// InitializeMigrationResult is T1's response.
type InitializeMigrationResult struct {
	Status
	MigrationID string `json:"migration_id,omitempty"`
}

// AddFamilyMemberResult is T2's response.
type AddFamilyMemberResult struct {
	Status
	MemberID string `json:"member_id,omitempty"`
}

// UpdateMigrationStatusResult is T3's response.
type UpdateMigrationStatusResult struct {
	Status
}

// UpdateFamilyMemberAppsResult is T4's response.
type UpdateFamilyMemberAppsResult struct {
	Status
}

// PhotoProgress is the derived-progress section of T5's response.
type PhotoProgress struct {
	PercentComplete float64  `json:"percent_complete"`
	RateGBPerDay    *float64 `json:"rate_gb_per_day,omitempty"`
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
}

// MigrationStatusResult is T5's response: the "uber status" composite.
type MigrationStatusResult struct {
	Status
	DaySummary      *store.DailySummary           `json:"day_summary,omitempty"`
	MigrationOverview *store.Overview             `json:"migration_overview,omitempty"`
	PhotoProgress   *PhotoProgress                 `json:"photo_progress,omitempty"`
	FamilyServices  []store.FamilyServiceSummary   `json:"family_services,omitempty"`
	StatusMessage   string                         `json:"status_message,omitempty"`
}

// FamilyMembersResult is T6's response.
type FamilyMembersResult struct {
	Status
	Members []store.FamilyMemberWithAdoptions `json:"members,omitempty"`
}

// ReportFormat is the closed set of output formats generate_migration_report accepts.
type ReportFormat string

const (
	ReportMarkdown ReportFormat = "markdown"
	ReportTOML     ReportFormat = "toml"
)

func (f ReportFormat) IsValid() bool {
	switch f {
	case ReportMarkdown, ReportTOML:
		return true
	}
	return false
}

// MigrationReportResult is T7's response.
type MigrationReportResult struct {
	Status
	Format ReportFormat `json:"format,omitempty"`
	Report string       `json:"report,omitempty"`
}
