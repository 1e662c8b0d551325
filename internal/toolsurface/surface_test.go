package toolsurface_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/collab"
	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/store"
	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/store/sqlite"
	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/toolsurface"
)

func newTestSurface(t *testing.T) (*toolsurface.Surface, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "migration.db")
	st, err := sqlite.Open(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("sqlite.Open failed: %v", err)
	}

	browser := &collab.SimulatedBrowser{
		UserName: "X",
		GrowthCurve: map[int]float64{
			2: 1.5,
			3: 1.5,
			4: 4.3,
			5: 5.0,
			6: 5.6,
			7: 6.0,
		},
	}
	day := 1
	browser.Day = func() int { return day }

	s := &toolsurface.Surface{
		Store:   st,
		Browser: browser,
		Device:  &collab.SimulatedDevice{},
	}
	return s, func() { _ = st.Close() }
}

// TestScenarioS1_DayOneBootstrap mirrors spec.md §8's S1 scenario.
func TestScenarioS1_DayOneBootstrap(t *testing.T) {
	s, cleanup := newTestSurface(t)
	defer cleanup()
	ctx := context.Background()

	initRes := s.InitializeMigration(ctx, "X", 10)
	if !initRes.Success {
		t.Fatalf("InitializeMigration failed: %+v", initRes)
	}
	migrationID := initRes.MigrationID

	if res := s.AddFamilyMember(ctx, migrationID, "A", store.RoleSpouse, nil); !res.Success {
		t.Fatalf("AddFamilyMember A failed: %+v", res)
	}
	teenAge := 15
	if res := s.AddFamilyMember(ctx, migrationID, "B", store.RoleChild, &teenAge); !res.Success {
		t.Fatalf("AddFamilyMember B failed: %+v", res)
	}

	if res := s.UpdateMigrationStatus(ctx, migrationID, map[string]any{
		"photo_count": 1000, "video_count": 50, "total_source_storage_gb": 10.0,
	}); !res.Success {
		t.Fatalf("UpdateMigrationStatus (counts) failed: %+v", res)
	}

	if res := s.UpdateMigrationStatus(ctx, migrationID, map[string]any{
		"phase": "media_transfer", "google_photos_baseline_gb": 1.5, "overall_progress": 10,
	}); !res.Success {
		t.Fatalf("UpdateMigrationStatus (phase transition) failed: %+v", res)
	}

	members := s.GetFamilyMembers(ctx, migrationID, store.FilterAll)
	if !members.Success || len(members.Members) != 2 {
		t.Fatalf("GetFamilyMembers = %+v, want 2 members", members)
	}

	transfer, err := s.Store.GetActiveTransfer(ctx, migrationID)
	if err != nil {
		t.Fatalf("GetActiveTransfer failed: %v", err)
	}
	if transfer == nil {
		t.Fatalf("expected a media transfer to have been initiated")
	}
	if transfer.OverallStatus() != store.MediaInitiated {
		t.Errorf("overall status = %v, want initiated", transfer.OverallStatus())
	}

	migration, err := s.Store.GetMigration(ctx, migrationID)
	if err != nil {
		t.Fatalf("GetMigration failed: %v", err)
	}
	if migration.OverallProgress != 10 {
		t.Errorf("overall_progress = %d, want 10", migration.OverallProgress)
	}

	baseline, err := s.Store.GetBaselineSnapshot(ctx, migrationID)
	if err != nil {
		t.Fatalf("GetBaselineSnapshot failed: %v", err)
	}
	if baseline == nil {
		t.Fatalf("expected one E5 row with is_baseline=true, got none")
	}
	if baseline.PhotosGB != 1.5 {
		t.Errorf("baseline photos_gb = %v, want 1.5", baseline.PhotosGB)
	}
}

// TestInitializeMigration_SecondCallIsAlreadyActive covers T1's idempotency
// property from spec.md §8.
func TestInitializeMigration_SecondCallIsAlreadyActive(t *testing.T) {
	s, cleanup := newTestSurface(t)
	defer cleanup()
	ctx := context.Background()

	if res := s.InitializeMigration(ctx, "X", 10); !res.Success {
		t.Fatalf("first InitializeMigration failed: %+v", res)
	}
	res := s.InitializeMigration(ctx, "Y", 5)
	if res.Success {
		t.Fatalf("expected failure on second InitializeMigration, got %+v", res)
	}
	if res.Error != store.ErrAlreadyActive {
		t.Errorf("error = %v, want already_active", res.Error)
	}
}

// TestGetMigrationStatus_DaySevenOverride covers S4 from spec.md §8 end to end
// through the Tool Surface, including the Media Transfer status flip.
func TestGetMigrationStatus_DaySevenOverride(t *testing.T) {
	s, cleanup := newTestSurface(t)
	defer cleanup()
	ctx := context.Background()

	initRes := s.InitializeMigration(ctx, "X", 10)
	migrationID := initRes.MigrationID
	s.UpdateMigrationStatus(ctx, migrationID, map[string]any{
		"photo_count": 1000, "video_count": 50, "total_source_storage_gb": 10.0,
	})
	s.UpdateMigrationStatus(ctx, migrationID, map[string]any{
		"phase": "media_transfer", "google_photos_baseline_gb": 1.5,
	})

	status := s.GetMigrationStatus(ctx, migrationID, 7)
	if !status.Success {
		t.Fatalf("GetMigrationStatus(day=7) failed: %+v", status)
	}
	if status.PhotoProgress == nil {
		t.Fatalf("expected non-nil PhotoProgress")
	}
	if status.PhotoProgress.PercentComplete != 100 {
		t.Errorf("percent_complete = %v, want 100", status.PhotoProgress.PercentComplete)
	}
	if !status.PhotoProgress.Success {
		t.Errorf("photo_progress.success = false, want true")
	}

	transfer, err := s.Store.GetActiveTransfer(ctx, migrationID)
	if err != nil {
		t.Fatalf("GetActiveTransfer failed: %v", err)
	}
	if transfer.OverallStatus() != store.MediaCompleted {
		t.Errorf("overall status = %v, want completed", transfer.OverallStatus())
	}
}

// TestGetMigrationStatus_InvalidDayNumber covers the boundary behavior from
// spec.md §8: day_number outside [1,7] is invalid_argument.
func TestGetMigrationStatus_InvalidDayNumber(t *testing.T) {
	s, cleanup := newTestSurface(t)
	defer cleanup()
	ctx := context.Background()

	initRes := s.InitializeMigration(ctx, "X", 10)
	for _, day := range []int{0, 8} {
		res := s.GetMigrationStatus(ctx, initRes.MigrationID, day)
		if res.Success {
			t.Errorf("day %d: expected failure, got success", day)
		}
		if res.Error != store.ErrInvalidArgument {
			t.Errorf("day %d: error = %v, want invalid_argument", day, res.Error)
		}
	}
}

// TestUpdateMigrationStatus_RejectsOverallProgressDecrease covers the
// boundary behavior from spec.md §8.
func TestUpdateMigrationStatus_RejectsOverallProgressDecrease(t *testing.T) {
	s, cleanup := newTestSurface(t)
	defer cleanup()
	ctx := context.Background()

	initRes := s.InitializeMigration(ctx, "X", 10)
	s.UpdateMigrationStatus(ctx, initRes.MigrationID, map[string]any{"overall_progress": 20})
	res := s.UpdateMigrationStatus(ctx, initRes.MigrationID, map[string]any{"overall_progress": 15})
	if res.Success {
		t.Fatalf("expected failure, got success")
	}
	if res.Error != store.ErrInvariantViolation {
		t.Errorf("error = %v, want invariant_violation", res.Error)
	}
}

// TestUpdateFamilyMemberApps_RegressionIsSuccessfulNoOp covers the boundary
// behavior from spec.md §8.
func TestUpdateFamilyMemberApps_RegressionIsSuccessfulNoOp(t *testing.T) {
	s, cleanup := newTestSurface(t)
	defer cleanup()
	ctx := context.Background()

	initRes := s.InitializeMigration(ctx, "X", 10)
	s.AddFamilyMember(ctx, initRes.MigrationID, "A", store.RoleSpouse, nil)
	s.UpdateFamilyMemberApps(ctx, initRes.MigrationID, "A", store.ServiceMessaging, store.AdoptionConfigured, nil)

	res := s.UpdateFamilyMemberApps(ctx, initRes.MigrationID, "A", store.ServiceMessaging, store.AdoptionInvited, nil)
	if !res.Success {
		t.Fatalf("expected regression to be a successful no-op, got %+v", res)
	}
}

// TestGenerateMigrationReport_RejectsBeforeDaySeven covers T7's precondition.
func TestGenerateMigrationReport_RejectsBeforeDaySeven(t *testing.T) {
	s, cleanup := newTestSurface(t)
	defer cleanup()
	ctx := context.Background()

	initRes := s.InitializeMigration(ctx, "X", 10)
	res := s.GenerateMigrationReport(ctx, initRes.MigrationID, toolsurface.ReportMarkdown)
	if res.Success {
		t.Fatalf("expected failure before day 7, got success")
	}
}

// TestGenerateMigrationReport_MarkdownAfterDaySeven covers the happy path for T7.
func TestGenerateMigrationReport_MarkdownAfterDaySeven(t *testing.T) {
	s, cleanup := newTestSurface(t)
	defer cleanup()
	ctx := context.Background()

	initRes := s.InitializeMigration(ctx, "X", 10)
	migrationID := initRes.MigrationID
	s.UpdateMigrationStatus(ctx, migrationID, map[string]any{
		"photo_count": 1000, "video_count": 50, "total_source_storage_gb": 10.0,
	})
	s.UpdateMigrationStatus(ctx, migrationID, map[string]any{
		"phase": "media_transfer", "google_photos_baseline_gb": 1.5,
	})
	if status := s.GetMigrationStatus(ctx, migrationID, 7); !status.Success {
		t.Fatalf("GetMigrationStatus(day=7) failed: %+v", status)
	}

	res := s.GenerateMigrationReport(ctx, migrationID, toolsurface.ReportMarkdown)
	if !res.Success {
		t.Fatalf("GenerateMigrationReport failed: %+v", res)
	}
	if res.Report == "" {
		t.Errorf("expected non-empty report")
	}
}
