package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/store"
)

func openTestStore(t *testing.T) *Storage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "migration.db")
	s, err := Open(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCreateMigration_RejectsSecondActive(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateMigration(ctx, "X", 10); err != nil {
		t.Fatalf("first CreateMigration failed: %v", err)
	}
	_, err := s.CreateMigration(ctx, "Y", 5)
	if err == nil {
		t.Fatalf("expected already_active error, got nil")
	}
	if store.KindOf(err) != store.ErrAlreadyActive {
		t.Errorf("kind = %v, want already_active", store.KindOf(err))
	}
}

func TestGetActiveMigration_NoneInitially(t *testing.T) {
	s := openTestStore(t)
	m, err := s.GetActiveMigration(context.Background())
	if err != nil {
		t.Fatalf("GetActiveMigration failed: %v", err)
	}
	if m != nil {
		t.Errorf("expected nil, got %+v", m)
	}
}

func TestUpdateMigration_RejectsMonotonicDecrease(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	id, err := s.CreateMigration(ctx, "X", 10)
	if err != nil {
		t.Fatalf("CreateMigration failed: %v", err)
	}

	if err := s.UpdateMigration(ctx, id, map[string]any{"overall_progress": 20}); err != nil {
		t.Fatalf("first update failed: %v", err)
	}

	err = s.UpdateMigration(ctx, id, map[string]any{"overall_progress": 15})
	if err == nil {
		t.Fatalf("expected invariant_violation, got nil")
	}
	if store.KindOf(err) != store.ErrInvariantViolation {
		t.Errorf("kind = %v, want invariant_violation", store.KindOf(err))
	}
}

func TestUpdateMigration_RejectsUnknownField(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	id, err := s.CreateMigration(ctx, "X", 10)
	if err != nil {
		t.Fatalf("CreateMigration failed: %v", err)
	}
	err = s.UpdateMigration(ctx, id, map[string]any{"not_a_real_field": 1})
	if store.KindOf(err) != store.ErrInvalidArgument {
		t.Errorf("kind = %v, want invalid_argument", store.KindOf(err))
	}
}

func TestAddFamilyMember_AppearsInGetFamilyMembers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	id, err := s.CreateMigration(ctx, "X", 10)
	if err != nil {
		t.Fatalf("CreateMigration failed: %v", err)
	}
	age := 15
	if _, err := s.AddFamilyMember(ctx, id, "Jill", store.RoleChild, &age); err != nil {
		t.Fatalf("AddFamilyMember failed: %v", err)
	}

	members, err := s.GetFamilyMembers(ctx, id, store.FilterAll)
	if err != nil {
		t.Fatalf("GetFamilyMembers failed: %v", err)
	}
	if len(members) != 1 || members[0].Name != "Jill" {
		t.Fatalf("members = %+v, want one member named Jill", members)
	}
}

func TestGetFamilyMembers_TeenFilter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	id, _ := s.CreateMigration(ctx, "X", 10)
	teenAge, adultAge := 15, 40
	s.AddFamilyMember(ctx, id, "Teen", store.RoleChild, &teenAge)
	s.AddFamilyMember(ctx, id, "Adult", store.RoleSpouse, &adultAge)

	members, err := s.GetFamilyMembers(ctx, id, store.FilterTeen)
	if err != nil {
		t.Fatalf("GetFamilyMembers failed: %v", err)
	}
	if len(members) != 1 || members[0].Name != "Teen" {
		t.Fatalf("members = %+v, want only Teen", members)
	}
}

func TestUpsertFamilyAppAdoption_ForwardOnly(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	id, _ := s.CreateMigration(ctx, "X", 10)
	s.AddFamilyMember(ctx, id, "Jill", store.RoleChild, nil)

	if err := s.UpsertFamilyAppAdoption(ctx, id, "Jill", store.ServiceMessaging, store.AdoptionConfigured, nil); err != nil {
		t.Fatalf("upsert to configured failed: %v", err)
	}
	// Regress to invited: must be a silent no-op, not an error.
	if err := s.UpsertFamilyAppAdoption(ctx, id, "Jill", store.ServiceMessaging, store.AdoptionInvited, nil); err != nil {
		t.Fatalf("regression should no-op, got error: %v", err)
	}

	members, err := s.GetFamilyMembers(ctx, id, store.FilterAll)
	if err != nil {
		t.Fatalf("GetFamilyMembers failed: %v", err)
	}
	got := members[0].Adoptions[store.ServiceMessaging].Status
	if got != store.AdoptionConfigured {
		t.Errorf("status = %v, want configured (regression should not apply)", got)
	}
}

func TestUpsertFamilyAppAdoption_UnknownMemberIsNotFound(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	id, _ := s.CreateMigration(ctx, "X", 10)

	err := s.UpsertFamilyAppAdoption(ctx, id, "Ghost", store.ServiceMessaging, store.AdoptionInvited, nil)
	if store.KindOf(err) != store.ErrNotFound {
		t.Errorf("kind = %v, want not_found", store.KindOf(err))
	}
}

func TestInitiateTransfer_RejectsDoubleInitiate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	id, _ := s.CreateMigration(ctx, "X", 10)

	baseline := store.BaselineReading{PhotosGB: 1.5, DriveGB: 0.2, MailGB: 0.1}
	if _, err := s.InitiateTransfer(ctx, id, 1000, 50, 10, baseline); err != nil {
		t.Fatalf("first InitiateTransfer failed: %v", err)
	}
	_, err := s.InitiateTransfer(ctx, id, 1000, 50, 10, baseline)
	if store.KindOf(err) != store.ErrAlreadyActive {
		t.Errorf("kind = %v, want already_active", store.KindOf(err))
	}
}

func TestRunInTransaction_AppendsSnapshotAndUpsertsDailyProgress(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	id, _ := s.CreateMigration(ctx, "X", 10)

	err := s.RunInTransaction(ctx, func(tx store.Transaction) error {
		if _, err := tx.AppendStorageSnapshot(ctx, store.StorageSnapshot{
			MigrationID: id, Day: 1, TotalUsedGB: 1.5, IsBaseline: true,
		}); err != nil {
			return err
		}
		return tx.UpsertDailyProgress(ctx, store.DailyProgress{
			MigrationID: id, Day: 1, AdoptionCounts: map[store.Service]int{},
		})
	})
	if err != nil {
		t.Fatalf("RunInTransaction failed: %v", err)
	}

	snap, err := s.GetBaselineSnapshot(ctx, id)
	if err != nil {
		t.Fatalf("GetBaselineSnapshot failed: %v", err)
	}
	if snap == nil || snap.TotalUsedGB != 1.5 {
		t.Fatalf("baseline snapshot = %+v, want TotalUsedGB=1.5", snap)
	}

	daily, err := s.GetDailySummary(ctx, id, 1)
	if err != nil {
		t.Fatalf("GetDailySummary failed: %v", err)
	}
	if daily.LatestSnapshotForDay == nil {
		t.Fatalf("expected a snapshot for day 1")
	}
}

// TestRunInTransaction_RollsBackOnError verifies neither write survives when
// the second step in the transaction fails, per spec.md §5's atomicity
// requirement for T5's E5/E6 pair.
func TestRunInTransaction_RollsBackOnError(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	id, _ := s.CreateMigration(ctx, "X", 10)

	wantErr := store.NewError(store.ErrUnknown, "boom")
	err := s.RunInTransaction(ctx, func(tx store.Transaction) error {
		if _, err := tx.AppendStorageSnapshot(ctx, store.StorageSnapshot{MigrationID: id, Day: 1}); err != nil {
			return err
		}
		return wantErr
	})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}

	snap, err := s.GetLatestSnapshot(ctx, id)
	if err != nil {
		t.Fatalf("GetLatestSnapshot failed: %v", err)
	}
	if snap != nil {
		t.Errorf("expected no snapshot after rollback, got %+v", snap)
	}
}

func TestGetFamilyServiceSummary_CountsByService(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	id, _ := s.CreateMigration(ctx, "X", 10)
	s.AddFamilyMember(ctx, id, "A", store.RoleSpouse, nil)
	s.AddFamilyMember(ctx, id, "B", store.RoleChild, nil)

	if err := s.UpsertFamilyAppAdoption(ctx, id, "A", store.ServiceMessaging, store.AdoptionConfigured, nil); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	summary, err := s.GetFamilyServiceSummary(ctx, id)
	if err != nil {
		t.Fatalf("GetFamilyServiceSummary failed: %v", err)
	}
	for _, row := range summary {
		if row.Service == store.ServiceMessaging {
			if row.Total != 2 {
				t.Errorf("total = %d, want 2 (member B has no adoption row yet)", row.Total)
			}
			if row.Configured != 1 {
				t.Errorf("configured = %d, want 1", row.Configured)
			}
			if row.Pending != 1 {
				t.Errorf("pending = %d, want 1", row.Pending)
			}
		}
	}
}
