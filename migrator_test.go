package migrator_test

import (
	"context"
	"path/filepath"
	"testing"

	migrator "github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000"
)

func TestOpen_InitializeAndAddMember(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migration.db")
	ctx := context.Background()

	m, err := migrator.Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer m.Close()

	initRes := m.InitializeMigration(ctx, "Jane", 12)
	if !initRes.Success {
		t.Fatalf("InitializeMigration failed: %+v", initRes)
	}

	addRes := m.AddFamilyMember(ctx, initRes.MigrationID, "Sam", migrator.RoleSpouse, nil)
	if !addRes.Success {
		t.Fatalf("AddFamilyMember failed: %+v", addRes)
	}

	members := m.GetFamilyMembers(ctx, initRes.MigrationID, migrator.FilterAll)
	if !members.Success || len(members.Members) != 1 {
		t.Fatalf("GetFamilyMembers = %+v, want one member", members)
	}
}

func TestOpen_ReopeningSamePathReusesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migration.db")
	ctx := context.Background()

	m1, err := migrator.Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	if res := m1.InitializeMigration(ctx, "Jane", 12); !res.Success {
		t.Fatalf("InitializeMigration failed: %+v", res)
	}
	if err := m1.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	m2, err := migrator.Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer m2.Close()

	active, err := m2.Surface().Store.GetActiveMigration(ctx)
	if err != nil {
		t.Fatalf("GetActiveMigration failed: %v", err)
	}
	if active == nil || active.UserName != "Jane" {
		t.Fatalf("active migration = %+v, want Jane's migration to persist", active)
	}
}
