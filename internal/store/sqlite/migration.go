package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/idgen"
	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/store"
)

// CreateMigration inserts E1, enforcing the "exactly one active migration"
// invariant of spec.md §3 by first checking GetActiveMigration.
func (s *Storage) CreateMigration(ctx context.Context, userName string, yearsOnSource int) (string, error) {
	active, err := s.GetActiveMigration(ctx)
	if err != nil {
		return "", err
	}
	if active != nil {
		return "", store.NewError(store.ErrAlreadyActive,
			"migration %s is active; complete it before starting a new one", active.ID)
	}

	id := idgen.New("mig")
	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO migrations (id, user_name, years_on_source, phase, overall_progress, started_at)
		VALUES (?, ?, ?, ?, 0, ?)
	`, id, userName, yearsOnSource, store.PhaseInitialization, now)
	if err != nil {
		return "", fmt.Errorf("insert migration: %w", err)
	}
	s.logWrite(ctx, id, "create_migration", userName)
	return id, nil
}

// GetActiveMigration returns the most recently created migration with a null
// completed_at, per the GLOSSARY definition of "active migration".
func (s *Storage) GetActiveMigration(ctx context.Context) (*store.Migration, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+migrationColumns+`
		FROM migrations WHERE completed_at IS NULL
		ORDER BY started_at DESC, id DESC LIMIT 1
	`)
	m, err := scanMigration(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query active migration: %w", err)
	}
	return m, nil
}

// GetMigration fetches one migration by id.
func (s *Storage) GetMigration(ctx context.Context, migrationID string) (*store.Migration, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+migrationColumns+` FROM migrations WHERE id = ?`, migrationID)
	m, err := scanMigration(row)
	if err == sql.ErrNoRows {
		return nil, store.NewError(store.ErrNotFound, "migration %s not found", migrationID)
	}
	if err != nil {
		return nil, fmt.Errorf("query migration %s: %w", migrationID, err)
	}
	return m, nil
}

// UpdateMigration applies progressive-enrichment updates to E1, honoring the
// column allow-list and monotonicity invariants of spec.md §3/§9.
func (s *Storage) UpdateMigration(ctx context.Context, migrationID string, fields map[string]any) error {
	current, err := s.GetMigration(ctx, migrationID)
	if err != nil {
		return err
	}

	setClauses := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)

	for key, value := range fields {
		if isUnknownMigrationField(key) {
			return store.NewError(store.ErrInvalidArgument, "unknown migration field: %s", key)
		}
		if err := validateAgainstCurrent(key, value, current); err != nil {
			return err
		}
		setClauses = append(setClauses, key+" = ?")
		args = append(args, value)
	}
	if len(setClauses) == 0 {
		return nil
	}

	query := "UPDATE migrations SET " + joinSet(setClauses) + " WHERE id = ?"
	args = append(args, migrationID)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update migration %s: %w", migrationID, err)
	}
	s.logWrite(ctx, migrationID, "update_migration", fmt.Sprintf("%v", fields))
	return nil
}

func validateAgainstCurrent(key string, value any, current *store.Migration) error {
	switch key {
	case "photo_count":
		if v, ok := asInt(value); ok {
			return checkMonotoneInt(key, current.PhotoCount, v)
		}
	case "video_count":
		if v, ok := asInt(value); ok {
			return checkMonotoneInt(key, current.VideoCount, v)
		}
	case "overall_progress":
		if v, ok := asInt(value); ok {
			cur := current.OverallProgress
			return checkMonotoneInt(key, &cur, v)
		}
	case "total_source_storage_gb":
		if v, ok := asFloat(value); ok {
			return checkMonotoneFloat(key, current.TotalSourceStorageGB, v)
		}
	case "phase":
		if v, ok := value.(string); ok && !store.Phase(v).IsValid() {
			return store.NewError(store.ErrInvalidArgument, "invalid phase: %s", v)
		}
	}
	return nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func joinSet(clauses []string) string {
	out := ""
	for i, c := range clauses {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}

const migrationColumns = `id, user_name, years_on_source, photo_count, video_count,
	total_source_storage_gb, google_photos_baseline_gb, google_drive_baseline_gb, gmail_baseline_gb,
	family_size, family_group_name, phase, overall_progress, started_at, completed_at`

func scanMigration(row *sql.Row) (*store.Migration, error) {
	var m store.Migration
	var photoCount, videoCount, familySize sql.NullInt64
	var totalStorage, photosBaseline, driveBaseline, mailBaseline sql.NullFloat64
	var familyGroupName sql.NullString
	var completedAt sql.NullTime

	err := row.Scan(&m.ID, &m.UserName, &m.YearsOnSource, &photoCount, &videoCount,
		&totalStorage, &photosBaseline, &driveBaseline, &mailBaseline,
		&familySize, &familyGroupName, &m.Phase, &m.OverallProgress, &m.StartedAt, &completedAt)
	if err != nil {
		return nil, err
	}
	if photoCount.Valid {
		v := int(photoCount.Int64)
		m.PhotoCount = &v
	}
	if videoCount.Valid {
		v := int(videoCount.Int64)
		m.VideoCount = &v
	}
	if totalStorage.Valid {
		v := totalStorage.Float64
		m.TotalSourceStorageGB = &v
	}
	if photosBaseline.Valid {
		v := photosBaseline.Float64
		m.GooglePhotosBaselineGB = &v
	}
	if driveBaseline.Valid {
		v := driveBaseline.Float64
		m.GoogleDriveBaselineGB = &v
	}
	if mailBaseline.Valid {
		v := mailBaseline.Float64
		m.GmailBaselineGB = &v
	}
	if familySize.Valid {
		v := int(familySize.Int64)
		m.FamilySize = &v
	}
	if familyGroupName.Valid {
		m.FamilyGroupName = &familyGroupName.String
	}
	if completedAt.Valid {
		m.CompletedAt = &completedAt.Time
	}
	return &m, nil
}

// logWrite appends a row to write_log, a lightweight observability trail
// distinct from the tool-calls.jsonl audit log (internal/audit): this one
// lives inside the same database so it survives an export/import cycle,
// the way the teacher's own "events" table does.
func (s *Storage) logWrite(ctx context.Context, migrationID, operation, detail string) {
	_, _ = s.db.ExecContext(ctx, `INSERT INTO write_log (migration_id, operation, detail) VALUES (?, ?, ?)`,
		migrationID, operation, detail)
}
