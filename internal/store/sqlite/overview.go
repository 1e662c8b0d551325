package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/store"
)

// GetOverview assembles the composite record backing migration_overview (T5):
// the Migration row plus whatever snapshot/progress data exists so far.
func (s *Storage) GetOverview(ctx context.Context, migrationID string) (*store.Overview, error) {
	m, err := s.GetMigration(ctx, migrationID)
	if err != nil {
		return nil, err
	}

	latestSnap, err := s.GetLatestSnapshot(ctx, migrationID)
	if err != nil {
		return nil, err
	}

	latestDaily, err := s.latestDailyProgress(ctx, migrationID)
	if err != nil {
		return nil, err
	}

	return &store.Overview{Migration: *m, LatestSnapshot: latestSnap, LatestDaily: latestDaily}, nil
}

func (s *Storage) latestDailyProgress(ctx context.Context, migrationID string) (*store.DailyProgress, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT migration_id, day_number, date, photos_transferred, videos_transferred,
			size_transferred_gb, storage_percent_complete, adoption_counts, key_milestone, notes
		FROM daily_progress WHERE migration_id = ? ORDER BY day_number DESC LIMIT 1
	`, migrationID)
	p, err := scanDailyProgress(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest daily progress: %w", err)
	}
	return p, nil
}

func scanDailyProgress(row *sql.Row) (*store.DailyProgress, error) {
	var p store.DailyProgress
	var countsJSON string
	err := row.Scan(&p.MigrationID, &p.Day, &p.Date, &p.PhotosTransferred, &p.VideosTransferred,
		&p.SizeTransferredGB, &p.StoragePercentComplete, &countsJSON, &p.KeyMilestone, &p.Notes)
	if err != nil {
		return nil, err
	}
	var raw map[string]int
	if err := json.Unmarshal([]byte(countsJSON), &raw); err != nil {
		return nil, fmt.Errorf("unmarshal adoption counts: %w", err)
	}
	p.AdoptionCounts = make(map[store.Service]int, len(raw))
	for k, v := range raw {
		p.AdoptionCounts[store.Service(k)] = v
	}
	return &p, nil
}

// GetDailySummary backs get_daily_summary (the day_summary section of T5):
// the key_milestone text stored in that day's daily_progress row (empty if
// the day has no row) plus whatever snapshot landed that day and the
// adoption counts recorded for it.
func (s *Storage) GetDailySummary(ctx context.Context, migrationID string, day int) (*store.DailySummary, error) {
	snap, err := s.GetSnapshotForDay(ctx, migrationID, day)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT migration_id, day_number, date, photos_transferred, videos_transferred,
			size_transferred_gb, storage_percent_complete, adoption_counts, key_milestone, notes
		FROM daily_progress WHERE migration_id = ? AND day_number = ?
	`, migrationID, day)
	p, err := scanDailyProgress(row)
	counts := map[store.Service]int{}
	milestone := ""
	if err == nil {
		counts = p.AdoptionCounts
		milestone = p.KeyMilestone
	} else if err != sql.ErrNoRows {
		return nil, fmt.Errorf("query daily progress for day %d: %w", day, err)
	}

	return &store.DailySummary{
		Day:                  day,
		ExpectedMilestone:    milestone,
		AdoptionCounts:       counts,
		LatestSnapshotForDay: snap,
	}, nil
}

// GetFamilyServiceSummary rolls up adoption status counts per service across
// every family member in migrationID, backing get_family_service_summary.
func (s *Storage) GetFamilyServiceSummary(ctx context.Context, migrationID string) ([]store.FamilyServiceSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.service, a.status
		FROM family_app_adoptions a
		JOIN family_members m ON m.id = a.member_id
		WHERE m.migration_id = ?
	`, migrationID)
	if err != nil {
		return nil, fmt.Errorf("query adoption statuses: %w", err)
	}
	defer rows.Close()

	tally := map[store.Service]*store.FamilyServiceSummary{
		store.ServiceMessaging: {Service: store.ServiceMessaging},
		store.ServiceLocation:  {Service: store.ServiceLocation},
		store.ServicePayments:  {Service: store.ServicePayments},
	}
	for rows.Next() {
		var service store.Service
		var status store.AdoptionStatus
		if err := rows.Scan(&service, &status); err != nil {
			return nil, fmt.Errorf("scan adoption status: %w", err)
		}
		t, ok := tally[service]
		if !ok {
			continue
		}
		switch status {
		case store.AdoptionInvited:
			t.Invited++
		case store.AdoptionInstalled:
			t.Installed++
		case store.AdoptionConfigured:
			t.Configured++
		default:
			t.Pending++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate adoption statuses: %w", err)
	}

	memberCount, err := s.countFamilyMembers(ctx, migrationID)
	if err != nil {
		return nil, err
	}

	out := make([]store.FamilyServiceSummary, 0, len(tally))
	for _, service := range []store.Service{store.ServiceMessaging, store.ServiceLocation, store.ServicePayments} {
		t := tally[service]
		// total and pending share the same family-member denominator: every
		// member counts toward a service's total whether or not they have an
		// adoption row yet (missing row == not_started, per spec.md §3).
		t.Total = memberCount
		t.Pending = memberCount - t.Invited - t.Installed - t.Configured
		out = append(out, *t)
	}
	return out, nil
}

func (s *Storage) countFamilyMembers(ctx context.Context, migrationID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM family_members WHERE migration_id = ?`, migrationID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count family members: %w", err)
	}
	return n, nil
}
