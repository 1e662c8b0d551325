package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/idgen"
	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/store"
)

// AddFamilyMember inserts E2.
func (s *Storage) AddFamilyMember(ctx context.Context, migrationID, name string, role store.Role, age *int) (string, error) {
	if !role.IsValid() {
		return "", store.NewError(store.ErrInvalidArgument, "invalid role: %s", role)
	}
	id := idgen.New("fam")
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO family_members (id, migration_id, name, role, age)
		VALUES (?, ?, ?, ?, ?)
	`, id, migrationID, name, role, age)
	if err != nil {
		return "", fmt.Errorf("insert family member: %w", err)
	}
	s.logWrite(ctx, migrationID, "add_family_member", name)
	return id, nil
}

// GetFamilyMembers returns every E2 row for migrationID joined with its E3
// adoptions, applying filter per spec.md §4.1's closed filter set.
func (s *Storage) GetFamilyMembers(ctx context.Context, migrationID string, filter store.Filter) ([]store.FamilyMemberWithAdoptions, error) {
	if !filter.IsValid() {
		return nil, store.NewError(store.ErrInvalidArgument, "invalid filter: %s", filter)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, migration_id, name, role, age, contact_handle, staying_on_source, created_at
		FROM family_members WHERE migration_id = ? ORDER BY created_at ASC, id ASC
	`, migrationID)
	if err != nil {
		return nil, fmt.Errorf("query family members: %w", err)
	}
	defer rows.Close()

	var members []store.FamilyMemberWithAdoptions
	for rows.Next() {
		var m store.FamilyMember
		var age sql.NullInt64
		var contact sql.NullString
		var staying int
		if err := rows.Scan(&m.ID, &m.MigrationID, &m.Name, &m.Role, &age, &contact, &staying, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan family member: %w", err)
		}
		if age.Valid {
			v := int(age.Int64)
			m.Age = &v
		}
		if contact.Valid {
			m.ContactHandle = &contact.String
		}
		m.StayingSource = staying != 0

		adoptions, err := s.adoptionsFor(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		members = append(members, store.FamilyMemberWithAdoptions{FamilyMember: m, Adoptions: adoptions})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate family members: %w", err)
	}

	return filterMembers(members, filter), nil
}

func filterMembers(members []store.FamilyMemberWithAdoptions, filter store.Filter) []store.FamilyMemberWithAdoptions {
	if filter == store.FilterAll {
		return members
	}
	out := make([]store.FamilyMemberWithAdoptions, 0, len(members))
	for _, m := range members {
		switch filter {
		case store.FilterNotInMessagingGrp:
			if a, ok := m.Adoptions[store.ServiceMessaging]; !ok || !a.InGroup {
				out = append(out, m)
			}
		case store.FilterNotSharingLocation:
			if a, ok := m.Adoptions[store.ServiceLocation]; !ok || !a.LocationShareSent || !a.LocationShareReceived {
				out = append(out, m)
			}
		case store.FilterTeen:
			if m.Age != nil && *m.Age >= 13 && *m.Age <= 18 {
				out = append(out, m)
			}
		case store.FilterNoContactHandle:
			if m.ContactHandle == nil || *m.ContactHandle == "" {
				out = append(out, m)
			}
		}
	}
	return out
}

func (s *Storage) adoptionsFor(ctx context.Context, memberID string) (map[store.Service]store.FamilyAppAdoption, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, member_id, service, status, invited_at, installed_at, configured_at,
			in_group, location_share_sent, location_share_received, card_activated, card_last_four
		FROM family_app_adoptions WHERE member_id = ?
	`, memberID)
	if err != nil {
		return nil, fmt.Errorf("query adoptions: %w", err)
	}
	defer rows.Close()

	out := make(map[store.Service]store.FamilyAppAdoption)
	for rows.Next() {
		a, err := scanAdoption(rows)
		if err != nil {
			return nil, err
		}
		out[a.Service] = a
	}
	return out, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanAdoption(row scannable) (store.FamilyAppAdoption, error) {
	var a store.FamilyAppAdoption
	var invitedAt, installedAt, configuredAt sql.NullTime
	var inGroup, shareSent, shareReceived, cardActivated int

	err := row.Scan(&a.ID, &a.MemberID, &a.Service, &a.Status, &invitedAt, &installedAt, &configuredAt,
		&inGroup, &shareSent, &shareReceived, &cardActivated, &a.CardLastFour)
	if err != nil {
		return a, fmt.Errorf("scan adoption: %w", err)
	}
	if invitedAt.Valid {
		a.InvitedAt = &invitedAt.Time
	}
	if installedAt.Valid {
		a.InstalledAt = &installedAt.Time
	}
	if configuredAt.Valid {
		a.ConfiguredAt = &configuredAt.Time
	}
	a.InGroup = inGroup != 0
	a.LocationShareSent = shareSent != 0
	a.LocationShareReceived = shareReceived != 0
	a.CardActivated = cardActivated != 0
	return a, nil
}

// UpsertFamilyAppAdoption creates or advances an E3 row for memberName under
// migrationID. Backward status transitions are rejected by
// AdoptionStatus.CanTransitionTo rather than erroring the caller: per
// spec.md §3 ("Family App Adoption Status... the Tool Surface treats a
// regression as a no-op, not a fault"), the write simply does nothing.
func (s *Storage) UpsertFamilyAppAdoption(ctx context.Context, migrationID, memberName string, service store.Service, status store.AdoptionStatus, details *store.AdoptionDetails) error {
	if !service.IsValid() {
		return store.NewError(store.ErrInvalidArgument, "invalid service: %s", service)
	}
	if !status.IsValid() {
		return store.NewError(store.ErrInvalidArgument, "invalid status: %s", status)
	}
	// Keep only the granular fields that belong to service.
	if details != nil {
		d := *details
		switch service {
		case store.ServiceMessaging:
			d.LocationShareSent, d.LocationShareReceived, d.CardActivated, d.CardLastFour = nil, nil, nil, nil
		case store.ServiceLocation:
			d.InGroup, d.CardActivated, d.CardLastFour = nil, nil, nil
		case store.ServicePayments:
			d.InGroup, d.LocationShareSent, d.LocationShareReceived = nil, nil, nil
		}
		details = &d
	}

	var memberID string
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM family_members WHERE migration_id = ? AND name = ?
	`, migrationID, memberName).Scan(&memberID)
	if err == sql.ErrNoRows {
		return store.NewError(store.ErrNotFound, "family member %q not found in migration %s", memberName, migrationID)
	}
	if err != nil {
		return fmt.Errorf("lookup family member: %w", err)
	}

	var existing *store.FamilyAppAdoption
	row := s.db.QueryRowContext(ctx, `
		SELECT id, member_id, service, status, invited_at, installed_at, configured_at,
			in_group, location_share_sent, location_share_received, card_activated, card_last_four
		FROM family_app_adoptions WHERE member_id = ? AND service = ?
	`, memberID, service)
	a, scanErr := scanAdoption(row)
	switch scanErr {
	case nil:
		existing = &a
	case sql.ErrNoRows:
		existing = nil
	default:
		return scanErr
	}

	if existing == nil {
		return s.insertAdoption(ctx, memberID, service, status, details)
	}

	if !existing.Status.CanTransitionTo(status) {
		s.logWrite(ctx, migrationID, "adoption_regression_ignored",
			fmt.Sprintf("%s/%s: %s -> %s", memberName, service, existing.Status, status))
		return nil
	}
	return s.updateAdoption(ctx, *existing, status, details)
}

func (s *Storage) insertAdoption(ctx context.Context, memberID string, service store.Service, status store.AdoptionStatus, details *store.AdoptionDetails) error {
	id := idgen.New("adp")
	now := time.Now().UTC()
	var invitedAt, installedAt, configuredAt *time.Time
	switch status {
	case store.AdoptionInvited:
		invitedAt = &now
	case store.AdoptionInstalled:
		invitedAt, installedAt = &now, &now
	case store.AdoptionConfigured:
		invitedAt, installedAt, configuredAt = &now, &now, &now
	}

	inGroup, shareSent, shareReceived, cardActivated, cardLastFour := applyDetails(details, false, false, false, false, "")

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO family_app_adoptions
			(id, member_id, service, status, invited_at, installed_at, configured_at,
			 in_group, location_share_sent, location_share_received, card_activated, card_last_four)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, memberID, service, status, invitedAt, installedAt, configuredAt,
		inGroup, shareSent, shareReceived, cardActivated, cardLastFour)
	if err != nil {
		return fmt.Errorf("insert adoption: %w", err)
	}
	return nil
}

func (s *Storage) updateAdoption(ctx context.Context, existing store.FamilyAppAdoption, status store.AdoptionStatus, details *store.AdoptionDetails) error {
	now := time.Now().UTC()
	invitedAt, installedAt, configuredAt := existing.InvitedAt, existing.InstalledAt, existing.ConfiguredAt
	switch status {
	case store.AdoptionInvited:
		if invitedAt == nil {
			invitedAt = &now
		}
	case store.AdoptionInstalled:
		if invitedAt == nil {
			invitedAt = &now
		}
		if installedAt == nil {
			installedAt = &now
		}
	case store.AdoptionConfigured:
		if invitedAt == nil {
			invitedAt = &now
		}
		if installedAt == nil {
			installedAt = &now
		}
		if configuredAt == nil {
			configuredAt = &now
		}
	}

	inGroup, shareSent, shareReceived, cardActivated, cardLastFour := applyDetails(details,
		existing.InGroup, existing.LocationShareSent, existing.LocationShareReceived,
		existing.CardActivated, existing.CardLastFour)

	_, err := s.db.ExecContext(ctx, `
		UPDATE family_app_adoptions SET status = ?, invited_at = ?, installed_at = ?, configured_at = ?,
			in_group = ?, location_share_sent = ?, location_share_received = ?, card_activated = ?, card_last_four = ?
		WHERE id = ?
	`, status, invitedAt, installedAt, configuredAt,
		inGroup, shareSent, shareReceived, cardActivated, cardLastFour, existing.ID)
	if err != nil {
		return fmt.Errorf("update adoption: %w", err)
	}
	return nil
}

func applyDetails(d *store.AdoptionDetails, inGroup, shareSent, shareReceived, cardActivated bool, cardLastFour string) (bool, bool, bool, bool, string) {
	if d == nil {
		return inGroup, shareSent, shareReceived, cardActivated, cardLastFour
	}
	if d.InGroup != nil {
		inGroup = *d.InGroup
	}
	if d.LocationShareSent != nil {
		shareSent = *d.LocationShareSent
	}
	if d.LocationShareReceived != nil {
		shareReceived = *d.LocationShareReceived
	}
	if d.CardActivated != nil {
		cardActivated = *d.CardActivated
	}
	if d.CardLastFour != nil {
		cardLastFour = *d.CardLastFour
	}
	return inGroup, shareSent, shareReceived, cardActivated, cardLastFour
}
