package toolsurface

import (
	"context"
	"fmt"

	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/progress"
	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/store"
)

// InitializeMigration is T1: start a run. Precondition: no active migration.
func (s *Surface) InitializeMigration(ctx context.Context, userName string, yearsOnSource int) InitializeMigrationResult {
	if err := Chain(
		required("user_name", userName),
		boundedInt("years_on_source", yearsOnSource, 0, 120),
	); err != nil {
		return InitializeMigrationResult{Status: fail(err)}
	}

	id, err := s.Store.CreateMigration(ctx, userName, yearsOnSource)
	if err != nil {
		return InitializeMigrationResult{Status: fail(asStoreError(err))}
	}
	return InitializeMigrationResult{Status: ok(), MigrationID: id}
}

// AddFamilyMember is T2: register a person against an existing migration.
func (s *Surface) AddFamilyMember(ctx context.Context, migrationID, name string, role store.Role, age *int) AddFamilyMemberResult {
	if err := Chain(
		required("migration_id", migrationID),
		required("name", name),
		oneOf("role", role, store.RoleSpouse, store.RoleChild, store.RoleOther),
	); err != nil {
		return AddFamilyMemberResult{Status: fail(err)}
	}
	if age != nil {
		if err := boundedInt("age", *age, 0, 120)(); err != nil {
			return AddFamilyMemberResult{Status: fail(err)}
		}
	}

	if _, err := s.Store.GetMigration(ctx, migrationID); err != nil {
		return AddFamilyMemberResult{Status: fail(asStoreError(err))}
	}

	id, err := s.Store.AddFamilyMember(ctx, migrationID, name, role, age)
	if err != nil {
		return AddFamilyMemberResult{Status: fail(asStoreError(err))}
	}
	return AddFamilyMemberResult{Status: ok(), MemberID: id}
}

// UpdateMigrationStatus is T3: progressive enrichment of E1 via a fixed
// allow-listed field set, enforced by the store layer's monotonicity checks.
func (s *Surface) UpdateMigrationStatus(ctx context.Context, migrationID string, fields map[string]any) UpdateMigrationStatusResult {
	if err := required("migration_id", migrationID)(); err != nil {
		return UpdateMigrationStatusResult{Status: fail(err)}
	}
	if v, ok := fields["overall_progress"]; ok {
		if n, ok := asInt(v); ok {
			if err := boundedInt("overall_progress", n, 0, 100)(); err != nil {
				return UpdateMigrationStatusResult{Status: fail(err)}
			}
		}
	}
	if v, ok := fields["total_source_storage_gb"]; ok {
		if f, ok := asFloat(v); ok {
			if err := nonNegative("total_source_storage_gb", f)(); err != nil {
				return UpdateMigrationStatusResult{Status: fail(err)}
			}
		}
	}

	before, err := s.Store.GetMigration(ctx, migrationID)
	if err != nil {
		return UpdateMigrationStatusResult{Status: fail(asStoreError(err))}
	}

	if err := s.Store.UpdateMigration(ctx, migrationID, fields); err != nil {
		return UpdateMigrationStatusResult{Status: fail(asStoreError(err))}
	}

	// The update that first moves phase to media_transfer is this core's
	// trigger to invoke the Browser Collaborator's initiate_transfer and
	// record E4, since spec.md's S1 scenario treats "external
	// initiate_transfer invoked" as happening alongside this transition
	// rather than as its own tool-surface operation.
	if p, ok := fields["phase"]; ok && before.Phase != store.PhaseMediaTransfer {
		if phase, ok := p.(string); ok && store.Phase(phase) == store.PhaseMediaTransfer {
			if err := s.startMediaTransfer(ctx, migrationID, before); err != nil {
				return UpdateMigrationStatusResult{Status: fail(asStoreError(err))}
			}
		}
	}

	return UpdateMigrationStatusResult{Status: ok()}
}

// UpdateFamilyMemberApps is T4: record a cross-platform service adoption
// state for a named family member.
func (s *Surface) UpdateFamilyMemberApps(ctx context.Context, migrationID, memberName string, service store.Service, status store.AdoptionStatus, details *store.AdoptionDetails) UpdateFamilyMemberAppsResult {
	if err := Chain(
		required("migration_id", migrationID),
		required("member_name", memberName),
		oneOf("service", service, store.ServiceMessaging, store.ServiceLocation, store.ServicePayments),
		oneOf("status", status, store.AdoptionNotStarted, store.AdoptionInvited, store.AdoptionInstalled, store.AdoptionConfigured),
	); err != nil {
		return UpdateFamilyMemberAppsResult{Status: fail(err)}
	}

	if err := s.Store.UpsertFamilyAppAdoption(ctx, migrationID, memberName, service, status, details); err != nil {
		return UpdateFamilyMemberAppsResult{Status: fail(asStoreError(err))}
	}
	return UpdateFamilyMemberAppsResult{Status: ok()}
}

// GetMigrationStatus is T5, the load-bearing "uber status" operation. It
// implements the four-step algorithm of spec.md §4.3 verbatim: resolve the
// transfer, read a live destination reading (soft-failing on collaborator
// trouble), run the Progress Engine (side-effecting E5/E6 atomically), and
// compose the final record from four C1 reads plus the progress result.
func (s *Surface) GetMigrationStatus(ctx context.Context, migrationID string, dayNumber int) MigrationStatusResult {
	if err := Chain(
		required("migration_id", migrationID),
		boundedInt("day_number", dayNumber, 1, 7),
	); err != nil {
		return MigrationStatusResult{Status: fail(err)}
	}

	migration, err := s.Store.GetMigration(ctx, migrationID)
	if err != nil {
		return MigrationStatusResult{Status: fail(asStoreError(err))}
	}

	// Step 1: resolve the active transfer.
	transfer, err := s.Store.GetActiveTransfer(ctx, migrationID)
	if err != nil {
		return MigrationStatusResult{Status: fail(asStoreError(err))}
	}
	if transfer == nil && dayNumber >= 2 {
		overview, err := s.Store.GetOverview(ctx, migrationID)
		if err != nil {
			return MigrationStatusResult{Status: fail(asStoreError(err))}
		}
		return MigrationStatusResult{
			Status:            ok(),
			MigrationOverview: overview,
			StatusMessage:     fmt.Sprintf("Day %d: no transfer started", dayNumber),
		}
	}

	// Step 2: read a live destination reading, soft-failing on collaborator trouble.
	var currentStorageGB float64
	softFault := false
	if dayNumber >= 2 && transfer != nil {
		current, cErr := s.readDestinationStorage(ctx)
		if cErr != nil {
			softFault = true
			if last, lErr := s.Store.GetLatestSnapshot(ctx, migrationID); lErr == nil && last != nil {
				currentStorageGB = last.TotalUsedGB
			}
		} else {
			currentStorageGB = current
		}
	} else if baseline, bErr := s.Store.GetBaselineSnapshot(ctx, migrationID); bErr == nil && baseline != nil {
		currentStorageGB = baseline.TotalUsedGB
	}

	baselineGB := 0.0
	if migration.GooglePhotosBaselineGB != nil {
		baselineGB = *migration.GooglePhotosBaselineGB
	}
	totalSourceStorageGB := 0.0
	if migration.TotalSourceStorageGB != nil {
		totalSourceStorageGB = *migration.TotalSourceStorageGB
	}

	// Step 3: the Progress Engine computation plus its E5/E6 side effects,
	// made atomic via RunInTransaction.
	result := progress.Calculate(baselineGB, totalSourceStorageGB, currentStorageGB, dayNumber)

	existingBaseline, err := s.Store.GetBaselineSnapshot(ctx, migrationID)
	if err != nil {
		return MigrationStatusResult{Status: fail(asStoreError(err))}
	}

	txErr := s.Store.RunInTransaction(ctx, func(tx store.Transaction) error {
		// startMediaTransfer already records the day-1 baseline row when the
		// transfer begins; only mark this snapshot as the baseline if no
		// baseline has been recorded yet, so a later T5(day=1) call can never
		// produce a second is_baseline=true row (spec.md §8: "exactly one E5
		// row has is_baseline = true").
		isBaseline := dayNumber == 1 && existingBaseline == nil
		snapID, err := tx.AppendStorageSnapshot(ctx, store.StorageSnapshot{
			MigrationID:          migrationID,
			Day:                  dayNumber,
			PhotosGB:             currentStorageGB,
			TotalUsedGB:          currentStorageGB,
			GrowthFromBaselineGB: result.Storage.GrowthGB,
			EstimatedPhotos:      result.Estimates.Photos,
			EstimatedVideos:      result.Estimates.Videos,
			PercentComplete:      result.Progress.PercentComplete,
			IsBaseline:           isBaseline,
		})
		if err != nil {
			return err
		}
		_ = snapID

		if err := tx.UpsertDailyProgress(ctx, store.DailyProgress{
			MigrationID:            migrationID,
			Day:                    dayNumber,
			Date:                   timeNow(),
			PhotosTransferred:      result.Estimates.Photos,
			VideosTransferred:      result.Estimates.Videos,
			SizeTransferredGB:      result.Storage.GrowthGB,
			StoragePercentComplete: result.Progress.PercentComplete,
			KeyMilestone:           result.Message,
		}); err != nil {
			return err
		}

		if transfer != nil {
			photoStatus, videoStatus := nextTransferStatus(*transfer, result, dayNumber)
			if err := tx.UpdateMediaTransferStatus(ctx, migrationID, photoStatus, videoStatus); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return MigrationStatusResult{Status: fail(asStoreError(txErr))}
	}

	// Step 4: compose the response from four C1 reads plus the progress result.
	daySummary, err := s.Store.GetDailySummary(ctx, migrationID, dayNumber)
	if err != nil {
		return MigrationStatusResult{Status: fail(asStoreError(err))}
	}
	overview, err := s.Store.GetOverview(ctx, migrationID)
	if err != nil {
		return MigrationStatusResult{Status: fail(asStoreError(err))}
	}
	familyServices, err := s.Store.GetFamilyServiceSummary(ctx, migrationID)
	if err != nil {
		return MigrationStatusResult{Status: fail(asStoreError(err))}
	}

	photoProgress := &PhotoProgress{
		PercentComplete: result.Progress.PercentComplete,
		RateGBPerDay:    result.Progress.RateGBPerDay,
		Success:         result.Success,
		Message:         result.Message,
	}
	if latest, lErr := s.Store.GetLatestSnapshot(ctx, migrationID); lErr == nil && latest != nil {
		photoProgress.PercentComplete = latest.PercentComplete
	}

	resp := MigrationStatusResult{
		Status:            ok(),
		DaySummary:        daySummary,
		MigrationOverview: overview,
		PhotoProgress:     photoProgress,
		FamilyServices:    familyServices,
		StatusMessage:     fmt.Sprintf("Day %d: %.0f%% complete", dayNumber, photoProgress.PercentComplete),
	}
	if softFault {
		resp.Message = "collaborator unavailable; progress derived from stored state"
	}
	return resp
}

// startMediaTransfer invokes the Browser Collaborator's initiate_transfer
// and records the resulting baseline as E4 and a day-1 baseline E5 row.
func (s *Surface) startMediaTransfer(ctx context.Context, migrationID string, migration *store.Migration) error {
	ctx, cancel := contextWithTimeout(ctx, s.timeout())
	defer cancel()

	baseline, err := s.Browser.InitiateTransfer(ctx)
	if err != nil {
		return collaboratorError(err)
	}

	photoCount, videoCount, sourceStorage := 0, 0, 0.0
	if migration.PhotoCount != nil {
		photoCount = *migration.PhotoCount
	}
	if migration.VideoCount != nil {
		videoCount = *migration.VideoCount
	}
	if migration.TotalSourceStorageGB != nil {
		sourceStorage = *migration.TotalSourceStorageGB
	}

	_, err = s.Store.InitiateTransfer(ctx, migrationID, photoCount, videoCount, sourceStorage, store.BaselineReading{
		PhotosGB:   baseline.PhotosGB,
		DriveGB:    baseline.DriveGB,
		MailGB:     baseline.MailGB,
		CapturedAt: baseline.CapturedAt.Format(timeRFC3339),
	})
	if err != nil {
		return err
	}

	// The day-1 baseline E5 row: no T5 call is guaranteed to happen on day 1
	// (spec.md §8 S1 never calls get_migration_status), so this is the only
	// write that can satisfy "a baseline snapshot exists with is_baseline
	// = true" for every later day>1 snapshot's invariant.
	_, err = s.Store.AppendStorageSnapshot(ctx, store.StorageSnapshot{
		MigrationID: migrationID,
		Day:         1,
		PhotosGB:    baseline.PhotosGB,
		DriveGB:     baseline.DriveGB,
		MailGB:      baseline.MailGB,
		TotalUsedGB: baseline.PhotosGB,
		IsBaseline:  true,
	})
	return err
}

// readDestinationStorage bounds the C4 call with the configured
// collaborator timeout, per spec.md §5.
func (s *Surface) readDestinationStorage(ctx context.Context) (float64, error) {
	ctx, cancel := contextWithTimeout(ctx, s.timeout())
	defer cancel()
	v, err := s.Browser.GetDestinationPhotosStorageGB(ctx)
	if err != nil {
		return 0, collaboratorError(err)
	}
	return v, nil
}

// nextTransferStatus derives the per-kind Media Transfer status the way
// spec.md §4.2 describes: initiate_transfer already moved both kinds to
// initiated; first growth on day>=4 advances to in_progress; day 7 forces
// completed for both. An empty return value means "leave this kind as is"
// (UpdateMediaTransferStatus treats "" as no-op per its own contract).
func nextTransferStatus(current store.MediaTransfer, result progress.Result, dayNumber int) (store.MediaKindStatus, store.MediaKindStatus) {
	if progress.IsDayComplete(dayNumber) {
		return store.MediaCompleted, store.MediaCompleted
	}
	if progress.IsInProgressTransition(result.Storage.GrowthGB, dayNumber) {
		photo := current.PhotoStatus
		video := current.VideoStatus
		if photo == store.MediaInitiated {
			photo = store.MediaInProgress
		}
		if video == store.MediaInitiated {
			video = store.MediaInProgress
		}
		return photo, video
	}
	return "", ""
}
