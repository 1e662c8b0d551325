package sqlite

import (
	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/store"
)

// updatableMigrationFields is the allow-list of E1 columns update_migration may
// touch, per spec.md §9 ("the specification makes this explicit: ... a fixed
// set"). Grounded on the teacher's fieldValidators map in
// internal/storage/sqlite/validators.go, adapted from a single "status"
// validator to a per-field monotonicity/enum table.
var updatableMigrationFields = map[string]bool{
	"photo_count":                true,
	"video_count":                true,
	"total_source_storage_gb":    true,
	"google_photos_baseline_gb":  true,
	"google_drive_baseline_gb":   true,
	"gmail_baseline_gb":          true,
	"family_size":                true,
	"family_group_name":          true,
	"phase":                      true,
	"overall_progress":           true,
	"completed_at":               true,
}

// monotoneIntFields must never decrease once set (spec.md §3 invariants).
var monotoneIntFields = map[string]bool{
	"photo_count":       true,
	"video_count":       true,
	"overall_progress":  true,
}

// monotoneFloatFields must never decrease once set.
var monotoneFloatFields = map[string]bool{
	"total_source_storage_gb": true,
}

func isUnknownMigrationField(key string) bool {
	return !updatableMigrationFields[key]
}

// checkMonotoneInt compares a proposed new value against the current stored
// value (if any) and rejects a decrease, per the invariant in spec.md §3
// that photo_count/video_count/total_icloud_storage_gb (here
// total_source_storage_gb) and overall_progress are non-decreasing.
func checkMonotoneInt(field string, current *int, next int) error {
	if current != nil && next < *current {
		return store.NewError(store.ErrInvariantViolation,
			"%s is monotonically non-decreasing: cannot set %d after %d", field, next, *current)
	}
	return nil
}

func checkMonotoneFloat(field string, current *float64, next float64) error {
	if current != nil && next < *current {
		return store.NewError(store.ErrInvariantViolation,
			"%s is monotonically non-decreasing: cannot set %.3f after %.3f", field, next, *current)
	}
	return nil
}
