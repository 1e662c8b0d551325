package store

import "time"

// Phase is the Migration lifecycle phase (spec.md §3, E1).
type Phase string

const (
	PhaseInitialization Phase = "initialization"
	PhaseMediaTransfer  Phase = "media_transfer"
	PhaseFamilySetup    Phase = "family_setup"
	PhaseValidation     Phase = "validation"
	PhaseCompleted      Phase = "completed"
)

func (p Phase) IsValid() bool {
	switch p {
	case PhaseInitialization, PhaseMediaTransfer, PhaseFamilySetup, PhaseValidation, PhaseCompleted:
		return true
	}
	return false
}

// Role is a Family Member's role in the household (E2).
type Role string

const (
	RoleSpouse Role = "spouse"
	RoleChild  Role = "child"
	RoleOther  Role = "other"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleSpouse, RoleChild, RoleOther:
		return true
	}
	return false
}

// Service is one of the closed set of cross-platform family services (E3).
type Service string

const (
	ServiceMessaging Service = "Messaging"
	ServiceLocation  Service = "Location"
	ServicePayments  Service = "Payments"
)

func (s Service) IsValid() bool {
	switch s {
	case ServiceMessaging, ServiceLocation, ServicePayments:
		return true
	}
	return false
}

// AdoptionStatus is the forward-only status ladder for a Family App Adoption row (E3).
type AdoptionStatus string

const (
	AdoptionNotStarted AdoptionStatus = "not_started"
	AdoptionInvited    AdoptionStatus = "invited"
	AdoptionInstalled  AdoptionStatus = "installed"
	AdoptionConfigured AdoptionStatus = "configured"
)

// adoptionRank orders the forward-only ladder; higher ranks cannot move to lower ones.
var adoptionRank = map[AdoptionStatus]int{
	AdoptionNotStarted: 0,
	AdoptionInvited:    1,
	AdoptionInstalled:  2,
	AdoptionConfigured: 3,
}

func (s AdoptionStatus) IsValid() bool {
	_, ok := adoptionRank[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is allowed under the
// forward-only rule of spec.md §3 ("backward transitions are rejected").
// Equal states (no-op) are always allowed.
func (s AdoptionStatus) CanTransitionTo(next AdoptionStatus) bool {
	return adoptionRank[next] >= adoptionRank[s]
}

// MediaKindStatus is the per-kind transfer state machine of spec.md §4.2.
type MediaKindStatus string

const (
	MediaPending    MediaKindStatus = "pending"
	MediaInitiated  MediaKindStatus = "initiated"
	MediaInProgress MediaKindStatus = "in_progress"
	MediaCompleted  MediaKindStatus = "completed"
)

// Migration is E1: one row per run.
type Migration struct {
	ID                     string
	UserName               string
	YearsOnSource          int
	PhotoCount             *int
	VideoCount             *int
	TotalSourceStorageGB   *float64
	GooglePhotosBaselineGB *float64
	GoogleDriveBaselineGB  *float64
	GmailBaselineGB        *float64
	FamilySize             *int
	FamilyGroupName        *string
	Phase                  Phase
	OverallProgress        int
	StartedAt              time.Time
	CompletedAt            *time.Time
}

// FamilyMember is E2.
type FamilyMember struct {
	ID            string
	MigrationID   string
	Name          string
	Role          Role
	Age           *int
	ContactHandle *string
	StayingSource bool
	CreatedAt     time.Time
}

// FamilyMemberWithAdoptions joins E2 with its E3 rows, keyed by service, for
// the inline-join result shape spec.md §4.1 requires of get_family_members.
type FamilyMemberWithAdoptions struct {
	FamilyMember
	Adoptions map[Service]FamilyAppAdoption
}

// FamilyAppAdoption is E3.
type FamilyAppAdoption struct {
	ID                   string
	MemberID             string
	Service              Service
	Status               AdoptionStatus
	InvitedAt            *time.Time
	InstalledAt          *time.Time
	ConfiguredAt         *time.Time
	InGroup              bool
	LocationShareSent    bool
	LocationShareReceived bool
	CardActivated        bool
	CardLastFour         string
}

// AdoptionDetails carries the service-specific granular fields an upsert may set.
// Only the fields belonging to the target service are applied (spec.md §4.1).
type AdoptionDetails struct {
	InGroup               *bool
	LocationShareSent     *bool
	LocationShareReceived *bool
	CardActivated         *bool
	CardLastFour          *string
}

// MediaTransfer is E4.
type MediaTransfer struct {
	ID                    string
	MigrationID           string
	SourcePhotoCount      *int
	SourceVideoCount      *int
	SourceStorageGB       *float64
	BaselinePhotosGB      *float64
	BaselineDriveGB       *float64
	BaselineMailGB        *float64
	PhotoStatus           MediaKindStatus
	VideoStatus           MediaKindStatus
	InitiatedAt           *time.Time
	PhotoStartedAt        *time.Time
	PhotoCompletedAt      *time.Time
	VideoStartedAt        *time.Time
	VideoCompletedAt      *time.Time
	FirstVisibilityDay    *int
	ExpectedCompletionDay *int
}

// OverallStatus derives the composite Media Transfer status (spec.md §4.2:
// "overall status is completed iff both kinds are completed").
func (m MediaTransfer) OverallStatus() MediaKindStatus {
	if m.PhotoStatus == MediaCompleted && m.VideoStatus == MediaCompleted {
		return MediaCompleted
	}
	if m.PhotoStatus == MediaPending && m.VideoStatus == MediaPending {
		return MediaPending
	}
	if m.PhotoStatus == MediaInProgress || m.VideoStatus == MediaInProgress {
		return MediaInProgress
	}
	return MediaInitiated
}

// StorageSnapshot is E5: one append-only destination-storage reading.
type StorageSnapshot struct {
	ID                string
	MigrationID       string
	Day               int
	CapturedAt        time.Time
	PhotosGB          float64
	DriveGB           float64
	MailGB            float64
	DeviceBackupGB    float64
	TotalUsedGB       float64
	GrowthFromBaselineGB float64
	EstimatedPhotos   int
	EstimatedVideos   int
	PercentComplete   float64
	IsBaseline        bool
}

// DailyProgress is E6: one upserted row per (migration, day).
type DailyProgress struct {
	MigrationID          string
	Day                  int
	Date                 time.Time
	PhotosTransferred    int
	VideosTransferred    int
	SizeTransferredGB    float64
	StoragePercentComplete float64
	AdoptionCounts       map[Service]int
	KeyMilestone         string
	Notes                string
}

// FamilyServiceSummary is the per-service rollup backing get_family_service_summary.
type FamilyServiceSummary struct {
	Service   Service
	Total     int
	Invited   int
	Installed int
	Configured int
	Pending   int
}

// Filter is the closed set of get_family_members filters (spec.md §4.1).
type Filter string

const (
	FilterAll                Filter = "all"
	FilterNotInMessagingGrp  Filter = "not_in_messaging_group"
	FilterNotSharingLocation Filter = "not_sharing_location"
	FilterTeen               Filter = "teen"
	FilterNoContactHandle    Filter = "no_contact_handle"
)

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterNotInMessagingGrp, FilterNotSharingLocation, FilterTeen, FilterNoContactHandle:
		return true
	}
	return false
}

// Overview is the composite record backing get_overview / migration_overview.
type Overview struct {
	Migration       Migration
	LatestSnapshot  *StorageSnapshot
	LatestDaily     *DailyProgress
}

// DailySummary backs get_daily_summary.
type DailySummary struct {
	Day                 int
	ExpectedMilestone   string
	AdoptionCounts       map[Service]int
	LatestSnapshotForDay *StorageSnapshot
}
