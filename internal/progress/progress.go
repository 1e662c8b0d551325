// Package progress implements the Progress Engine (C2 in spec.md §4.2): a
// pure function turning a baseline-anchored storage reading into a single
// progress record, plus the day-indexed milestone policy and its Day-7
// override. Grounded on the teacher's internal/beads status-derivation
// helpers (small, side-effect-free functions taking a struct and returning a
// computed struct), rewritten around this domain's seven-day calendar
// instead of an issue's open/closed lifecycle.
package progress

import "math"

// Storage holds the baseline/current/growth/remaining figures of a Result.
type Storage struct {
	BaselineGB  float64
	CurrentGB   float64
	GrowthGB    float64
	RemainingGB float64
}

// Estimates holds the informational per-media-kind transferred-count estimates.
type Estimates struct {
	Photos int
	Videos int
}

// Progress holds the day-indexed percent/rate figures.
type Progress struct {
	PercentComplete float64
	RateGBPerDay    *float64
}

// Result is the full record returned by Calculate, mirroring the
// calculate_progress contract of spec.md §4.2.
type Result struct {
	Storage   Storage
	Estimates Estimates
	Progress  Progress
	Success   bool
	Message   string
}

// dayPolicy is the fixed seven-row milestone table of spec.md §4.2. A day
// with computed=false overrides PercentComplete for that day regardless of
// the live reading (days 1-3 pinned to 0, day 7 pinned to 100).
type dayPolicy struct {
	computed bool
	fixed    float64
	message  string
}

var dayPolicies = map[int]dayPolicy{
	1: {computed: false, fixed: 0, message: "Transfer initiated, Apple is processing"},
	2: {computed: false, fixed: 0, message: "Apple still processing, not yet visible"},
	3: {computed: false, fixed: 0, message: "Apple still processing, photos appear soon"},
	4: {computed: true, message: "Photos appearing!"},
	5: {computed: true, message: "Transfer accelerating"},
	6: {computed: true, message: "Near completion"},
	7: {computed: false, fixed: 100, message: "Transfer complete"},
}

// Calculate implements the six-step algorithm of spec.md §4.2. baselineGB is
// the destination-photos baseline (E1 "B"), totalSourceStorageGB is the
// source total storage (E1 "T"), currentStorageGB is the live destination
// reading ("S"), and dayNumber is 1-7.
//
// The returned Result carries the E5/E6 side-effect payload; callers persist
// it via store.Store.AppendStorageSnapshot / UpsertDailyProgress (or the
// Transaction-scoped twins) — this function itself has no side effects.
func Calculate(baselineGB, totalSourceStorageGB, currentStorageGB float64, dayNumber int) Result {
	policy, ok := dayPolicies[dayNumber]
	if !ok {
		policy = dayPolicy{computed: true, message: ""}
	}

	growth := math.Max(0, currentStorageGB-baselineGB)

	var rawPercent float64
	if totalSourceStorageGB > 0 {
		rawPercent = math.Min(100, 100*growth/totalSourceStorageGB)
	}

	percent := rawPercent
	if !policy.computed {
		percent = policy.fixed
	}

	photos, videos := estimateCounts(growth)

	var rate *float64
	if dayNumber > 1 {
		r := growth / math.Max(1, float64(dayNumber-1))
		rate = &r
	}

	remaining := math.Max(0, totalSourceStorageGB-growth)

	return Result{
		Storage: Storage{
			BaselineGB:  baselineGB,
			CurrentGB:   currentStorageGB,
			GrowthGB:    growth,
			RemainingGB: remaining,
		},
		Estimates: Estimates{Photos: photos, Videos: videos},
		Progress: Progress{
			PercentComplete: percent,
			RateGBPerDay:    rate,
		},
		// Calculate is a pure computation: it never fails on its own. A
		// collaborator_unavailable soft failure is a Tool Surface (T5)
		// concern, applied before Calculate is ever called.
		Success: true,
		Message: policy.message,
	}
}

// estimateCounts splits growth (in GB) across the fixed photo/video priors of
// priors.go, per step 4 of the algorithm ("informational and never treated
// as authoritative").
func estimateCounts(growthGB float64) (photos, videos int) {
	growthMB := growthGB * gbToMB
	photos = int(math.Round(growthMB * photoGrowthPct / photoMeanMB))
	videos = int(math.Round(growthMB * videoGrowthPct / videoMeanMB))
	return photos, videos
}

// IsInProgressTransition reports whether a newly observed growth figure on
// dayNumber should flip a pending/initiated Media Transfer into in_progress,
// per spec.md §4.2 ("first snapshot with growth > 0 on day >= 4").
func IsInProgressTransition(growthGB float64, dayNumber int) bool {
	return dayNumber >= 4 && growthGB > 0
}

// IsDayComplete reports whether dayNumber triggers the Day-7 completion
// transition for both media kinds, per spec.md §4.2.
func IsDayComplete(dayNumber int) bool {
	return dayNumber == 7
}
