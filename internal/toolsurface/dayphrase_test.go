package toolsurface_test

import (
	"testing"
	"time"

	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/toolsurface"
)

func TestResolveDayNumber_OrdinalWord(t *testing.T) {
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	n, ok := toolsurface.ResolveDayNumber("day three", since)
	if !ok || n != 3 {
		t.Fatalf("ResolveDayNumber(day three) = %d, %v, want 3, true", n, ok)
	}
}

func TestResolveDayNumber_Digit(t *testing.T) {
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	n, ok := toolsurface.ResolveDayNumber("day 7", since)
	if !ok || n != 7 {
		t.Fatalf("ResolveDayNumber(day 7) = %d, %v, want 7, true", n, ok)
	}
}

func TestResolveDayNumber_Tomorrow(t *testing.T) {
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	n, ok := toolsurface.ResolveDayNumber("tomorrow", since)
	if !ok || n != 2 {
		t.Fatalf("ResolveDayNumber(tomorrow) = %d, %v, want 2, true", n, ok)
	}
}

func TestResolveDayNumber_OutOfRangeIsRejected(t *testing.T) {
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, ok := toolsurface.ResolveDayNumber("in three weeks", since); ok {
		t.Fatalf("expected out-of-range phrase to be rejected")
	}
}

func TestResolveDayNumber_EmptyIsRejected(t *testing.T) {
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, ok := toolsurface.ResolveDayNumber("", since); ok {
		t.Fatalf("expected empty phrase to be rejected")
	}
}
