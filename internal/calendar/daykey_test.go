package calendar

import (
	"testing"
	"time"
)

func TestDayKeyRoundTrip(t *testing.T) {
	day := time.Date(2025, time.March, 7, 18, 45, 12, 0, time.Local)

	key := DayKey(day)
	if key != "2025-03-07" {
		t.Fatalf("unexpected key: %s", key)
	}

	parsed, err := ParseDayKey(key)
	if err != nil {
		t.Fatalf("ParseDayKey returned error: %v", err)
	}
	if !SameDay(parsed, day) {
		t.Fatalf("round trip changed the day: %v", parsed)
	}
}

func TestNormalizeDayKeyLegacyFormats(t *testing.T) {
	cases := map[string]string{
		"2025-03-07":       "2025-03-07",
		"Fri Mar 7 2025":   "2025-03-07",
		"March 7, 2025":    "2025-03-07",
		"Mar 7, 2025":      "2025-03-07",
		"3/7/2025":         "2025-03-07",
		"  2025-03-07  ":   "2025-03-07",
		"not a date":       "not a date",
		"":                 "",
	}

	for in, want := range cases {
		if got := NormalizeDayKey(in); got != want {
			t.Fatalf("NormalizeDayKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStartOfWeek(t *testing.T) {
	cases := map[time.Time]time.Time{
		time.Date(2025, time.May, 14, 10, 30, 0, 0, time.Local): time.Date(2025, time.May, 12, 0, 0, 0, 0, time.Local),
		time.Date(2025, time.May, 12, 0, 0, 0, 0, time.Local):   time.Date(2025, time.May, 12, 0, 0, 0, 0, time.Local),
		time.Date(2025, time.May, 11, 23, 59, 0, 0, time.Local): time.Date(2025, time.May, 5, 0, 0, 0, 0, time.Local),
	}
	for in, want := range cases {
		if got := StartOfWeek(in); !got.Equal(want) {
			t.Fatalf("StartOfWeek(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestHasJournal(t *testing.T) {
	day := time.Date(2025, time.March, 7, 9, 0, 0, 0, time.Local)
	journal := map[string]string{
		"2025-03-07":      "walked the dog",
		"2025-03-08":      "   ",
		"Fri Mar 14 2025": "vet visit",
	}

	if !HasJournal(day, journal) {
		t.Fatal("expected canonical key to match")
	}
	if HasJournal(day.AddDate(0, 0, 1), journal) {
		t.Fatal("whitespace-only entry should not count")
	}
	if !HasJournal(time.Date(2025, time.March, 14, 0, 0, 0, 0, time.Local), journal) {
		t.Fatal("expected legacy key to match after normalization")
	}
	if HasJournal(day.AddDate(0, 0, 2), journal) {
		t.Fatal("missing day should not match")
	}
}

func TestFavoriteDaySet(t *testing.T) {
	saved := []time.Time{
		time.Date(2025, time.March, 7, 8, 0, 0, 0, time.Local),
		time.Date(2025, time.March, 7, 21, 30, 0, 0, time.Local), // duplicate day
		time.Date(2025, time.March, 9, 12, 0, 0, 0, time.Local),
	}

	set := NewFavoriteDaySet(saved)
	if len(set) != 2 {
		t.Fatalf("expected 2 distinct days, got %d", len(set))
	}
	if !set.HasFavorite(time.Date(2025, time.March, 7, 0, 0, 0, 0, time.Local)) {
		t.Fatal("expected March 7 to have a favorite")
	}
	if set.HasFavorite(time.Date(2025, time.March, 8, 0, 0, 0, 0, time.Local)) {
		t.Fatal("March 8 has no favorite")
	}
}

func TestNormalizeJournalPrefersCanonicalOnCollision(t *testing.T) {
	journal := map[string]string{
		"2025-03-07":     "canonical entry",
		"Fri Mar 7 2025": "legacy entry",
		"Mar 9, 2025":    "only legacy",
	}

	normalized := NormalizeJournal(journal)
	if len(normalized) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(normalized))
	}
	if normalized["2025-03-07"] != "canonical entry" {
		t.Fatalf("canonical entry should win, got %q", normalized["2025-03-07"])
	}
	if normalized["2025-03-09"] != "only legacy" {
		t.Fatalf("legacy-only entry missing, got %q", normalized["2025-03-09"])
	}
}
