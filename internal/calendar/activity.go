package calendar

import (
	"strings"
	"time"
)

// FavoriteDaySet indexes the calendar days touched by a favorites list.
// Build it once per list change; membership checks are O(1) after that,
// which keeps a 42-cell render from rescanning the whole list per cell.
type FavoriteDaySet map[string]struct{}

// NewFavoriteDaySet collects the canonical day-keys of the given timestamps.
// Duplicate days collapse into one entry.
func NewFavoriteDaySet(savedAt []time.Time) FavoriteDaySet {
	set := make(FavoriteDaySet, len(savedAt))
	for _, t := range savedAt {
		set[DayKey(t)] = struct{}{}
	}
	return set
}

// HasFavorite reports whether any favorite was saved on the same calendar
// day as date.
func (s FavoriteDaySet) HasFavorite(date time.Time) bool {
	_, ok := s[DayKey(date)]
	return ok
}

// HasJournal reports whether the journal map holds a non-empty entry for the
// calendar day of date. Map keys may be canonical or legacy-formatted; both
// are normalized before lookup.
func HasJournal(date time.Time, journal map[string]string) bool {
	want := DayKey(date)
	if text, ok := journal[want]; ok {
		return strings.TrimSpace(text) != ""
	}
	for key, text := range journal {
		if NormalizeDayKey(key) == want {
			return strings.TrimSpace(text) != ""
		}
	}
	return false
}

// NormalizeJournal rewrites a journal map onto canonical day-keys. When a
// legacy key and a canonical key collide on the same day, the canonical
// entry wins.
func NormalizeJournal(journal map[string]string) map[string]string {
	out := make(map[string]string, len(journal))
	for key, text := range journal {
		canonical := NormalizeDayKey(key)
		if canonical == key {
			out[canonical] = text
			continue
		}
		if _, exists := journal[canonical]; !exists {
			out[canonical] = text
		}
	}
	return out
}
