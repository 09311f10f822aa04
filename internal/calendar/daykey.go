package calendar

import (
	"strings"
	"time"
)

// DayKeyFormat is the canonical key format for a calendar day. Keys are
// timezone-naive and derived from the local calendar date.
const DayKeyFormat = "2006-01-02"

// legacyKeyFormats covers the locale-style keys older clients stored before
// the switch to ISO. Accepted on read only.
var legacyKeyFormats = []string{
	"Mon Jan 2 2006",
	"Mon Jan 02 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"1/2/2006",
}

// DayKey returns the canonical key for the calendar day containing t.
func DayKey(t time.Time) string {
	return t.Format(DayKeyFormat)
}

// ParseDayKey parses a canonical day-key back into a midnight local time.
func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation(DayKeyFormat, strings.TrimSpace(key), time.Local)
}

// NormalizeDayKey maps a stored key to canonical form. Legacy locale-format
// keys are converted; keys already canonical pass through. Anything
// unrecognized is returned trimmed but unchanged, so a lookup with it simply
// misses instead of failing.
func NormalizeDayKey(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return ""
	}

	if t, err := time.ParseInLocation(DayKeyFormat, trimmed, time.Local); err == nil {
		return DayKey(t)
	}

	for _, layout := range legacyKeyFormats {
		if t, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return DayKey(t)
		}
	}

	return trimmed
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek truncates t to the Monday midnight of its week. Weekly quest
// periods and the weekly leaderboard share this cutoff.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}
