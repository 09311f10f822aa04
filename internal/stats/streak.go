package stats

import (
	"sort"
	"time"

	"github.com/ivviiviivvi/fetch-familiar-friends/internal/calendar"
)

// Streaks holds the derived journaling streak counters. Longest is never
// smaller than Current.
type Streaks struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// ComputeStreaks derives the current and longest consecutive-day streaks
// from the days that have a journal entry. The reference day is passed in so
// callers (and tests) control what "today" means; the current streak only
// counts when the most recent entry is today or yesterday. Duplicate days
// and time-of-day components are ignored.
func ComputeStreaks(days []time.Time, today time.Time) Streaks {
	if len(days) == 0 {
		return Streaks{}
	}

	seen := make(map[string]time.Time, len(days))
	for _, d := range days {
		day := calendar.StartOfDay(d)
		seen[calendar.DayKey(day)] = day
	}

	sorted := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].After(sorted[j]) })

	var s Streaks

	anchor := calendar.StartOfDay(today)
	anchored := daysBetween(sorted[0], anchor) <= 1

	run := 1
	inLeadRun := true
	if anchored {
		s.Current = 1
	}
	s.Longest = 1

	for i := 1; i < len(sorted); i++ {
		if daysBetween(sorted[i], sorted[i-1]) == 1 {
			run++
			if anchored && inLeadRun {
				s.Current = run
			}
		} else {
			run = 1
			inLeadRun = false
		}
		if run > s.Longest {
			s.Longest = run
		}
	}

	return s
}

// daysBetween counts whole calendar days from a to b, both at midnight.
// Computed from date components so DST transitions cannot skew the count.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / (24 * time.Hour))
}
