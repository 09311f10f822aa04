package stats

import (
	"math"
	"strings"
	"time"

	"github.com/ivviiviivvi/fetch-familiar-friends/internal/calendar"
)

// Category values recognized by the favorites buckets. Anything else counts
// toward the total only.
const (
	CategoryDog = "dog"
	CategoryCat = "cat"
)

// Favorite is the slice of a favorite record the statistics care about.
type Favorite struct {
	SavedAt  time.Time
	Category string
}

// Snapshot is the engagement summary for one user, recomputed from scratch
// on every call. Nothing in it is persisted.
type Snapshot struct {
	TotalFavorites       int        `json:"total_favorites"`
	DogFavorites         int        `json:"dog_favorites"`
	CatFavorites         int        `json:"cat_favorites"`
	TotalJournalEntries  int        `json:"total_journal_entries"`
	JournalWordCount     int        `json:"journal_word_count"`
	AverageJournalLength int        `json:"average_journal_length"`
	CurrentStreak        int        `json:"current_streak"`
	LongestStreak        int        `json:"longest_streak"`
	DaysActive           int        `json:"days_active"`
	FirstActivity        *time.Time `json:"first_activity,omitempty"`
}

// Achievements are display conditions, not persisted unlocks. They hold for
// a snapshot or they don't.
type Achievements struct {
	Collector       bool `json:"collector"`        // 10+ favorites
	SuperCollector  bool `json:"super_collector"`  // 50+ favorites
	DedicatedWriter bool `json:"dedicated_writer"` // 7+ journal entries
	OnFire          bool `json:"on_fire"`          // 3+ day streak
	WeekWarrior     bool `json:"week_warrior"`     // 7+ day streak
}

// ComputeSnapshot aggregates favorites and journal entries into a Snapshot.
// Journal keys may be canonical or legacy formatted. An entry participates
// only if its text is non-empty after trimming; the same rule the calendar
// uses, so the entry count and word count cannot drift apart.
func ComputeSnapshot(favorites []Favorite, journal map[string]string, today time.Time) Snapshot {
	snap := Snapshot{TotalFavorites: len(favorites)}

	activeDays := make(map[string]struct{})
	var first *time.Time

	for _, fav := range favorites {
		switch strings.ToLower(strings.TrimSpace(fav.Category)) {
		case CategoryDog:
			snap.DogFavorites++
		case CategoryCat:
			snap.CatFavorites++
		}
		activeDays[calendar.DayKey(fav.SavedAt)] = struct{}{}
		first = earlier(first, fav.SavedAt)
	}

	journalDays := make([]time.Time, 0, len(journal))
	for key, text := range journal {
		if strings.TrimSpace(text) == "" {
			continue
		}
		day, err := calendar.ParseDayKey(calendar.NormalizeDayKey(key))
		if err != nil {
			continue
		}
		snap.TotalJournalEntries++
		snap.JournalWordCount += len(strings.Fields(text))
		journalDays = append(journalDays, day)
		activeDays[calendar.DayKey(day)] = struct{}{}
		first = earlier(first, day)
	}

	if snap.TotalJournalEntries > 0 {
		snap.AverageJournalLength = int(math.Round(float64(snap.JournalWordCount) / float64(snap.TotalJournalEntries)))
	}

	streaks := ComputeStreaks(journalDays, today)
	snap.CurrentStreak = streaks.Current
	snap.LongestStreak = streaks.Longest
	snap.DaysActive = len(activeDays)
	snap.FirstActivity = first

	return snap
}

// ComputeAchievements evaluates the fixed thresholds against a snapshot.
func ComputeAchievements(snap Snapshot) Achievements {
	return Achievements{
		Collector:       snap.TotalFavorites >= 10,
		SuperCollector:  snap.TotalFavorites >= 50,
		DedicatedWriter: snap.TotalJournalEntries >= 7,
		OnFire:          snap.LongestStreak >= 3,
		WeekWarrior:     snap.LongestStreak >= 7,
	}
}

func earlier(current *time.Time, candidate time.Time) *time.Time {
	if current == nil || candidate.Before(*current) {
		c := candidate
		return &c
	}
	return current
}
