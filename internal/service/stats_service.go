package service

import (
	"fmt"
	"time"

	"github.com/ivviiviivvi/fetch-familiar-friends/internal/calendar"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/db"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/stats"
	"gorm.io/gorm"
)

// StatsService assembles calendar views and engagement snapshots from the
// stored journal and favorites collections.
type StatsService struct {
	db *gorm.DB
}

// MonthCell is one grid cell decorated with the user's per-day activity.
type MonthCell struct {
	Day            string `json:"day"`
	DayOfMonth     int    `json:"day_of_month"`
	IsCurrentMonth bool   `json:"is_current_month"`
	HasJournal     bool   `json:"has_journal"`
	HasFavorite    bool   `json:"has_favorite"`
	IsToday        bool   `json:"is_today"`
	IsFuture       bool   `json:"is_future"`
}

// MonthView is a full calendar month for one user.
type MonthView struct {
	Year  int         `json:"year"`
	Month int         `json:"month"`
	Cells []MonthCell `json:"cells"`
}

// Overview bundles the snapshot with its achievement flags.
type Overview struct {
	Snapshot     stats.Snapshot     `json:"snapshot"`
	Achievements stats.Achievements `json:"achievements"`
}

// NewStatsService constructs a StatsService.
func NewStatsService(gdb *gorm.DB) *StatsService {
	return &StatsService{db: gdb}
}

// Month builds the 42-cell view for the month containing ref.
func (s *StatsService) Month(userID uint, ref, today time.Time) (*MonthView, error) {
	journal, favorites, err := s.load(userID)
	if err != nil {
		return nil, err
	}

	saved := make([]time.Time, len(favorites))
	for i, fav := range favorites {
		saved[i] = fav.SavedAt
	}
	favoriteDays := calendar.NewFavoriteDaySet(saved)

	todayStart := calendar.StartOfDay(today)
	grid := calendar.BuildMonthGrid(ref)

	view := &MonthView{
		Year:  ref.Year(),
		Month: int(ref.Month()),
		Cells: make([]MonthCell, 0, len(grid)),
	}
	for _, cell := range grid {
		view.Cells = append(view.Cells, MonthCell{
			Day:            calendar.DayKey(cell.Date),
			DayOfMonth:     cell.DayOfMonth,
			IsCurrentMonth: cell.IsCurrentMonth,
			HasJournal:     calendar.HasJournal(cell.Date, journal),
			HasFavorite:    favoriteDays.HasFavorite(cell.Date),
			IsToday:        calendar.SameDay(cell.Date, todayStart),
			IsFuture:       cell.Date.After(todayStart),
		})
	}
	return view, nil
}

// Snapshot computes the engagement overview for one user.
func (s *StatsService) Snapshot(userID uint, today time.Time) (*Overview, error) {
	journal, favorites, err := s.load(userID)
	if err != nil {
		return nil, err
	}

	favs := make([]stats.Favorite, len(favorites))
	for i, fav := range favorites {
		favs[i] = stats.Favorite{SavedAt: fav.SavedAt, Category: fav.Category}
	}

	snap := stats.ComputeSnapshot(favs, journal, today)
	return &Overview{Snapshot: snap, Achievements: stats.ComputeAchievements(snap)}, nil
}

func (s *StatsService) load(userID uint) (map[string]string, []db.Favorite, error) {
	var entries []db.JournalEntry
	if err := s.db.Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return nil, nil, fmt.Errorf("load journal entries: %w", err)
	}

	journal := make(map[string]string, len(entries))
	for _, entry := range entries {
		journal[calendar.DayKey(entry.EntryDate)] = entry.Text
	}

	var favorites []db.Favorite
	if err := s.db.Where("user_id = ?", userID).Find(&favorites).Error; err != nil {
		return nil, nil, fmt.Errorf("load favorites: %w", err)
	}

	return journal, favorites, nil
}
