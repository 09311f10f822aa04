package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ivviiviivvi/fetch-familiar-friends/internal/calendar"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/db"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrJournalEntryNotFound is returned when no entry exists for the day.
	ErrJournalEntryNotFound = errors.New("journal entry not found")
	// ErrJournalEntryEmpty rejects writes that are blank after trimming.
	ErrJournalEntryEmpty = errors.New("journal entry is empty")
)

// JournalService owns day-keyed journal entries.
type JournalService struct {
	db *gorm.DB
}

// JournalInput carries one journal write. Day may be any canonical or legacy
// day-key; Text is sanitized before storage.
type JournalInput struct {
	UserID uint
	Day    string
	Text   string
}

// NewJournalService constructs a JournalService.
func NewJournalService(gdb *gorm.DB) *JournalService {
	return &JournalService{db: gdb}
}

// Upsert writes the entry for one calendar day, idempotently per
// (user, day). Rewriting a day replaces its text. The bool reports whether
// the day was new for the user; rewrites return false so callers can keep
// day-counted rewards from paying twice.
func (s *JournalService) Upsert(input JournalInput) (*db.JournalEntry, bool, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, false, ErrJournalEntryEmpty
	}

	day, err := calendar.ParseDayKey(calendar.NormalizeDayKey(input.Day))
	if err != nil {
		return nil, false, fmt.Errorf("parse journal day %q: %w", input.Day, err)
	}

	record := db.JournalEntry{
		UserID:    input.UserID,
		EntryDate: day,
		Text:      validation.Sanitize(input.Text),
	}

	created := false
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&db.JournalEntry{}).
			Where("user_id = ? AND entry_date = ?", input.UserID, day).
			Count(&existing).Error; err != nil {
			return err
		}
		created = existing == 0

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "entry_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"text", "updated_at"}),
		}).Create(&record).Error
	}); err != nil {
		return nil, false, fmt.Errorf("upsert journal entry: %w", err)
	}

	if err := s.db.Where("user_id = ? AND entry_date = ?", input.UserID, day).First(&record).Error; err != nil {
		return nil, false, fmt.Errorf("reload journal entry: %w", err)
	}

	return &record, created, nil
}

// Import bulk-writes a client-exported journal map. Keys may be canonical or
// legacy-formatted; legacy keys are rewritten onto canonical days first, so
// a backup holding both spellings of one day writes that day once. Blank
// entries are skipped. Returns how many days were written.
func (s *JournalService) Import(userID uint, entries map[string]string) (int, error) {
	written := 0
	for day, text := range calendar.NormalizeJournal(entries) {
		if strings.TrimSpace(text) == "" {
			continue
		}
		if _, _, err := s.Upsert(JournalInput{UserID: userID, Day: day, Text: text}); err != nil {
			return written, fmt.Errorf("import day %s: %w", day, err)
		}
		written++
	}
	return written, nil
}

// Get returns the entry for one day.
func (s *JournalService) Get(userID uint, dayKey string) (*db.JournalEntry, error) {
	day, err := calendar.ParseDayKey(calendar.NormalizeDayKey(dayKey))
	if err != nil {
		return nil, fmt.Errorf("parse journal day %q: %w", dayKey, err)
	}

	var entry db.JournalEntry
	if err := s.db.Where("user_id = ? AND entry_date = ?", userID, day).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJournalEntryNotFound
		}
		return nil, fmt.Errorf("get journal entry: %w", err)
	}
	return &entry, nil
}

// Delete removes the entry for one day, if present.
func (s *JournalService) Delete(userID uint, dayKey string) error {
	day, err := calendar.ParseDayKey(calendar.NormalizeDayKey(dayKey))
	if err != nil {
		return fmt.Errorf("parse journal day %q: %w", dayKey, err)
	}

	result := s.db.Where("user_id = ? AND entry_date = ?", userID, day).Delete(&db.JournalEntry{})
	if result.Error != nil {
		return fmt.Errorf("delete journal entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrJournalEntryNotFound
	}
	return nil
}

// ListBetween returns entries in [start, end], ordered by day.
func (s *JournalService) ListBetween(userID uint, start, end time.Time) ([]db.JournalEntry, error) {
	var entries []db.JournalEntry
	if err := s.db.Where("user_id = ?", userID).
		Where("entry_date BETWEEN ? AND ?", calendar.StartOfDay(start), calendar.StartOfDay(end)).
		Order("entry_date ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	return entries, nil
}

// EntryMap returns every entry for the user keyed by canonical day-key,
// which is the shape the statistics and calendar cores consume.
func (s *JournalService) EntryMap(userID uint) (map[string]string, error) {
	var entries []db.JournalEntry
	if err := s.db.Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("load journal entries: %w", err)
	}

	out := make(map[string]string, len(entries))
	for _, entry := range entries {
		out[calendar.DayKey(entry.EntryDate)] = entry.Text
	}
	return out, nil
}
