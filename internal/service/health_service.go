package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ivviiviivvi/fetch-familiar-friends/internal/calendar"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrHealthRecordNotFound is returned for missing or foreign records.
	ErrHealthRecordNotFound = errors.New("health record not found")
	// ErrHealthReminderNotFound is returned for missing or foreign reminders.
	ErrHealthReminderNotFound = errors.New("health reminder not found")
	// ErrHealthPetNotOwned rejects access to another user's pet.
	ErrHealthPetNotOwned = errors.New("pet not found")
)

var healthRecordKinds = map[string]struct{}{
	"vaccination": {},
	"checkup":     {},
	"medication":  {},
	"grooming":    {},
	"other":       {},
}

// HealthService owns per-pet health records and reminders.
type HealthService struct {
	db *gorm.DB
}

// HealthRecordInput describes one record write.
type HealthRecordInput struct {
	UserID     uint
	PetID      uint
	Kind       string
	Title      string
	Notes      string
	RecordDate time.Time
}

// HealthReminderInput describes one reminder write.
type HealthReminderInput struct {
	UserID  uint
	PetID   uint
	Title   string
	Notes   string
	DueDate time.Time
}

// ReminderBuckets groups open reminders by urgency relative to an injected
// today, so views and tests agree on what "overdue" means.
type ReminderBuckets struct {
	Overdue  []db.HealthReminder `json:"overdue"`
	Today    []db.HealthReminder `json:"today"`
	Upcoming []db.HealthReminder `json:"upcoming"`
}

// NewHealthService constructs a HealthService.
func NewHealthService(gdb *gorm.DB) *HealthService {
	return &HealthService{db: gdb}
}

// CreateRecord adds a dated health record to an owned pet.
func (s *HealthService) CreateRecord(input HealthRecordInput) (*db.HealthRecord, error) {
	if err := s.ensureOwnership(input.UserID, input.PetID); err != nil {
		return nil, err
	}

	kind := strings.ToLower(strings.TrimSpace(input.Kind))
	if _, ok := healthRecordKinds[kind]; !ok {
		kind = "other"
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.New("record title is required")
	}

	recordDate := input.RecordDate
	if recordDate.IsZero() {
		recordDate = time.Now()
	}

	record := db.HealthRecord{
		PetID:      input.PetID,
		Kind:       kind,
		Title:      strings.TrimSpace(input.Title),
		Notes:      strings.TrimSpace(input.Notes),
		RecordDate: recordDate,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create health record: %w", err)
	}
	return &record, nil
}

// ListRecords returns a pet's records, newest first.
func (s *HealthService) ListRecords(userID, petID uint) ([]db.HealthRecord, error) {
	if err := s.ensureOwnership(userID, petID); err != nil {
		return nil, err
	}

	var records []db.HealthRecord
	if err := s.db.Where("pet_id = ?", petID).
		Order("record_date DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list health records: %w", err)
	}
	return records, nil
}

// DeleteRecord removes a record from an owned pet.
func (s *HealthService) DeleteRecord(userID, recordID uint) error {
	var record db.HealthRecord
	if err := s.db.First(&record, recordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHealthRecordNotFound
		}
		return fmt.Errorf("load health record: %w", err)
	}
	if err := s.ensureOwnership(userID, record.PetID); err != nil {
		return ErrHealthRecordNotFound
	}

	if err := s.db.Delete(&record).Error; err != nil {
		return fmt.Errorf("delete health record: %w", err)
	}
	return nil
}

// CreateReminder adds an open reminder to an owned pet.
func (s *HealthService) CreateReminder(input HealthReminderInput) (*db.HealthReminder, error) {
	if err := s.ensureOwnership(input.UserID, input.PetID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.New("reminder title is required")
	}
	if input.DueDate.IsZero() {
		return nil, errors.New("reminder due date is required")
	}

	reminder := db.HealthReminder{
		PetID:   input.PetID,
		Title:   strings.TrimSpace(input.Title),
		Notes:   strings.TrimSpace(input.Notes),
		DueDate: calendar.StartOfDay(input.DueDate),
	}
	if err := s.db.Create(&reminder).Error; err != nil {
		return nil, fmt.Errorf("create health reminder: %w", err)
	}
	return &reminder, nil
}

// CompleteReminder closes a reminder on an owned pet.
func (s *HealthService) CompleteReminder(userID, reminderID uint, now time.Time) error {
	reminder, err := s.ownedReminder(userID, reminderID)
	if err != nil {
		return err
	}

	reminder.CompletedAt = &now
	if err := s.db.Save(reminder).Error; err != nil {
		return fmt.Errorf("complete health reminder: %w", err)
	}
	return nil
}

// DeleteReminder removes a reminder from an owned pet.
func (s *HealthService) DeleteReminder(userID, reminderID uint) error {
	reminder, err := s.ownedReminder(userID, reminderID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(reminder).Error; err != nil {
		return fmt.Errorf("delete health reminder: %w", err)
	}
	return nil
}

// Buckets splits a pet's open reminders into overdue, due today, and
// upcoming relative to today.
func (s *HealthService) Buckets(userID, petID uint, today time.Time) (*ReminderBuckets, error) {
	if err := s.ensureOwnership(userID, petID); err != nil {
		return nil, err
	}

	var reminders []db.HealthReminder
	if err := s.db.Where("pet_id = ? AND completed_at IS NULL", petID).
		Order("due_date ASC").
		Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("list health reminders: %w", err)
	}

	todayStart := calendar.StartOfDay(today)
	buckets := &ReminderBuckets{}
	for _, reminder := range reminders {
		due := calendar.StartOfDay(reminder.DueDate)
		switch {
		case due.Before(todayStart):
			buckets.Overdue = append(buckets.Overdue, reminder)
		case due.Equal(todayStart):
			buckets.Today = append(buckets.Today, reminder)
		default:
			buckets.Upcoming = append(buckets.Upcoming, reminder)
		}
	}
	return buckets, nil
}

func (s *HealthService) ensureOwnership(userID, petID uint) error {
	var count int64
	if err := s.db.Model(&db.Pet{}).
		Where("id = ? AND user_id = ?", petID, userID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check pet ownership: %w", err)
	}
	if count == 0 {
		return ErrHealthPetNotOwned
	}
	return nil
}

func (s *HealthService) ownedReminder(userID, reminderID uint) (*db.HealthReminder, error) {
	var reminder db.HealthReminder
	if err := s.db.First(&reminder, reminderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHealthReminderNotFound
		}
		return nil, fmt.Errorf("load health reminder: %w", err)
	}
	if err := s.ensureOwnership(userID, reminder.PetID); err != nil {
		return nil, ErrHealthReminderNotFound
	}
	return &reminder, nil
}
