package db

import (
	"time"

	"gorm.io/gorm"
)

// HealthRecord is a dated entry in a pet's medical history.
type HealthRecord struct {
	gorm.Model
	PetID      uint      `gorm:"index"`
	Pet        Pet       `gorm:"constraint:OnDelete:CASCADE"`
	Kind       string    `gorm:"index"`
	Title      string
	Notes      string
	RecordDate time.Time `gorm:"index"`
}

// HealthReminder is an upcoming care task. CompletedAt nil means still open;
// buckets (overdue/today/upcoming) are derived at read time.
type HealthReminder struct {
	gorm.Model
	PetID       uint      `gorm:"index"`
	Pet         Pet       `gorm:"constraint:OnDelete:CASCADE"`
	Title       string
	Notes       string
	DueDate     time.Time `gorm:"index"`
	CompletedAt *time.Time
}
