package db

import (
	"time"

	"gorm.io/gorm"
)

// JournalEntry is one day's note for one user. UserID + EntryDate carry a
// unique index so writes are idempotent per calendar day; EntryDate is
// always stored at local midnight.
type JournalEntry struct {
	gorm.Model
	UserID    uint      `gorm:"index;index:idx_journal_user_day,unique"`
	User      User      `gorm:"constraint:OnDelete:CASCADE"`
	EntryDate time.Time `gorm:"index:idx_journal_user_day,unique"`
	Text      string
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}
