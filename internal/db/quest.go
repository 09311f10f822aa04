package db

import (
	"time"

	"gorm.io/gorm"
)

// Quest is a repeatable task definition. Cadence is daily or weekly; Target
// is how many increments complete one period.
type Quest struct {
	gorm.Model
	Code        string `gorm:"uniqueIndex;not null"`
	Title       string
	Description string
	Cadence     string `gorm:"default:daily"`
	Target      int    `gorm:"default:1"`
	RewardXP    int
	Status      string `gorm:"default:active"`
}

// QuestProgress tracks one user's progress through one quest period.
// PeriodStart is the local midnight (daily) or week start (weekly) the row
// belongs to; the unique index makes progress idempotent per period.
type QuestProgress struct {
	gorm.Model
	UserID      uint      `gorm:"index;index:idx_quest_period,unique,priority:1"`
	User        User      `gorm:"constraint:OnDelete:CASCADE"`
	QuestID     uint      `gorm:"index:idx_quest_period,unique,priority:2"`
	Quest       Quest     `gorm:"constraint:OnDelete:CASCADE"`
	PeriodStart time.Time `gorm:"index:idx_quest_period,unique,priority:3"`
	Progress    int
	CompletedAt *time.Time
}

func (QuestProgress) TableName() string {
	return "quest_progress"
}
