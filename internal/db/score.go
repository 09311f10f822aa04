package db

import (
	"time"

	"gorm.io/gorm"
)

// TrainerScore is the running XP total per user, kept as its own row so
// leaderboard reads never scan the event log.
type TrainerScore struct {
	gorm.Model
	UserID       uint `gorm:"uniqueIndex"`
	User         User `gorm:"constraint:OnDelete:CASCADE"`
	XP           uint64
	LastEarnedAt time.Time
}

// ScoreEvent records each XP grant with its source, so windowed boards
// (weekly) can be summed without touching the aggregate.
type ScoreEvent struct {
	gorm.Model
	UserID   uint      `gorm:"index"`
	User     User      `gorm:"constraint:OnDelete:CASCADE"`
	Source   string    `gorm:"index"`
	XP       int
	EarnedAt time.Time `gorm:"index"`
}
