package db

import (
	"time"

	"gorm.io/gorm"
)

// GymChallenge is a catalog entry for the gym-battle mini game.
type GymChallenge struct {
	gorm.Model
	Code       string `gorm:"uniqueIndex;not null"`
	Name       string
	Difficulty string `gorm:"default:easy"`
	Steps      int    `gorm:"default:3"`
	RewardXP   int
}

// BattleRecord is one attempt at a challenge. Status moves
// in_progress -> won | lost | abandoned; StepsDone counts completed steps.
type BattleRecord struct {
	gorm.Model
	UserID      uint         `gorm:"index"`
	User        User         `gorm:"constraint:OnDelete:CASCADE"`
	ChallengeID uint         `gorm:"index"`
	Challenge   GymChallenge `gorm:"constraint:OnDelete:CASCADE"`
	Status      string       `gorm:"index;default:in_progress"`
	StepsDone   int
	StartedAt   time.Time
	FinishedAt  *time.Time
}
