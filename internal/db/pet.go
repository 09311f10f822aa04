package db

import (
	"time"

	"gorm.io/gorm"
)

// Pet is a real-world pet profile used by health records and the care view.
type Pet struct {
	gorm.Model
	UserID    uint `gorm:"index"`
	User      User `gorm:"constraint:OnDelete:CASCADE"`
	Name      string
	Species   string
	Breed     string
	BirthDate *time.Time
	PhotoURL  string
	IsPrimary bool
}

// VirtualPet is the tamagotchi-style companion, one per user. Stats are
// clamped to 0..100; Level is derived from Experience on write so reads
// never recompute it.
type VirtualPet struct {
	gorm.Model
	UserID     uint   `gorm:"uniqueIndex"`
	User       User   `gorm:"constraint:OnDelete:CASCADE"`
	Name       string
	Species    string `gorm:"default:dog"`
	Happiness  int    `gorm:"default:80"`
	Hunger     int    `gorm:"default:30"`
	Energy     int    `gorm:"default:70"`
	Level      int    `gorm:"default:1"`
	Experience int
}

// VirtualPetAction logs each care action so cooldowns can be enforced from
// the most recent row per action.
type VirtualPetAction struct {
	gorm.Model
	VirtualPetID uint       `gorm:"index;index:idx_pet_action,priority:1"`
	VirtualPet   VirtualPet `gorm:"constraint:OnDelete:CASCADE"`
	Action       string     `gorm:"index:idx_pet_action,priority:2"`
	PerformedAt  time.Time
	XPGained     int
}

func (VirtualPetAction) TableName() string {
	return "virtual_pet_actions"
}
