package db

import (
	"time"

	"gorm.io/gorm"
)

// Favorite is a saved daily image. Several favorites may land on the same
// calendar day; PublicID is the identifier handed to clients.
type Favorite struct {
	gorm.Model
	PublicID string    `gorm:"uniqueIndex;not null"`
	UserID   uint      `gorm:"index"`
	User     User      `gorm:"constraint:OnDelete:CASCADE"`
	ImageURL string
	Category string    `gorm:"index"`
	Breed    string
	SavedAt  time.Time `gorm:"index"`
}
