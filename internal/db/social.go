package db

import "gorm.io/gorm"

// Friendship links two users. RequesterID sent the request; the pair is
// unique in that orientation and the service checks both orientations
// before creating the mirror.
type Friendship struct {
	gorm.Model
	RequesterID uint   `gorm:"index;index:idx_friend_pair,unique,priority:1"`
	Requester   User   `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE"`
	AddresseeID uint   `gorm:"index;index:idx_friend_pair,unique,priority:2"`
	Addressee   User   `gorm:"foreignKey:AddresseeID;constraint:OnDelete:CASCADE"`
	Status      string `gorm:"index;default:pending"`
}

// Activity is one feed item, generated from domain events rather than typed
// in directly.
type Activity struct {
	gorm.Model
	PublicID string `gorm:"uniqueIndex;not null"`
	UserID   uint   `gorm:"index"`
	User     User   `gorm:"constraint:OnDelete:CASCADE"`
	Kind     string `gorm:"index"`
	Message  string
}

// ActivityReaction is a like; one per user per activity.
type ActivityReaction struct {
	gorm.Model
	ActivityID uint     `gorm:"index;index:idx_reaction_once,unique,priority:1"`
	Activity   Activity `gorm:"constraint:OnDelete:CASCADE"`
	UserID     uint     `gorm:"index:idx_reaction_once,unique,priority:2"`
	User       User     `gorm:"constraint:OnDelete:CASCADE"`
}

// ActivityComment holds sanitized comment text on a feed item.
type ActivityComment struct {
	gorm.Model
	ActivityID uint     `gorm:"index"`
	Activity   Activity `gorm:"constraint:OnDelete:CASCADE"`
	UserID     uint     `gorm:"index"`
	User       User     `gorm:"constraint:OnDelete:CASCADE"`
	Text       string
}

// ChatMessage is one line of the companion chat, stored sanitized.
type ChatMessage struct {
	gorm.Model
	UserID uint   `gorm:"index"`
	User   User   `gorm:"constraint:OnDelete:CASCADE"`
	Role   string `gorm:"default:user"`
	Text   string
}
