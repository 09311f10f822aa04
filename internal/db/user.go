package db

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User is a registered account. Everything user-facing hangs off Profile.
type User struct {
	gorm.Model
	Username string `gorm:"unique;not null"`
	Password string `gorm:"not null"`
}

// Profile carries display and billing data for one user. SubscriptionTier is
// free/premium/family; StripeCustomerID is set once billing is provisioned
// and its absence means "no active subscription".
type Profile struct {
	gorm.Model
	UserID           uint   `gorm:"uniqueIndex"`
	User             User   `gorm:"constraint:OnDelete:CASCADE"`
	DisplayName      string
	AvatarURL        string
	SubscriptionTier string `gorm:"default:free"`
	StripeCustomerID string
}

// EnsureUser creates a bcrypt-hashed account plus an empty profile when the
// username does not exist yet. Blank credentials are a no-op so a missing
// bootstrap env var never creates a junk account.
func EnsureUser(username, password string) error {
	trimmedUser := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedPassword == "" {
		return nil
	}

	if DB == nil {
		return errors.New("database not initialized")
	}

	var existing User
	if err := DB.Where("username = ?", trimmedUser).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := User{Username: trimmedUser, Password: string(hashed)}
		if err := DB.Create(&user).Error; err != nil {
			return err
		}
		return DB.Create(&Profile{UserID: user.ID, DisplayName: trimmedUser}).Error
	}

	return nil
}
