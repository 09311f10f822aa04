package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/db"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/stats"
	"gorm.io/gorm"
)

var (
	// ErrFavoriteNotFound is returned when the favorite does not exist or
	// belongs to someone else.
	ErrFavoriteNotFound = errors.New("favorite not found")
	// ErrFavoriteInvalidCategory rejects categories outside dog/cat.
	ErrFavoriteInvalidCategory = errors.New("favorite category must be dog or cat")
	// ErrFavoriteImageMissing rejects saves without an image URL.
	ErrFavoriteImageMissing = errors.New("favorite image url is required")
)

// FavoriteService owns saved daily images.
type FavoriteService struct {
	db *gorm.DB
}

// FavoriteInput describes one save. SavedAt zero means "now".
type FavoriteInput struct {
	UserID   uint
	ImageURL string
	Category string
	Breed    string
	SavedAt  time.Time
}

// NewFavoriteService constructs a FavoriteService.
func NewFavoriteService(gdb *gorm.DB) *FavoriteService {
	return &FavoriteService{db: gdb}
}

// Create saves a favorite. Duplicate days are allowed; the record gets a
// fresh public id.
func (s *FavoriteService) Create(input FavoriteInput) (*db.Favorite, error) {
	imageURL := strings.TrimSpace(input.ImageURL)
	if imageURL == "" {
		return nil, ErrFavoriteImageMissing
	}

	category := strings.ToLower(strings.TrimSpace(input.Category))
	if category != stats.CategoryDog && category != stats.CategoryCat {
		return nil, fmt.Errorf("%w: %s", ErrFavoriteInvalidCategory, input.Category)
	}

	savedAt := input.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}

	record := db.Favorite{
		PublicID: uuid.New().String(),
		UserID:   input.UserID,
		ImageURL: imageURL,
		Category: category,
		Breed:    strings.TrimSpace(input.Breed),
		SavedAt:  savedAt,
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create favorite: %w", err)
	}
	return &record, nil
}

// List returns the user's favorites, newest first.
func (s *FavoriteService) List(userID uint) ([]db.Favorite, error) {
	var favorites []db.Favorite
	if err := s.db.Where("user_id = ?", userID).
		Order("saved_at DESC").
		Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favorites, nil
}

// Delete removes a favorite by public id, scoped to its owner.
func (s *FavoriteService) Delete(userID uint, publicID string) error {
	result := s.db.Where("user_id = ? AND public_id = ?", userID, strings.TrimSpace(publicID)).
		Delete(&db.Favorite{})
	if result.Error != nil {
		return fmt.Errorf("delete favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}
