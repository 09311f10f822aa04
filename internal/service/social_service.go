package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/db"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/validation"
	"gorm.io/gorm"
)

// Friendship statuses.
const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
)

var (
	// ErrFriendshipExists means a request or friendship already links the
	// pair in either direction.
	ErrFriendshipExists = errors.New("friendship already exists")
	// ErrFriendshipNotFound is returned for missing or foreign requests.
	ErrFriendshipNotFound = errors.New("friendship not found")
	// ErrSelfFriendship rejects befriending yourself.
	ErrSelfFriendship = errors.New("cannot befriend yourself")
	// ErrActivityNotFound is returned for unknown activity ids.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrTextRejected means the family-friendliness check failed.
	ErrTextRejected = errors.New("text was rejected by the content filter")
)

// SocialService owns friendships and the activity feed.
type SocialService struct {
	db *gorm.DB
}

// FeedItem is one activity with its interaction counts.
type FeedItem struct {
	PublicID    string `json:"id"`
	UserID      uint   `json:"user_id"`
	DisplayName string `json:"display_name"`
	Kind        string `json:"kind"`
	Message     string `json:"message"`
	Reactions   int64  `json:"reactions"`
	Comments    int64  `json:"comments"`
	CreatedAt   string `json:"created_at"`
}

// NewSocialService constructs a SocialService.
func NewSocialService(gdb *gorm.DB) *SocialService {
	return &SocialService{db: gdb}
}

// SendRequest creates a pending friendship from requester to addressee.
func (s *SocialService) SendRequest(requesterID, addresseeID uint) (*db.Friendship, error) {
	if requesterID == addresseeID {
		return nil, ErrSelfFriendship
	}

	var existing db.Friendship
	err := s.db.Where(
		"(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
		requesterID, addresseeID, addresseeID, requesterID,
	).First(&existing).Error
	if err == nil {
		return nil, ErrFriendshipExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check friendship: %w", err)
	}

	friendship := db.Friendship{
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      FriendshipPending,
	}
	if err := s.db.Create(&friendship).Error; err != nil {
		return nil, fmt.Errorf("create friendship: %w", err)
	}
	return &friendship, nil
}

// Accept confirms a pending request addressed to userID.
func (s *SocialService) Accept(userID, friendshipID uint) error {
	result := s.db.Model(&db.Friendship{}).
		Where("id = ? AND addressee_id = ? AND status = ?", friendshipID, userID, FriendshipPending).
		Update("status", FriendshipAccepted)
	if result.Error != nil {
		return fmt.Errorf("accept friendship: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrFriendshipNotFound
	}
	return nil
}

// Remove deletes a friendship or request the user is part of.
func (s *SocialService) Remove(userID, friendshipID uint) error {
	result := s.db.Where("id = ? AND (requester_id = ? OR addressee_id = ?)", friendshipID, userID, userID).
		Delete(&db.Friendship{})
	if result.Error != nil {
		return fmt.Errorf("remove friendship: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrFriendshipNotFound
	}
	return nil
}

// FriendIDs returns the ids of everyone the user has an accepted
// friendship with.
func (s *SocialService) FriendIDs(userID uint) ([]uint, error) {
	var friendships []db.Friendship
	if err := s.db.Where("status = ?", FriendshipAccepted).
		Where("requester_id = ? OR addressee_id = ?", userID, userID).
		Find(&friendships).Error; err != nil {
		return nil, fmt.Errorf("list friendships: %w", err)
	}

	ids := make([]uint, 0, len(friendships))
	for _, f := range friendships {
		if f.RequesterID == userID {
			ids = append(ids, f.AddresseeID)
		} else {
			ids = append(ids, f.RequesterID)
		}
	}
	return ids, nil
}

// PendingReceived lists requests waiting on the user.
func (s *SocialService) PendingReceived(userID uint) ([]db.Friendship, error) {
	var pending []db.Friendship
	if err := s.db.Preload("Requester").
		Where("addressee_id = ? AND status = ?", userID, FriendshipPending).
		Order("created_at DESC").
		Find(&pending).Error; err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	return pending, nil
}

// RecordActivity appends a feed item for a domain event. Message is trusted
// template output, not user input.
func (s *SocialService) RecordActivity(userID uint, kind, message string) (*db.Activity, error) {
	activity := db.Activity{
		PublicID: uuid.New().String(),
		UserID:   userID,
		Kind:     strings.TrimSpace(kind),
		Message:  strings.TrimSpace(message),
	}
	if err := s.db.Create(&activity).Error; err != nil {
		return nil, fmt.Errorf("record activity: %w", err)
	}
	return &activity, nil
}

// Feed returns the newest activities from the user and their friends.
func (s *SocialService) Feed(userID uint, limit int) ([]FeedItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}

	friendIDs, err := s.FriendIDs(userID)
	if err != nil {
		return nil, err
	}
	visible := append(friendIDs, userID)

	var activities []db.Activity
	if err := s.db.Where("user_id IN ?", visible).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}

	items := make([]FeedItem, 0, len(activities))
	for _, activity := range activities {
		item := FeedItem{
			PublicID:  activity.PublicID,
			UserID:    activity.UserID,
			Kind:      activity.Kind,
			Message:   activity.Message,
			CreatedAt: activity.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}

		var profile db.Profile
		if err := s.db.Where("user_id = ?", activity.UserID).First(&profile).Error; err == nil {
			item.DisplayName = profile.DisplayName
		}

		if err := s.db.Model(&db.ActivityReaction{}).
			Where("activity_id = ?", activity.ID).
			Count(&item.Reactions).Error; err != nil {
			return nil, fmt.Errorf("count reactions: %w", err)
		}
		if err := s.db.Model(&db.ActivityComment{}).
			Where("activity_id = ?", activity.ID).
			Count(&item.Comments).Error; err != nil {
			return nil, fmt.Errorf("count comments: %w", err)
		}

		items = append(items, item)
	}
	return items, nil
}

// ToggleReaction likes or unlikes an activity and reports the new state.
func (s *SocialService) ToggleReaction(userID uint, activityPublicID string) (bool, error) {
	activity, err := s.activityByPublicID(activityPublicID)
	if err != nil {
		return false, err
	}

	var existing db.ActivityReaction
	err = s.db.Where("activity_id = ? AND user_id = ?", activity.ID, userID).First(&existing).Error
	if err == nil {
		if err := s.db.Unscoped().Delete(&existing).Error; err != nil {
			return false, fmt.Errorf("remove reaction: %w", err)
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("check reaction: %w", err)
	}

	if err := s.db.Create(&db.ActivityReaction{ActivityID: activity.ID, UserID: userID}).Error; err != nil {
		return false, fmt.Errorf("add reaction: %w", err)
	}
	return true, nil
}

// AddComment validates, sanitizes, and stores a comment on an activity.
// Validation runs on the raw text so entity encoding cannot hide a
// denylisted word.
func (s *SocialService) AddComment(userID uint, activityPublicID, text string) (*db.ActivityComment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("comment text is required")
	}
	if !validation.IsFamilyFriendly(text) {
		return nil, ErrTextRejected
	}

	activity, err := s.activityByPublicID(activityPublicID)
	if err != nil {
		return nil, err
	}

	comment := db.ActivityComment{
		ActivityID: activity.ID,
		UserID:     userID,
		Text:       validation.Sanitize(text),
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return &comment, nil
}

func (s *SocialService) activityByPublicID(publicID string) (*db.Activity, error) {
	var activity db.Activity
	err := s.db.Where("public_id = ?", strings.TrimSpace(publicID)).First(&activity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("load activity: %w", err)
	}
	return &activity, nil
}
