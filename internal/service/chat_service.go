package service

import (
	"fmt"
	"strings"

	"github.com/ivviiviivvi/fetch-familiar-friends/internal/db"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/validation"
	"gorm.io/gorm"
)

// Chat roles.
const (
	ChatRoleUser      = "user"
	ChatRoleCompanion = "companion"
)

// ChatService stores the companion chat log. Messages are checked against
// the content filter on the raw text, then sanitized for storage; a
// rejected message never reaches the log.
type ChatService struct {
	db *gorm.DB
}

// NewChatService constructs a ChatService.
func NewChatService(gdb *gorm.DB) *ChatService {
	return &ChatService{db: gdb}
}

// Post validates and stores one user message, then appends the companion's
// canned acknowledgement so the log reads as a conversation.
func (s *ChatService) Post(userID uint, text string) (*db.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("chat message is required")
	}
	if !validation.IsFamilyFriendly(text) {
		return nil, ErrTextRejected
	}

	message := db.ChatMessage{
		UserID: userID,
		Role:   ChatRoleUser,
		Text:   validation.Sanitize(text),
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return tx.Create(&db.ChatMessage{
			UserID: userID,
			Role:   ChatRoleCompanion,
			Text:   companionReply(message.Text),
		}).Error
	}); err != nil {
		return nil, fmt.Errorf("store chat message: %w", err)
	}

	return &message, nil
}

// History returns the newest messages, oldest first within the window.
func (s *ChatService) History(userID uint, limit int) ([]db.ChatMessage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var newest []db.ChatMessage
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&newest).Error; err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}

	for i, j := 0, len(newest)-1; i < j; i, j = i+1, j-1 {
		newest[i], newest[j] = newest[j], newest[i]
	}
	return newest, nil
}

// companionReply picks a reply for the companion. Deterministic on the
// message so tests are stable.
func companionReply(text string) string {
	replies := []string{
		"Woof! Tell me more!",
		"*wags tail excitedly*",
		"That sounds like a great day!",
		"*tilts head curiously*",
		"You're the best!",
	}
	sum := 0
	for _, r := range text {
		sum += int(r)
	}
	return replies[sum%len(replies)]
}
