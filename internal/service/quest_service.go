package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ivviiviivvi/fetch-familiar-friends/internal/calendar"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrQuestNotFound is returned for unknown or inactive quest codes.
	ErrQuestNotFound = errors.New("quest not found")
)

// QuestService tracks per-period quest progress and pays out XP on
// completion through the leaderboard.
type QuestService struct {
	db     *gorm.DB
	scores *LeaderboardService
}

// QuestStatus is one quest with the caller's progress for the current
// period.
type QuestStatus struct {
	Code        string     `json:"code"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Cadence     string     `json:"cadence"`
	Target      int        `json:"target"`
	RewardXP    int        `json:"reward_xp"`
	Progress    int        `json:"progress"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// JustCompleted is set only on the Advance call that reached the
	// target, so callers can fire one-time side effects.
	JustCompleted bool `json:"-"`
}

// NewQuestService constructs a QuestService.
func NewQuestService(gdb *gorm.DB, scores *LeaderboardService) *QuestService {
	return &QuestService{db: gdb, scores: scores}
}

// Advance bumps the user's progress on the quest for the period containing
// now. Reaching the target completes the quest and credits its reward;
// further calls in the same period are no-ops.
func (s *QuestService) Advance(userID uint, questCode string, now time.Time) (*QuestStatus, error) {
	quest, err := s.questByCode(questCode)
	if err != nil {
		return nil, err
	}

	period := questPeriodStart(quest.Cadence, now)

	var progress db.QuestProgress
	justCompleted := false
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		row := db.QuestProgress{UserID: userID, QuestID: quest.ID, PeriodStart: period}
		insert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "quest_id"}, {Name: "period_start"}},
			DoNothing: true,
		}).Create(&row)
		if insert.Error != nil {
			return insert.Error
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND quest_id = ? AND period_start = ?", userID, quest.ID, period).
			First(&progress).Error; err != nil {
			return err
		}

		if progress.CompletedAt != nil {
			return nil
		}

		progress.Progress++
		if progress.Progress >= quest.Target {
			progress.Progress = quest.Target
			completed := now
			progress.CompletedAt = &completed
			justCompleted = true
		}
		return tx.Save(&progress).Error
	}); err != nil {
		return nil, fmt.Errorf("advance quest: %w", err)
	}

	// Pay out only on the call that completed it.
	if justCompleted && quest.RewardXP > 0 {
		if err := s.scores.AddXP(userID, "quest:"+quest.Code, quest.RewardXP, now); err != nil {
			return nil, fmt.Errorf("credit quest reward: %w", err)
		}
	}

	status := questStatusFrom(*quest, &progress)
	status.JustCompleted = justCompleted
	return status, nil
}

// Board returns every active quest with the caller's progress for the
// period containing now.
func (s *QuestService) Board(userID uint, now time.Time) ([]QuestStatus, error) {
	var quests []db.Quest
	if err := s.db.Where("status = ?", "active").Order("cadence ASC, code ASC").Find(&quests).Error; err != nil {
		return nil, fmt.Errorf("list quests: %w", err)
	}

	board := make([]QuestStatus, 0, len(quests))
	for _, quest := range quests {
		period := questPeriodStart(quest.Cadence, now)

		var progress db.QuestProgress
		err := s.db.Where("user_id = ? AND quest_id = ? AND period_start = ?", userID, quest.ID, period).
			First(&progress).Error
		switch {
		case err == nil:
			board = append(board, *questStatusFrom(quest, &progress))
		case errors.Is(err, gorm.ErrRecordNotFound):
			board = append(board, *questStatusFrom(quest, nil))
		default:
			return nil, fmt.Errorf("load quest progress: %w", err)
		}
	}
	return board, nil
}

// SeedDefaults inserts the stock quest catalog if those codes are absent.
func (s *QuestService) SeedDefaults() error {
	defaults := []db.Quest{
		{Code: "daily_journal", Title: "Dear Diary", Description: "Write a journal entry today", Cadence: "daily", Target: 1, RewardXP: 50},
		{Code: "daily_favorite", Title: "Keeper", Description: "Save a favorite image today", Cadence: "daily", Target: 1, RewardXP: 30},
		{Code: "daily_virtual_pet", Title: "Best Friend", Description: "Care for your companion today", Cadence: "daily", Target: 1, RewardXP: 20},
		{Code: "weekly_streak", Title: "Consistency", Description: "Journal on five days this week", Cadence: "weekly", Target: 5, RewardXP: 200},
		{Code: "weekly_social", Title: "Butterfly", Description: "React or comment three times this week", Cadence: "weekly", Target: 3, RewardXP: 100},
	}

	for _, quest := range defaults {
		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).Create(&quest).Error; err != nil {
			return fmt.Errorf("seed quest %s: %w", quest.Code, err)
		}
	}
	return nil
}

func (s *QuestService) questByCode(code string) (*db.Quest, error) {
	var quest db.Quest
	err := s.db.Where("code = ? AND status = ?", strings.TrimSpace(code), "active").First(&quest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrQuestNotFound, code)
		}
		return nil, fmt.Errorf("load quest: %w", err)
	}
	if quest.Target <= 0 {
		quest.Target = 1
	}
	return &quest, nil
}

func questStatusFrom(quest db.Quest, progress *db.QuestProgress) *QuestStatus {
	status := &QuestStatus{
		Code:        quest.Code,
		Title:       quest.Title,
		Description: quest.Description,
		Cadence:     quest.Cadence,
		Target:      quest.Target,
		RewardXP:    quest.RewardXP,
	}
	if progress != nil {
		status.Progress = progress.Progress
		status.CompletedAt = progress.CompletedAt
		status.Completed = progress.CompletedAt != nil
	}
	return status
}

// questPeriodStart maps a moment onto the start of its quest period: local
// midnight for daily quests, the preceding Monday midnight for weekly ones.
func questPeriodStart(cadence string, now time.Time) time.Time {
	if strings.ToLower(strings.TrimSpace(cadence)) == "weekly" {
		return calendar.StartOfWeek(now)
	}
	return calendar.StartOfDay(now)
}
