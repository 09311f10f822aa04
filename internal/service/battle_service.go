package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ivviiviivvi/fetch-familiar-friends/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Battle statuses.
const (
	BattleInProgress = "in_progress"
	BattleWon        = "won"
	BattleLost       = "lost"
	BattleAbandoned  = "abandoned"
)

var (
	// ErrChallengeNotFound is returned for unknown challenge codes.
	ErrChallengeNotFound = errors.New("challenge not found")
	// ErrBattleAlreadyActive means the user already has a battle running.
	ErrBattleAlreadyActive = errors.New("a battle is already in progress")
	// ErrNoActiveBattle means there is nothing to step, finish, or abandon.
	ErrNoActiveBattle = errors.New("no battle in progress")
)

// BattleService runs the gym-battle mini game: one active challenge at a
// time per user, stepped to completion, with XP on a win.
type BattleService struct {
	db     *gorm.DB
	scores *LeaderboardService
}

// BattleSummary is the per-user win/loss record.
type BattleSummary struct {
	Wins      int64 `json:"wins"`
	Losses    int64 `json:"losses"`
	WinStreak int   `json:"win_streak"`
}

// NewBattleService constructs a BattleService.
func NewBattleService(gdb *gorm.DB, scores *LeaderboardService) *BattleService {
	return &BattleService{db: gdb, scores: scores}
}

// Challenges lists the catalog, easiest first.
func (s *BattleService) Challenges() ([]db.GymChallenge, error) {
	var challenges []db.GymChallenge
	if err := s.db.Order("reward_xp ASC, code ASC").Find(&challenges).Error; err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	return challenges, nil
}

// Start begins a challenge for the user.
func (s *BattleService) Start(userID uint, challengeCode string, now time.Time) (*db.BattleRecord, error) {
	var challenge db.GymChallenge
	if err := s.db.Where("code = ?", strings.TrimSpace(challengeCode)).First(&challenge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrChallengeNotFound, challengeCode)
		}
		return nil, fmt.Errorf("load challenge: %w", err)
	}

	var active int64
	if err := s.db.Model(&db.BattleRecord{}).
		Where("user_id = ? AND status = ?", userID, BattleInProgress).
		Count(&active).Error; err != nil {
		return nil, fmt.Errorf("count active battles: %w", err)
	}
	if active > 0 {
		return nil, ErrBattleAlreadyActive
	}

	record := db.BattleRecord{
		UserID:      userID,
		ChallengeID: challenge.ID,
		Status:      BattleInProgress,
		StartedAt:   now,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("start battle: %w", err)
	}
	record.Challenge = challenge
	return &record, nil
}

// CompleteStep marks one step done on the active battle.
func (s *BattleService) CompleteStep(userID uint) (*db.BattleRecord, error) {
	record, err := s.active(userID)
	if err != nil {
		return nil, err
	}

	if record.StepsDone < record.Challenge.Steps {
		record.StepsDone++
		if err := s.db.Save(record).Error; err != nil {
			return nil, fmt.Errorf("save battle step: %w", err)
		}
	}
	return record, nil
}

// Finish resolves the active battle. A win requires every step done and
// credits the challenge reward; finishing early records a loss.
func (s *BattleService) Finish(userID uint, now time.Time) (*db.BattleRecord, error) {
	record, err := s.active(userID)
	if err != nil {
		return nil, err
	}

	finished := now
	record.FinishedAt = &finished
	if record.StepsDone >= record.Challenge.Steps {
		record.Status = BattleWon
	} else {
		record.Status = BattleLost
	}

	if err := s.db.Save(record).Error; err != nil {
		return nil, fmt.Errorf("finish battle: %w", err)
	}

	if record.Status == BattleWon && record.Challenge.RewardXP > 0 {
		if err := s.scores.AddXP(userID, "battle:"+record.Challenge.Code, record.Challenge.RewardXP, now); err != nil {
			return nil, fmt.Errorf("credit battle reward: %w", err)
		}
	}
	return record, nil
}

// Abandon walks away from the active battle without recording a loss.
func (s *BattleService) Abandon(userID uint, now time.Time) error {
	record, err := s.active(userID)
	if err != nil {
		return err
	}

	finished := now
	record.FinishedAt = &finished
	record.Status = BattleAbandoned
	if err := s.db.Save(record).Error; err != nil {
		return fmt.Errorf("abandon battle: %w", err)
	}
	return nil
}

// Summary reports the user's record. The win streak counts consecutive wins
// from the most recent resolved battle backward; abandoned runs are skipped.
func (s *BattleService) Summary(userID uint) (*BattleSummary, error) {
	summary := &BattleSummary{}

	if err := s.db.Model(&db.BattleRecord{}).
		Where("user_id = ? AND status = ?", userID, BattleWon).
		Count(&summary.Wins).Error; err != nil {
		return nil, fmt.Errorf("count wins: %w", err)
	}
	if err := s.db.Model(&db.BattleRecord{}).
		Where("user_id = ? AND status = ?", userID, BattleLost).
		Count(&summary.Losses).Error; err != nil {
		return nil, fmt.Errorf("count losses: %w", err)
	}

	var resolved []db.BattleRecord
	if err := s.db.Where("user_id = ? AND status IN ?", userID, []string{BattleWon, BattleLost}).
		Order("finished_at DESC").
		Find(&resolved).Error; err != nil {
		return nil, fmt.Errorf("load battle history: %w", err)
	}
	for _, record := range resolved {
		if record.Status != BattleWon {
			break
		}
		summary.WinStreak++
	}

	return summary, nil
}

// SeedDefaults inserts the stock challenge catalog if those codes are
// absent.
func (s *BattleService) SeedDefaults() error {
	defaults := []db.GymChallenge{
		{Code: "fetch_sprint", Name: "Fetch Sprint", Difficulty: "easy", Steps: 3, RewardXP: 50},
		{Code: "agility_course", Name: "Agility Course", Difficulty: "medium", Steps: 5, RewardXP: 100},
		{Code: "obedience_trial", Name: "Obedience Trial", Difficulty: "hard", Steps: 7, RewardXP: 200},
	}

	for _, challenge := range defaults {
		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).Create(&challenge).Error; err != nil {
			return fmt.Errorf("seed challenge %s: %w", challenge.Code, err)
		}
	}
	return nil
}

func (s *BattleService) active(userID uint) (*db.BattleRecord, error) {
	var record db.BattleRecord
	err := s.db.Preload("Challenge").
		Where("user_id = ? AND status = ?", userID, BattleInProgress).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveBattle
		}
		return nil, fmt.Errorf("load active battle: %w", err)
	}
	return &record, nil
}
