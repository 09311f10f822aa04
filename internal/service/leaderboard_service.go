package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/ivviiviivvi/fetch-familiar-friends/internal/calendar"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LeaderboardService accrues trainer XP and serves the ranking boards. The
// running total lives in trainer_scores; each grant also lands in
// score_events so windowed boards can be summed per period.
type LeaderboardService struct {
	db *gorm.DB
}

// BoardEntry is one row of a leaderboard.
type BoardEntry struct {
	Rank        uint   `json:"rank"`
	UserID      uint   `json:"user_id"`
	DisplayName string `json:"display_name"`
	XP          uint64 `json:"xp"`
}

// NewLeaderboardService constructs a LeaderboardService.
func NewLeaderboardService(gdb *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: gdb}
}

// AddXP credits xp to the user from the named source. Zero or negative
// grants are ignored.
func (s *LeaderboardService) AddXP(userID uint, source string, xp int, now time.Time) error {
	if xp <= 0 || userID == 0 {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		score := db.TrainerScore{UserID: userID, LastEarnedAt: now}
		insert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(&score)
		if insert.Error != nil {
			return insert.Error
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&score).Error; err != nil {
			return err
		}

		score.XP += uint64(xp)
		score.LastEarnedAt = now
		if err := tx.Save(&score).Error; err != nil {
			return err
		}

		return tx.Create(&db.ScoreEvent{
			UserID:   userID,
			Source:   source,
			XP:       xp,
			EarnedAt: now,
		}).Error
	})
}

// Global returns the top scorers of all time.
func (s *LeaderboardService) Global(limit int) ([]BoardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []BoardEntry
	if err := s.db.Model(&db.TrainerScore{}).
		Select("trainer_scores.user_id AS user_id, profiles.display_name AS display_name, trainer_scores.xp AS xp").
		Joins("LEFT JOIN profiles ON profiles.user_id = trainer_scores.user_id").
		Order("trainer_scores.xp DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load global board: %w", err)
	}

	for i := range rows {
		rows[i].Rank = uint(i + 1)
	}
	return rows, nil
}

// Weekly returns the top scorers of the week containing now. The window
// opens at Monday midnight, the same cutoff weekly quests use.
func (s *LeaderboardService) Weekly(limit int, now time.Time) ([]BoardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	windowStart := calendar.StartOfWeek(now)

	var rows []BoardEntry
	if err := s.db.Model(&db.ScoreEvent{}).
		Select("score_events.user_id AS user_id, profiles.display_name AS display_name, SUM(score_events.xp) AS xp").
		Joins("LEFT JOIN profiles ON profiles.user_id = score_events.user_id").
		Where("score_events.earned_at >= ?", windowStart).
		Group("score_events.user_id, profiles.display_name").
		Order("xp DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load weekly board: %w", err)
	}

	for i := range rows {
		rows[i].Rank = uint(i + 1)
	}
	return rows, nil
}

// Rank returns the user's all-time position, 1-based. Users with no score
// rank after everyone who has one.
func (s *LeaderboardService) Rank(userID uint) (uint, uint64, error) {
	var score db.TrainerScore
	if err := s.db.Where("user_id = ?", userID).First(&score).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			var total int64
			if err := s.db.Model(&db.TrainerScore{}).Count(&total).Error; err != nil {
				return 0, 0, fmt.Errorf("count scores: %w", err)
			}
			return uint(total) + 1, 0, nil
		}
		return 0, 0, fmt.Errorf("load score: %w", err)
	}

	var ahead int64
	if err := s.db.Model(&db.TrainerScore{}).
		Where("xp > ?", score.XP).
		Count(&ahead).Error; err != nil {
		return 0, 0, fmt.Errorf("count higher scores: %w", err)
	}

	return uint(ahead) + 1, score.XP, nil
}
