package service

import (
	"testing"
	"time"

	"github.com/ivviiviivvi/fetch-familiar-friends/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupLeaderboardTestDB(t *testing.T) func() {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.User{}, &db.Profile{}, &db.TrainerScore{}, &db.ScoreEvent{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	return func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestAddXPAccumulates(t *testing.T) {
	cleanup := setupLeaderboardTestDB(t)
	defer cleanup()

	svc := NewLeaderboardService(db.DB)
	now := time.Date(2025, 5, 14, 10, 0, 0, 0, time.Local)

	if err := svc.AddXP(1, "quest:daily_journal", 50, now); err != nil {
		t.Fatalf("AddXP returned error: %v", err)
	}
	if err := svc.AddXP(1, "battle:fetch_sprint", 50, now.Add(time.Hour)); err != nil {
		t.Fatalf("AddXP second returned error: %v", err)
	}
	// zero and negative grants are ignored
	if err := svc.AddXP(1, "noop", 0, now); err != nil {
		t.Fatalf("AddXP zero returned error: %v", err)
	}
	if err := svc.AddXP(1, "noop", -5, now); err != nil {
		t.Fatalf("AddXP negative returned error: %v", err)
	}

	rank, xp, err := svc.Rank(1)
	if err != nil {
		t.Fatalf("Rank returned error: %v", err)
	}
	if rank != 1 || xp != 100 {
		t.Fatalf("expected rank 1 with 100 xp, got rank %d xp %d", rank, xp)
	}

	var events int64
	if err := db.DB.Model(&db.ScoreEvent{}).Where("user_id = ?", 1).Count(&events).Error; err != nil {
		t.Fatalf("count events failed: %v", err)
	}
	if events != 2 {
		t.Fatalf("expected 2 score events, got %d", events)
	}
}

func TestGlobalBoardOrdering(t *testing.T) {
	cleanup := setupLeaderboardTestDB(t)
	defer cleanup()

	svc := NewLeaderboardService(db.DB)
	now := time.Date(2025, 5, 14, 10, 0, 0, 0, time.Local)

	if err := db.DB.Create(&db.Profile{UserID: 1, DisplayName: "Ash"}).Error; err != nil {
		t.Fatalf("seed profile failed: %v", err)
	}
	if err := db.DB.Create(&db.Profile{UserID: 2, DisplayName: "Misty"}).Error; err != nil {
		t.Fatalf("seed profile failed: %v", err)
	}

	if err := svc.AddXP(1, "quest", 30, now); err != nil {
		t.Fatalf("AddXP returned error: %v", err)
	}
	if err := svc.AddXP(2, "quest", 80, now); err != nil {
		t.Fatalf("AddXP returned error: %v", err)
	}

	board, err := svc.Global(10)
	if err != nil {
		t.Fatalf("Global returned error: %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(board))
	}
	if board[0].UserID != 2 || board[0].Rank != 1 || board[0].DisplayName != "Misty" {
		t.Fatalf("unexpected top row: %+v", board[0])
	}
	if board[1].UserID != 1 || board[1].Rank != 2 {
		t.Fatalf("unexpected second row: %+v", board[1])
	}
}

func TestWeeklyBoardWindow(t *testing.T) {
	cleanup := setupLeaderboardTestDB(t)
	defer cleanup()

	svc := NewLeaderboardService(db.DB)
	// Wednesday; the week opened Monday May 12 at midnight
	now := time.Date(2025, 5, 14, 10, 0, 0, 0, time.Local)

	// old grant falls outside the window
	if err := svc.AddXP(1, "quest", 500, now.AddDate(0, 0, -10)); err != nil {
		t.Fatalf("AddXP old returned error: %v", err)
	}
	if err := svc.AddXP(1, "quest", 20, now.AddDate(0, 0, -1)); err != nil {
		t.Fatalf("AddXP recent returned error: %v", err)
	}
	if err := svc.AddXP(2, "quest", 60, now.AddDate(0, 0, -2)); err != nil {
		t.Fatalf("AddXP user2 returned error: %v", err)
	}
	// Sunday May 11 is within seven days of now but belongs to last week
	if err := svc.AddXP(2, "quest", 75, now.AddDate(0, 0, -3)); err != nil {
		t.Fatalf("AddXP sunday returned error: %v", err)
	}

	board, err := svc.Weekly(10, now)
	if err != nil {
		t.Fatalf("Weekly returned error: %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(board))
	}
	if board[0].UserID != 2 || board[0].XP != 60 {
		t.Fatalf("expected the Sunday grant cut off at Monday midnight, got %+v", board[0])
	}
	if board[1].UserID != 1 || board[1].XP != 20 {
		t.Fatalf("expected only the in-window grant counted, got %+v", board[1])
	}
}

func TestRankWithoutScore(t *testing.T) {
	cleanup := setupLeaderboardTestDB(t)
	defer cleanup()

	svc := NewLeaderboardService(db.DB)
	now := time.Date(2025, 5, 14, 10, 0, 0, 0, time.Local)

	if err := svc.AddXP(1, "quest", 30, now); err != nil {
		t.Fatalf("AddXP returned error: %v", err)
	}

	rank, xp, err := svc.Rank(99)
	if err != nil {
		t.Fatalf("Rank returned error: %v", err)
	}
	if rank != 2 || xp != 0 {
		t.Fatalf("expected unranked user after everyone, got rank %d xp %d", rank, xp)
	}
}
