package service

import (
	"errors"
	"testing"
	"time"

	"github.com/ivviiviivvi/fetch-familiar-friends/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupBattleTestDB(t *testing.T) func() {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.User{}, &db.Profile{}, &db.GymChallenge{}, &db.BattleRecord{}, &db.TrainerScore{}, &db.ScoreEvent{}); err != nil {
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

func newBattleServiceForTest(t *testing.T) (*BattleService, *LeaderboardService) {
	t.Helper()
	scores := NewLeaderboardService(db.DB)
	svc := NewBattleService(db.DB, scores)
	if err := svc.SeedDefaults(); err != nil {
		t.Fatalf("SeedDefaults returned error: %v", err)
	}
	return svc, scores
}

func TestBattleStartAndSingleActive(t *testing.T) {
	cleanup := setupBattleTestDB(t)
	defer cleanup()

	svc, _ := newBattleServiceForTest(t)
	now := time.Date(2025, 5, 14, 10, 0, 0, 0, time.Local)

	record, err := svc.Start(1, "fetch_sprint", now)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if record.Status != BattleInProgress {
		t.Fatalf("expected in_progress, got %s", record.Status)
	}
	if record.Challenge.Steps != 3 {
		t.Fatalf("expected 3 steps, got %d", record.Challenge.Steps)
	}

	if _, err := svc.Start(1, "agility_course", now); err != ErrBattleAlreadyActive {
		t.Fatalf("expected ErrBattleAlreadyActive, got %v", err)
	}
	if _, err := svc.Start(1, "no_such_challenge", now); !errors.Is(err, ErrChallengeNotFound) {
		t.Fatalf("expected ErrChallengeNotFound, got %v", err)
	}
	// a different user may battle concurrently
	if _, err := svc.Start(2, "fetch_sprint", now); err != nil {
		t.Fatalf("Start for second user returned error: %v", err)
	}
}

func TestBattleWinPaysReward(t *testing.T) {
	cleanup := setupBattleTestDB(t)
	defer cleanup()

	svc, scores := newBattleServiceForTest(t)
	now := time.Date(2025, 5, 14, 10, 0, 0, 0, time.Local)

	if _, err := svc.Start(1, "fetch_sprint", now); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := svc.CompleteStep(1); err != nil {
			t.Fatalf("CompleteStep %d returned error: %v", i, err)
		}
	}

	record, err := svc.Finish(1, now.Add(10*time.Minute))
	if err != nil {
		t.Fatalf("Finish returned error: %v", err)
	}
	if record.Status != BattleWon {
		t.Fatalf("expected won, got %s", record.Status)
	}
	if record.FinishedAt == nil {
		t.Fatal("expected finished timestamp")
	}

	_, xp, err := scores.Rank(1)
	if err != nil {
		t.Fatalf("Rank returned error: %v", err)
	}
	if xp != 50 {
		t.Fatalf("expected 50 xp from fetch_sprint, got %d", xp)
	}
}

func TestBattleFinishEarlyIsLoss(t *testing.T) {
	cleanup := setupBattleTestDB(t)
	defer cleanup()

	svc, scores := newBattleServiceForTest(t)
	now := time.Date(2025, 5, 14, 10, 0, 0, 0, time.Local)

	if _, err := svc.Start(1, "agility_course", now); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if _, err := svc.CompleteStep(1); err != nil {
		t.Fatalf("CompleteStep returned error: %v", err)
	}

	record, err := svc.Finish(1, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("Finish returned error: %v", err)
	}
	if record.Status != BattleLost {
		t.Fatalf("expected lost, got %s", record.Status)
	}

	_, xp, err := scores.Rank(1)
	if err != nil {
		t.Fatalf("Rank returned error: %v", err)
	}
	if xp != 0 {
		t.Fatalf("expected no xp on a loss, got %d", xp)
	}
}

func TestBattleStepsDoNotOvershoot(t *testing.T) {
	cleanup := setupBattleTestDB(t)
	defer cleanup()

	svc, _ := newBattleServiceForTest(t)
	now := time.Date(2025, 5, 14, 10, 0, 0, 0, time.Local)

	if _, err := svc.Start(1, "fetch_sprint", now); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	var record *db.BattleRecord
	var err error
	for i := 0; i < 5; i++ {
		record, err = svc.CompleteStep(1)
		if err != nil {
			t.Fatalf("CompleteStep returned error: %v", err)
		}
	}
	if record.StepsDone != 3 {
		t.Fatalf("expected steps capped at 3, got %d", record.StepsDone)
	}
}

func TestBattleAbandonExcludedFromSummary(t *testing.T) {
	cleanup := setupBattleTestDB(t)
	defer cleanup()

	svc, _ := newBattleServiceForTest(t)
	now := time.Date(2025, 5, 14, 10, 0, 0, 0, time.Local)

	// win one
	if _, err := svc.Start(1, "fetch_sprint", now); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := svc.CompleteStep(1); err != nil {
			t.Fatalf("CompleteStep returned error: %v", err)
		}
	}
	if _, err := svc.Finish(1, now.Add(time.Minute)); err != nil {
		t.Fatalf("Finish returned error: %v", err)
	}

	// abandon one
	if _, err := svc.Start(1, "agility_course", now.Add(2*time.Minute)); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if err := svc.Abandon(1, now.Add(3*time.Minute)); err != nil {
		t.Fatalf("Abandon returned error: %v", err)
	}

	// win another
	if _, err := svc.Start(1, "fetch_sprint", now.Add(4*time.Minute)); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := svc.CompleteStep(1); err != nil {
			t.Fatalf("CompleteStep returned error: %v", err)
		}
	}
	if _, err := svc.Finish(1, now.Add(5*time.Minute)); err != nil {
		t.Fatalf("Finish returned error: %v", err)
	}

	summary, err := svc.Summary(1)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if summary.Wins != 2 || summary.Losses != 0 {
		t.Fatalf("unexpected record: %+v", summary)
	}
	if summary.WinStreak != 2 {
		t.Fatalf("expected win streak 2 across the abandoned run, got %d", summary.WinStreak)
	}
}

func TestBattleNoActive(t *testing.T) {
	cleanup := setupBattleTestDB(t)
	defer cleanup()

	svc, _ := newBattleServiceForTest(t)

	if _, err := svc.CompleteStep(1); err != ErrNoActiveBattle {
		t.Fatalf("expected ErrNoActiveBattle, got %v", err)
	}
	if _, err := svc.Finish(1, time.Now()); err != ErrNoActiveBattle {
		t.Fatalf("expected ErrNoActiveBattle on finish, got %v", err)
	}
	if err := svc.Abandon(1, time.Now()); err != ErrNoActiveBattle {
		t.Fatalf("expected ErrNoActiveBattle on abandon, got %v", err)
	}
}
