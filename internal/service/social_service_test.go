package service

import (
	"strings"
	"testing"

	"github.com/ivviiviivvi/fetch-familiar-friends/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSocialTestDB(t *testing.T) func() {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.User{}, &db.Profile{}, &db.Friendship{}, &db.Activity{}, &db.ActivityReaction{}, &db.ActivityComment{}); err != nil {
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

func TestFriendshipRequestLifecycle(t *testing.T) {
	cleanup := setupSocialTestDB(t)
	defer cleanup()

	svc := NewSocialService(db.DB)

	if _, err := svc.SendRequest(1, 1); err != ErrSelfFriendship {
		t.Fatalf("expected ErrSelfFriendship, got %v", err)
	}

	request, err := svc.SendRequest(1, 2)
	if err != nil {
		t.Fatalf("SendRequest returned error: %v", err)
	}
	if request.Status != FriendshipPending {
		t.Fatalf("expected pending, got %s", request.Status)
	}

	// duplicates are rejected in both orientations
	if _, err := svc.SendRequest(1, 2); err != ErrFriendshipExists {
		t.Fatalf("expected ErrFriendshipExists, got %v", err)
	}
	if _, err := svc.SendRequest(2, 1); err != ErrFriendshipExists {
		t.Fatalf("expected ErrFriendshipExists for mirror, got %v", err)
	}

	// only the addressee may accept
	if err := svc.Accept(1, request.ID); err != ErrFriendshipNotFound {
		t.Fatalf("expected ErrFriendshipNotFound for requester accept, got %v", err)
	}
	if err := svc.Accept(2, request.ID); err != nil {
		t.Fatalf("Accept returned error: %v", err)
	}

	ids, err := svc.FriendIDs(1)
	if err != nil {
		t.Fatalf("FriendIDs returned error: %v", err)
	}
	if len(ids) != 1 || ids[0] != 2 {
		t.Fatalf("unexpected friend ids: %v", ids)
	}

	if err := svc.Remove(1, request.ID); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	ids, err = svc.FriendIDs(1)
	if err != nil {
		t.Fatalf("FriendIDs after remove returned error: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no friends after remove, got %v", ids)
	}
}

func TestFeedVisibility(t *testing.T) {
	cleanup := setupSocialTestDB(t)
	defer cleanup()

	svc := NewSocialService(db.DB)

	request, err := svc.SendRequest(1, 2)
	if err != nil {
		t.Fatalf("SendRequest returned error: %v", err)
	}
	if err := svc.Accept(2, request.ID); err != nil {
		t.Fatalf("Accept returned error: %v", err)
	}

	if _, err := svc.RecordActivity(1, "journal", "wrote a journal entry"); err != nil {
		t.Fatalf("RecordActivity returned error: %v", err)
	}
	if _, err := svc.RecordActivity(2, "favorite", "saved a new favorite"); err != nil {
		t.Fatalf("RecordActivity friend returned error: %v", err)
	}
	// user 3 is a stranger, their activity stays out of the feed
	if _, err := svc.RecordActivity(3, "battle", "won a battle"); err != nil {
		t.Fatalf("RecordActivity stranger returned error: %v", err)
	}

	feed, err := svc.Feed(1, 10)
	if err != nil {
		t.Fatalf("Feed returned error: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("expected 2 visible items, got %d", len(feed))
	}
	for _, item := range feed {
		if item.UserID == 3 {
			t.Fatal("stranger activity leaked into feed")
		}
	}
}

func TestToggleReaction(t *testing.T) {
	cleanup := setupSocialTestDB(t)
	defer cleanup()

	svc := NewSocialService(db.DB)

	activity, err := svc.RecordActivity(1, "journal", "wrote a journal entry")
	if err != nil {
		t.Fatalf("RecordActivity returned error: %v", err)
	}

	liked, err := svc.ToggleReaction(2, activity.PublicID)
	if err != nil {
		t.Fatalf("ToggleReaction returned error: %v", err)
	}
	if !liked {
		t.Fatal("expected first toggle to like")
	}

	liked, err = svc.ToggleReaction(2, activity.PublicID)
	if err != nil {
		t.Fatalf("ToggleReaction second returned error: %v", err)
	}
	if liked {
		t.Fatal("expected second toggle to unlike")
	}

	if _, err := svc.ToggleReaction(2, "missing-id"); err != ErrActivityNotFound {
		t.Fatalf("expected ErrActivityNotFound, got %v", err)
	}
}

func TestAddCommentValidatesAndSanitizes(t *testing.T) {
	cleanup := setupSocialTestDB(t)
	defer cleanup()

	svc := NewSocialService(db.DB)

	activity, err := svc.RecordActivity(1, "journal", "wrote a journal entry")
	if err != nil {
		t.Fatalf("RecordActivity returned error: %v", err)
	}

	if _, err := svc.AddComment(2, activity.PublicID, "that was a stupid idea"); err != ErrTextRejected {
		t.Fatalf("expected ErrTextRejected, got %v", err)
	}
	if _, err := svc.AddComment(2, activity.PublicID, "   "); err == nil {
		t.Fatal("expected error for blank comment")
	}

	comment, err := svc.AddComment(2, activity.PublicID, "<i>what a good dog</i>")
	if err != nil {
		t.Fatalf("AddComment returned error: %v", err)
	}
	if strings.Contains(comment.Text, "<") {
		t.Fatalf("expected sanitized text, got %q", comment.Text)
	}
	if !strings.Contains(comment.Text, "what a good dog") {
		t.Fatalf("expected comment content preserved, got %q", comment.Text)
	}
}
