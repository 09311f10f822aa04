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

func setupFavoriteTestDB(t *testing.T) func() {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.User{}, &db.Favorite{}); err != nil {
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

func TestFavoriteCreateAndList(t *testing.T) {
	cleanup := setupFavoriteTestDB(t)
	defer cleanup()

	svc := NewFavoriteService(db.DB)
	base := time.Date(2025, 5, 10, 12, 0, 0, 0, time.Local)

	older, err := svc.Create(FavoriteInput{UserID: 1, ImageURL: "https://images.dog.ceo/a.jpg", Category: "dog", Breed: "corgi", SavedAt: base})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if older.PublicID == "" {
		t.Fatal("expected favorite to have public id")
	}

	newer, err := svc.Create(FavoriteInput{UserID: 1, ImageURL: "https://images.dog.ceo/b.jpg", Category: "Cat ", SavedAt: base.Add(time.Hour)})
	if err != nil {
		t.Fatalf("Create second returned error: %v", err)
	}
	if newer.Category != "cat" {
		t.Fatalf("expected category normalized to cat, got %q", newer.Category)
	}

	favorites, err := svc.List(1)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(favorites) != 2 {
		t.Fatalf("expected 2 favorites, got %d", len(favorites))
	}
	if favorites[0].PublicID != newer.PublicID {
		t.Fatal("expected newest favorite first")
	}
}

func TestFavoriteCreateValidation(t *testing.T) {
	cleanup := setupFavoriteTestDB(t)
	defer cleanup()

	svc := NewFavoriteService(db.DB)

	if _, err := svc.Create(FavoriteInput{UserID: 1, ImageURL: "  ", Category: "dog"}); err != ErrFavoriteImageMissing {
		t.Fatalf("expected ErrFavoriteImageMissing, got %v", err)
	}
	if _, err := svc.Create(FavoriteInput{UserID: 1, ImageURL: "https://x/y.jpg", Category: "hamster"}); !errors.Is(err, ErrFavoriteInvalidCategory) {
		t.Fatalf("expected ErrFavoriteInvalidCategory, got %v", err)
	}
}

func TestFavoriteDeleteScopedToOwner(t *testing.T) {
	cleanup := setupFavoriteTestDB(t)
	defer cleanup()

	svc := NewFavoriteService(db.DB)

	fav, err := svc.Create(FavoriteInput{UserID: 1, ImageURL: "https://x/y.jpg", Category: "dog"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := svc.Delete(2, fav.PublicID); err != ErrFavoriteNotFound {
		t.Fatalf("expected ErrFavoriteNotFound for foreign delete, got %v", err)
	}
	if err := svc.Delete(1, fav.PublicID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(1, fav.PublicID); err != ErrFavoriteNotFound {
		t.Fatalf("expected ErrFavoriteNotFound after delete, got %v", err)
	}
}
