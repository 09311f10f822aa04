package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB is the process-wide database handle.
var DB *gorm.DB

// Init opens the sqlite database and migrates every model. An empty
// databasePath falls back to dogtale.db in the working directory.
func Init(databasePath string) error {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "dogtale.db"
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return err
	}

	return Migrate(DB)
}

// Migrate creates or updates the schema for all models. Split from Init so
// tests can run it against their own in-memory handles.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&User{},
		&Profile{},
		&JournalEntry{},
		&Favorite{},
		&Pet{},
		&VirtualPet{},
		&VirtualPetAction{},
		&Quest{},
		&QuestProgress{},
		&GymChallenge{},
		&BattleRecord{},
		&Friendship{},
		&Activity{},
		&ActivityReaction{},
		&ActivityComment{},
		&ChatMessage{},
		&HealthRecord{},
		&HealthReminder{},
		&TrainerScore{},
		&ScoreEvent{},
	)
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
