package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ivviiviivvi/fetch-familiar-friends/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrPetUnknownAction is returned for actions outside the care set.
	ErrPetUnknownAction = errors.New("unknown pet action")
	// ErrPetActionCoolingDown means the action was used too recently.
	ErrPetActionCoolingDown = errors.New("action is cooling down")
)

const petActionXP = 10

// petActionEffect describes how one care action moves the pet's stats.
// Values add onto the current stat and are clamped to 0..100.
type petActionEffect struct {
	Happiness int
	Hunger    int
	Energy    int
	Cooldown  time.Duration
}

var petActionEffects = map[string]petActionEffect{
	"feed":  {Hunger: -30, Happiness: 5, Energy: 5, Cooldown: 30 * time.Minute},
	"play":  {Happiness: 20, Energy: -15, Hunger: 5, Cooldown: 15 * time.Minute},
	"rest":  {Energy: 30, Happiness: -5, Cooldown: time.Hour},
	"groom": {Happiness: 10, Cooldown: time.Hour},
	"treat": {Happiness: 15, Hunger: -10, Cooldown: 2 * time.Hour},
	"walk":  {Happiness: 25, Energy: -20, Hunger: 10, Cooldown: time.Hour},
}

// petLevelThresholds[i] is the XP needed to reach level i+1.
var petLevelThresholds = []int{0, 100, 300, 600, 1000, 1500, 2100, 2800, 3600, 4500}

// PetService owns real pet profiles and the virtual companion.
type PetService struct {
	db *gorm.DB
}

// PetInput describes a real pet profile write.
type PetInput struct {
	UserID    uint
	Name      string
	Species   string
	Breed     string
	BirthDate *time.Time
	PhotoURL  string
	IsPrimary bool
}

// PetActionResult reports what one care action did.
type PetActionResult struct {
	Action    string `json:"action"`
	XPGained  int    `json:"xp_gained"`
	LeveledUp bool   `json:"leveled_up"`
	NewLevel  int    `json:"new_level"`
}

// NewPetService constructs a PetService.
func NewPetService(gdb *gorm.DB) *PetService {
	return &PetService{db: gdb}
}

// CreatePet adds a real pet profile. The first pet becomes primary.
func (s *PetService) CreatePet(input PetInput) (*db.Pet, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("pet name is required")
	}

	var count int64
	if err := s.db.Model(&db.Pet{}).Where("user_id = ?", input.UserID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count pets: %w", err)
	}

	pet := db.Pet{
		UserID:    input.UserID,
		Name:      name,
		Species:   strings.TrimSpace(strings.ToLower(input.Species)),
		Breed:     strings.TrimSpace(input.Breed),
		BirthDate: input.BirthDate,
		PhotoURL:  strings.TrimSpace(input.PhotoURL),
		IsPrimary: input.IsPrimary || count == 0,
	}
	if err := s.db.Create(&pet).Error; err != nil {
		return nil, fmt.Errorf("create pet: %w", err)
	}
	return &pet, nil
}

// ListPets returns the user's pets, primary first.
func (s *PetService) ListPets(userID uint) ([]db.Pet, error) {
	var pets []db.Pet
	if err := s.db.Where("user_id = ?", userID).
		Order("is_primary DESC, created_at ASC").
		Find(&pets).Error; err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	return pets, nil
}

// SetPetPhoto updates the photo URL of an owned pet.
func (s *PetService) SetPetPhoto(userID, petID uint, photoURL string) error {
	result := s.db.Model(&db.Pet{}).
		Where("id = ? AND user_id = ?", petID, userID).
		Update("photo_url", strings.TrimSpace(photoURL))
	if result.Error != nil {
		return fmt.Errorf("update pet photo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("pet not found")
	}
	return nil
}

// Companion returns the user's virtual pet, creating it on first access.
func (s *PetService) Companion(userID uint, name string) (*db.VirtualPet, error) {
	var pet db.VirtualPet
	err := s.db.Where("user_id = ?", userID).First(&pet).Error
	if err == nil {
		return &pet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load virtual pet: %w", err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = "Buddy"
	}
	pet = db.VirtualPet{UserID: userID, Name: name, Happiness: 80, Hunger: 30, Energy: 70, Level: 1}
	if err := s.db.Create(&pet).Error; err != nil {
		return nil, fmt.Errorf("create virtual pet: %w", err)
	}
	return &pet, nil
}

// PerformAction applies one care action at the given time: cooldown check
// against the action log, stat effects clamped to 0..100, a fixed XP grant,
// and a level recompute.
func (s *PetService) PerformAction(userID uint, action string, now time.Time) (*PetActionResult, error) {
	action = strings.ToLower(strings.TrimSpace(action))
	effect, ok := petActionEffects[action]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPetUnknownAction, action)
	}

	pet, err := s.Companion(userID, "")
	if err != nil {
		return nil, err
	}

	var last db.VirtualPetAction
	err = s.db.Where("virtual_pet_id = ? AND action = ?", pet.ID, action).
		Order("performed_at DESC").
		First(&last).Error
	if err == nil && now.Sub(last.PerformedAt) < effect.Cooldown {
		return nil, fmt.Errorf("%w: %s ready in %s", ErrPetActionCoolingDown, action,
			(effect.Cooldown - now.Sub(last.PerformedAt)).Round(time.Second))
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load last action: %w", err)
	}

	oldLevel := pet.Level
	pet.Happiness = clampStat(pet.Happiness + effect.Happiness)
	pet.Hunger = clampStat(pet.Hunger + effect.Hunger)
	pet.Energy = clampStat(pet.Energy + effect.Energy)
	pet.Experience += petActionXP
	pet.Level = levelForXP(pet.Experience)

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(pet).Error; err != nil {
			return err
		}
		return tx.Create(&db.VirtualPetAction{
			VirtualPetID: pet.ID,
			Action:       action,
			PerformedAt:  now,
			XPGained:     petActionXP,
		}).Error
	}); err != nil {
		return nil, fmt.Errorf("apply pet action: %w", err)
	}

	return &PetActionResult{
		Action:    action,
		XPGained:  petActionXP,
		LeveledUp: pet.Level > oldLevel,
		NewLevel:  pet.Level,
	}, nil
}

// Actions lists the available care actions in a stable order.
func (s *PetService) Actions() []string {
	actions := make([]string, 0, len(petActionEffects))
	for name := range petActionEffects {
		actions = append(actions, name)
	}
	sort.Strings(actions)
	return actions
}

func clampStat(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func levelForXP(xp int) int {
	for i := len(petLevelThresholds) - 1; i >= 0; i-- {
		if xp >= petLevelThresholds[i] {
			return i + 1
		}
	}
	return 1
}
