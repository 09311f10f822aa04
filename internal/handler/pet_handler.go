package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/service"
)

type petPayload struct {
	Name      string `json:"name"`
	Species   string `json:"species"`
	Breed     string `json:"breed"`
	BirthDate string `json:"birth_date"`
	IsPrimary bool   `json:"is_primary"`
}

type petActionPayload struct {
	Action string `json:"action"`
}

// CreatePet registers a real pet profile for the caller.
func (a *API) CreatePet(c *gin.Context) {
	var payload petPayload
	if !bindJSON(c, &payload, "invalid pet payload") {
		return
	}

	var birthDate *time.Time
	if raw := strings.TrimSpace(payload.BirthDate); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			respondError(c, http.StatusBadRequest, "birth_date must be YYYY-MM-DD")
			return
		}
		birthDate = &parsed
	}

	pet, err := a.pets.CreatePet(service.PetInput{
		UserID:    currentUserID(c),
		Name:      payload.Name,
		Species:   payload.Species,
		Breed:     payload.Breed,
		BirthDate: birthDate,
		IsPrimary: payload.IsPrimary,
	})
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, pet)
}

// ListPets returns the caller's pet profiles.
func (a *API) ListPets(c *gin.Context) {
	pets, err := a.pets.ListPets(currentUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list pets")
		return
	}
	c.JSON(http.StatusOK, gin.H{"pets": pets})
}

// GetCompanion returns the caller's virtual pet, creating it on first
// access. An optional name query names a fresh companion.
func (a *API) GetCompanion(c *gin.Context) {
	pet, err := a.pets.Companion(currentUserID(c), c.Query("name"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load companion")
		return
	}
	c.JSON(http.StatusOK, pet)
}

// ListPetActions returns the available care actions.
func (a *API) ListPetActions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"actions": a.pets.Actions()})
}

// PerformPetAction applies one care action and advances the daily pet
// quest.
func (a *API) PerformPetAction(c *gin.Context) {
	var payload petActionPayload
	if !bindJSON(c, &payload, "invalid action payload") {
		return
	}

	userID := currentUserID(c)
	result, err := a.pets.PerformAction(userID, payload.Action, time.Now())
	switch {
	case err == nil:
	case errors.Is(err, service.ErrPetUnknownAction):
		respondError(c, http.StatusBadRequest, "unknown action")
		return
	case errors.Is(err, service.ErrPetActionCoolingDown):
		respondError(c, http.StatusTooManyRequests, err.Error())
		return
	default:
		respondError(c, http.StatusInternalServerError, "failed to perform action")
		return
	}

	a.advanceQuest(c, userID, "daily_virtual_pet", time.Now())
	if err := a.scores.AddXP(userID, "pet:"+result.Action, result.XPGained, time.Now()); err != nil {
		c.Error(err)
	}

	c.JSON(http.StatusOK, result)
}
