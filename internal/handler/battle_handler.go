package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/service"
)

type battleStartPayload struct {
	Challenge string `json:"challenge"`
}

// ListChallenges returns the gym challenge catalog.
func (a *API) ListChallenges(c *gin.Context) {
	challenges, err := a.battles.Challenges()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list challenges")
		return
	}
	c.JSON(http.StatusOK, gin.H{"challenges": challenges})
}

// StartBattle begins a challenge for the caller.
func (a *API) StartBattle(c *gin.Context) {
	var payload battleStartPayload
	if !bindJSON(c, &payload, "invalid battle payload") {
		return
	}

	record, err := a.battles.Start(currentUserID(c), payload.Challenge, time.Now())
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, record)
	case errors.Is(err, service.ErrChallengeNotFound):
		respondError(c, http.StatusNotFound, "challenge not found")
	case errors.Is(err, service.ErrBattleAlreadyActive):
		respondError(c, http.StatusConflict, "a battle is already in progress")
	default:
		respondError(c, http.StatusInternalServerError, "failed to start battle")
	}
}

// CompleteBattleStep marks one step done on the active battle.
func (a *API) CompleteBattleStep(c *gin.Context) {
	record, err := a.battles.CompleteStep(currentUserID(c))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, record)
	case errors.Is(err, service.ErrNoActiveBattle):
		respondError(c, http.StatusNotFound, "no battle in progress")
	default:
		respondError(c, http.StatusInternalServerError, "failed to complete step")
	}
}

// FinishBattle resolves the active battle and records the win streak feed
// item on a victory.
func (a *API) FinishBattle(c *gin.Context) {
	userID := currentUserID(c)
	record, err := a.battles.Finish(userID, time.Now())
	switch {
	case err == nil:
	case errors.Is(err, service.ErrNoActiveBattle):
		respondError(c, http.StatusNotFound, "no battle in progress")
		return
	default:
		respondError(c, http.StatusInternalServerError, "failed to finish battle")
		return
	}

	if record.Status == service.BattleWon {
		if _, err := a.social.RecordActivity(userID, "battle", "won a gym battle"); err != nil {
			c.Error(err)
		}
	}
	c.JSON(http.StatusOK, record)
}

// AbandonBattle walks away from the active battle.
func (a *API) AbandonBattle(c *gin.Context) {
	err := a.battles.Abandon(currentUserID(c), time.Now())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "battle abandoned"})
	case errors.Is(err, service.ErrNoActiveBattle):
		respondError(c, http.StatusNotFound, "no battle in progress")
	default:
		respondError(c, http.StatusInternalServerError, "failed to abandon battle")
	}
}

// GetBattleSummary returns the caller's win/loss record.
func (a *API) GetBattleSummary(c *gin.Context) {
	summary, err := a.battles.Summary(currentUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load battle record")
		return
	}
	c.JSON(http.StatusOK, summary)
}
