package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// GetGlobalLeaderboard returns the all-time top scorers.
func (a *API) GetGlobalLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	board, err := a.scores.Global(limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}
	c.JSON(http.StatusOK, gin.H{"board": board})
}

// GetWeeklyLeaderboard returns the top scorers of the last seven days.
func (a *API) GetWeeklyLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	board, err := a.scores.Weekly(limit, time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}
	c.JSON(http.StatusOK, gin.H{"board": board})
}

// GetMyRank returns the caller's all-time position and XP.
func (a *API) GetMyRank(c *gin.Context) {
	rank, xp, err := a.scores.Rank(currentUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load rank")
		return
	}
	c.JSON(http.StatusOK, gin.H{"rank": rank, "xp": xp})
}
