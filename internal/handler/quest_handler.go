package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetQuestBoard returns every active quest with the caller's progress for
// the current period.
func (a *API) GetQuestBoard(c *gin.Context) {
	board, err := a.quests.Board(currentUserID(c), time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load quests")
		return
	}
	c.JSON(http.StatusOK, gin.H{"quests": board})
}
