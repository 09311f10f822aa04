package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const userIDContextKey = "user_id"

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// currentUserID reads the authed user id placed on the context by the auth
// middleware. Zero means unauthenticated, which the middleware never lets
// through.
func currentUserID(c *gin.Context) uint {
	value, exists := c.Get(userIDContextKey)
	if !exists {
		return 0
	}
	id, ok := value.(uint)
	if !ok {
		return 0
	}
	return id
}

// advanceQuest bumps quest progress as a side effect of a domain action and
// drops a feed item the first time the period's target is reached. Quest
// failures never fail the request that triggered them.
func (a *API) advanceQuest(c *gin.Context, userID uint, code string, now time.Time) {
	status, err := a.quests.Advance(userID, code, now)
	if err != nil {
		c.Error(err)
		return
	}
	if !status.JustCompleted {
		return
	}

	kind, message := "quest", "completed the "+status.Title+" quest"
	if code == "weekly_streak" {
		kind, message = "streak", "hit a weekly streak milestone"
	}
	if _, err := a.social.RecordActivity(userID, kind, message); err != nil {
		c.Error(err)
	}
}

// queryDate parses an optional YYYY-MM-DD query parameter, falling back to
// now for anything absent or malformed.
func queryDate(c *gin.Context, key string, fallback time.Time) time.Time {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return fallback
	}
	return parsed
}
