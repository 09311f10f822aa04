package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/service"
)

type friendRequestPayload struct {
	UserID uint `json:"user_id"`
}

type commentPayload struct {
	Text string `json:"text"`
}

// SendFriendRequest creates a pending request to another user.
func (a *API) SendFriendRequest(c *gin.Context) {
	var payload friendRequestPayload
	if !bindJSON(c, &payload, "invalid friend request payload") {
		return
	}

	friendship, err := a.social.SendRequest(currentUserID(c), payload.UserID)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, friendship)
	case errors.Is(err, service.ErrSelfFriendship):
		respondError(c, http.StatusBadRequest, "cannot befriend yourself")
	case errors.Is(err, service.ErrFriendshipExists):
		respondError(c, http.StatusConflict, "friendship already exists")
	default:
		respondError(c, http.StatusInternalServerError, "failed to send request")
	}
}

// AcceptFriendRequest confirms a pending request addressed to the caller.
func (a *API) AcceptFriendRequest(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	switch err := a.social.Accept(currentUserID(c), id); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "friend request accepted"})
	case errors.Is(err, service.ErrFriendshipNotFound):
		respondError(c, http.StatusNotFound, "friend request not found")
	default:
		respondError(c, http.StatusInternalServerError, "failed to accept request")
	}
}

// RemoveFriendship deletes a friendship or request the caller is part of.
func (a *API) RemoveFriendship(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	switch err := a.social.Remove(currentUserID(c), id); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "friendship removed"})
	case errors.Is(err, service.ErrFriendshipNotFound):
		respondError(c, http.StatusNotFound, "friendship not found")
	default:
		respondError(c, http.StatusInternalServerError, "failed to remove friendship")
	}
}

// ListPendingRequests returns requests waiting on the caller.
func (a *API) ListPendingRequests(c *gin.Context) {
	pending, err := a.social.PendingReceived(currentUserID(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list requests")
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": pending})
}

// GetFeed returns the newest activities from the caller and their friends.
func (a *API) GetFeed(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	feed, err := a.social.Feed(currentUserID(c), limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load feed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"feed": feed})
}

// ToggleReaction likes or unlikes a feed activity and advances the weekly
// social quest when a like lands.
func (a *API) ToggleReaction(c *gin.Context) {
	userID := currentUserID(c)
	liked, err := a.social.ToggleReaction(userID, c.Param("id"))
	switch {
	case err == nil:
	case errors.Is(err, service.ErrActivityNotFound):
		respondError(c, http.StatusNotFound, "activity not found")
		return
	default:
		respondError(c, http.StatusInternalServerError, "failed to toggle reaction")
		return
	}

	if liked {
		a.advanceQuest(c, userID, "weekly_social", time.Now())
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// AddComment validates and stores a comment on a feed activity.
func (a *API) AddComment(c *gin.Context) {
	var payload commentPayload
	if !bindJSON(c, &payload, "invalid comment payload") {
		return
	}

	userID := currentUserID(c)
	comment, err := a.social.AddComment(userID, c.Param("id"), payload.Text)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrTextRejected):
		respondError(c, http.StatusBadRequest, "please keep comments family friendly")
		return
	case errors.Is(err, service.ErrActivityNotFound):
		respondError(c, http.StatusNotFound, "activity not found")
		return
	default:
		respondError(c, http.StatusBadRequest, "comment text is required")
		return
	}

	a.advanceQuest(c, userID, "weekly_social", time.Now())
	c.JSON(http.StatusCreated, comment)
}
