package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/service"
)

type chatPayload struct {
	Text string `json:"text"`
}

// PostChatMessage stores one companion chat message and its reply.
func (a *API) PostChatMessage(c *gin.Context) {
	var payload chatPayload
	if !bindJSON(c, &payload, "invalid chat payload") {
		return
	}

	message, err := a.chat.Post(currentUserID(c), payload.Text)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrTextRejected):
		respondError(c, http.StatusBadRequest, "please keep messages family friendly")
		return
	default:
		respondError(c, http.StatusBadRequest, "message text is required")
		return
	}

	history, err := a.chat.History(currentUserID(c), 2)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load reply")
		return
	}

	reply := ""
	for _, m := range history {
		if m.Role == service.ChatRoleCompanion && m.ID > message.ID {
			reply = m.Text
		}
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": message.Text,
		"reply":   reply,
	})
}

// GetChatHistory returns the newest messages, oldest first.
func (a *API) GetChatHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	history, err := a.chat.History(currentUserID(c), limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load history")
		return
	}

	out := make([]gin.H, 0, len(history))
	for _, message := range history {
		out = append(out, gin.H{
			"role": message.Role,
			"text": message.Text,
			"at":   message.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"messages": out})
}
