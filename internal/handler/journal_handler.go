package handler

import (
	"bytes"
	"errors"
	"html"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/calendar"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/service"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()),
	)
	htmlSanitizer = bluemonday.UGCPolicy()
)

type journalPayload struct {
	Text string `json:"text"`
}

// UpsertJournalEntry writes the entry for the day in the path. Writing also
// advances the daily journal quest and drops a feed activity.
func (a *API) UpsertJournalEntry(c *gin.Context) {
	var payload journalPayload
	if !bindJSON(c, &payload, "invalid journal payload") {
		return
	}

	userID := currentUserID(c)
	entry, created, err := a.journal.Upsert(service.JournalInput{
		UserID: userID,
		Day:    c.Param("day"),
		Text:   payload.Text,
	})
	switch {
	case err == nil:
	case errors.Is(err, service.ErrJournalEntryEmpty):
		respondError(c, http.StatusBadRequest, "journal entry cannot be empty")
		return
	default:
		respondError(c, http.StatusBadRequest, "invalid journal day")
		return
	}

	// quests count journaled days, not writes. Rewriting a day or
	// backfilling outside the quest period earns nothing.
	now := time.Now()
	if created {
		if calendar.SameDay(entry.EntryDate, now) {
			a.advanceQuest(c, userID, "daily_journal", now)
		}
		if calendar.StartOfWeek(entry.EntryDate).Equal(calendar.StartOfWeek(now)) {
			a.advanceQuest(c, userID, "weekly_streak", now)
		}
		if _, err := a.social.RecordActivity(userID, "journal", "wrote a journal entry"); err != nil {
			c.Error(err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"day":  calendar.DayKey(entry.EntryDate),
		"text": entry.Text,
	})
}

// GetJournalEntry returns one day's entry.
func (a *API) GetJournalEntry(c *gin.Context) {
	entry, err := a.journal.Get(currentUserID(c), c.Param("day"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"day":  calendar.DayKey(entry.EntryDate),
			"text": entry.Text,
		})
	case errors.Is(err, service.ErrJournalEntryNotFound):
		respondError(c, http.StatusNotFound, "no entry for that day")
	default:
		respondError(c, http.StatusBadRequest, "invalid journal day")
	}
}

// GetJournalEntryHTML renders one day's entry as sanitized markdown HTML.
func (a *API) GetJournalEntryHTML(c *gin.Context) {
	entry, err := a.journal.Get(currentUserID(c), c.Param("day"))
	if err != nil {
		if errors.Is(err, service.ErrJournalEntryNotFound) {
			respondError(c, http.StatusNotFound, "no entry for that day")
			return
		}
		respondError(c, http.StatusBadRequest, "invalid journal day")
		return
	}

	// stored text is entity-encoded; decode before the markdown pass so
	// formatting written by the user survives, then sanitize the output
	var rendered bytes.Buffer
	if err := markdownEngine.Convert([]byte(html.UnescapeString(entry.Text)), &rendered); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to render entry")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"day":  calendar.DayKey(entry.EntryDate),
		"html": htmlSanitizer.Sanitize(rendered.String()),
	})
}

// DeleteJournalEntry removes one day's entry.
func (a *API) DeleteJournalEntry(c *gin.Context) {
	err := a.journal.Delete(currentUserID(c), c.Param("day"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "entry deleted"})
	case errors.Is(err, service.ErrJournalEntryNotFound):
		respondError(c, http.StatusNotFound, "no entry for that day")
	default:
		respondError(c, http.StatusBadRequest, "invalid journal day")
	}
}

type journalImportPayload struct {
	Entries map[string]string `json:"entries"`
}

// ImportJournal bulk-loads a client-exported journal backup. Legacy day keys
// are accepted; no quests advance for imported days.
func (a *API) ImportJournal(c *gin.Context) {
	var payload journalImportPayload
	if !bindJSON(c, &payload, "invalid import payload") {
		return
	}
	if len(payload.Entries) == 0 {
		respondError(c, http.StatusBadRequest, "no entries to import")
		return
	}

	written, err := a.journal.Import(currentUserID(c), payload.Entries)
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusBadRequest, "failed to import entries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": written})
}

// ListJournalEntries returns entries between start and end (defaults to the
// current month).
func (a *API) ListJournalEntries(c *gin.Context) {
	now := time.Now()
	start := queryDate(c, "start", time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local))
	end := queryDate(c, "end", start.AddDate(0, 1, -1))

	entries, err := a.journal.ListBetween(currentUserID(c), start, end)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list entries")
		return
	}

	out := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		out = append(out, gin.H{
			"day":  calendar.DayKey(entry.EntryDate),
			"text": entry.Text,
		})
	}
	c.JSON(http.StatusOK, gin.H{"entries": out})
}
