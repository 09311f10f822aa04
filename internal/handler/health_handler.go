package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ivviiviivvi/fetch-familiar-friends/internal/service"
)

type healthRecordPayload struct {
	Kind       string `json:"kind"`
	Title      string `json:"title"`
	Notes      string `json:"notes"`
	RecordDate string `json:"record_date"`
}

type healthReminderPayload struct {
	Title   string `json:"title"`
	Notes   string `json:"notes"`
	DueDate string `json:"due_date"`
}

// CreateHealthRecord adds a dated record to one of the caller's pets.
func (a *API) CreateHealthRecord(c *gin.Context) {
	petID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload healthRecordPayload
	if !bindJSON(c, &payload, "invalid record payload") {
		return
	}

	var recordDate time.Time
	if payload.RecordDate != "" {
		recordDate, err = time.ParseInLocation("2006-01-02", payload.RecordDate, time.Local)
		if err != nil {
			respondError(c, http.StatusBadRequest, "record_date must be YYYY-MM-DD")
			return
		}
	}

	record, err := a.health.CreateRecord(service.HealthRecordInput{
		UserID:     currentUserID(c),
		PetID:      petID,
		Kind:       payload.Kind,
		Title:      payload.Title,
		Notes:      payload.Notes,
		RecordDate: recordDate,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, record)
	case errors.Is(err, service.ErrHealthPetNotOwned):
		respondError(c, http.StatusNotFound, "pet not found")
	default:
		respondError(c, http.StatusBadRequest, err.Error())
	}
}

// ListHealthRecords returns a pet's records, newest first.
func (a *API) ListHealthRecords(c *gin.Context) {
	petID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	records, err := a.health.ListRecords(currentUserID(c), petID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"records": records})
	case errors.Is(err, service.ErrHealthPetNotOwned):
		respondError(c, http.StatusNotFound, "pet not found")
	default:
		respondError(c, http.StatusInternalServerError, "failed to list records")
	}
}

// DeleteHealthRecord removes a record from an owned pet.
func (a *API) DeleteHealthRecord(c *gin.Context) {
	recordID, err := parseUintParam(c, "recordID")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	switch err := a.health.DeleteRecord(currentUserID(c), recordID); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "record deleted"})
	case errors.Is(err, service.ErrHealthRecordNotFound):
		respondError(c, http.StatusNotFound, "record not found")
	default:
		respondError(c, http.StatusInternalServerError, "failed to delete record")
	}
}

// CreateHealthReminder adds an open reminder to one of the caller's pets.
func (a *API) CreateHealthReminder(c *gin.Context) {
	petID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload healthReminderPayload
	if !bindJSON(c, &payload, "invalid reminder payload") {
		return
	}

	dueDate, err := time.ParseInLocation("2006-01-02", payload.DueDate, time.Local)
	if err != nil {
		respondError(c, http.StatusBadRequest, "due_date must be YYYY-MM-DD")
		return
	}

	reminder, err := a.health.CreateReminder(service.HealthReminderInput{
		UserID:  currentUserID(c),
		PetID:   petID,
		Title:   payload.Title,
		Notes:   payload.Notes,
		DueDate: dueDate,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, reminder)
	case errors.Is(err, service.ErrHealthPetNotOwned):
		respondError(c, http.StatusNotFound, "pet not found")
	default:
		respondError(c, http.StatusBadRequest, err.Error())
	}
}

// GetHealthReminders returns a pet's open reminders bucketed by urgency.
func (a *API) GetHealthReminders(c *gin.Context) {
	petID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	buckets, err := a.health.Buckets(currentUserID(c), petID, time.Now())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, buckets)
	case errors.Is(err, service.ErrHealthPetNotOwned):
		respondError(c, http.StatusNotFound, "pet not found")
	default:
		respondError(c, http.StatusInternalServerError, "failed to load reminders")
	}
}

// CompleteHealthReminder closes a reminder.
func (a *API) CompleteHealthReminder(c *gin.Context) {
	reminderID, err := parseUintParam(c, "reminderID")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	switch err := a.health.CompleteReminder(currentUserID(c), reminderID, time.Now()); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "reminder completed"})
	case errors.Is(err, service.ErrHealthReminderNotFound):
		respondError(c, http.StatusNotFound, "reminder not found")
	default:
		respondError(c, http.StatusInternalServerError, "failed to complete reminder")
	}
}

// DeleteHealthReminder removes a reminder.
func (a *API) DeleteHealthReminder(c *gin.Context) {
	reminderID, err := parseUintParam(c, "reminderID")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	switch err := a.health.DeleteReminder(currentUserID(c), reminderID); {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "reminder deleted"})
	case errors.Is(err, service.ErrHealthReminderNotFound):
		respondError(c, http.StatusNotFound, "reminder not found")
	default:
		respondError(c, http.StatusInternalServerError, "failed to delete reminder")
	}
}
