package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// GetMonthView returns the 42-cell calendar for /:year/:month, decorated
// with the caller's journal and favorite days.
func (a *API) GetMonthView(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1970 || year > 9999 {
		respondError(c, http.StatusBadRequest, "invalid year")
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		respondError(c, http.StatusBadRequest, "invalid month")
		return
	}

	ref := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	view, err := a.stats.Month(currentUserID(c), ref, time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to build calendar")
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetStatsOverview returns the engagement snapshot with achievement flags.
func (a *API) GetStatsOverview(c *gin.Context) {
	overview, err := a.stats.Snapshot(currentUserID(c), time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to compute statistics")
		return
	}
	c.JSON(http.StatusOK, overview)
}
