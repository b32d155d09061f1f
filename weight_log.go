package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// getWeightLog returns the user's weight entries in ascending date order.
// GET /api/weight-log?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params optional;
// when given they bound the result inclusively.
// Returns an empty array (not null) if no entries exist.
func (h *Handler) getWeightLog(c *gin.Context) {
	userID := c.GetString("user_id")
	start := c.Query("start")
	end := c.Query("end")

	if start != "" {
		if _, err := time.Parse("2006-01-02", start); err != nil {
			apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
			return
		}
	}
	if end != "" {
		if _, err := time.Parse("2006-01-02", end); err != nil {
			apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
			return
		}
	}
	if start != "" && end != "" && start > end {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return
	}

	entries, err := h.store.WeightEntries(userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch weight log")
		return
	}

	// Ensure empty array (not null) in JSON
	filtered := []weightEntry{}
	for _, e := range entries {
		d := e.Date.Time.Format("2006-01-02")
		if start != "" && d < start {
			continue
		}
		if end != "" && d > end {
			continue
		}
		filtered = append(filtered, e)
	}

	c.JSON(http.StatusOK, filtered)
}

// createWeightEntry appends a weigh-in to the user's log.
// POST /api/weight-log. Body: { "date"?, "weight_kg", "note"? }.
// Date defaults to today when omitted. Multiple entries per date are allowed.
func (h *Handler) createWeightEntry(c *gin.Context) {
	userID := c.GetString("user_id")

	var body createWeightEntryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	date := time.Now()
	if body.Date != "" {
		parsed, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}
	if body.WeightKG <= 0 || body.WeightKG > 999.9 {
		apiError(c, http.StatusBadRequest, "weight_kg must be between 0 and 999.9")
		return
	}

	entry := weightEntry{
		ID:        uuid.NewString(),
		Date:      DateOnly{Time: date},
		WeightKG:  body.WeightKG,
		Note:      body.Note,
		CreatedAt: time.Now(),
	}
	if err := h.store.AddWeightEntry(userID, entry); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save weight entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// deleteWeightEntry removes a weight log entry by ID.
// DELETE /api/weight-log/:id. Returns 204 on success, 404 if not found.
func (h *Handler) deleteWeightEntry(c *gin.Context) {
	userID := c.GetString("user_id")
	id := c.Param("id")

	removed, err := h.store.DeleteWeightEntry(userID, id)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete weight entry")
		return
	}
	if !removed {
		apiError(c, http.StatusNotFound, "weight entry not found")
		return
	}

	c.Status(http.StatusNoContent)
}
