package main

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// caloriesFromMacros converts macro grams to total calories using the
// standard 4/4/9 kcal-per-gram factors. Computed once when an entry is
// created; the stored total never changes afterwards.
func caloriesFromMacros(carbsG, proteinG, fatG float64) int {
	return int(math.Round(carbsG*4 + proteinG*4 + fatG*9))
}

// getCalorieLog returns the user's meal entries in ascending date order.
// GET /api/calorie-log?date=YYYY-MM-DD. The date param is optional; when
// given only entries for that day are returned.
// Returns an empty array (not null) if no entries exist.
func (h *Handler) getCalorieLog(c *gin.Context) {
	userID := c.GetString("user_id")
	date := c.Query("date")

	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
	}

	entries, err := h.store.CalorieEntries(userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch calorie log")
		return
	}

	// Ensure empty array (not null) in JSON
	filtered := []calorieEntry{}
	for _, e := range entries {
		if date != "" && e.Date.Time.Format("2006-01-02") != date {
			continue
		}
		filtered = append(filtered, e)
	}

	c.JSON(http.StatusOK, filtered)
}

// createCalorieEntry appends a meal to the user's log. Total calories are
// derived from the macro grams at creation time and stored with the entry.
// POST /api/calorie-log. Body: createCalorieEntryRequest; date defaults to
// today, omitted macros default to zero.
func (h *Handler) createCalorieEntry(c *gin.Context) {
	userID := c.GetString("user_id")

	var body createCalorieEntryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.MealName == "" {
		apiError(c, http.StatusBadRequest, "meal_name is required")
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

	var carbs, protein, fat float64
	if body.CarbsG != nil {
		carbs = *body.CarbsG
	}
	if body.ProteinG != nil {
		protein = *body.ProteinG
	}
	if body.FatG != nil {
		fat = *body.FatG
	}
	if carbs < 0 || protein < 0 || fat < 0 {
		apiError(c, http.StatusBadRequest, "macro grams must not be negative")
		return
	}

	entry := calorieEntry{
		ID:            uuid.NewString(),
		Date:          DateOnly{Time: date},
		MealName:      body.MealName,
		CarbsG:        carbs,
		ProteinG:      protein,
		FatG:          fat,
		TotalCalories: caloriesFromMacros(carbs, protein, fat),
		Note:          body.Note,
		CreatedAt:     time.Now(),
	}
	if err := h.store.AddCalorieEntry(userID, entry); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save calorie entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// deleteCalorieEntry removes a meal entry by ID. Returns 204 on success.
// DELETE /api/calorie-log/:id.
func (h *Handler) deleteCalorieEntry(c *gin.Context) {
	userID := c.GetString("user_id")
	id := c.Param("id")

	removed, err := h.store.DeleteCalorieEntry(userID, id)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete calorie entry")
		return
	}
	if !removed {
		apiError(c, http.StatusNotFound, "calorie entry not found")
		return
	}

	c.Status(http.StatusNoContent)
}
