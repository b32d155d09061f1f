package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// validGenders is the set of accepted gender values. The energy formula
// treats anything that isn't "male" as "female", but the API only stores the
// two values it can interpret.
var validGenders = map[string]bool{
	"male":   true,
	"female": true,
}

// getPersonalInfo returns the user's stored profile.
// GET /api/personal-info. 404 until a profile has been submitted.
func (h *Handler) getPersonalInfo(c *gin.Context) {
	userID := c.GetString("user_id")

	info, err := h.store.PersonalInfo(userID)
	if err != nil {
		apiError(c, http.StatusNotFound, "personal info not set")
		return
	}
	c.JSON(http.StatusOK, info)
}

// putPersonalInfo replaces the user's profile wholesale and recomputes the
// cached energy results from it.
// PUT /api/personal-info. Body: personalInfo.
func (h *Handler) putPersonalInfo(c *gin.Context) {
	userID := c.GetString("user_id")

	var body personalInfo
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.HeightCM <= 0 || body.WeightKG <= 0 || body.Age <= 0 {
		apiError(c, http.StatusBadRequest, "height_cm, weight_kg and age must be positive")
		return
	}
	if !validGenders[body.Gender] {
		apiError(c, http.StatusBadRequest, "gender must be one of: male, female")
		return
	}
	// Validate activity_level at the boundary; the formula's unknown-level
	// fallback exists for old stored data, not for fresh input.
	if _, ok := activityMultipliers[body.ActivityLevel]; !ok {
		apiError(c, http.StatusBadRequest, "activity_level must be one of: sedentary, light, moderate, active, very_active")
		return
	}

	if err := h.store.SetPersonalInfo(userID, body); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save personal info")
		return
	}

	results, ok := computeEnergy(body)
	if ok {
		if err := h.store.SetEnergyResults(userID, results); err != nil {
			h.logger.Warn("failed to cache energy results",
				zap.String("user_id", userID), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"personal_info": body, "energy": results})
}

// getEnergy returns the user's BMR/TDEE numbers, preferring the cached copy
// and recomputing from the profile when no cache exists yet.
// GET /api/energy.
func (h *Handler) getEnergy(c *gin.Context) {
	userID := c.GetString("user_id")

	if results, err := h.store.EnergyResults(userID); err == nil {
		c.JSON(http.StatusOK, results)
		return
	}

	info, err := h.store.PersonalInfo(userID)
	if err != nil {
		apiError(c, http.StatusNotFound, "personal info not set")
		return
	}
	results, ok := computeEnergy(info)
	if !ok {
		apiError(c, http.StatusNotFound, "personal info incomplete")
		return
	}
	if err := h.store.SetEnergyResults(userID, results); err != nil {
		h.logger.Warn("failed to cache energy results",
			zap.String("user_id", userID), zap.Error(err))
	}
	c.JSON(http.StatusOK, results)
}

// getDashboard summarizes the current state of both logs: latest weight,
// change against the previous weigh-in, and today's calorie/macro totals.
// GET /api/dashboard.
func (h *Handler) getDashboard(c *gin.Context) {
	userID := c.GetString("user_id")

	weights, err := h.store.WeightEntries(userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to load weight log")
		return
	}
	calories, err := h.store.CalorieEntries(userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to load calorie log")
		return
	}

	var summary dashboardSummary
	if n := len(weights); n > 0 {
		current := weights[n-1].WeightKG
		summary.CurrentWeightKG = &current
		if n > 1 {
			change := current - weights[n-2].WeightKG
			summary.WeightChangeKG = &change
		}
	}

	today := time.Now().Format("2006-01-02")
	for _, e := range calories {
		if e.Date.Time.Format("2006-01-02") != today {
			continue
		}
		summary.TodayCalories += e.TotalCalories
		summary.TodayCarbsG += e.CarbsG
		summary.TodayProteinG += e.ProteinG
		summary.TodayFatG += e.FatG
	}

	c.JSON(http.StatusOK, summary)
}
