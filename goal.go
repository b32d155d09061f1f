package main

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
)

// validGoalTypes is the set of allowed goal_type values. Reject unknown
// values with 400 rather than storing a goal the roadmap can't interpret.
var validGoalTypes = map[string]bool{
	"lose":     true,
	"gain":     true,
	"maintain": true,
}

// kcalPerKG is the energy content the model assigns to one kilogram of body
// mass when converting weekly pace to a calorie adjustment.
const kcalPerKG = 7700

// defaultMilestoneCap bounds how many weekly milestones a roadmap lists.
// Overridable via MILESTONE_CAP; the stored goal itself is never truncated.
const defaultMilestoneCap = 12

// newWeightGoal builds a goal from user input. WeeklyTarget is
// |target-current|/weeks and is always non-negative; goalType is taken at the
// user's word and not checked against the sign of (target-current).
// ok=false when the weights are non-positive, the timeframe is not a positive
// whole number of weeks, or the goal type is unknown.
func newWeightGoal(current, target float64, goalType string, weeks int) (weightGoal, bool) {
	if current <= 0 || target <= 0 || weeks <= 0 || !validGoalTypes[goalType] {
		return weightGoal{}, false
	}
	return weightGoal{
		CurrentWeight:  current,
		TargetWeight:   target,
		GoalType:       goalType,
		TimeframeWeeks: weeks,
		WeeklyTarget:   math.Abs(target-current) / float64(weeks),
	}, true
}

// weeklyMilestone is an interpolated target weight for one week of the goal.
type weeklyMilestone struct {
	Week           int     `json:"week"`
	TargetWeightKG float64 `json:"target_weight_kg"`
}

// macroTargets is the daily macro split derived from target calories:
// 25% protein, 45% carbs, 30% fat by calories, converted back to grams.
type macroTargets struct {
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

// roadmap is the derived week-by-week plan for a goal.
type roadmap struct {
	TargetCalories  int               `json:"target_calories"`
	DailyAdjustment int               `json:"daily_adjustment"`
	Macros          macroTargets      `json:"macros"`
	Milestones      []weeklyMilestone `json:"milestones"`
}

// generateRoadmap derives daily calorie and macro targets plus weekly weight
// milestones from a goal and the user's energy numbers. milestoneCap bounds
// the milestone list for long goals without altering the goal.
func generateRoadmap(goal weightGoal, energy calorieResults, milestoneCap int) roadmap {
	weeklyDeficit := goal.WeeklyTarget * kcalPerKG
	dailyAdjustment := int(math.Round(weeklyDeficit / 7))

	targetCalories := energy.TDEE
	switch goal.GoalType {
	case "lose":
		targetCalories -= dailyAdjustment
	case "gain":
		targetCalories += dailyAdjustment
	}

	t := float64(targetCalories)
	macros := macroTargets{
		ProteinG: int(math.Round(t * 0.25 / 4)),
		CarbsG:   int(math.Round(t * 0.45 / 4)),
		FatG:     int(math.Round(t * 0.30 / 9)),
	}

	weeks := goal.TimeframeWeeks
	if weeks > milestoneCap {
		weeks = milestoneCap
	}
	milestones := make([]weeklyMilestone, weeks)
	for i := 1; i <= weeks; i++ {
		frac := float64(i) / float64(goal.TimeframeWeeks)
		milestones[i-1] = weeklyMilestone{
			Week:           i,
			TargetWeightKG: goal.CurrentWeight + (goal.TargetWeight-goal.CurrentWeight)*frac,
		}
	}

	return roadmap{
		TargetCalories:  targetCalories,
		DailyAdjustment: dailyAdjustment,
		Macros:          macros,
		Milestones:      milestones,
	}
}

/* ─── Meal plan catalog ──────────────────────────────────────────────── */

// mealPlan lists candidate meals per slot. Static reference content keyed by
// goal orientation; each item carries its approximate calories.
type mealPlan struct {
	Breakfast []string `json:"breakfast"`
	Lunch     []string `json:"lunch"`
	Dinner    []string `json:"dinner"`
	Snacks    []string `json:"snacks"`
}

var mealPlans = map[string]mealPlan{
	"lose": {
		Breakfast: []string{
			"Yến mạch với trái cây và hạt (300 kcal)",
			"Trứng luộc + bánh mì nguyên cám + rau (280 kcal)",
			"Sữa chua Hy Lạp + quả berry + granola (250 kcal)",
			"Smoothie xanh với rau bina + chuối + protein (270 kcal)",
		},
		Lunch: []string{
			"Cơm gạo lứt + thịt nạc nướng + rau xào (450 kcal)",
			"Salad gà nướng với quinoa và rau củ (420 kcal)",
			"Phở gà không dầu mỡ + rau thơm (380 kcal)",
			"Cơm + cá hấp + canh rau (400 kcal)",
		},
		Dinner: []string{
			"Cá nướng + rau củ hấp + khoai lang (350 kcal)",
			"Tôm xào rau củ + cơm gạo lứt (320 kcal)",
			"Thịt bò nạc + salad rau trộn (300 kcal)",
			"Đậu phụ xào rau + súp miso (280 kcal)",
		},
		Snacks: []string{
			"Táo + 10 hạt hạnh nhân (120 kcal)",
			"Cà rốt baby + hummus (100 kcal)",
			"Sữa chua không đường (80 kcal)",
			"Trái cây theo mùa (60-100 kcal)",
		},
	},
	"gain": {
		Breakfast: []string{
			"Yến mạch + chuối + bơ đậu phộng + sữa (450 kcal)",
			"Bánh mì sandwich trứng + phô mai + bơ (500 kcal)",
			"Smoothie protein + yến mạch + trái cây (480 kcal)",
			"Trứng chiên + bánh mì + bơ + sữa (520 kcal)",
		},
		Lunch: []string{
			"Cơm + thịt bò xào + rau + canh (650 kcal)",
			"Mì Ý sốt kem + thịt gà + phô mai (700 kcal)",
			"Cơm gà teriyaki + rau củ + súp (680 kcal)",
			"Bánh mì thịt nướng + khoai tây chiên (720 kcal)",
		},
		Dinner: []string{
			"Cá hồi nướng + cơm + rau xào dầu ô liu (600 kcal)",
			"Thịt heo nướng + khoai lang + salad (580 kcal)",
			"Gà nướng + pasta + rau (620 kcal)",
			"Bò bít tết + khoai tây nghiền + rau (650 kcal)",
		},
		Snacks: []string{
			"Hạt hỗn hợp + sữa chua (200 kcal)",
			"Bánh protein + chuối (180 kcal)",
			"Bơ đậu phộng + bánh crackers (220 kcal)",
			"Smoothie protein + yến mạch (250 kcal)",
		},
	},
}

// mealPlanFor returns the catalog for a goal type. There is no dedicated
// maintenance catalog; maintain reuses the lose plan.
func mealPlanFor(goalType string) mealPlan {
	if goalType == "gain" {
		return mealPlans["gain"]
	}
	return mealPlans["lose"]
}

/* ─── Handlers ───────────────────────────────────────────────────────── */

// postGoal creates or replaces the user's weight goal.
// POST /api/goal. Body: createGoalRequest.
func (h *Handler) postGoal(c *gin.Context) {
	userID := c.GetString("user_id")

	var body createGoalRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	goal, ok := newWeightGoal(body.CurrentWeight, body.TargetWeight, body.GoalType, body.TimeframeWeeks)
	if !ok {
		apiError(c, http.StatusBadRequest, "weights must be positive, timeframe_weeks must be a positive integer, goal_type must be one of: lose, gain, maintain")
		return
	}
	if err := h.store.SetWeightGoal(userID, goal); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save goal")
		return
	}
	c.JSON(http.StatusCreated, goal)
}

// getGoal returns the user's active goal.
// GET /api/goal. 404 until a goal has been created.
func (h *Handler) getGoal(c *gin.Context) {
	userID := c.GetString("user_id")

	goal, err := h.store.WeightGoalFor(userID)
	if err != nil {
		apiError(c, http.StatusNotFound, "no goal set")
		return
	}
	c.JSON(http.StatusOK, goal)
}

// getGoalRoadmap derives the roadmap and meal plan for the active goal.
// GET /api/goal/roadmap. Requires both a goal and computed energy results.
func (h *Handler) getGoalRoadmap(c *gin.Context) {
	userID := c.GetString("user_id")

	goal, err := h.store.WeightGoalFor(userID)
	if err != nil {
		apiError(c, http.StatusNotFound, "no goal set")
		return
	}
	energy, err := h.store.EnergyResults(userID)
	if err != nil {
		apiError(c, http.StatusNotFound, "no energy results; submit personal info first")
		return
	}

	rm := generateRoadmap(goal, energy, h.milestoneCap)
	c.JSON(http.StatusOK, gin.H{
		"goal":      goal,
		"roadmap":   rm,
		"meal_plan": mealPlanFor(goal.GoalType),
	})
}
