package main

import "time"

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON. Entry dates
// carry no time-of-day; parsing yields midnight UTC.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user is the stored account record. The store persists it as JSON, so the
// credential fields carry real tags; handlers never serialize a user
// directly in a response.
type user struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	AuthToken string    `json:"auth_token"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"created_at"`
}

// weightEntry is one body-weight observation. Immutable once created except
// for deletion; the per-user collection is kept sorted ascending by date.
type weightEntry struct {
	ID        string    `json:"id"`
	Date      DateOnly  `json:"date"`
	WeightKG  float64   `json:"weight_kg"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// calorieEntry is one logged meal. TotalCalories is computed from the macros
// at creation time and stored as an immutable fact, never recomputed on read.
type calorieEntry struct {
	ID            string    `json:"id"`
	Date          DateOnly  `json:"date"`
	MealName      string    `json:"meal_name"`
	CarbsG        float64   `json:"carbs_g"`
	ProteinG      float64   `json:"protein_g"`
	FatG          float64   `json:"fat_g"`
	TotalCalories int       `json:"total_calories"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// personalInfo is the per-user biometric profile used by the energy model.
// A singleton: PUT overwrites the whole record.
type personalInfo struct {
	HeightCM      float64 `json:"height_cm"`
	Age           int     `json:"age"`
	WeightKG      float64 `json:"weight_kg"`
	Gender        string  `json:"gender"`
	ActivityLevel string  `json:"activity_level"`
}

// calorieResults holds the derived energy numbers. Cached in the store and
// rebuilt whenever personalInfo changes; all values are rounded integers.
type calorieResults struct {
	BMR        int `json:"bmr"`
	TDEE       int `json:"tdee"`
	WeightLoss int `json:"weight_loss"`
	WeightGain int `json:"weight_gain"`
}

// weightGoal is the single active goal per user, replaced wholesale.
// WeeklyTarget is |target-current|/weeks and is non-negative regardless of
// GoalType; the declared type is not cross-validated against the sign.
type weightGoal struct {
	CurrentWeight  float64 `json:"current_weight"`
	TargetWeight   float64 `json:"target_weight"`
	GoalType       string  `json:"goal_type"`
	TimeframeWeeks int     `json:"timeframe_weeks"`
	WeeklyTarget   float64 `json:"weekly_target"`
}

/* ─── Request / response types ───────────────────────────────────────── */

// createWeightEntryRequest is the body for POST /api/weight-log.
// Date defaults to today when omitted.
type createWeightEntryRequest struct {
	Date     string  `json:"date"`
	WeightKG float64 `json:"weight_kg"`
	Note     string  `json:"note"`
}

// createCalorieEntryRequest is the body for POST /api/calorie-log.
// Macro grams must be non-negative; total calories are derived server-side.
type createCalorieEntryRequest struct {
	Date     string   `json:"date"`
	MealName string   `json:"meal_name"`
	CarbsG   *float64 `json:"carbs_g"`
	ProteinG *float64 `json:"protein_g"`
	FatG     *float64 `json:"fat_g"`
	Note     string   `json:"note"`
}

// createGoalRequest is the body for POST /api/goal.
type createGoalRequest struct {
	CurrentWeight  float64 `json:"current_weight"`
	TargetWeight   float64 `json:"target_weight"`
	GoalType       string  `json:"goal_type"`
	TimeframeWeeks int     `json:"timeframe_weeks"`
}

// dashboardSummary is the response shape for GET /api/dashboard. Pointer
// fields are nil (omitted) when no history exists yet.
type dashboardSummary struct {
	CurrentWeightKG *float64 `json:"current_weight_kg,omitempty"`
	WeightChangeKG  *float64 `json:"weight_change_kg,omitempty"`
	TodayCalories   int      `json:"today_calories"`
	TodayCarbsG     float64  `json:"today_carbs_g"`
	TodayProteinG   float64  `json:"today_protein_g"`
	TodayFatG       float64  `json:"today_fat_g"`
}
