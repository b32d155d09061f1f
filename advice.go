package main

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// advice is one piece of generated guidance.
type advice struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Message  string `json:"message"`
}

// trendBandKG is the dead zone around zero change. Deltas strictly inside
// ±trendBandKG over the last three entries count as stable; a delta of
// exactly half a kilogram already classifies as a trend.
const trendBandKG = 0.5

// weightTrendOf classifies the recent direction of the weight log from its
// last three entries: "increasing", "decreasing", or "stable". Entries are
// expected in date order. ok=false with fewer than three entries.
func weightTrendOf(entries []weightEntry) (string, bool) {
	if len(entries) < 3 {
		return "", false
	}
	last := entries[len(entries)-3:]
	delta := last[2].WeightKG - last[0].WeightKG
	switch {
	case delta >= trendBandKG:
		return "increasing", true
	case delta <= -trendBandKG:
		return "decreasing", true
	default:
		return "stable", true
	}
}

// calorieAnalysis summarizes recent intake against the user's TDEE.
type calorieAnalysis struct {
	AverageCalories int    // trailing 7-day daily average
	Status          string // "good", "high", or "low" vs TDEE ±10%
}

// analyzeCalories takes the mean total of the entries dated within the
// trailing 7 days and compares it to TDEE with a ±10% tolerance band.
// ok=false when the window has no entries at all.
func analyzeCalories(entries []calorieEntry, tdee int, now time.Time) (calorieAnalysis, bool) {
	cutoff := now.AddDate(0, 0, -7)
	total, count := 0, 0
	for _, e := range entries {
		d := e.Date.Time
		if d.After(cutoff) && !d.After(now) {
			total += e.TotalCalories
			count++
		}
	}
	if count == 0 {
		return calorieAnalysis{}, false
	}
	avg := int(math.Round(float64(total) / float64(count)))

	pctDiff := 100 * float64(avg-tdee) / float64(tdee)
	status := "low"
	switch {
	case math.Abs(pctDiff) < 10:
		status = "good"
	case pctDiff > 10:
		status = "high"
	}
	return calorieAnalysis{AverageCalories: avg, Status: status}, true
}

// macroPercents holds the rounded share of recent calories from each macro.
type macroPercents struct {
	Protein int
	Carbs   int
	Fat     int
}

// macroPercentsOf computes calorie-weighted macro percentages over the 7
// days ending at now, rounded to whole percent. ok=false when the window has
// no entries or zero calories.
func macroPercentsOf(entries []calorieEntry, now time.Time) (macroPercents, bool) {
	cutoff := now.AddDate(0, 0, -7)
	var carbs, protein, fat float64
	for _, e := range entries {
		d := e.Date.Time
		if d.After(cutoff) && !d.After(now) {
			carbs += e.CarbsG
			protein += e.ProteinG
			fat += e.FatG
		}
	}
	total := carbs*4 + protein*4 + fat*9
	if total <= 0 {
		return macroPercents{}, false
	}
	return macroPercents{
		Protein: int(math.Round(100 * protein * 4 / total)),
		Carbs:   int(math.Round(100 * carbs * 4 / total)),
		Fat:     int(math.Round(100 * fat * 9 / total)),
	}, true
}

// generateAdvice runs every rule against the user's logs and returns the
// matches in a fixed order: weight trend, calorie status, macro balance, then
// a single generic fallback when nothing else fired. energy may be nil when
// personal info was never submitted; calorie rules are skipped then.
func generateAdvice(weights []weightEntry, calories []calorieEntry, energy *calorieResults, now time.Time) []advice {
	var out []advice

	if trend, ok := weightTrendOf(weights); ok {
		switch trend {
		case "increasing":
			out = append(out, advice{
				Category: "weight_trend",
				Title:    "Weight trending up",
				Message:  "Your last few weigh-ins show an upward trend. Review your recent intake if this is not intended.",
			})
		case "decreasing":
			out = append(out, advice{
				Category: "weight_trend",
				Title:    "Weight trending down",
				Message:  "Your last few weigh-ins show a downward trend. Keep it up if losing weight is your goal.",
			})
		case "stable":
			out = append(out, advice{
				Category: "weight_trend",
				Title:    "Weight holding steady",
				Message:  "Your weight has moved less than half a kilogram across recent weigh-ins.",
			})
		}
	}

	if energy != nil {
		if ca, ok := analyzeCalories(calories, energy.TDEE, now); ok {
			switch ca.Status {
			case "high":
				out = append(out, advice{
					Category: "calories",
					Title:    "Intake above maintenance",
					Message:  fmt.Sprintf("You averaged %d kcal/day over the past week, more than 10%% above your estimated needs of %d kcal.", ca.AverageCalories, energy.TDEE),
				})
			case "low":
				out = append(out, advice{
					Category: "calories",
					Title:    "Intake below maintenance",
					Message:  fmt.Sprintf("You averaged %d kcal/day over the past week, more than 10%% below your estimated needs of %d kcal.", ca.AverageCalories, energy.TDEE),
				})
			case "good":
				out = append(out, advice{
					Category: "calories",
					Title:    "Intake on target",
					Message:  fmt.Sprintf("You averaged %d kcal/day over the past week, within 10%% of your estimated needs of %d kcal.", ca.AverageCalories, energy.TDEE),
				})
			}
		}
	}

	if pct, ok := macroPercentsOf(calories, now); ok {
		if pct.Protein < 15 {
			out = append(out, advice{
				Category: "macros",
				Title:    "Protein looks low",
				Message:  "Less than 15% of your recent calories came from protein. Consider adding lean meat, fish, eggs, or tofu.",
			})
		}
		if pct.Carbs > 60 {
			out = append(out, advice{
				Category: "macros",
				Title:    "Carbs look high",
				Message:  "More than 60% of your recent calories came from carbohydrates. Swapping some for protein or fat can improve balance.",
			})
		}
		if pct.Fat < 20 {
			out = append(out, advice{
				Category: "macros",
				Title:    "Fat looks low",
				Message:  "Less than 20% of your recent calories came from fat. Nuts, avocado, and olive oil are easy additions.",
			})
		}
	}

	if len(out) == 0 {
		out = append(out, advice{
			Category: "general",
			Title:    "Keep logging",
			Message:  "Log your weight and meals regularly and advice will appear here as patterns emerge.",
		})
	}
	return out
}

// getAdvice runs the advice rules over the caller's logs.
// GET /api/advice.
func (h *Handler) getAdvice(c *gin.Context) {
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

	var energy *calorieResults
	if res, err := h.store.EnergyResults(userID); err == nil {
		energy = &res
	}

	c.JSON(http.StatusOK, gin.H{
		"advice": generateAdvice(weights, calories, energy, time.Now()),
	})
}
