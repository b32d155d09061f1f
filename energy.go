package main

import "math"

// activityMultipliers maps activity level strings to their TDEE multiplier.
// This is the single source of truth for valid activity levels — also used
// for input validation in putPersonalInfo.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// defaultActivityMultiplier is applied when a stored profile carries an
// activity level the table doesn't know. The API rejects unknown levels on
// write, so this only fires for data written before that check existed.
const defaultActivityMultiplier = 1.2

// computeEnergy computes BMR (Mifflin-St Jeor), TDEE, and the ±500 kcal/day
// loss/gain targets from a biometric profile. Returns ok=false when age,
// weight, height, or activity level is missing or non-positive; the caller
// must produce no result in that case.
func computeEnergy(info personalInfo) (calorieResults, bool) {
	if info.Age <= 0 || info.WeightKG <= 0 || info.HeightCM <= 0 || info.ActivityLevel == "" {
		return calorieResults{}, false
	}

	// BMR via Mifflin-St Jeor: different constant for male vs female.
	// Weight in kilograms, height in centimeters, age in integer years.
	bmr := 10*info.WeightKG + 6.25*info.HeightCM - 5*float64(info.Age)
	if info.Gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}

	mult, found := activityMultipliers[info.ActivityLevel]
	if !found {
		mult = defaultActivityMultiplier
	}
	tdee := bmr * mult

	// 500 kcal/day deficit or surplus targets roughly 0.5 kg/week.
	return calorieResults{
		BMR:        int(math.Round(bmr)),
		TDEE:       int(math.Round(tdee)),
		WeightLoss: int(math.Round(tdee - 500)),
		WeightGain: int(math.Round(tdee + 500)),
	}, true
}
