package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// foodProfile is the macro profile of a food per 100 grams.
type foodProfile struct {
	Calories float64 `json:"calories"`
	CarbsG   float64 `json:"carbs_g"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
}

// foodCatalogVersion identifies the composition table revision. Bump when
// entries are added or corrected so clients can invalidate cached lookups.
const foodCatalogVersion = 1

// foodCatalog is the static composition table: per-100g profiles keyed by
// lowercase food name. It is configuration data, not logic — extend it
// without touching the scaler. Slice order is the table's iteration order,
// which search results follow.
var foodCatalog = []struct {
	Name    string
	Profile foodProfile
}{
	// Grains & starches
	{"cơm trắng", foodProfile{130, 28, 2.7, 0.3}},
	{"cơm gạo lứt", foodProfile{111, 23, 2.6, 0.9}},
	{"bánh mì", foodProfile{265, 49, 9, 3.2}},
	{"phở", foodProfile{85, 17, 3, 0.5}},
	{"bún", foodProfile{109, 25, 2.2, 0.1}},
	{"mì", foodProfile{138, 25, 4.5, 0.9}},

	// Proteins
	{"thịt bò", foodProfile{250, 0, 26, 15}},
	{"thịt heo", foodProfile{242, 0, 27, 14}},
	{"thịt gà", foodProfile{165, 0, 31, 3.6}},
	{"cá", foodProfile{206, 0, 22, 12}},
	{"tôm", foodProfile{99, 0.2, 24, 0.3}},
	{"trứng gà", foodProfile{155, 1.1, 13, 11}},
	{"đậu hũ", foodProfile{76, 1.9, 8, 4.8}},

	// Vegetables
	{"rau cải", foodProfile{13, 2.2, 1.5, 0.2}},
	{"cà chua", foodProfile{18, 3.9, 0.9, 0.2}},
	{"dưa chuột", foodProfile{16, 4, 0.7, 0.1}},
	{"cà rốt", foodProfile{41, 10, 0.9, 0.2}},
	{"khoai tây", foodProfile{77, 17, 2, 0.1}},
	{"khoai lang", foodProfile{86, 20, 1.6, 0.1}},

	// Fruits
	{"chuối", foodProfile{89, 23, 1.1, 0.3}},
	{"táo", foodProfile{52, 14, 0.3, 0.2}},
	{"cam", foodProfile{47, 12, 0.9, 0.1}},
	{"xoài", foodProfile{60, 15, 0.8, 0.4}},
	{"nho", foodProfile{62, 16, 0.6, 0.2}},
	{"dưa hấu", foodProfile{30, 8, 0.6, 0.2}},

	// Dairy
	{"sữa tươi", foodProfile{42, 5, 3.4, 1}},
	{"sữa chua", foodProfile{59, 3.6, 10, 0.4}},
	{"phô mai", foodProfile{113, 4, 11, 6}},

	// Nuts & seeds
	{"đậu phộng", foodProfile{567, 16, 26, 49}},
	{"hạnh nhân", foodProfile{579, 22, 21, 50}},
	{"óc chó", foodProfile{654, 14, 15, 65}},
}

// foodPortion is a profile scaled to a specific mass.
type foodPortion struct {
	FoodName string  `json:"food_name"`
	MassG    float64 `json:"mass_g"`
	Calories float64 `json:"calories"`
	CarbsG   float64 `json:"carbs_g"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
}

// lookupFood finds a catalog entry by case-insensitive exact name match.
func lookupFood(name string) (foodProfile, bool) {
	lower := strings.ToLower(name)
	for _, f := range foodCatalog {
		if f.Name == lower {
			return f.Profile, true
		}
	}
	return foodProfile{}, false
}

// scaleFood scales a food's per-100g profile to massG grams. Pure function;
// ok=false when the food is unknown or the mass is non-positive.
func scaleFood(name string, massG float64) (foodPortion, bool) {
	if massG <= 0 {
		return foodPortion{}, false
	}
	profile, found := lookupFood(name)
	if !found {
		return foodPortion{}, false
	}
	m := massG / 100
	return foodPortion{
		FoodName: strings.ToLower(name),
		MassG:    massG,
		Calories: profile.Calories * m,
		CarbsG:   profile.CarbsG * m,
		ProteinG: profile.ProteinG * m,
		FatG:     profile.FatG * m,
	}, true
}

// maxFoodSearchResults caps interactive lookup suggestions.
const maxFoodSearchResults = 5

// searchFoods returns up to 5 catalog names containing the query,
// case-insensitively, in table order rather than by relevance.
func searchFoods(query string) []string {
	lower := strings.ToLower(query)
	matches := []string{}
	for _, f := range foodCatalog {
		if strings.Contains(f.Name, lower) {
			matches = append(matches, f.Name)
			if len(matches) == maxFoodSearchResults {
				break
			}
		}
	}
	return matches
}

/* ─── Handlers ───────────────────────────────────────────────────────── */

// getFoodSearch suggests catalog entries for interactive lookup.
// GET /api/foods/search?q=<query>.
func (h *Handler) getFoodSearch(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		apiError(c, http.StatusBadRequest, "q query param is required")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"catalog_version": foodCatalogVersion,
		"matches":         searchFoods(q),
	})
}

// getFoodAnalysis scales a catalog food to a given mass.
// GET /api/foods/analyze?name=<food>&grams=<mass>.
func (h *Handler) getFoodAnalysis(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		apiError(c, http.StatusBadRequest, "name query param is required")
		return
	}
	grams, err := strconv.ParseFloat(c.Query("grams"), 64)
	if err != nil || grams <= 0 {
		apiError(c, http.StatusBadRequest, "grams must be a positive number")
		return
	}
	portion, ok := scaleFood(name, grams)
	if !ok {
		apiError(c, http.StatusNotFound, "food not found in catalog")
		return
	}
	c.JSON(http.StatusOK, portion)
}
