package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// newTestServer wires a router against a temp-dir store with one seeded user
// and returns both. Requests authenticate with "Bearer test-token".
func newTestServer(t *testing.T) (*gin.Engine, *Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newTestStore(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	if err := store.CreateUser(user{
		ID:        "user-1",
		Username:  "alice",
		Email:     "a@example.com",
		AuthToken: "test-token",
		Password:  string(hash),
		CreatedAt: time.Now(),
	}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	h := newHandler(store, zap.NewNop())
	router := gin.New()
	h.registerRoutes(router)
	return router, store
}

// doJSON performs a request with the test user's bearer token and returns the
// recorder. body may be empty for GET/DELETE.
func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

/* ─── Auth tests ─────────────────────────────────────────────────────── */

func TestLogin(t *testing.T) {
	router, _ := newTestServer(t)

	cases := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid credentials", `{"username":"alice","password":"secret"}`, http.StatusOK},
		{"wrong password", `{"username":"alice","password":"wrong"}`, http.StatusUnauthorized},
		{"unknown user", `{"username":"bob","password":"secret"}`, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", w.Code, tc.wantStatus, w.Body.String())
			}
			if tc.wantStatus == http.StatusOK {
				var resp map[string]string
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("unmarshal: %v", err)
				}
				if resp["token"] != "test-token" || resp["user_id"] != "user-1" {
					t.Errorf("response = %v", resp)
				}
			}
		})
	}
}

func TestAuthMiddleware_RejectsBadTokens(t *testing.T) {
	router, _ := newTestServer(t)

	for _, header := range []string{"", "test-token", "Bearer wrong-token"} {
		req := httptest.NewRequest(http.MethodGet, "/api/weight-log", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, w.Code)
		}
	}
}

/* ─── Log endpoint tests ─────────────────────────────────────────────── */

func TestWeightLogFlow(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(router, http.MethodPost, "/api/weight-log", `{"date":"2025-06-01","weight_kg":70.5,"note":"morning"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d (body: %s)", w.Code, w.Body.String())
	}
	var created weightEntry
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if created.ID == "" || created.WeightKG != 70.5 {
		t.Errorf("created = %+v", created)
	}

	w = doJSON(router, http.MethodGet, "/api/weight-log", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var listed []weightEntry
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Errorf("listed = %+v", listed)
	}

	w = doJSON(router, http.MethodDelete, "/api/weight-log/"+created.ID, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}
	w = doJSON(router, http.MethodDelete, "/api/weight-log/"+created.ID, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}

func TestWeightLog_Validation(t *testing.T) {
	router, _ := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"zero weight", `{"date":"2025-06-01","weight_kg":0}`},
		{"negative weight", `{"date":"2025-06-01","weight_kg":-5}`},
		{"bad date", `{"date":"June 1st","weight_kg":70}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/api/weight-log", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

// TestWeightLog_EmptyIsArray verifies an empty log serializes as [] rather
// than null.
func TestWeightLog_EmptyIsArray(t *testing.T) {
	router, _ := newTestServer(t)
	w := doJSON(router, http.MethodGet, "/api/weight-log", "")
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

// TestCalorieLog_TotalDerivedFromMacros verifies the server computes and
// stores total calories at creation.
func TestCalorieLog_TotalDerivedFromMacros(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(router, http.MethodPost, "/api/calorie-log",
		`{"date":"2025-06-01","meal_name":"phở bò","carbs_g":50,"protein_g":25,"fat_g":15}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d (body: %s)", w.Code, w.Body.String())
	}
	var created calorieEntry
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// 50*4 + 25*4 + 15*9 = 435
	if created.TotalCalories != 435 {
		t.Errorf("TotalCalories = %d, want 435", created.TotalCalories)
	}
}

func TestCalorieLog_Validation(t *testing.T) {
	router, _ := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing meal name", `{"date":"2025-06-01","carbs_g":50}`},
		{"negative macro", `{"date":"2025-06-01","meal_name":"x","protein_g":-1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, "/api/calorie-log", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

/* ─── Profile and planner endpoint tests ─────────────────────────────── */

// TestPersonalInfoAndEnergy verifies PUT /api/personal-info computes energy
// results that GET /api/energy then serves.
func TestPersonalInfoAndEnergy(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(router, http.MethodGet, "/api/energy", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("energy before profile: status = %d, want 404", w.Code)
	}

	w = doJSON(router, http.MethodPut, "/api/personal-info",
		`{"height_cm":175,"age":25,"weight_kg":70,"gender":"male","activity_level":"moderate"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("put status = %d (body: %s)", w.Code, w.Body.String())
	}

	w = doJSON(router, http.MethodGet, "/api/energy", "")
	if w.Code != http.StatusOK {
		t.Fatalf("energy status = %d", w.Code)
	}
	var res calorieResults
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.BMR != 1674 || res.TDEE != 2594 {
		t.Errorf("energy = %+v, want BMR=1674 TDEE=2594", res)
	}
}

func TestPersonalInfo_Validation(t *testing.T) {
	router, _ := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"bad activity level", `{"height_cm":175,"age":25,"weight_kg":70,"gender":"male","activity_level":"extreme"}`},
		{"bad gender", `{"height_cm":175,"age":25,"weight_kg":70,"gender":"other","activity_level":"moderate"}`},
		{"zero height", `{"height_cm":0,"age":25,"weight_kg":70,"gender":"male","activity_level":"moderate"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPut, "/api/personal-info", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

// TestGoalRoadmapFlow exercises the full planner path: profile, goal, then
// roadmap with milestones and a meal plan.
func TestGoalRoadmapFlow(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(router, http.MethodGet, "/api/goal/roadmap", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("roadmap without goal: status = %d, want 404", w.Code)
	}

	doJSON(router, http.MethodPut, "/api/personal-info",
		`{"height_cm":175,"age":25,"weight_kg":70,"gender":"male","activity_level":"moderate"}`)

	w = doJSON(router, http.MethodPost, "/api/goal",
		`{"current_weight":70,"target_weight":65,"goal_type":"lose","timeframe_weeks":10}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("goal status = %d (body: %s)", w.Code, w.Body.String())
	}

	w = doJSON(router, http.MethodGet, "/api/goal/roadmap", "")
	if w.Code != http.StatusOK {
		t.Fatalf("roadmap status = %d (body: %s)", w.Code, w.Body.String())
	}
	var resp struct {
		Roadmap  roadmap  `json:"roadmap"`
		MealPlan mealPlan `json:"meal_plan"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// TDEE 2594 minus the 550 kcal/day deficit for 0.5 kg/week.
	if resp.Roadmap.TargetCalories != 2044 {
		t.Errorf("TargetCalories = %d, want 2044", resp.Roadmap.TargetCalories)
	}
	if len(resp.Roadmap.Milestones) != 10 {
		t.Errorf("got %d milestones, want 10", len(resp.Roadmap.Milestones))
	}
	if len(resp.MealPlan.Breakfast) == 0 {
		t.Error("meal plan missing")
	}
}

/* ─── Food endpoint tests ────────────────────────────────────────────── */

func TestFoodEndpoints(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(router, http.MethodGet, "/api/foods/analyze?name=ph%E1%BB%9F&grams=200", "")
	if w.Code != http.StatusOK {
		t.Fatalf("analyze status = %d (body: %s)", w.Code, w.Body.String())
	}
	var portion foodPortion
	if err := json.Unmarshal(w.Body.Bytes(), &portion); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if portion.Calories != 170 {
		t.Errorf("Calories = %v, want 170", portion.Calories)
	}

	w = doJSON(router, http.MethodGet, "/api/foods/analyze?name=pizza&grams=100", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown food status = %d, want 404", w.Code)
	}

	w = doJSON(router, http.MethodGet, "/api/foods/search?q=c%C6%A1m", "")
	if w.Code != http.StatusOK {
		t.Fatalf("search status = %d", w.Code)
	}
	var search struct {
		Matches []string `json:"matches"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &search); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(search.Matches) != 2 {
		t.Errorf("matches = %v, want the two rice entries", search.Matches)
	}
}

/* ─── Dashboard tests ────────────────────────────────────────────────── */

func TestDashboard(t *testing.T) {
	router, store := newTestServer(t)

	// Two weigh-ins and a meal logged today, straight into the store.
	if err := store.AddWeightEntry("user-1", weightEntry{ID: "w1", Date: dateOf("2025-06-01"), WeightKG: 71}); err != nil {
		t.Fatalf("AddWeightEntry: %v", err)
	}
	if err := store.AddWeightEntry("user-1", weightEntry{ID: "w2", Date: dateOf("2025-06-10"), WeightKG: 70}); err != nil {
		t.Fatalf("AddWeightEntry: %v", err)
	}
	today := time.Now().Format("2006-01-02")
	if err := store.AddCalorieEntry("user-1", calorieEntry{ID: "c1", Date: dateOf(today), MealName: "phở", CarbsG: 34, ProteinG: 6, FatG: 1, TotalCalories: 169}); err != nil {
		t.Fatalf("AddCalorieEntry: %v", err)
	}

	w := doJSON(router, http.MethodGet, "/api/dashboard", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var summary dashboardSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if summary.CurrentWeightKG == nil || *summary.CurrentWeightKG != 70 {
		t.Errorf("CurrentWeightKG = %v, want 70", summary.CurrentWeightKG)
	}
	if summary.WeightChangeKG == nil || *summary.WeightChangeKG != -1 {
		t.Errorf("WeightChangeKG = %v, want -1", summary.WeightChangeKG)
	}
	if summary.TodayCalories != 169 {
		t.Errorf("TodayCalories = %d, want 169", summary.TodayCalories)
	}
}
