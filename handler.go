package main

import (
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler holds shared dependencies (store, logger, config) for all route
// handlers.
type Handler struct {
	store        *Store
	logger       *zap.Logger
	milestoneCap int
}

func newHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{
		store:        store,
		logger:       logger,
		milestoneCap: envInt("MILESTONE_CAP", defaultMilestoneCap),
	}
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// envInt reads an integer env var, falling back when unset or unparsable.
func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

/* ─── Routes ──────────────────────────────────────────────────────────── */

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.POST("/api/login", h.login)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())

	api.GET("/weight-log", h.getWeightLog)
	api.POST("/weight-log", h.createWeightEntry)
	api.DELETE("/weight-log/:id", h.deleteWeightEntry)

	api.GET("/calorie-log", h.getCalorieLog)
	api.POST("/calorie-log", h.createCalorieEntry)
	api.DELETE("/calorie-log/:id", h.deleteCalorieEntry)

	api.GET("/personal-info", h.getPersonalInfo)
	api.PUT("/personal-info", h.putPersonalInfo)
	api.GET("/energy", h.getEnergy)

	api.GET("/goal", h.getGoal)
	api.POST("/goal", h.postGoal)
	api.GET("/goal/roadmap", h.getGoalRoadmap)

	api.GET("/advice", h.getAdvice)

	api.GET("/foods/search", h.getFoodSearch)
	api.GET("/foods/analyze", h.getFoodAnalysis)

	api.GET("/dashboard", h.getDashboard)
}
