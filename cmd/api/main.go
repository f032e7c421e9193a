package main

import (
	"log"
	"os"
	"time"

	"cafeteria/internal/auth"
	"cafeteria/internal/db"
	"cafeteria/internal/menu"
	"cafeteria/internal/middleware"
	"cafeteria/internal/review"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"CAFETERIA_DB",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	database := db.Connect()
	defer database.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── AUTH ─────────────────────────
	userRepo := auth.NewSQLiteUserRepository(database)
	authService := auth.NewService(userRepo)
	authHandler := auth.NewHandler(authService)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// ───────────────────────── CORE REPOS ─────────────────────────
	menuRepo := menu.NewSQLiteRepository(database)
	reviewRepo := review.NewSQLiteRepository(database)

	// ───────────────────────── SERVICES ─────────────────────────
	menuService := menu.NewService(menuRepo)
	reviewService := review.NewService(reviewRepo)

	// ───────────────────────── HANDLERS ─────────────────────────
	menuHandler := menu.NewHandler(menuService)
	reviewHandler := review.NewHandler(reviewService)

	// ───────────────────────── MENU ROUTES ─────────────────────────
	api := r.Group("/api")
	{
		api.GET("/menu", menuHandler.GetMenu)
		api.GET("/menu/dates", menuHandler.ListDates)
		api.GET("/nutrition/:foodId", menuHandler.GetNutrition)

		// Swipe review flow; votes carry the user when a token is sent.
		api.GET("/reviews/items", reviewHandler.ReviewItems)
		api.POST("/reviews", middleware.OptionalAuthMiddleware(), reviewHandler.RecordVote)

		// Owned by the upload/enrichment side, not the importer.
		api.PUT("/foods/:foodId/image", middleware.AuthMiddleware(), menuHandler.UpdateFoodImage)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "3027"
	}

	log.Println("🚀 API running at http://localhost:" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
