package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/edusmart/backend/internal/auth"
	"github.com/edusmart/backend/internal/database"
	"github.com/edusmart/backend/internal/flows"
	"github.com/edusmart/backend/internal/goals"
	"github.com/edusmart/backend/internal/middleware"
	"github.com/edusmart/backend/internal/performance"
	"github.com/edusmart/backend/internal/session"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Services
	flowService := flows.NewService()
	performanceService := performance.NewService(performance.NewStore(db))
	goalService := goals.NewService(goals.NewStore(db))

	manager := session.NewManager(
		minutesEnv("SESSION_TTL_MINUTES", 30),
		minutesEnv("SESSION_SWEEP_MINUTES", 5),
	)
	engine := session.NewEngine(flowService, performanceService, performanceService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	manager.Start(ctx)

	// Handlers
	authHandler := auth.NewHandler(db)
	sessionHandler := session.NewHandler(manager, engine)
	performanceHandler := performance.NewHandler(performanceService, goalService)
	goalHandler := goals.NewHandler(goalService)
	flowHandler := flows.NewHandler(flowService, goalService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/practice/start", sessionHandler.Start).Methods("POST")
	protected.HandleFunc("/practice/{id}/question", sessionHandler.Question).Methods("POST")
	protected.HandleFunc("/practice/{id}/answer", sessionHandler.Answer).Methods("POST")
	protected.HandleFunc("/practice/{id}/next", sessionHandler.Next).Methods("POST")
	protected.HandleFunc("/practice/{id}", sessionHandler.Get).Methods("GET")
	protected.HandleFunc("/practice/{id}", sessionHandler.Abandon).Methods("DELETE")

	protected.HandleFunc("/performance/dashboard", performanceHandler.Dashboard).Methods("GET")
	protected.HandleFunc("/performance/progress", performanceHandler.Progress).Methods("GET")
	protected.HandleFunc("/profile/age", performanceHandler.GetAge).Methods("GET")
	protected.HandleFunc("/profile/age", performanceHandler.SetAge).Methods("PUT")
	protected.HandleFunc("/profile/data", performanceHandler.ResetData).Methods("DELETE")

	protected.HandleFunc("/goals", goalHandler.List).Methods("GET")
	protected.HandleFunc("/goals", goalHandler.Create).Methods("POST")
	protected.HandleFunc("/goals/import", goalHandler.Import).Methods("POST")
	protected.HandleFunc("/goals/{id}/toggle", goalHandler.Toggle).Methods("PUT")
	protected.HandleFunc("/goals/{id}", goalHandler.Delete).Methods("DELETE")

	protected.HandleFunc("/flows/lesson-plan", flowHandler.LessonPlan).Methods("POST")
	protected.HandleFunc("/flows/grade-essay", flowHandler.GradeEssay).Methods("POST")
	protected.HandleFunc("/flows/career-roadmap", flowHandler.CareerRoadmap).Methods("POST")
	protected.HandleFunc("/flows/recommendations", flowHandler.Recommendations).Methods("POST")
	protected.HandleFunc("/flows/language-tutor", flowHandler.LanguageTutor).Methods("POST")
	protected.HandleFunc("/flows/solve", flowHandler.SolveProblem).Methods("POST")
	protected.HandleFunc("/flows/recommend-courses", flowHandler.RecommendCourses).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func minutesEnv(key string, fallback int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Minute
		}
	}
	return time.Duration(fallback) * time.Minute
}
