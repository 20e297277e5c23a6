package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/enem-prep/backend/internal/analysis"
	"github.com/enem-prep/backend/internal/auth"
	"github.com/enem-prep/backend/internal/config"
	"github.com/enem-prep/backend/internal/database"
	"github.com/enem-prep/backend/internal/middleware"
	"github.com/enem-prep/backend/internal/simulation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	scales, err := cfg.Scales()
	if err != nil {
		log.Fatalf("Failed to load reporting scales: %v", err)
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	secret := []byte(cfg.JWTSecret)

	// Initialize handlers
	authHandler := auth.NewHandler(db, secret)

	simService := simulation.NewService(simulation.NewStore(db), scales)
	simHandler := simulation.NewHandler(simService)

	var llm analysis.LLMClient
	if cfg.AnthropicEnabled {
		llm = analysis.NewAPIClient(cfg.AnthropicModel)
		log.Println("Analysis commentary using Anthropic API:", cfg.AnthropicModel)
	}
	analysisService := analysis.NewService(analysis.NewStore(db), llm)
	analysisHandler := analysis.NewHandler(analysisService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(secret))
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	simHandler.RegisterRoutes(api, protected)
	analysisHandler.RegisterRoutes(protected)

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

	log.Printf("Server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
