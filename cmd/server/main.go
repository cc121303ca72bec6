package main

import (
	"log"

	"github.com/joho/godotenv"

	"stockflow/internal/auth"
	"stockflow/internal/config"
	"stockflow/internal/handlers"
	"stockflow/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	cfg := config.Load()
	st := store.Connect(cfg.MongoURI, cfg.MongoDB)

	tokens := auth.NewTokens(cfg.JWTSecret)
	h := handlers.New(st, tokens)
	r := h.Router(cfg.CORSOrigin, cfg.AllowRegistration)

	if cfg.AllowRegistration {
		log.Println("Registration route is OPEN. Close it once your accounts exist.")
	} else {
		log.Println("Registration route is disabled.")
	}

	log.Println("Server starting on :" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
