package config

import (
	"log"
	"os"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port              string
	MongoURI          string
	MongoDB           string
	JWTSecret         string
	AllowRegistration bool
	CORSOrigin        string
}

// Load reads configuration from environment variables with development
// defaults. JWT_SECRET has no default; running without one is fatal.
func Load() Config {
	cfg := Config{
		Port:              getenv("PORT", "8080"),
		MongoURI:          getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:           getenv("MONGODB_DB", "stockflow"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AllowRegistration: getenv("ALLOW_REGISTRATION", "true") == "true",
		CORSOrigin:        getenv("CORS_ORIGIN", "http://localhost:5173"),
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
