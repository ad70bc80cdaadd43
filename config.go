package main

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI   string
	MongoDB    string
	ImageryURI string
	JWTSecret  string
	Port       string
	ModelDir   string
}

func mustConfig() Config {
	// Optional .env for local development; deployments set real env vars.
	_ = godotenv.Load()

	cfg := Config{
		MongoURI:   getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:    getenv("MONGO_DB", "bluecarbon"),
		ImageryURI: getenv("IMAGERY_URL", "http://127.0.0.1:8000"),
		JWTSecret:  getenv("JWT_SECRET", "change_me"),
		Port:       getenv("PORT", "8080"),
		ModelDir:   getenv("MODEL_DIR", "data/models/carbon_estimation"),
	}

	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
