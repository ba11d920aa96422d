package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/skyfare/booking-wizard/internal/models"
)

// Config holds all configuration for the server and worker.
type Config struct {
	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Temporal
	TemporalHost string
	TaskQueue    string

	// Checkout flow
	CheckoutVariant models.CheckoutVariant

	// Persistence sink (MongoDB)
	MongoURI        string
	MongoDB         string
	SinkCollection  string

	// Visitor-id cache (Redis; empty address means in-memory)
	RedisAddr string

	// Confirmation archive (Postgres; empty DSN disables archiving)
	DatabaseURL string
}

// Load reads configuration from the environment, with a .env file if present.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:         getEnv("API_PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 15)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 15)) * time.Second,

		TemporalHost: getEnv("TEMPORAL_HOST", "localhost:7233"),
		TaskQueue:    getEnv("TASK_QUEUE", "booking-wizard-queue"),

		CheckoutVariant: variant(getEnv("CHECKOUT_VARIANT", string(models.VariantOtpGated))),

		MongoURI:       getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "bookingwizard"),
		SinkCollection: getEnv("SINK_COLLECTION", "pays"),

		RedisAddr: getEnv("REDIS_ADDR", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),
	}
}

func variant(s string) models.CheckoutVariant {
	if s == string(models.VariantDirectConfirm) {
		return models.VariantDirectConfirm
	}
	return models.VariantOtpGated
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}
