package config

import (
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// Engine tuning
	GapConfidenceThreshold      int
	OvernightGapHours           int
	EveningHour                 int
	MorningCutoffHour           int
	FlightTransferBufferMinutes int
	LocalTransferBufferMinutes  int

	// Optional LLM-backed duration inference
	OpenAIAPIKey string
	OpenAIModel  string
}

// Load reads configuration from the environment with sensible defaults
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/itineraries.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	return &Config{
		Port:      port,
		DBPath:    dbPath,
		JWTSecret: jwtSecret,

		GapConfidenceThreshold:      envInt("GAP_CONFIDENCE_THRESHOLD", 80),
		OvernightGapHours:           envInt("OVERNIGHT_GAP_HOURS", 8),
		EveningHour:                 envInt("EVENING_HOUR", 18),
		MorningCutoffHour:           envInt("MORNING_CUTOFF_HOUR", 15),
		FlightTransferBufferMinutes: envInt("FLIGHT_TRANSFER_BUFFER_MINUTES", 120),
		LocalTransferBufferMinutes:  envInt("LOCAL_TRANSFER_BUFFER_MINUTES", 15),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  os.Getenv("OPENAI_MODEL"),
	}
}

// envInt reads an integer environment variable, falling back on absence
// or parse failure.
func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
