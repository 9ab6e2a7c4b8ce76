package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Pipeline    PipelineConfig
	Repeats     RepeatConfig
	StoragePath string
	LogLevel    string

	// CueRulesPath optionally points at a YAML file with extra cue
	// normalization rules and exclusion patterns.
	CueRulesPath string
}

type ServerConfig struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type PipelineConfig struct {
	AnalysisWorkers   int
	StorageWorkers    int
	QueueSize         int
	ProcessingTimeout time.Duration
}

type RepeatConfig struct {
	ContextRadius   int
	HighlightMarker string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Address:      ":" + getEnv("PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 30*time.Second),
		},
		Pipeline: PipelineConfig{
			AnalysisWorkers:   getEnvAsInt("ANALYSIS_WORKERS", 4),
			StorageWorkers:    getEnvAsInt("STORAGE_WORKERS", 2),
			QueueSize:         getEnvAsInt("QUEUE_SIZE", 1000),
			ProcessingTimeout: getEnvAsDuration("PROCESSING_TIMEOUT", 5*time.Minute),
		},
		Repeats: RepeatConfig{
			ContextRadius:   getEnvAsInt("REPEAT_CONTEXT_RADIUS", 5),
			HighlightMarker: getEnv("REPEAT_HIGHLIGHT_MARKER", "**"),
		},
		StoragePath:  getEnv("STORAGE_PATH", "./data"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		CueRulesPath: getEnv("CUE_RULES_PATH", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Failed to parse %s as integer: %v, using default: %d", key, err, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Failed to parse %s as duration: %v, using default: %v", key, err, defaultValue)
		return defaultValue
	}
	return value
}
