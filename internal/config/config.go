package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Server holds configuration for the publishing server binary.
type Server struct {
	BindAddr  string
	StorePath string

	GeminiAPIKey    string
	GeminiModel     string
	PublisherName   string
	SeedBatchSize   int
	MaxBatchSize    int
	GenerateTimeout time.Duration

	DefaultPage int
	MaxPage     int
}

// LoadServer builds a Server config from environment variables.
func LoadServer() (*Server, error) {
	c := &Server{
		BindAddr:  getEnv("SERVER_BIND_ADDR", "0.0.0.0:8080"),
		StorePath: getEnv("STORE_PATH", "data/content_db.json"),

		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		PublisherName:   getEnv("PUBLISHER_NAME", "Equinox Analytics"),
		SeedBatchSize:   getInt("SEED_BATCH_SIZE", 5),
		MaxBatchSize:    getInt("MAX_BATCH_SIZE", 20),
		GenerateTimeout: getDuration("GENERATE_TIMEOUT", "120s"),

		DefaultPage: getInt("API_PAGE_SIZE", 20),
		MaxPage:     getInt("API_MAX_PAGE_SIZE", 100),
	}

	if c.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY must be set")
	}
	if c.SeedBatchSize <= 0 {
		return nil, fmt.Errorf("SEED_BATCH_SIZE must be positive")
	}
	if c.MaxBatchSize <= 0 {
		return nil, fmt.Errorf("MAX_BATCH_SIZE must be positive")
	}
	if c.SeedBatchSize > c.MaxBatchSize {
		return nil, fmt.Errorf("SEED_BATCH_SIZE cannot exceed MAX_BATCH_SIZE")
	}
	if c.GenerateTimeout < 0 {
		return nil, fmt.Errorf("GENERATE_TIMEOUT cannot be negative")
	}
	if c.DefaultPage <= 0 {
		return nil, fmt.Errorf("API_PAGE_SIZE must be positive")
	}
	if c.MaxPage <= 0 {
		return nil, fmt.Errorf("API_MAX_PAGE_SIZE must be positive")
	}
	if c.DefaultPage > c.MaxPage {
		return nil, fmt.Errorf("API_PAGE_SIZE cannot exceed API_MAX_PAGE_SIZE")
	}

	return c, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}
