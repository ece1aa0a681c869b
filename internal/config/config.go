// Package config centralises all environment configuration for the action.
// It should be imported only by `cmd` (and test code). Business-logic layers
// receive an already-built Config instance via dependency-injection.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every runtime option the action needs.
// Keep it flat and simple—prefer primitive types over embedding structs.
type Config struct {
	// External services
	GitHubToken string

	// Vertex AI
	Project         string
	Location        string
	CredentialsFile string
	EmbeddingModel  string
	GenerationModel string

	// Retrieval
	CorpusPath string
	TopN       int
	Threshold  float64

	// Generation
	MaxTokens   int32
	Temperature float32
	TopP        float32

	// Action context, populated by the runner environment
	Repository string // "owner/name"
	EventName  string
	EventPath  string
}

// Load parses the environment (and an optional .env file) into Config.
// Missing required variables are an error so mis-configurations fail before
// any external call is made.
func Load() (Config, error) {
	// godotenv.Load() is a no-op if .env doesn't exist—safe in production.
	_ = godotenv.Load()

	cfg := Config{
		Location:        getEnv("GCP_LOCATION", "us-central1"),
		CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		EmbeddingModel:  getEnv("EMBEDDING_MODEL", "text-embedding-005"),
		GenerationModel: getEnv("GENERATION_MODEL", "gemini-2.0-flash-001"),
		CorpusPath:      getEnv("EMBEDDINGS_PATH", "embeddings.json"),
		TopN:            getInt("TOP_N", 3),
		Threshold:       getFloat("SCORE_THRESHOLD", 0.6),
		MaxTokens:       int32(getInt("MAX_OUTPUT_TOKENS", 1024)),
		Temperature:     float32(getFloat("TEMPERATURE", 0.2)),
		TopP:            float32(getFloat("TOP_P", 0.8)),
		Repository:      os.Getenv("GITHUB_REPOSITORY"),
		EventName:       os.Getenv("GITHUB_EVENT_NAME"),
		EventPath:       os.Getenv("GITHUB_EVENT_PATH"),
	}

	var err error
	if cfg.GitHubToken, err = must("GITHUB_TOKEN"); err != nil {
		return Config{}, err
	}
	if cfg.Project, err = must("GCP_PROJECT_ID"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// OwnerRepo splits Repository into its owner and name halves.
func (c Config) OwnerRepo() (string, string, error) {
	owner, name, ok := splitRepository(c.Repository)
	if !ok {
		return "", "", fmt.Errorf("GITHUB_REPOSITORY %q is not owner/name", c.Repository)
	}
	return owner, name, nil
}

func splitRepository(full string) (string, string, bool) {
	for i := 0; i < len(full); i++ {
		if full[i] == '/' {
			return full[:i], full[i+1:], i > 0 && i < len(full)-1
		}
	}
	return "", "", false
}

// must fetches a required env var.
func must(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("env var %s is required", key)
	}
	return val, nil
}

// getEnv returns env[key] if set, otherwise defaultVal.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getInt reads an integer from env, falling back to defaultVal.
func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("invalid %s=%q; using default %d", key, v, defaultVal)
	}
	return defaultVal
}

// getFloat reads a float from env, falling back to defaultVal.
func getFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid %s=%q; using default %g", key, v, defaultVal)
	}
	return defaultVal
}
