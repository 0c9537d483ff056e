package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL string

	// Auth0
	Auth0Domain   string
	Auth0Audience string
	Auth0ClientID string

	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// MinIO
	MinIO MinIOConfig

	// LLM gateway (C8): primary + fallback providers, spec §4.6.
	AnthropicAPIKey string
	OpenAIAPIKey    string
	SarvamAPIKey    string

	// Optional cloud document intelligence collaborator (C2 §4.3 step 1).
	DocIntelEndpoint string
	DocIntelAPIKey   string

	// Optional web search tool backing the agent's knowledge lookups (C7/C9).
	SearchAPIKey   string
	SearchEndpoint string

	// Zoho Books credentials, read from ZOHO_*; no component uses them.
	ZohoClientID     string
	ZohoClientSecret string
	ZohoRefreshToken string

	// Government MSME registry API key, read from GOV_MSME_API_KEY; no
	// component uses it (the MUDRA DPR engine makes no registry lookup).
	GovMSMEAPIKey string

	// MongoDB connection string, read from MONGO_URI; no component uses it.
	// The knowledge index is always built from the built-in seed corpus.
	MongoURI string

	// ActionTokenSecret signs the prepare/confirm action tokens tools.ActionTokens
	// issues (spec §4.5 "Prepare-action writes").
	ActionTokenSecret string
}

// MinIOConfig holds MinIO/S3 configuration
type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		Auth0Domain:   getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience: getEnv("AUTH0_AUDIENCE", ""),
		Auth0ClientID: getEnv("AUTH0_CLIENT_ID", ""),
		Port:          getEnv("PORT", "8080"),
		CORSOrigins:   strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:           getEnv("ENV", "development"),
		MinIO: MinIOConfig{
			Endpoint:        getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("MINIO_ACCESS_KEY", ""),
			SecretAccessKey: getEnv("MINIO_SECRET_KEY", ""),
			BucketName:      getEnv("MINIO_BUCKET", "fortuna-images"),
			UseSSL:          getEnv("MINIO_USE_SSL", "false") == "true",
		},
		AnthropicAPIKey:   getEnv("ANTHROPIC_API_KEY", ""),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		SarvamAPIKey:      getEnv("SARVAM_API_KEY", ""),
		DocIntelEndpoint:  getEnv("DOCINTEL_ENDPOINT", ""),
		DocIntelAPIKey:    getEnv("DOCINTEL_API_KEY", ""),
		SearchAPIKey:      getEnv("SEARCH_API_KEY", ""),
		SearchEndpoint:    getEnv("SEARCH_ENDPOINT", ""),
		ZohoClientID:      getEnv("ZOHO_CLIENT_ID", ""),
		ZohoClientSecret:  getEnv("ZOHO_CLIENT_SECRET", ""),
		ZohoRefreshToken:  getEnv("ZOHO_REFRESH_TOKEN", ""),
		GovMSMEAPIKey:     getEnv("GOV_MSME_API_KEY", ""),
		MongoURI:          getEnv("MONGO_URI", ""),
		ActionTokenSecret: getEnv("ACTION_TOKEN_SECRET", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Auth0Domain == "" {
		return fmt.Errorf("AUTH0_DOMAIN is required")
	}
	if c.Auth0Audience == "" {
		return fmt.Errorf("AUTH0_AUDIENCE is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
