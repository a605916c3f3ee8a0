package config

import (
	"log"
	"os"
	"strings"
)

// Config holds the screener's runtime configuration, read once at boot.
type Config struct {
	Port               string
	CORSAllowOrigin    []string
	ObjectStoreType    string
	LocalStoreDir      string
	AWSRegion          string
	S3Bucket           string
	S3Prefix           string
	SSEKMSKeyID        string
	SQSQueueURL        string
	LLMProvider        string
	LLMModel           string
	ScoringVersion     string
	DatabaseURL        string
	Env                string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string
}

// Load reads configuration from the environment. Local .env files are
// applied first so dev setups need no exported variables.
func Load() Config {
	loadEnvFiles(".env", "cmd/.env")

	env := canonicalEnv(envOr("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	store := strings.ToLower(strings.TrimSpace(envOr("OBJECT_STORE", "local")))
	if store != "s3" {
		store = "local"
	}

	return Config{
		Port:               envOr("PORT", "8080"),
		CORSAllowOrigin:    splitCSV(envOr("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ObjectStoreType:    store,
		LocalStoreDir:      envOr("LOCAL_STORE_DIR", "./data"),
		AWSRegion:          os.Getenv("AWS_REGION"),
		S3Bucket:           os.Getenv("S3_BUCKET"),
		S3Prefix:           os.Getenv("S3_PREFIX"),
		SSEKMSKeyID:        os.Getenv("SSE_KMS_KEY_ID"),
		SQSQueueURL:        os.Getenv("RS_SQS_QUEUE_URL"),
		LLMProvider:        os.Getenv("LLM_PROVIDER"),
		LLMModel:           os.Getenv("LLM_MODEL"),
		ScoringVersion:     envOr("SCORING_VERSION", "rules:v1"),
		DatabaseURL:        dbURL,
		Env:                env,
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		UIRedirectURL:      os.Getenv("UI_REDIRECT_URL"),
	}
}

func envOr(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func canonicalEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
