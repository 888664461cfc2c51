package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables, loading a local .env
// file first when one exists.
//
// Recognized variables:
//
//	API_URL               base URL of the journal API
//	AWS_REGION            user pool region
//	COGNITO_USER_POOL_ID  identity provider pool identifier
//	COGNITO_CLIENT_ID     identity provider app client identifier
//	SESSION_DB_PATH       local session database file
//	REQUEST_TIMEOUT       per-request timeout in seconds
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.AWSRegion = v
	}
	if v := os.Getenv("COGNITO_USER_POOL_ID"); v != "" {
		cfg.UserPoolID = v
	}
	if v := os.Getenv("COGNITO_CLIENT_ID"); v != "" {
		cfg.UserPoolClientID = v
	}
	if v := os.Getenv("SESSION_DB_PATH"); v != "" {
		cfg.SessionDBPath = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil {
			cfg.RequestTimeout = time.Duration(seconds) * time.Second
		}
	}
}
