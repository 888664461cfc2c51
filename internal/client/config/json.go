package config

import (
	"encoding/json"
	"os"

	"inkwell/internal/flagx"
	"inkwell/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "15s" or as integer nanoseconds. Parsed values are copied into the runtime
// Config.
type JsonConfig struct {
	APIBaseURL       string         `json:"api_base_url"`
	AWSRegion        string         `json:"aws_region"`
	UserPoolID       string         `json:"user_pool_id"`
	UserPoolClientID string         `json:"user_pool_client_id"`
	SessionDBPath    string         `json:"session_db_path"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values from the JSON file selected via the
// -c or -config flags; with no such flag it is a no-op. Only fields present
// in the file override earlier values. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.AWSRegion != "" {
		cfg.AWSRegion = jc.AWSRegion
	}
	if jc.UserPoolID != "" {
		cfg.UserPoolID = jc.UserPoolID
	}
	if jc.UserPoolClientID != "" {
		cfg.UserPoolClientID = jc.UserPoolClientID
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
