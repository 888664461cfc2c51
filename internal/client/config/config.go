package config

import "time"

// Config holds runtime settings for the journal CLI.
//
// Fields:
//   - APIBaseURL: base URL of the remote journal API.
//   - AWSRegion: region of the identity provider's user pool.
//   - UserPoolID / UserPoolClientID: identity provider configuration. When
//     either is empty the client runs with authentication disabled instead
//     of failing.
//   - SessionDBPath: local sqlite file persisting the signed-in session.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	APIBaseURL       string
	AWSRegion        string
	UserPoolID       string
	UserPoolClientID string
	SessionDBPath    string
	RequestTimeout   time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.AWSRegion = "us-east-1"
	c.SessionDBPath = "inkwell.db"
	c.RequestTimeout = 15 * time.Second
}

// PoolConfigured reports whether the identity provider is fully configured.
func (c *Config) PoolConfigured() bool {
	return c.UserPoolID != "" && c.UserPoolClientID != ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including a .env file when present), a JSON file
// (if given), and command-line flags. Later sources take precedence over
// earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
