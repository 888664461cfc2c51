package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"inkwell"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	require.Equal(t, "us-east-1", cfg.AWSRegion)
	require.Equal(t, "inkwell.db", cfg.SessionDBPath)
	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
	require.Empty(t, cfg.APIBaseURL)
	require.False(t, cfg.PoolConfigured())
}

func TestPoolConfigured_RequiresBothIdentifiers(t *testing.T) {
	cfg := Config{UserPoolID: "pool"}
	require.False(t, cfg.PoolConfigured())

	cfg.UserPoolClientID = "client"
	require.True(t, cfg.PoolConfigured())
}

func TestParseEnv_OverlaysValues(t *testing.T) {
	withArgs(t)
	t.Setenv("API_URL", "https://api.example.com")
	t.Setenv("COGNITO_USER_POOL_ID", "us-east-1_abc")
	t.Setenv("COGNITO_CLIENT_ID", "client-123")
	t.Setenv("REQUEST_TIMEOUT", "30")

	cfg := LoadConfig()
	require.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	require.True(t, cfg.PoolConfigured())
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestParseFlags_OverridesEnv(t *testing.T) {
	t.Setenv("API_URL", "https://env.example.com")
	withArgs(t, "-a", "https://flag.example.com", "-t", "5")

	cfg := LoadConfig()
	require.Equal(t, "https://flag.example.com", cfg.APIBaseURL)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestParseJson_LoadsSelectedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"api_base_url": "https://json.example.com",
		"user_pool_id": "us-east-1_json",
		"user_pool_client_id": "client-json",
		"request_timeout": "45s"
	}`), 0o600))
	withArgs(t, "-c", path)

	cfg := LoadConfig()
	require.Equal(t, "https://json.example.com", cfg.APIBaseURL)
	require.Equal(t, "us-east-1_json", cfg.UserPoolID)
	require.Equal(t, 45*time.Second, cfg.RequestTimeout)
}

func TestParseJson_FlagsStillWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_base_url": "https://json.example.com"}`), 0o600))
	withArgs(t, "-c", path, "-a", "https://flag.example.com")

	cfg := LoadConfig()
	require.Equal(t, "https://flag.example.com", cfg.APIBaseURL)
}
