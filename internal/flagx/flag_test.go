package flagx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	got := FilterArgs([]string{"-a", "https://api.example.com", "-x", "1"}, []string{"-a"})
	require.Equal(t, []string{"-a", "https://api.example.com"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	got := FilterArgs([]string{"--config=conf.json", "-other=zzz"}, []string{"--config"})
	require.Equal(t, []string{"--config=conf.json"}, got)
}

func TestFilterArgs_FlagWithoutValue(t *testing.T) {
	got := FilterArgs([]string{"-a", "-b", "val"}, []string{"-a", "-b"})
	require.Equal(t, []string{"-a", "-b", "val"}, got)
}

func TestFilterArgs_NoMatches(t *testing.T) {
	got := FilterArgs([]string{"-q", "7"}, []string{"-a"})
	require.Empty(t, got)
	require.NotNil(t, got)
}
