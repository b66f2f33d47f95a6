package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOverrideConfig(t *testing.T) {
	preset := &Config{
		FixturesDir:   "/etc/gitmock/fixtures",
		CaseSensitive: false,
		Debug:         false,
	}
	args := &Config{
		Debug: true,
		Mode:  "security",
	}

	merged := overrideConfig(preset, args)
	// unset CLI values keep the config file values
	require.Equal(t, "/etc/gitmock/fixtures", merged.FixturesDir)
	// set CLI values win
	require.True(t, merged.Debug)
	require.Equal(t, "security", merged.Mode)
	require.False(t, merged.List)
}

func TestOverrideConfigFixturesDir(t *testing.T) {
	preset := &Config{FixturesDir: "/from/file"}
	args := &Config{FixturesDir: "/from/cli"}
	require.Equal(t, "/from/cli", overrideConfig(preset, args).FixturesDir)
}

func TestOsConfigDirectory(t *testing.T) {
	// only shape, not content: the directory is env dependent
	var tests = []string{"linux", "darwin", "windows"}
	for _, osName := range tests {
		_ = osConfigDirectory(osName)
	}
	require.Empty(t, osConfigDirectory("plan9"))
}
