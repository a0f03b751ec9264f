package utils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Run from a directory without a .env so only defaults apply.
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "cinema-scheduler", config.App.Name)
	assert.Equal(t, "8080", config.App.Port)
	assert.False(t, config.App.Debug)
	assert.Equal(t, "localhost", config.Database.Host)
	assert.Equal(t, "5432", config.Database.Port)
	assert.Equal(t, int32(10), config.Database.MaxConns)
	assert.True(t, config.Redis.Enabled)
	assert.Equal(t, "localhost:6379", config.Redis.Addr)
}
