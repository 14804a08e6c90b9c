package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("GRPC_ADDRESS", ":6000")
	t.Setenv("MONGODB_URI", "mongodb://a")
	t.Setenv("DATABASE_DSN", "postgres://b")
	t.Setenv("DATABASE_NAME", "school")
	t.Setenv("JWT_SECRET", "k")
	t.Setenv("DEFAULT_ROLE", "student")
	t.Setenv("LEGACY_STATUS_CODES", "false")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HEALTH_CHECK_INTERVAL", "3s")
	t.Setenv("STORE_CONNECT_TIMEOUT", "1m")
	t.Setenv("AVATAR_URL_VALIDITY", "5m")
	t.Setenv("S3_BUCKET", "avatars")

	var c Config
	c.LoadDefaults()
	require.NoError(t, parseEnv(&c))

	assert.Equal(t, "127.0.0.1:9000", c.EndpointAddr)
	assert.Equal(t, ":6000", c.EndpointAddrGRPC)
	assert.Equal(t, "postgres://b", c.DatabaseDSN, "DATABASE_DSN wins over MONGODB_URI")
	assert.Equal(t, "school", c.DatabaseName)
	assert.Equal(t, "k", c.SecretKey)
	assert.Equal(t, "student", c.DefaultRole)
	assert.False(t, c.LegacyStatusCodes)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 3*time.Second, c.HealthCheckInterval)
	assert.Equal(t, time.Minute, c.StoreConnectTimeout)
	assert.Equal(t, 5*time.Minute, c.AvatarURLValidity)
	assert.True(t, c.S3Enabled())
}

func TestParseEnv_Errors(t *testing.T) {
	tests := map[string]string{
		"LEGACY_STATUS_CODES":   "maybe",
		"HEALTH_CHECK_INTERVAL": "often",
		"SHUTDOWN_TIMEOUT":      "later",
		"STORE_CONNECT_TIMEOUT": "soon",
	}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(name, value)

			var c Config
			c.LoadDefaults()
			err := parseEnv(&c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestParseEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=dotenv-secret\nPORT=4000\n"), 0o600))

	// godotenv sets variables with os.Setenv; register them for cleanup.
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))
	require.NoError(t, os.Unsetenv("PORT"))

	withArgs(t, "-env-file", path)
	require.NoError(t, parseEnvFile())

	var c Config
	c.LoadDefaults()
	require.NoError(t, parseEnv(&c))
	assert.Equal(t, "dotenv-secret", c.SecretKey)
	assert.Equal(t, ":4000", c.EndpointAddr)
}

func TestParseEnvFile_MissingIsIgnored(t *testing.T) {
	withArgs(t, "-env-file", filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, parseEnvFile())
}

func TestPortToAddr(t *testing.T) {
	assert.Equal(t, ":8080", portToAddr("8080"))
	assert.Equal(t, "0.0.0.0:8080", portToAddr("0.0.0.0:8080"))
}
