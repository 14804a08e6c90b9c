package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"endpoint_addr":         ":9090",
		"database_dsn":          "redis://cache:6379/0",
		"secret_key":            "json-secret",
		"bcrypt_cost":           11,
		"legacy_status_codes":   false,
		"health_check_interval": "30s",
		"avatar_url_validity":   "1h",
		"s3_bucket":             "avatars",
	})

	t.Run("overlays present fields only", func(t *testing.T) {
		withArgs(t, "-config", path)

		var c Config
		c.LoadDefaults()
		require.NoError(t, parseJson(&c))

		assert.Equal(t, ":9090", c.EndpointAddr)
		assert.Equal(t, "redis://cache:6379/0", c.DatabaseDSN)
		assert.Equal(t, "json-secret", c.SecretKey)
		assert.Equal(t, 11, c.BcryptCost)
		assert.False(t, c.LegacyStatusCodes)
		assert.Equal(t, 30*time.Second, c.HealthCheckInterval)
		assert.Equal(t, time.Hour, c.AvatarURLValidity)
		assert.Equal(t, "avatars", c.S3Bucket)

		assert.Equal(t, ":50051", c.EndpointAddrGRPC)
		assert.Equal(t, "course-selling", c.DatabaseName)
		assert.Equal(t, "user", c.DefaultRole)
	})

	t.Run("no config flag leaves config untouched", func(t *testing.T) {
		withArgs(t)

		var c Config
		c.LoadDefaults()
		want := c
		require.NoError(t, parseJson(&c))
		assert.Equal(t, want, c)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))
		withArgs(t, "-c", bad)

		var c Config
		require.Error(t, parseJson(&c))
	})

	t.Run("missing file", func(t *testing.T) {
		withArgs(t, "-c", filepath.Join(t.TempDir(), "nope.json"))

		var c Config
		require.Error(t, parseJson(&c))
	})
}
