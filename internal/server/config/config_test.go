package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/courseauth/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envNames = []string{
	"PORT", "GRPC_ADDRESS", "MONGODB_URI", "DATABASE_DSN", "DATABASE_NAME", "JWT_SECRET",
	"BCRYPT_COST", "DEFAULT_ROLE", "LEGACY_STATUS_CODES", "LOG_LEVEL",
	"HEALTH_CHECK_INTERVAL", "SHUTDOWN_TIMEOUT", "STORE_CONNECT_TIMEOUT", "AVATAR_URL_VALIDITY",
	"S3_ROOT_USER", "S3_ROOT_PASSWORD", "S3_BUCKET", "S3_REGION", "S3_BASE_ENDPOINT",
}

// clearEnv blanks every variable parseEnv looks at; empty values are ignored.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, n := range envNames {
		t.Setenv(n, "")
	}
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"testbin"}, args...)
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Equal(t, "mongodb://localhost:27017", c.DatabaseDSN)
	assert.Equal(t, "course-selling", c.DatabaseName)
	assert.Empty(t, c.SecretKey)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, "user", c.DefaultRole)
	assert.True(t, c.LegacyStatusCodes)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 10*time.Second, c.HealthCheckInterval)
	assert.Equal(t, 15*time.Minute, c.AvatarURLValidity)
	assert.False(t, c.S3Enabled())
}

func TestValidate(t *testing.T) {
	var c Config
	c.LoadDefaults()

	err := c.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrMissingSecret))

	c.SecretKey = "s3cr3t"
	require.NoError(t, c.Validate())

	c.BcryptCost = 2
	c.DatabaseDSN = ""
	err = c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bcrypt cost 2")
	assert.Contains(t, err.Error(), "database DSN")
}

func TestLoadConfig_LayersEnvThenFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("BCRYPT_COST", "12")
	withArgs(t, "-env-file", "", "-s", "from-flag", "-legacy=false")

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":3000", c.EndpointAddr)
	assert.Equal(t, "mongodb://db:27017", c.DatabaseDSN)
	assert.Equal(t, "from-flag", c.SecretKey)
	assert.Equal(t, 12, c.BcryptCost)
	assert.False(t, c.LegacyStatusCodes)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_BadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BCRYPT_COST", "ten")
	withArgs(t, "-env-file", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BCRYPT_COST")
}
